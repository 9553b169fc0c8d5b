// Package auth はアカウント登録・ログインのドメインロジックを提供する。
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/nutriplan/internal/model"
	"github.com/hitoshi/nutriplan/internal/repository"
)

// TokenSigner はセッショントークンの発行インターフェース。
// token.Codecの部分集合として定義する。
type TokenSigner interface {
	Sign(identity model.Identity) (string, error)
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	BcryptCost int // bcryptのコストファクタ
}

// Service は認証に関するビジネスロジックを提供する。
// パスワードはbcryptでハッシュ化して保存し、平文は保持もログ出力もしない。
type Service struct {
	accountRepo repository.AccountRepository
	signer      TokenSigner
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(accountRepo repository.AccountRepository, signer TokenSigner, config ServiceConfig) *Service {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		accountRepo: accountRepo,
		signer:      signer,
		config:      config,
	}
}

// normalizeEmail はメールアドレスを小文字に正規化する。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register は新規アカウントを作成し、セッショントークンを発行する。
// メールアドレス・パスワードは非空のみを要求する（強度ポリシーなし）。
// メールアドレス重複はDUPLICATE_EMAIL、その他のストレージ障害はSTORAGE_ERRORとして返す。
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", model.NewValidationError("メールアドレスとパスワードは必須です。")
	}

	normalized := normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		slog.Error("failed to hash password", slog.String("error", err.Error()))
		return "", model.NewStorageError()
	}

	account, err := s.accountRepo.Create(ctx, &model.Account{
		Email:        normalized,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", model.NewDuplicateEmailError()
		}
		slog.Error("failed to create account", slog.String("error", err.Error()))
		return "", model.NewStorageError()
	}

	tokenString, err := s.signer.Sign(model.Identity{AccountID: account.ID, Email: account.Email})
	if err != nil {
		// アカウント作成後のトークン発行失敗はRegister全体の失敗として扱う
		// （作成とトークン発行はトランザクションで結ばない）
		slog.Error("failed to sign token after registration",
			slog.Int64("account_id", account.ID),
			slog.String("error", err.Error()),
		)
		return "", model.NewStorageError()
	}

	slog.Info("account registered", slog.Int64("account_id", account.ID))
	return tokenString, nil
}

// Login は資格情報を検証し、セッショントークンを発行する。
// アカウント不在とパスワード不一致は同一のINVALID_CREDENTIALSを返す
// （どちらが誤っているかを漏らさない）。
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", model.NewValidationError("メールアドレスとパスワードは必須です。")
	}

	normalized := normalizeEmail(email)

	account, err := s.accountRepo.FindByEmail(ctx, normalized)
	if err != nil {
		slog.Error("failed to find account", slog.String("error", err.Error()))
		return "", model.NewStorageError()
	}
	if account == nil {
		return "", model.NewInvalidCredentialsError()
	}

	// bcryptの比較は内部で定数時間比較を行う
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", model.NewInvalidCredentialsError()
	}

	tokenString, err := s.signer.Sign(model.Identity{AccountID: account.ID, Email: account.Email})
	if err != nil {
		slog.Error("failed to sign token",
			slog.Int64("account_id", account.ID),
			slog.String("error", err.Error()),
		)
		return "", model.NewStorageError()
	}

	slog.Info("account logged in", slog.Int64("account_id", account.ID))
	return tokenString, nil
}
