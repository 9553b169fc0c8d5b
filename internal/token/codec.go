// Package token はセッショントークンの署名と検証を提供する。
// トークンはHS256署名付きJWTで、アカウントID・メールアドレス・有効期限を持つ。
// サーバー側に状態を持たないため、失効は有効期限切れのみ（ブラックリストなし）。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/nutriplan/internal/model"
)

// ErrInvalidToken は署名不一致・形式不正・期限切れのいずれかを表す。
// 呼び出し元には失敗理由を区別させない。
var ErrInvalidToken = errors.New("invalid token")

// claims はJWTのペイロード。標準クレームに加えてアカウントIDとメールアドレスを持つ。
type claims struct {
	jwt.RegisteredClaims
	AccountID int64  `json:"uid"`
	Email     string `json:"email"`
}

// Codec はセッショントークンの署名・検証を行う。
// secretはプロセス全体の設定として起動時に1回読み込む。
// secretをローテーションすると発行済みトークンはすべて無効になる。
type Codec struct {
	secret   []byte
	validity time.Duration
}

// NewCodec はCodecを生成する。validityは発行するトークンの有効期間。
func NewCodec(secret []byte, validity time.Duration) *Codec {
	return &Codec{
		secret:   secret,
		validity: validity,
	}
}

// Sign は指定された身元情報を持つ署名付きトークンを発行する。
func (c *Codec) Sign(identity model.Identity) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
		AccountID: identity.AccountID,
		Email:     identity.Email,
	})

	return t.SignedString(c.secret)
}

// Verify はトークン文字列を検証し、埋め込まれた身元情報を返す。
// 署名不一致・形式不正・期限切れの場合はErrInvalidTokenを返す。
// 署名方式はHS256のみ許可する（alg none等のすり替えを拒否）。
func (c *Codec) Verify(tokenString string) (*model.Identity, error) {
	parsed := &claims{}

	t, err := jwt.ParseWithClaims(tokenString, parsed,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	return &model.Identity{
		AccountID: parsed.AccountID,
		Email:     parsed.Email,
	}, nil
}
