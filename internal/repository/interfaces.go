// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/nutriplan/internal/model"
)

// ErrDuplicateEmail はメールアドレスの一意制約違反を表す。
// その他のストレージ障害と区別して返す。
var ErrDuplicateEmail = errors.New("email already registered")

// AccountRepository はアカウントデータの永続化インターフェース。
type AccountRepository interface {
	// Create はアカウントを作成し、採番されたIDを設定して返す。
	// メールアドレスの一意制約違反の場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, account *model.Account) (*model.Account, error)

	// FindByEmail は指定メールアドレスのアカウントを取得する。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
}

// HistoryRepository はミールプラン履歴の永続化インターフェース。
// 履歴は追記専用で、更新・削除は行わない。
type HistoryRepository interface {
	// Create は履歴エントリを作成し、採番されたIDを設定して返す。
	Create(ctx context.Context, entry *model.HistoryEntry) (*model.HistoryEntry, error)

	// ListRecentByAccountID は指定アカウントの履歴を新しい順に最大limit件返す。
	// 他アカウントの履歴は決して含まれない。
	ListRecentByAccountID(ctx context.Context, accountID int64, limit int) ([]*model.HistoryEntry, error)
}
