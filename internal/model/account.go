// Package model はドメインモデルを定義する。
package model

import "time"

// Account はメールアドレスとパスワードで認証するユーザーアカウントを表す。
// PasswordHashはbcryptハッシュで、平文パスワードは保持しない。
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity は検証済みトークンから復元した呼び出し元の身元を表す。
// リクエストコンテキスト経由でハンドラーに伝搬する。
type Identity struct {
	AccountID int64
	Email     string
}

// HistoryEntry は過去のミールプラン生成履歴を表す。
// アカウントに対して追記専用で、更新・削除は行わない。
// TargetCaloriesはクライアントが目標カロリーを送らなかった場合nil。
type HistoryEntry struct {
	ID             int64
	AccountID      int64
	Prompt         string
	Result         string
	TargetCalories *int
	CreatedAt      time.Time
}
