// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, upstream, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeDuplicateEmail     = "DUPLICATE_EMAIL"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeMisconfigured      = "MISCONFIGURED"
	ErrCodeUpstream           = "UPSTREAM_ERROR"
	ErrCodeStorage            = "STORAGE_ERROR"
)

// NewValidationError は必須フィールド欠落エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewDuplicateEmailError はメールアドレス重複エラーを生成する。
func NewDuplicateEmailError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateEmail,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "auth",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
// メールアドレス不明とパスワード不一致を区別しない
// （どちらが誤っているかを漏らさないため）。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewUnauthorizedError はトークン欠落・無効・期限切れエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewMisconfiguredError はサーバー側の設定不備エラーを生成する。
func NewMisconfiguredError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeMisconfigured,
		Message:  fmt.Sprintf("サーバーの設定が不足しています: %s", detail),
		Category: "system",
		Action:   "管理者に連絡してください。",
	}
}

// NewStorageError はストレージ障害エラーを生成する。
// 内部詳細はログのみに記録し、レスポンスには含めない。
func NewStorageError() *APIError {
	return &APIError{
		Code:     ErrCodeStorage,
		Message:  "データの保存・取得に失敗しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// UpstreamError は外部Chat Completions APIの失敗を表す。
// 上流のHTTPステータスとエラーボディをそのまま呼び出し元へ透過する
// （リトライせず1回で失敗を可視化する方針）。
type UpstreamError struct {
	StatusCode int
	Body       string
}

// Error はerrorインターフェースを実装する。
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream API returned status %d: %s", e.StatusCode, e.Body)
}
