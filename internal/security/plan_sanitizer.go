// Package security はアプリケーションのセキュリティ機能を提供する。
//
// PlanSanitizerService は生成AIが返したミールプラン文字列をサニタイズする。
// プランはプレーンテキストとして保存・表示する設計のため、
// HTMLタグを一切許可しないStrictPolicyを適用し、
// 履歴表示時のXSSからユーザーを保護する。
package security

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// PlanSanitizerService は生成プランのサニタイズ機能のインターフェースを定義する。
// ミールプランの保存前およびAPI応答時に使用される。
type PlanSanitizerService interface {
	// Sanitize は生成テキストからHTMLタグをすべて除去したプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// planSanitizer はPlanSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type planSanitizer struct {
	policy *bluemonday.Policy
}

// NewPlanSanitizer はPlanSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicy（全タグ除去）を使用する。生成AIの出力はタグを含まない
// 想定だが、上流の応答をそのまま信用しない。
func NewPlanSanitizer() *planSanitizer {
	return &planSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は生成テキストからHTMLタグを除去したプレーンテキストを返す。
// bluemondayはエンティティをエスケープするため、除去後にアンエスケープして
// 元のプレーンテキスト（引用符や&を含む）を保つ。
func (s *planSanitizer) Sanitize(raw string) string {
	return html.UnescapeString(s.policy.Sanitize(raw))
}
