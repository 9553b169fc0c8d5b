package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hitoshi/nutriplan/internal/middleware"
	"github.com/hitoshi/nutriplan/internal/model"
)

// HistoryServiceInterface は履歴ハンドラーが必要とするサービスインターフェース。
type HistoryServiceInterface interface {
	ListRecent(ctx context.Context, identity model.Identity) ([]*model.HistoryEntry, error)
}

// HistoryHandler はミールプラン履歴参照のHTTPハンドラー。
type HistoryHandler struct {
	service HistoryServiceInterface
}

// NewHistoryHandler はHistoryHandlerを生成する。
func NewHistoryHandler(service HistoryServiceInterface) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// historyItem は履歴エントリのレスポンス表現。
type historyItem struct {
	ID             int64  `json:"id"`
	Prompt         string `json:"prompt"`
	Result         string `json:"result"`
	TargetCalories *int   `json:"target_calories"`
	CreatedAt      string `json:"created_at"`
}

// historyResponse は履歴一覧のレスポンスボディ。
type historyResponse struct {
	Items []historyItem `json:"items"`
}

// List は呼び出し元アカウントの履歴を新しい順に返す。
// GET /api/history（要認証）
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	entries, err := h.service.ListRecent(r.Context(), *identity)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]historyItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyItem{
			ID:             entry.ID,
			Prompt:         entry.Prompt,
			Result:         entry.Result,
			TargetCalories: entry.TargetCalories,
			CreatedAt:      entry.CreatedAt.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, historyResponse{Items: items})
}
