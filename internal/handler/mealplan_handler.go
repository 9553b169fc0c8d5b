package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/nutriplan/internal/middleware"
	"github.com/hitoshi/nutriplan/internal/model"
)

// MealPlanServiceInterface はミールプランハンドラーが必要とするサービスインターフェース。
type MealPlanServiceInterface interface {
	Generate(ctx context.Context, identity model.Identity, systemPrompt, userPrompt string, targetCalories *float64) (string, error)
}

// MealPlanHandler はミールプラン生成のHTTPハンドラー。
type MealPlanHandler struct {
	service MealPlanServiceInterface
}

// NewMealPlanHandler はMealPlanHandlerを生成する。
func NewMealPlanHandler(service MealPlanServiceInterface) *MealPlanHandler {
	return &MealPlanHandler{service: service}
}

// mealPlanRequest はミールプラン生成のリクエストボディ。
// targetCaloriesは履歴保存用の任意項目。
type mealPlanRequest struct {
	SystemPrompt   string   `json:"systemPrompt"`
	UserPrompt     string   `json:"userPrompt"`
	TargetCalories *float64 `json:"targetCalories"`
}

// mealPlanResponse は生成されたプランテキストのレスポンスボディ。
type mealPlanResponse struct {
	Text string `json:"text"`
}

// Generate はミールプランを生成して返す。
// POST /api/mealplan（要認証）
func (h *MealPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req mealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディが不正です。"))
		return
	}

	text, err := h.service.Generate(r.Context(), *identity, req.SystemPrompt, req.UserPrompt, req.TargetCalories)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mealPlanResponse{Text: text})
}
