package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/nutriplan/internal/calc"
	"github.com/hitoshi/nutriplan/internal/middleware"
	"github.com/hitoshi/nutriplan/internal/model"
)

// MetricsHandler は身体指標からカロリー目標を算出するHTTPハンドラー。
// 純粋計算のみでI/Oを行わないため、サービス層を挟まない。
type MetricsHandler struct{}

// NewMetricsHandler はMetricsHandlerを生成する。
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// metricsRequest は身体指標のリクエストボディ。
type metricsRequest struct {
	Weight   float64 `json:"weight"`   // 体重(kg)
	Height   float64 `json:"height"`   // 身長(cm)
	Age      float64 `json:"age"`      // 年齢
	Gender   string  `json:"gender"`   // male / female
	Activity string  `json:"activity"` // 活動レベル
	Goal     string  `json:"goal"`     // weight_loss / muscle_gain / maintain
}

// metricsResponse は算出結果のレスポンスボディ。
type metricsResponse struct {
	BMI            float64 `json:"bmi"`
	Category       string  `json:"category"`
	BMR            float64 `json:"bmr"`
	TDEE           float64 `json:"tdee"`
	TargetCalories float64 `json:"target_calories"`
}

// Calculate は身体指標からBMI・BMR・TDEE・目標カロリーを算出して返す。
// POST /api/metrics
func (h *MetricsHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req metricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("リクエストボディが不正です。"))
		return
	}

	if req.Weight <= 0 || req.Height <= 0 || req.Age <= 0 {
		middleware.WriteErrorResponse(w, http.StatusBadRequest,
			model.NewValidationError("体重・身長・年齢は正の数値で指定してください。"))
		return
	}

	bmi := calc.BMI(req.Weight, req.Height)
	bmr := calc.BMR(req.Gender, req.Weight, req.Height, req.Age)
	tdee := calc.TDEE(bmr, req.Activity)

	writeJSON(w, http.StatusOK, metricsResponse{
		BMI:            bmi,
		Category:       calc.BMICategory(bmi),
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: calc.TargetCalories(tdee, req.Goal),
	})
}
