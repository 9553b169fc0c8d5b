package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/nutriplan/internal/middleware"
	"github.com/hitoshi/nutriplan/internal/model"
)

// --- モック定義 ---

// mockMealPlanService はMealPlanServiceInterfaceのモック実装。
type mockMealPlanService struct {
	generateFn func(ctx context.Context, identity model.Identity, systemPrompt, userPrompt string, targetCalories *float64) (string, error)
}

func (m *mockMealPlanService) Generate(ctx context.Context, identity model.Identity, systemPrompt, userPrompt string, targetCalories *float64) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, identity, systemPrompt, userPrompt, targetCalories)
	}
	return "plan text", nil
}

// withIdentity は検証済み身元をリクエストコンテキストへ注入する。
func withIdentity(req *http.Request, accountID int64) *http.Request {
	ctx := middleware.ContextWithIdentity(req.Context(), &model.Identity{
		AccountID: accountID,
		Email:     "user@example.com",
	})
	return req.WithContext(ctx)
}

// --- POST /api/mealplan テスト ---

func TestMealPlanHandler_Generate_Success(t *testing.T) {
	var gotIdentity model.Identity
	var gotCalories *float64
	svc := &mockMealPlanService{
		generateFn: func(ctx context.Context, identity model.Identity, systemPrompt, userPrompt string, targetCalories *float64) (string, error) {
			gotIdentity = identity
			gotCalories = targetCalories
			if systemPrompt != "You are a dietitian." {
				t.Errorf("systemPrompt = %q", systemPrompt)
			}
			if userPrompt != "1日のプランを作成して" {
				t.Errorf("userPrompt = %q", userPrompt)
			}
			return "朝食: オートミール", nil
		},
	}
	h := NewMealPlanHandler(svc)

	req := withIdentity(postJSON("/api/mealplan",
		`{"systemPrompt":"You are a dietitian.","userPrompt":"1日のプランを作成して","targetCalories":2128.3}`), 42)
	w := httptest.NewRecorder()

	h.Generate(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotIdentity.AccountID != 42 {
		t.Errorf("identity.AccountID = %d, want 42", gotIdentity.AccountID)
	}
	if gotCalories == nil || *gotCalories != 2128.3 {
		t.Errorf("targetCalories = %v, want 2128.3", gotCalories)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["text"] != "朝食: オートミール" {
		t.Errorf("text = %q, want 生成テキスト", resp["text"])
	}
}

func TestMealPlanHandler_Generate_WithoutIdentity_Returns401(t *testing.T) {
	h := NewMealPlanHandler(&mockMealPlanService{})

	w := httptest.NewRecorder()
	h.Generate(w, postJSON("/api/mealplan", `{"userPrompt":"p"}`))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestMealPlanHandler_Generate_InvalidJSON(t *testing.T) {
	h := NewMealPlanHandler(&mockMealPlanService{})

	w := httptest.NewRecorder()
	h.Generate(w, withIdentity(postJSON("/api/mealplan", `not json`), 1))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// targetCalories省略時はnilでサービスに渡されることを検証
func TestMealPlanHandler_Generate_OmittedTargetCalories(t *testing.T) {
	var gotCalories *float64 = new(float64)
	h := NewMealPlanHandler(&mockMealPlanService{
		generateFn: func(ctx context.Context, identity model.Identity, s, u string, targetCalories *float64) (string, error) {
			gotCalories = targetCalories
			return "text", nil
		},
	})

	w := httptest.NewRecorder()
	h.Generate(w, withIdentity(postJSON("/api/mealplan", `{"userPrompt":"p"}`), 1))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotCalories != nil {
		t.Errorf("targetCalories = %v, want nil", gotCalories)
	}
}

// 上流エラーのステータスとボディがそのまま透過されることを検証
func TestMealPlanHandler_Generate_UpstreamPassthrough(t *testing.T) {
	h := NewMealPlanHandler(&mockMealPlanService{
		generateFn: func(ctx context.Context, identity model.Identity, s, u string, c *float64) (string, error) {
			return "", &model.UpstreamError{StatusCode: 429, Body: `{"error":{"message":"rate limited"}}`}
		},
	})

	w := httptest.NewRecorder()
	h.Generate(w, withIdentity(postJSON("/api/mealplan", `{"userPrompt":"p"}`), 1))

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["code"] != model.ErrCodeUpstream {
		t.Errorf("code = %q, want UPSTREAM_ERROR", resp["code"])
	}
	if resp["error"] != `{"error":{"message":"rate limited"}}` {
		t.Errorf("error = %q, 上流ボディが保持されていない", resp["error"])
	}
}

func TestMealPlanHandler_Generate_Misconfigured_Returns500(t *testing.T) {
	h := NewMealPlanHandler(&mockMealPlanService{
		generateFn: func(ctx context.Context, identity model.Identity, s, u string, c *float64) (string, error) {
			return "", model.NewMisconfiguredError("GROQ_API_KEY")
		},
	})

	w := httptest.NewRecorder()
	h.Generate(w, withIdentity(postJSON("/api/mealplan", `{"userPrompt":"p"}`), 1))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["code"] != model.ErrCodeMisconfigured {
		t.Errorf("code = %q, want MISCONFIGURED", resp["code"])
	}
}
