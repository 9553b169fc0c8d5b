package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/nutriplan/internal/metrics"
	"github.com/hitoshi/nutriplan/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// 認証
	AuthService AuthServiceInterface

	// ミールプラン
	MealPlanService MealPlanServiceInterface

	// 履歴
	HistoryService HistoryServiceInterface

	// 死活監視
	DB DBPinger

	// Prometheusメトリクス公開
	MetricsGatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → SecurityHeaders → Logging → Recovery
//
// 認証（Bearerトークン）は /api/mealplan と /api/history のみに適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルートに効くミドルウェア
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	r.Use(middleware.NewRecoveryMiddleware())

	authHandler := NewAuthHandler(deps.AuthService)
	mealPlanHandler := NewMealPlanHandler(deps.MealPlanService)
	historyHandler := NewHistoryHandler(deps.HistoryService)
	metricsHandler := NewMetricsHandler()
	healthHandler := NewHealthHandler(deps.DB)

	// --- 認証不要のルート ---

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// 身体指標の計算（純粋計算のため認証不要）
	r.Post("/api/metrics", metricsHandler.Calculate)

	// 死活監視
	r.Get("/health", healthHandler.Check)

	// Prometheusスクレイプ
	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewBearerAuthMiddleware(deps.TokenVerifier))

		r.Post("/api/mealplan", mealPlanHandler.Generate)
		r.Get("/api/history", historyHandler.List)
	})

	return r
}
