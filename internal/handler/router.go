// Package handler はHTTPハンドラーとルーティングを提供する。
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomoyuki65/users-api/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	Logger *slog.Logger

	// ミドルウェア依存
	RateLimiter   *middleware.RateLimiter
	TokenVerifier middleware.TokenVerifier
	HTTPMetrics   middleware.HTTPMetricsRecorder

	// 公開エンドポイント
	HealthChecker  HealthChecker
	MetricsHandler http.Handler

	// ユーザー
	UserUsecase UserUsecaseInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Recovery → Metrics → RateLimit(/api/v1) → BearerAuth(保護ルートのみ)
//
// RequestIDを最も外側に置き、内側で処理が打ち切られた場合でも
// 開始ログ・完了ログ・レスポンスヘッダーが同じ相関IDを持つようにする。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware(logger))
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewRecoveryMiddleware(logger))
	if deps.HTTPMetrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.HTTPMetrics))
	}

	healthHandler := NewHealthHandler(deps.HealthChecker)
	userHandler := NewUserHandler(deps.UserUsecase)
	sampleHandler := NewSampleHandler()

	// --- 運用エンドポイント ---
	r.Get("/health", healthHandler.Health)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		// --- 認証不要のルート ---
		r.Post("/users", userHandler.CreateUser)

		r.Route("/sample", func(r chi.Router) {
			r.Get("/get", sampleHandler.Get)
			r.Get("/get/{id}", sampleHandler.GetPathQuery)
			r.Post("/post", sampleHandler.Post)
		})

		// --- ベアラートークンが必要なルート ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewBearerAuthMiddleware(deps.TokenVerifier))

			r.Get("/users", userHandler.ListUsers)
			r.Get("/users/{uid}", userHandler.GetUser)
			r.Put("/users/{uid}", userHandler.UpdateUser)
			r.Delete("/users/{uid}", userHandler.DeleteUser)
		})
	})

	return r
}
