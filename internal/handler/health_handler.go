package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/tomoyuki65/users-api/internal/model"
	"github.com/tomoyuki65/users-api/internal/usecase"
)

// HealthChecker はデータストアの疎通確認インターフェース。*sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler はHealthHandlerを生成する。checkerがnilの場合はプロセスの生存のみを返す。
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health はサーバーとデータベースの状態を返す。
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.checker != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.checker.PingContext(ctx); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", slog.String("error", err.Error()))
			writeResponse(w, r, usecase.ErrorResponse(r.Context(),
				model.NewPersistenceError("データベースに接続できません。", err)))
			return
		}
	}

	writeResponse(w, r, &usecase.Response{
		StatusCode: http.StatusOK,
		Body:       usecase.MessageResponse{Message: "OK"},
	})
}
