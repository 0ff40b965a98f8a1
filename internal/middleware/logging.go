package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tomoyuki65/users-api/internal/reqctx"
)

// NewLoggingMiddleware はレスポンス完了時に1行のアクセスログを出力するミドルウェアを返す。
// request_idは確定済みのレスポンスヘッダーから読むため、RequestIDミドルウェアの内側に置くこと。
// 5xxはERROR、4xxはWARN、それ以外はINFOで出力する。
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newResponseRecorder(w)

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			logger.LogAttrs(r.Context(), levelForStatus(rec.status), "http_request",
				slog.String("request_id", rec.Header().Get(reqctx.HeaderRequestID)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Int("bytes", rec.bytes),
				slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
			)
		})
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
