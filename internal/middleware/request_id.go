// Package middleware はHTTPリクエストの前後処理を行うミドルウェアを提供する。
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tomoyuki65/users-api/internal/reqctx"
)

// NewRequestIDMiddleware はリクエストごとの相関IDを確定させるミドルウェアを返す。
// RequestContextをコンテキストに注入し、レスポンスヘッダーにX-Request-Idを先に設定したうえで、
// リクエスト開始ログを出力する。チェーンの最も外側に配置すること。
func NewRequestIDMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := reqctx.New(r)
			ctx := reqctx.WithRequestContext(r.Context(), rc)

			w.Header().Set(reqctx.HeaderRequestID, rc.RequestID)

			logger.InfoContext(ctx, "request started")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
