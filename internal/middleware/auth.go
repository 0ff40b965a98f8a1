package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tomoyuki65/users-api/internal/model"
)

// TokenVerifier はベアラートークンの検証インターフェース。
// 実際の認証基盤はこのインターフェースを実装して差し替える。
type TokenVerifier interface {
	Verify(ctx context.Context, token string) error
}

// PresenceVerifier はトークンが空でないことのみを確認するスタブ実装。
type PresenceVerifier struct{}

// Verify は空でないトークンをすべて受け入れる。
func (PresenceVerifier) Verify(_ context.Context, token string) error {
	if token == "" {
		return errors.New("empty bearer token")
	}
	return nil
}

// NewBearerAuthMiddleware はAuthorizationヘッダーのベアラートークンを確認するミドルウェアを返す。
// ヘッダーが無い、またはトークンが空の場合は400を返して処理を打ち切る。
func NewBearerAuthMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	if verifier == nil {
		verifier = PresenceVerifier{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				slog.WarnContext(r.Context(), "bearer token missing")
				writeError(w, r, model.NewUnauthorizedError("Authorizationヘッダーにベアラートークンを指定して下さい。"))
				return
			}

			if err := verifier.Verify(r.Context(), token); err != nil {
				slog.WarnContext(r.Context(), "bearer token rejected", slog.String("error", err.Error()))
				writeError(w, r, model.NewUnauthorizedError("ベアラートークンが不正です。"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken はAuthorizationヘッダーからトークンを取り出す。
// ヘッダーが無い、またはトークンが空の場合はfalseを返す。
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}
