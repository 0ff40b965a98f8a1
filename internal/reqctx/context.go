// Package reqctx はリクエスト単位の共通コンテキストを提供する。
package reqctx

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID は相関IDを運ぶHTTPヘッダー名。
const HeaderRequestID = "X-Request-Id"

// maxRequestIDLength は受信した相関IDを再利用する際の最大長。
const maxRequestIDLength = 128

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

var requestContextKey = contextKey("request_context")

// RequestContext はリクエストごとの読み取り専用スナップショット。
// ミドルウェアで1回だけ生成され、下位レイヤーは参照のみ行う。
type RequestContext struct {
	RequestID string
	Method    string
	URI       string
	Header    http.Header
}

// NewRequestID は新しい相関IDを生成する。
func NewRequestID() string {
	return uuid.NewString()
}

// New はリクエストからRequestContextを生成する。
// X-Request-Idヘッダーが未設定または不正な長さの場合は新しい相関IDを採番し、
// リクエストヘッダーにも注入する。
func New(r *http.Request) *RequestContext {
	id := r.Header.Get(HeaderRequestID)
	if id == "" || len(id) > maxRequestIDLength {
		id = NewRequestID()
		r.Header.Set(HeaderRequestID, id)
	}

	return &RequestContext{
		RequestID: id,
		Method:    r.Method,
		URI:       r.URL.RequestURI(),
		Header:    r.Header.Clone(),
	}
}

// WithRequestContext はコンテキストにRequestContextを注入する。
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// FromContext はコンテキストからRequestContextを取得する。
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey).(*RequestContext)
	if !ok || rc == nil {
		return nil, false
	}
	return rc, true
}

// RequestIDFromContext はコンテキストから相関IDを取得する。未設定の場合は空文字を返す。
func RequestIDFromContext(ctx context.Context) string {
	if rc, ok := FromContext(ctx); ok {
		return rc.RequestID
	}
	return ""
}
