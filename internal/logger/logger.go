// Package logger はJSON構造化ログのセットアップを提供する。
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tomoyuki65/users-api/internal/reqctx"
)

// Setup はJSON構造化ログ出力のslog.Loggerを生成して返す。
// ハンドラーはContextHandlerでラップされ、リクエストコンテキストの相関IDが全ログに付与される。
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(NewContextHandler(handler))
}

// SetupDefault はJSON構造化ログ出力をグローバルロガーとして設定する。
// 本番ではos.Stdoutを渡すことを想定している。
func SetupDefault(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	logger := Setup(w, level)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel はLOG_LEVEL文字列をslog.Levelに変換する。未知の値はInfoとする。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ContextHandler はコンテキスト中のRequestContextからrequest_id、method、uriを
// ログレコードに追加するslog.Handler。
// レコードが既に同名のキーを持つ場合はそちらを優先する。
type ContextHandler struct {
	next slog.Handler
}

// NewContextHandler はContextHandlerを生成する。
func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

// Enabled は委譲先のレベル判定に従う。
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle はリクエスト情報を付与してから委譲する。
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	rc, ok := reqctx.FromContext(ctx)
	if !ok {
		return h.next.Handle(ctx, r)
	}

	present := make(map[string]bool, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		present[a.Key] = true
		return true
	})

	candidates := []slog.Attr{
		slog.String("request_id", rc.RequestID),
		slog.String("method", rc.Method),
		slog.String("uri", rc.URI),
	}
	for _, a := range candidates {
		if !present[a.Key] {
			r.AddAttrs(a)
		}
	}

	return h.next.Handle(ctx, r)
}

// WithAttrs は属性付きのContextHandlerを返す。
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

// WithGroup はグループ付きのContextHandlerを返す。
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}
