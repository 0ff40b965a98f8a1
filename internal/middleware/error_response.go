package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tomoyuki65/users-api/internal/model"
)

// writeError はミドルウェアで処理を打ち切る際のエラーレスポンスを書き込む。
// ボディはハンドラー層と同じ {"code","message"} 形式で、内部原因は含めない。
func writeError(w http.ResponseWriter, r *http.Request, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus())
	if err := json.NewEncoder(w).Encode(apiErr.ResponseBody()); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode error response",
			slog.String("code", apiErr.Code),
			slog.String("error", err.Error()),
		)
	}
}
