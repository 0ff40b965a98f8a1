package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tomoyuki65/users-api/internal/usecase"
)

// writeResponse はユースケースのResponseをHTTPレスポンスとして書き込む。
func writeResponse(w http.ResponseWriter, r *http.Request, res *usecase.Response) {
	for k, vs := range res.Header {
		for _, v := range vs {
			w.Header().Set(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	if res.Body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(res.Body); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", slog.String("error", err.Error()))
	}
}
