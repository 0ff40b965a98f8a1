package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tomoyuki65/users-api/internal/model"
	"github.com/tomoyuki65/users-api/internal/reqctx"
)

// Response はユースケースの実行結果。ハンドラーはこれをそのままHTTPレスポンスとして書き込む。
type Response struct {
	StatusCode int
	Header     http.Header
	Body       any
}

// UserResponse はユーザーのワイヤー表現。
type UserResponse struct {
	ID        int64      `json:"id"`
	UID       string     `json:"uid"`
	LastName  string     `json:"last_name"`
	FirstName string     `json:"first_name"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// MessageResponse はメッセージのみを返すレスポンスボディ。
type MessageResponse struct {
	Message string `json:"message"`
}

// EmptyResponse は "{}" としてエンコードされる空のレスポンスボディ。
type EmptyResponse struct{}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		UID:       u.UID,
		LastName:  u.LastName,
		FirstName: u.FirstName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}

// responseHeader はリクエストIDを付与したレスポンスヘッダーを返す。
func responseHeader(ctx context.Context) http.Header {
	h := make(http.Header)
	if id := reqctx.RequestIDFromContext(ctx); id != "" {
		h.Set(reqctx.HeaderRequestID, id)
	}
	return h
}

func newResponse(ctx context.Context, status int, body any) *Response {
	return &Response{
		StatusCode: status,
		Header:     responseHeader(ctx),
		Body:       body,
	}
}

// ErrorResponse はエラーをレスポンスに変換する。
// *model.APIError以外は内部サーバーエラーとして扱い、詳細はログにのみ出力する。
func ErrorResponse(ctx context.Context, err error) *Response {
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		slog.ErrorContext(ctx, "internal server error", slog.String("error", err.Error()))
		apiErr = model.NewInternalServerError(err)
	}
	return newResponse(ctx, apiErr.HTTPStatus(), apiErr.ResponseBody())
}
