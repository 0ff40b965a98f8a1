package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomoyuki65/users-api/internal/model"
	"github.com/tomoyuki65/users-api/internal/usecase"
)

// maxRequestBodySize はリクエストボディの最大サイズ（1MB）。
const maxRequestBodySize = 1 << 20

// UserUsecaseInterface はユーザーハンドラーが必要とするユースケースインターフェース。
type UserUsecaseInterface interface {
	CreateUser(ctx context.Context, req usecase.CreateUserRequest) *usecase.Response
	ListUsers(ctx context.Context) *usecase.Response
	GetUser(ctx context.Context, uid string) *usecase.Response
	UpdateUser(ctx context.Context, uid string, req usecase.UpdateUserRequest) *usecase.Response
	DeleteUser(ctx context.Context, uid string) *usecase.Response
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	usecase UserUsecaseInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(uc UserUsecaseInterface) *UserHandler {
	return &UserHandler{usecase: uc}
}

// CreateUser はユーザーを作成する。
// POST /api/v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeResponse(w, r, usecase.ErrorResponse(r.Context(), err))
		return
	}

	writeResponse(w, r, h.usecase.CreateUser(r.Context(), req))
}

// ListUsers は有効な全ユーザーを返す。
// GET /api/v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, h.usecase.ListUsers(r.Context()))
}

// GetUser は有効なユーザーをuidで取得する。
// GET /api/v1/users/{uid}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, h.usecase.GetUser(r.Context(), chi.URLParam(r, "uid")))
}

// UpdateUser はユーザーを部分更新する。
// PUT /api/v1/users/{uid}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req usecase.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeResponse(w, r, usecase.ErrorResponse(r.Context(), err))
		return
	}

	writeResponse(w, r, h.usecase.UpdateUser(r.Context(), chi.URLParam(r, "uid"), req))
}

// DeleteUser はユーザーを論理削除する。
// DELETE /api/v1/users/{uid}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, h.usecase.DeleteUser(r.Context(), chi.URLParam(r, "uid")))
}

// decodeJSON はリクエストボディをJSONとしてデコードする。失敗時はInvalidRequestエラーを返す。
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewInvalidRequestError(err)
	}
	return nil
}
