// Package usecase はリクエスト・レスポンスの変換とエラーからステータスコードへの対応付けを行う。
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/tomoyuki65/users-api/internal/model"
)

// UserServiceInterface はユースケースが利用するユーザーサービスのインターフェース。
type UserServiceInterface interface {
	CreateUser(ctx context.Context, in model.NewUser) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, uid string) (*model.User, error)
	UpdateUser(ctx context.Context, uid string, patch model.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, uid string) (*model.User, error)
}

// MutationRecorder は更新系操作の結果を記録する。
type MutationRecorder interface {
	RecordUserMutation(operation, result string)
}

// CreateUserRequest はユーザー作成のリクエストボディ。
// emailは論理削除時に "_YYYYMMDDHHMMSS"（15文字）が付与されても列長255に収まるよう240文字までとする。
type CreateUserRequest struct {
	LastName  string `json:"last_name" validate:"required,max=255"`
	FirstName string `json:"first_name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=240"`
}

// UpdateUserRequest はユーザー更新のリクエストボディ。空文字のフィールドは更新しない。
type UpdateUserRequest struct {
	LastName  string `json:"last_name" validate:"max=255"`
	FirstName string `json:"first_name" validate:"max=255"`
	Email     string `json:"email" validate:"omitempty,email,max=240"`
}

// UserUsecase はユーザーAPIのユースケース。
type UserUsecase struct {
	service  UserServiceInterface
	recorder MutationRecorder
	validate *validator.Validate
}

// NewUserUsecase はUserUsecaseを生成する。recorderはnilでもよい。
func NewUserUsecase(service UserServiceInterface, recorder MutationRecorder) *UserUsecase {
	return &UserUsecase{
		service:  service,
		recorder: recorder,
		validate: newValidator(),
	}
}

// CreateUser はユーザーを作成し、201で作成されたユーザーを返す。
func (u *UserUsecase) CreateUser(ctx context.Context, req CreateUserRequest) *Response {
	if err := validateStruct(u.validate, req); err != nil {
		return ErrorResponse(ctx, err)
	}

	user, err := u.service.CreateUser(ctx, model.NewUser{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
	})
	u.record(ctx, "create", err)
	if err != nil {
		return ErrorResponse(ctx, err)
	}

	return newResponse(ctx, http.StatusCreated, toUserResponse(user))
}

// ListUsers は有効な全ユーザーを返す。
func (u *UserUsecase) ListUsers(ctx context.Context) *Response {
	users, err := u.service.ListUsers(ctx)
	if err != nil {
		return ErrorResponse(ctx, err)
	}

	body := make([]UserResponse, 0, len(users))
	for _, user := range users {
		body = append(body, toUserResponse(user))
	}
	return newResponse(ctx, http.StatusOK, body)
}

// GetUser は有効なユーザーを返す。見つからない場合は200で空のオブジェクトを返す。
func (u *UserUsecase) GetUser(ctx context.Context, uid string) *Response {
	user, err := u.service.GetUser(ctx, uid)
	if err != nil {
		return ErrorResponse(ctx, err)
	}
	if user == nil {
		return newResponse(ctx, http.StatusOK, EmptyResponse{})
	}
	return newResponse(ctx, http.StatusOK, toUserResponse(user))
}

// UpdateUser はユーザーを部分更新し、更新後のユーザーを返す。
func (u *UserUsecase) UpdateUser(ctx context.Context, uid string, req UpdateUserRequest) *Response {
	if err := validateStruct(u.validate, req); err != nil {
		return ErrorResponse(ctx, err)
	}

	user, err := u.service.UpdateUser(ctx, uid, model.UserPatch{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
	})
	u.record(ctx, "update", err)
	if err != nil {
		return ErrorResponse(ctx, err)
	}

	return newResponse(ctx, http.StatusOK, toUserResponse(user))
}

// DeleteUser はユーザーを論理削除し、{"message":"OK"}を返す。
func (u *UserUsecase) DeleteUser(ctx context.Context, uid string) *Response {
	_, err := u.service.DeleteUser(ctx, uid)
	u.record(ctx, "delete", err)
	if err != nil {
		return ErrorResponse(ctx, err)
	}

	return newResponse(ctx, http.StatusOK, MessageResponse{Message: "OK"})
}

// record は更新系操作の結果を記録する。
func (u *UserUsecase) record(ctx context.Context, operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			result = string(apiErr.Kind)
		}
		slog.WarnContext(ctx, "user mutation failed",
			slog.String("operation", operation),
			slog.String("result", result),
		)
	}
	if u.recorder != nil {
		u.recorder.RecordUserMutation(operation, result)
	}
}
