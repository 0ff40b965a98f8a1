// Package user はユーザー管理のサービス層を提供する。
// リポジトリの結果とエラーを変更せずに上位層へ返す。
package user

import (
	"context"
	"log/slog"

	"github.com/tomoyuki65/users-api/internal/model"
	"github.com/tomoyuki65/users-api/internal/repository"
)

// Service はユーザー管理のサービス層。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// CreateUser はユーザーを作成する。
func (s *Service) CreateUser(ctx context.Context, in model.NewUser) (*model.User, error) {
	slog.DebugContext(ctx, "ユーザー作成", slog.String("email", in.Email))
	return s.userRepo.Create(ctx, in)
}

// ListUsers は有効な全ユーザーを返す。
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.ListActive(ctx)
}

// GetUser は有効なユーザーをuidで取得する。見つからない場合はnilを返す。
func (s *Service) GetUser(ctx context.Context, uid string) (*model.User, error) {
	return s.userRepo.FindActiveByUID(ctx, uid)
}

// UpdateUser はユーザーを部分更新する。
func (s *Service) UpdateUser(ctx context.Context, uid string, patch model.UserPatch) (*model.User, error) {
	slog.DebugContext(ctx, "ユーザー更新", slog.String("uid", uid))
	return s.userRepo.Update(ctx, uid, patch)
}

// DeleteUser はユーザーを論理削除する。
func (s *Service) DeleteUser(ctx context.Context, uid string) (*model.User, error) {
	slog.DebugContext(ctx, "ユーザー削除", slog.String("uid", uid))
	return s.userRepo.SoftDelete(ctx, uid)
}
