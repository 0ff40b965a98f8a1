package user

import (
	"context"
	"errors"
	"testing"

	"github.com/tomoyuki65/users-api/internal/model"
)

// --- モック ---

type mockUserRepo struct {
	createFn          func(ctx context.Context, in model.NewUser) (*model.User, error)
	listActiveFn      func(ctx context.Context) ([]*model.User, error)
	findActiveByUIDFn func(ctx context.Context, uid string) (*model.User, error)
	updateFn          func(ctx context.Context, uid string, patch model.UserPatch) (*model.User, error)
	softDeleteFn      func(ctx context.Context, uid string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	return m.createFn(ctx, in)
}
func (m *mockUserRepo) ListActive(ctx context.Context) ([]*model.User, error) {
	return m.listActiveFn(ctx)
}
func (m *mockUserRepo) FindActiveByUID(ctx context.Context, uid string) (*model.User, error) {
	return m.findActiveByUIDFn(ctx, uid)
}
func (m *mockUserRepo) Update(ctx context.Context, uid string, patch model.UserPatch) (*model.User, error) {
	return m.updateFn(ctx, uid, patch)
}
func (m *mockUserRepo) SoftDelete(ctx context.Context, uid string) (*model.User, error) {
	return m.softDeleteFn(ctx, uid)
}

// --- テスト ---

func TestService_CreateUser_ForwardsInputAndResult(t *testing.T) {
	want := &model.User{ID: 1, UID: "uid-1", LastName: "Tanaka"}
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, in model.NewUser) (*model.User, error) {
			if in.Email != "t.tanaka@example.com" {
				t.Errorf("Email = %q", in.Email)
			}
			return want, nil
		},
	}

	got, err := NewService(repo).CreateUser(context.Background(), model.NewUser{
		LastName: "Tanaka", FirstName: "Taro", Email: "t.tanaka@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want the repository result unchanged", got)
	}
}

// TestService_ErrorsPassThroughUnchanged はリポジトリのエラーがラップされずに返ることを検証する。
func TestService_ErrorsPassThroughUnchanged(t *testing.T) {
	repoErr := model.NewPersistenceError("failed", errors.New("db down"))
	repo := &mockUserRepo{
		listActiveFn: func(ctx context.Context) ([]*model.User, error) { return nil, repoErr },
		updateFn: func(ctx context.Context, uid string, patch model.UserPatch) (*model.User, error) {
			return nil, repoErr
		},
		softDeleteFn: func(ctx context.Context, uid string) (*model.User, error) { return nil, repoErr },
	}
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.ListUsers(ctx); err != repoErr {
		t.Errorf("ListUsers err = %v, want %v", err, repoErr)
	}
	if _, err := svc.UpdateUser(ctx, "uid-1", model.UserPatch{}); err != repoErr {
		t.Errorf("UpdateUser err = %v, want %v", err, repoErr)
	}
	if _, err := svc.DeleteUser(ctx, "uid-1"); err != repoErr {
		t.Errorf("DeleteUser err = %v, want %v", err, repoErr)
	}
}

func TestService_GetUser_NotFoundIsNilNil(t *testing.T) {
	repo := &mockUserRepo{
		findActiveByUIDFn: func(ctx context.Context, uid string) (*model.User, error) { return nil, nil },
	}

	got, err := NewService(repo).GetUser(context.Background(), "missing")
	if err != nil || got != nil {
		t.Errorf("GetUser = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestService_UpdateUser_ForwardsPatch(t *testing.T) {
	repo := &mockUserRepo{
		updateFn: func(ctx context.Context, uid string, patch model.UserPatch) (*model.User, error) {
			if uid != "uid-1" || patch.Email != "taro@example.com" || patch.LastName != "" {
				t.Errorf("unexpected args: uid=%q patch=%+v", uid, patch)
			}
			return &model.User{UID: uid, Email: patch.Email}, nil
		},
	}

	got, err := NewService(repo).UpdateUser(context.Background(), "uid-1", model.UserPatch{Email: "taro@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "taro@example.com" {
		t.Errorf("Email = %q", got.Email)
	}
}
