// Package repository はデータ永続化のインターフェースとPostgreSQL実装を提供する。
package repository

import (
	"context"

	"github.com/tomoyuki65/users-api/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
// 更新系の操作はそれぞれ1つのトランザクションとして実行される。
// 返却するエラーは*model.APIErrorでラップされている。
type UserRepository interface {
	// Create はuidを採番してユーザーを作成し、DBに保存された値を返す。
	// メールアドレスが有効なユーザーと重複する場合はEmailAlreadyExistsエラーを返す。
	Create(ctx context.Context, in model.NewUser) (*model.User, error)

	// ListActive は論理削除されていない全ユーザーを作成順に返す。
	ListActive(ctx context.Context) ([]*model.User, error)

	// FindActiveByUID は有効なユーザーをuidで検索する。見つからない場合はnilを返す。
	FindActiveByUID(ctx context.Context, uid string) (*model.User, error)

	// Update は指定されたフィールドのみを更新する。
	// 対象の行はトランザクション内でロックされ、存在しない場合はNotFoundエラーを返す。
	Update(ctx context.Context, uid string, patch model.UserPatch) (*model.User, error)

	// SoftDelete はユーザーを論理削除する。
	// メールアドレスは "<email>_<YYYYMMDDHHMMSS>" に書き換えられ、元のアドレスは再利用可能になる。
	SoftDelete(ctx context.Context, uid string) (*model.User, error)
}
