package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tomoyuki65/users-api/internal/database"
	"github.com/tomoyuki65/users-api/internal/model"
)

// deletedEmailLayout は論理削除時にメールアドレスへ付与するサフィックスの書式（YYYYMMDDHHMMSS）。
const deletedEmailLayout = "20060102150405"

// PostgreSQLのunique_violation
const pqUniqueViolation = "23505"

const userColumns = `id, uid, last_name, first_name, email, created_at, updated_at, deleted_at`

// DB はリポジトリが必要とする接続の能力。*sql.DBが満たす。
type DB interface {
	database.TxBeginner
	database.DBTX
}

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db     DB
	now    func() time.Time
	newUID func() string
	logger *slog.Logger
}

// UserRepoOption はPostgresUserRepoの生成オプション。
type UserRepoOption func(*PostgresUserRepo)

// WithClock は更新日時・削除日時の算出に使う時計を差し替える。
func WithClock(now func() time.Time) UserRepoOption {
	return func(r *PostgresUserRepo) {
		r.now = now
	}
}

// WithUIDGenerator はuidの採番関数を差し替える。
func WithUIDGenerator(gen func() string) UserRepoOption {
	return func(r *PostgresUserRepo) {
		r.newUID = gen
	}
}

// WithLogger は永続化エラーの出力先ロガーを設定する。
func WithLogger(logger *slog.Logger) UserRepoOption {
	return func(r *PostgresUserRepo) {
		r.logger = logger
	}
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db DB, opts ...UserRepoOption) *PostgresUserRepo {
	r := &PostgresUserRepo{
		db:     db,
		now:    time.Now,
		newUID: uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create はuidを採番してユーザーを作成する。
// INSERT後、同一トランザクション内でIDにより再取得してDB上の正規の値を返す。
func (r *PostgresUserRepo) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	uid := r.newUID()

	var created *model.User
	err := database.WithTx(ctx, r.db, nil, func(ctx context.Context, tx database.DBTX) error {
		var id int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO users (uid, last_name, first_name, email)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			uid, in.LastName, in.FirstName, in.Email,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}

		created, err = scanUser(tx.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`,
			id,
		))
		if err != nil {
			return fmt.Errorf("failed to find created user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, r.persistenceError(ctx, "create", "ユーザーの作成に失敗しました。", err)
	}

	return created, nil
}

// ListActive は論理削除されていない全ユーザーをID順に返す。
func (r *PostgresUserRepo) ListActive(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY id`,
	)
	if err != nil {
		return nil, r.persistenceError(ctx, "list", "ユーザー一覧の取得に失敗しました。",
			fmt.Errorf("failed to list users: %w", err))
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, r.persistenceError(ctx, "list", "ユーザー一覧の取得に失敗しました。",
				fmt.Errorf("failed to scan user: %w", err))
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, r.persistenceError(ctx, "list", "ユーザー一覧の取得に失敗しました。",
			fmt.Errorf("failed to iterate users: %w", err))
	}

	return users, nil
}

// FindActiveByUID は有効なユーザーをuidで検索する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindActiveByUID(ctx context.Context, uid string) (*model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE uid = $1 AND deleted_at IS NULL`,
		uid,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.persistenceError(ctx, "get", "ユーザーの取得に失敗しました。",
			fmt.Errorf("failed to find user by uid: %w", err))
	}
	return u, nil
}

// Update は対象行をFOR UPDATEでロックしてから、指定されたフィールドのみを更新する。
func (r *PostgresUserRepo) Update(ctx context.Context, uid string, patch model.UserPatch) (*model.User, error) {
	var updated *model.User
	err := database.WithTx(ctx, r.db, nil, func(ctx context.Context, tx database.DBTX) error {
		u, err := r.lockActiveByUID(ctx, tx, uid)
		if err != nil {
			return err
		}

		patch.Apply(u)

		updated, err = scanUser(tx.QueryRowContext(ctx,
			`UPDATE users
			 SET last_name = $1, first_name = $2, email = $3, updated_at = $4
			 WHERE id = $5
			 RETURNING `+userColumns,
			u.LastName, u.FirstName, u.Email, r.now().UTC(), u.ID,
		))
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, r.persistenceError(ctx, "update", "ユーザーの更新に失敗しました。", err)
	}

	return updated, nil
}

// SoftDelete は対象行をFOR UPDATEでロックし、メールアドレスを書き換えたうえで論理削除する。
func (r *PostgresUserRepo) SoftDelete(ctx context.Context, uid string) (*model.User, error) {
	var deleted *model.User
	err := database.WithTx(ctx, r.db, nil, func(ctx context.Context, tx database.DBTX) error {
		u, err := r.lockActiveByUID(ctx, tx, uid)
		if err != nil {
			return err
		}

		now := r.now().UTC()
		email := DeletedEmail(u.Email, now)

		deleted, err = scanUser(tx.QueryRowContext(ctx,
			`UPDATE users
			 SET email = $1, updated_at = $2, deleted_at = $2
			 WHERE id = $3
			 RETURNING `+userColumns,
			email, now, u.ID,
		))
		if err != nil {
			return fmt.Errorf("failed to soft delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, r.persistenceError(ctx, "delete", "ユーザーの削除に失敗しました。", err)
	}

	return deleted, nil
}

// DeletedEmail は論理削除後のメールアドレスを返す。
func DeletedEmail(email string, at time.Time) string {
	return fmt.Sprintf("%s_%s", email, at.Format(deletedEmailLayout))
}

// lockActiveByUID はトランザクション内で有効なユーザー行を取得してロックする。
// 対象が存在しない場合はNotFoundエラーを返し、トランザクションはロールバックされる。
func (r *PostgresUserRepo) lockActiveByUID(ctx context.Context, tx database.DBTX, uid string) (*model.User, error) {
	u, err := scanUser(tx.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE uid = $1 AND deleted_at IS NULL FOR UPDATE`,
		uid,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewUserNotFoundError(uid)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	return u, nil
}

// persistenceError はDBエラーを*model.APIErrorに変換し、リクエストIDつきでログに出力する。
// 既に*model.APIErrorの場合（NotFoundなど）はそのまま返す。
func (r *PostgresUserRepo) persistenceError(ctx context.Context, op, message string, err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if isUniqueViolation(err) {
		r.logger.WarnContext(ctx, "email unique constraint violated", "operation", op, "error", err)
		return model.NewEmailAlreadyExistsError(err)
	}

	r.logger.ErrorContext(ctx, "user repository failed", "operation", op, "error", err)
	return model.NewPersistenceError(message, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	u := &model.User{}
	var deletedAt sql.NullTime
	err := row.Scan(
		&u.ID, &u.UID, &u.LastName, &u.FirstName, &u.Email,
		&u.CreatedAt, &u.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		u.DeletedAt = &t
	}
	return u, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
var _ DB = (*sql.DB)(nil)
