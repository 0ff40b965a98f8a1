package model

import "time"

// User はサービス利用ユーザーを表す。
// IDは内部の連番、UIDはクライアントに公開する不変の識別子。
// DeletedAtがnilでない行は論理削除済み。
type User struct {
	ID        int64
	UID       string
	LastName  string
	FirstName string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewUser はユーザー作成時の入力値。
type NewUser struct {
	LastName  string
	FirstName string
	Email     string
}

// UserPatch はユーザー更新時の入力値。
// 空文字のフィールドは「指定なし」として扱い、既存の値を維持する。
type UserPatch struct {
	LastName  string
	FirstName string
	Email     string
}

// Apply はパッチの指定済みフィールドをユーザーに反映する。
func (p UserPatch) Apply(u *User) {
	if p.LastName != "" {
		u.LastName = p.LastName
	}
	if p.FirstName != "" {
		u.FirstName = p.FirstName
	}
	if p.Email != "" {
		u.Email = p.Email
	}
}
