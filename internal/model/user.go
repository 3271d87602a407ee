// File: internal/model/user.go
package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// User 對應 users 資料表
// Password 目前以明文儲存（尚未雜湊），且永不序列化
type User struct {
	ID        int       `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      *string   `db:"name" json:"name"`
	Password  string    `db:"password" json:"-"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Optional 區分「未提供」與「明確給 null」
// Set 為 false 表示欄位不存在；Set 為 true 且 Value 為 nil 表示 null
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some 建立有值的 Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null 建立明確為 null 的 Optional
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// IsNull 欄位有提供但值為 null
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// UnmarshalJSON 只要欄位出現在 JSON 中就會被呼叫（包含 null）
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// UserPatch 部分更新；Set 為 false 的欄位維持原值
type UserPatch struct {
	Name     Optional[string]
	Email    Optional[string]
	IsActive Optional[bool]
}
