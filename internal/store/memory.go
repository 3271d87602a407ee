package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"user-service/internal/model"
)

// MemoryUsers 為記憶體版 UserStore，語意與 Users 相同（email 唯一、id 遞增、updated_at 嚴格遞增）
// 供測試與本機開發使用
type MemoryUsers struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]model.User
	now    func() time.Time
}

// NewMemoryUsers now 為 nil 時使用 time.Now
func NewMemoryUsers(now func() time.Time) *MemoryUsers {
	if now == nil {
		now = time.Now
	}
	return &MemoryUsers{nextID: 1, users: map[int]model.User{}, now: now}
}

func (m *MemoryUsers) CreateUser(_ context.Context, u *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailTaken(u.Email, 0) {
		return nil, uniqueViolation("CreateUser", []string{"email"}, nil)
	}

	ts := m.now().UTC()
	created := model.User{
		ID:        m.nextID,
		Email:     u.Email,
		Name:      cloneString(u.Name),
		Password:  u.Password,
		IsActive:  true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	m.nextID++
	m.users[created.ID] = created
	return publicCopy(created), nil
}

func (m *MemoryUsers) ListUsers(_ context.Context) ([]model.User, error) {
	return m.filter(func(model.User) bool { return true }), nil
}

func (m *MemoryUsers) ListActiveUsers(_ context.Context, since time.Time) ([]model.User, error) {
	return m.filter(func(u model.User) bool {
		return u.IsActive && !u.CreatedAt.Before(since)
	}), nil
}

func (m *MemoryUsers) GetUserByID(_ context.Context, id int) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, notFound("GetUserByID", "No User found.")
	}
	return publicCopy(u), nil
}

func (m *MemoryUsers) UpdateUser(_ context.Context, id int, patch model.UserPatch) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, notFound("UpdateUser", "Record to update not found.")
	}
	if patch.Email.IsNull() {
		return nil, validation("UpdateUser", notNullMessage("email"), nil)
	}
	if patch.IsActive.IsNull() {
		return nil, validation("UpdateUser", notNullMessage("is_active"), nil)
	}
	if patch.Email.Set && m.emailTaken(*patch.Email.Value, id) {
		return nil, uniqueViolation("UpdateUser", []string{"email"}, nil)
	}

	if patch.Name.Set {
		u.Name = cloneString(patch.Name.Value)
	}
	if patch.Email.Set {
		u.Email = *patch.Email.Value
	}
	if patch.IsActive.Set {
		u.IsActive = *patch.IsActive.Value
	}
	ts := m.now().UTC()
	if !ts.After(u.UpdatedAt) {
		ts = u.UpdatedAt.Add(time.Microsecond)
	}
	u.UpdatedAt = ts

	m.users[id] = u
	return publicCopy(u), nil
}

func (m *MemoryUsers) DeleteUser(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return notFound("DeleteUser", "Record to delete does not exist.")
	}
	delete(m.users, id)
	return nil
}

// Password 回傳儲存的密碼，僅供測試驗證寫入內容
func (m *MemoryUsers) Password(id int) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u.Password, ok
}

// Len 目前筆數
func (m *MemoryUsers) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

func (m *MemoryUsers) filter(keep func(model.User) bool) []model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if u := m.users[id]; keep(u) {
			out = append(out, *publicCopy(u))
		}
	}
	return out
}

func (m *MemoryUsers) emailTaken(email string, except int) bool {
	for id, u := range m.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

// publicCopy 與 Users 一致：讀取結果不含 password
func publicCopy(u model.User) *model.User {
	u.Name = cloneString(u.Name)
	u.Password = ""
	return &u
}

// notNullMessage 與 PostgreSQL 23502 的訊息相同
func notNullMessage(column string) string {
	return fmt.Sprintf(`null value in column "%s" of relation "users" violates not-null constraint`, column)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
