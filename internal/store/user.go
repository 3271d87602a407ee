package store

import (
	"context"
	"time"

	"user-service/internal/database"
	"user-service/internal/metrics"
	"user-service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// UserStore 使用者資料存取介面，handler 只依賴此介面
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListActiveUsers(ctx context.Context, since time.Time) ([]model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	UpdateUser(ctx context.Context, id int, patch model.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

const (
	usersTable  = "users"
	userColumns = `id, email, name, is_active, created_at, updated_at`
)

// Users 以 PostgreSQL 實作 UserStore
type Users struct {
	db database.DB
}

func NewUsers(db database.DB) *Users {
	return &Users{db: db}
}

func (s *Users) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	defer metrics.ObserveQuery("insert", usersTable, time.Now())

	row := s.db.QueryRow(ctx,
		`INSERT INTO users (email, name, password)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		u.Email,
		u.Name,
		u.Password,
	)
	created, err := scanUser(row)
	if err != nil {
		return nil, classify("CreateUser", "Record to create failed.", err)
	}
	return created, nil
}

func (s *Users) ListUsers(ctx context.Context) ([]model.User, error) {
	defer metrics.ObserveQuery("select", usersTable, time.Now())

	rows, err := s.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 ORDER BY id`,
	)
	if err != nil {
		return nil, classify("ListUsers", "", err)
	}
	users, err := pgx.CollectRows(rows, collectUser)
	if err != nil {
		return nil, classify("ListUsers", "", err)
	}
	return users, nil
}

// ListActiveUsers 回傳啟用中且 created_at >= since 的使用者
func (s *Users) ListActiveUsers(ctx context.Context, since time.Time) ([]model.User, error) {
	defer metrics.ObserveQuery("select_active", usersTable, time.Now())

	rows, err := s.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE is_active = TRUE AND created_at >= $1
		 ORDER BY id`,
		since,
	)
	if err != nil {
		return nil, classify("ListActiveUsers", "", err)
	}
	users, err := pgx.CollectRows(rows, collectUser)
	if err != nil {
		return nil, classify("ListActiveUsers", "", err)
	}
	return users, nil
}

func (s *Users) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	defer metrics.ObserveQuery("select", usersTable, time.Now())

	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		id,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, classify("GetUserByID", "No User found.", err)
	}
	return u, nil
}

// UpdateUser 只套用 patch 中有提供的欄位（null 也會寫入）；updated_at 每次都會嚴格遞增
// email、is_active 為 NOT NULL，寫入 null 時回傳 ErrValidation
func (s *Users) UpdateUser(ctx context.Context, id int, patch model.UserPatch) (*model.User, error) {
	defer metrics.ObserveQuery("update", usersTable, time.Now())

	row := s.db.QueryRow(ctx,
		`UPDATE users
		 SET name = CASE WHEN $2::boolean THEN $3::text ELSE name END,
		     email = CASE WHEN $4::boolean THEN $5::text ELSE email END,
		     is_active = CASE WHEN $6::boolean THEN $7::boolean ELSE is_active END,
		     updated_at = GREATEST(clock_timestamp(), updated_at + interval '1 microsecond')
		 WHERE id = $1
		 RETURNING `+userColumns,
		id,
		patch.Name.Set, patch.Name.Value,
		patch.Email.Set, patch.Email.Value,
		patch.IsActive.Set, patch.IsActive.Value,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, classify("UpdateUser", "Record to update not found.", err)
	}
	return u, nil
}

func (s *Users) DeleteUser(ctx context.Context, id int) error {
	defer metrics.ObserveQuery("delete", usersTable, time.Now())

	tag, err := s.db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return classify("DeleteUser", "", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("DeleteUser", "Record to delete does not exist.")
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u    model.User
		name pgtype.Text
	)
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&name,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if name.Valid {
		u.Name = &name.String
	}
	return &u, nil
}

func collectUser(row pgx.CollectableRow) (model.User, error) {
	u, err := scanUser(row)
	if err != nil {
		return model.User{}, err
	}
	return *u, nil
}
