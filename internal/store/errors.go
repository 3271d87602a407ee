package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUniqueViolation 違反唯一性限制（例如 email 重複）
	ErrUniqueViolation = errors.New("unique constraint failed")
	// ErrRecordNotFound 查詢或寫入的目標不存在
	ErrRecordNotFound = errors.New("record not found")
	// ErrValidation 資料庫拒絕的輸入（型別、長度、NOT NULL 等）
	ErrValidation = errors.New("validation error")
)

const (
	uniqueViolationCode  = "23505"
	notNullViolationCode = "23502"
	dataExceptionClass   = "22"
)

// Error 為分類後的儲存層錯誤
// errors.Is 比對 Kind，Unwrap 取回原始錯誤
type Error struct {
	Op   string
	Kind error
	Meta any
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

func notFound(op, cause string) error {
	return &Error{Op: op, Kind: ErrRecordNotFound, Meta: map[string]any{"cause": cause}}
}

func uniqueViolation(op string, target []string, err error) error {
	return &Error{Op: op, Kind: ErrUniqueViolation, Meta: map[string]any{"target": target}, Err: err}
}

func validation(op, message string, err error) error {
	return &Error{Op: op, Kind: ErrValidation, Meta: message, Err: err}
}

// classify 將 pgx / PostgreSQL 錯誤轉為 Error，無法分類時以 op 包裝後回傳
func classify(op, cause string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(op, cause)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolationCode:
			return uniqueViolation(op, uniqueTarget(pgErr), err)
		case pgErr.Code == notNullViolationCode, strings.HasPrefix(pgErr.Code, dataExceptionClass):
			return validation(op, pgErr.Message, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// uniqueTarget 由 constraint 名稱推出欄位，例如 users_email_key -> email
func uniqueTarget(pgErr *pgconn.PgError) []string {
	if pgErr.ColumnName != "" {
		return []string{pgErr.ColumnName}
	}
	name := pgErr.ConstraintName
	if pgErr.TableName != "" {
		name = strings.TrimPrefix(name, pgErr.TableName+"_")
	}
	name = strings.TrimSuffix(name, "_key")
	if name == "" {
		return nil
	}
	return []string{name}
}
