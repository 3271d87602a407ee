package api

import (
	"time"

	"user-service/internal/model"
)

// UserResponse 單筆使用者（建立、查詢、啟用中列表）
// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"alice@example.com"`
	Name      *string   `json:"name" example:"Alice"`
	IsActive  bool      `json:"isActive" example:"true"`
	CreatedAt time.Time `json:"createdAt" example:"2025-05-01T15:04:05Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2025-05-01T15:04:05Z"`
}

// UserSummary 使用者列表項目，不含 updatedAt
// swagger:model api.UserSummary
type UserSummary struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"alice@example.com"`
	Name      *string   `json:"name" example:"Alice"`
	IsActive  bool      `json:"isActive" example:"true"`
	CreatedAt time.Time `json:"createdAt" example:"2025-05-01T15:04:05Z"`
}

// UpdatedUserResponse 更新後回傳，不含 createdAt
// swagger:model api.UpdatedUserResponse
type UpdatedUserResponse struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"alice@example.com"`
	Name      *string   `json:"name" example:"Alice"`
	IsActive  bool      `json:"isActive" example:"true"`
	UpdatedAt time.Time `json:"updatedAt" example:"2025-05-01T15:04:05Z"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserSummary(u *model.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func NewUpdatedUserResponse(u *model.User) UpdatedUserResponse {
	return UpdatedUserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		UpdatedAt: u.UpdatedAt,
	}
}
