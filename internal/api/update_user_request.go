package api

import "user-service/internal/model"

// UpdateUserRequest 部分更新；省略的欄位不變，name 給 null 會清除
// email 與 isActive 給 null 會被資料庫拒絕
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name     model.Optional[string] `json:"name" swaggertype:"string" example:"Alice"`
	Email    model.Optional[string] `json:"email" swaggertype:"string" example:"alice@example.com"`
	IsActive model.Optional[bool]   `json:"isActive" swaggertype:"boolean" example:"true"`
}

// Patch 轉為 store 使用的 model.UserPatch
func (r UpdateUserRequest) Patch() model.UserPatch {
	return model.UserPatch{
		Name:     r.Name,
		Email:    r.Email,
		IsActive: r.IsActive,
	}
}
