package api

// ErrorResponse 全域錯誤回應
// meta 為儲存層提供的補充資訊（constraint 目標、原因或錯誤訊息）
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Error string `json:"error" example:"Record not found"`
	Meta  any    `json:"meta,omitempty" swaggertype:"object"`
}
