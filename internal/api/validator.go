package api

import "github.com/go-playground/validator/v10"

// Validator wraps go-playground/validator for Echo
// swagger:ignore
type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validator: validator.New()}
}

// Validate calls the underlying validator
func (v *Validator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
