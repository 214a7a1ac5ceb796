package dtos

import (
	"github.com/harvey-allen/credit-risk-app/internal/creditform"
)

type HealthCheckResponse struct {
	Status string `json:"status"`
}

// FieldChangeRequest sets one field. Value is a pointer so that an explicit
// empty string clears the field while a missing value is rejected.
type FieldChangeRequest struct {
	Name  string  `json:"name" validate:"required"`
	Value *string `json:"value" validate:"required"`
}

type FormStateResponse struct {
	SessionID  string                 `json:"session_id"`
	Values     creditform.Application `json:"values"`
	Status     creditform.Status      `json:"status"`
	Submitting bool                   `json:"submitting"`
}

type OptionsResponse struct {
	Sections []creditform.Section   `json:"sections"`
	Fields   []creditform.FieldSpec `json:"fields"`
}

type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}
