package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/harvey-allen/credit-risk-app/internal/creditform"
	"github.com/harvey-allen/credit-risk-app/internal/dtos"
	"github.com/harvey-allen/credit-risk-app/internal/services"
	"github.com/harvey-allen/credit-risk-app/internal/utils"
)

type CreditFormController struct {
	svc services.FormSessionService
}

func NewCreditFormController(s services.FormSessionService) *CreditFormController {
	return &CreditFormController{svc: s}
}

var validate = validator.New()

// -----------------------------------------------------------------------------
// GET /api/v1/credit-form/options
// -----------------------------------------------------------------------------
func (c *CreditFormController) Options(w http.ResponseWriter, _ *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.OptionsResponse{
		Sections: creditform.Sections,
		Fields:   creditform.FieldSpecs,
	})
}

// -----------------------------------------------------------------------------
// POST /api/v1/credit-form/sessions
// -----------------------------------------------------------------------------
func (c *CreditFormController) OpenSession(w http.ResponseWriter, r *http.Request) {
	state, err := c.svc.Open(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toFormStateResponse(state))
}

// -----------------------------------------------------------------------------
// GET /api/v1/credit-form/sessions/{sessionID}
// -----------------------------------------------------------------------------
func (c *CreditFormController) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := c.svc.State(r.Context(), mux.Vars(r)["sessionID"])
	if err != nil {
		utils.HandleAppError(w, asAppError(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toFormStateResponse(state))
}

// -----------------------------------------------------------------------------
// PATCH /api/v1/credit-form/sessions/{sessionID}/fields
// -----------------------------------------------------------------------------
func (c *CreditFormController) ChangeField(w http.ResponseWriter, r *http.Request) {
	var req dtos.FieldChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Field name and value are required", nil, err,
		)
		return
	}

	state, err := c.svc.Change(r.Context(), mux.Vars(r)["sessionID"], creditform.FieldName(req.Name), *req.Value)
	if err != nil {
		utils.HandleAppError(w, asAppError(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toFormStateResponse(state))
}

// -----------------------------------------------------------------------------
// POST /api/v1/credit-form/sessions/{sessionID}/submit
// -----------------------------------------------------------------------------
func (c *CreditFormController) Submit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionID"]

	// No browser enforces required/type here, so check the dispatched values.
	state, err := c.svc.SubmitChecked(r.Context(), id, creditform.CheckConstraints)
	var ce *creditform.ConstraintError
	switch {
	case errors.Is(err, creditform.ErrSubmissionInFlight):
		utils.HandleAppError(w, inFlightError(state))
		return
	case errors.As(err, &ce):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"All fields must be filled in with valid values", toValidationDetails(ce),
		)
		return
	case err != nil:
		utils.HandleAppError(w, asAppError(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toFormStateResponse(state))
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/credit-form/sessions/{sessionID}
// -----------------------------------------------------------------------------
func (c *CreditFormController) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.Close(r.Context(), mux.Vars(r)["sessionID"]); err != nil {
		utils.HandleAppError(w, asAppError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -----------------------------------------------------------------------------
// shared helpers
// -----------------------------------------------------------------------------

func toFormStateResponse(s services.SessionState) dtos.FormStateResponse {
	return dtos.FormStateResponse{
		SessionID:  s.ID,
		Values:     s.Values,
		Status:     s.Status,
		Submitting: s.Submitting,
	}
}

func toValidationDetails(ce *creditform.ConstraintError) []dtos.ValidationErrorDetail {
	out := make([]dtos.ValidationErrorDetail, 0, len(ce.Violations))
	for _, v := range ce.Violations {
		out = append(out, dtos.ValidationErrorDetail{Field: v.Field, Message: v.Message, Code: v.Code})
	}
	return out
}

func inFlightError(state services.SessionState) error {
	return &utils.AppError{
		StatusCode: http.StatusConflict,
		Code:       utils.ErrCodeSubmissionInFlight,
		Message:    "A submission is already in progress",
		Details:    toFormStateResponse(state),
		Err:        creditform.ErrSubmissionInFlight,
	}
}

// asAppError maps service sentinels to their HTTP form. Anything else is left
// for HandleAppError to report as a 500.
func asAppError(err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Form session not found",
			Err:        err,
		}
	case errors.Is(err, creditform.ErrUnknownField):
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeUnknownField,
			Message:    "Unknown form field",
			Err:        err,
		}
	case errors.Is(err, creditform.ErrSubmissionInFlight):
		return &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeSubmissionInFlight,
			Message:    "A submission is already in progress",
			Err:        err,
		}
	}
	return err
}
