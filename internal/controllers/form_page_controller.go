package controllers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/harvey-allen/credit-risk-app/internal/creditform"
	"github.com/harvey-allen/credit-risk-app/internal/services"
	"github.com/harvey-allen/credit-risk-app/internal/utils"
	"github.com/harvey-allen/credit-risk-app/internal/views"
)

// FormPageController serves the server-rendered form.
type FormPageController struct {
	svc services.FormSessionService
}

func NewFormPageController(s services.FormSessionService) *FormPageController {
	return &FormPageController{svc: s}
}

// -----------------------------------------------------------------------------
// GET /
// -----------------------------------------------------------------------------
func (c *FormPageController) Index(w http.ResponseWriter, r *http.Request) {
	state, err := c.svc.Open(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	c.render(w, http.StatusOK, views.NewFormPage(state.ID, state.Values, state.Status, state.Submitting))
}

// -----------------------------------------------------------------------------
// GET /form/{sessionID}
// -----------------------------------------------------------------------------
func (c *FormPageController) Show(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionID"]
	state, err := c.svc.State(r.Context(), id)
	if err != nil {
		c.handleSessionError(w, r, err)
		return
	}
	c.render(w, http.StatusOK, views.NewFormPage(id, state.Values, state.Status, state.Submitting))
}

// -----------------------------------------------------------------------------
// POST /form/{sessionID}
// -----------------------------------------------------------------------------
func (c *FormPageController) Submit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionID"]
	if err := r.ParseForm(); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid form payload", nil, err,
		)
		return
	}

	// Each posted control is one change event.
	for _, spec := range creditform.FieldSpecs {
		if _, ok := r.PostForm[string(spec.Name)]; !ok {
			continue
		}
		if _, err := c.svc.Change(r.Context(), id, spec.Name, r.PostForm.Get(string(spec.Name))); err != nil {
			c.handleSessionError(w, r, err)
			return
		}
	}

	// Stands in for the browser's own required/type check when it was
	// bypassed; the session's status is left alone.
	state, err := c.svc.SubmitChecked(r.Context(), id, creditform.CheckConstraints)
	var ce *creditform.ConstraintError
	switch {
	case errors.Is(err, creditform.ErrSubmissionInFlight):
		c.render(w, http.StatusConflict, views.NewFormPage(id, state.Values, state.Status, true))
		return
	case errors.As(err, &ce):
		page := views.NewFormPage(id, state.Values, creditform.ErrorStatus(err), false)
		c.render(w, http.StatusUnprocessableEntity, page)
		return
	case err != nil:
		c.handleSessionError(w, r, err)
		return
	}
	c.render(w, http.StatusOK, views.NewFormPage(id, state.Values, state.Status, state.Submitting))
}

// -----------------------------------------------------------------------------
// POST /form/{sessionID}/dismiss
// -----------------------------------------------------------------------------
func (c *FormPageController) Dismiss(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionID"]
	if _, err := c.svc.Dismiss(r.Context(), id); err != nil {
		c.handleSessionError(w, r, err)
		return
	}
	http.Redirect(w, r, "/form/"+id, http.StatusSeeOther)
}

// -----------------------------------------------------------------------------
// shared helpers
// -----------------------------------------------------------------------------

func (c *FormPageController) render(w http.ResponseWriter, status int, page views.FormPage) {
	var buf bytes.Buffer
	if err := views.RenderForm(&buf, page); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to render form", nil, err,
		)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// handleSessionError sends an expired or unknown session back to a fresh form.
func (c *FormPageController) handleSessionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrSessionNotFound) {
		utils.Logger.WithField("path", r.URL.Path).Debug("Form session expired, starting a new one")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	utils.HandleAppError(w, asAppError(err))
}
