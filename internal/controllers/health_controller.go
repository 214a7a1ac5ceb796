package controllers

import (
	"net/http"

	"github.com/harvey-allen/credit-risk-app/internal/dtos"
	"github.com/harvey-allen/credit-risk-app/internal/services"
	"github.com/harvey-allen/credit-risk-app/internal/utils"
)

type HealthController struct {
	sessions services.FormSessionService
}

func NewHealthController(sessions services.FormSessionService) *HealthController {
	return &HealthController{sessions: sessions}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.sessions.Ping(r.Context()); err != nil {
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Service unhealthy",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
