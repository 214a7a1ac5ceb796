package app

import (
	"github.com/harvey-allen/credit-risk-app/internal/config"
	"github.com/harvey-allen/credit-risk-app/internal/services"
	"github.com/harvey-allen/credit-risk-app/internal/utils"
)

// App holds references to config & services.
type App struct {
	Config             *config.Config
	ScoringClient      *services.ScoringClient
	ReceiptService     services.ReceiptService
	FormSessionService services.FormSessionService
}

// NewApp sets up the core application context. There is no database; form
// state lives in memory and scoring goes over HTTP.
func NewApp(cfg *config.Config) *App {
	utils.Logger.Info("Initializing credit form App")

	scoring := services.NewScoringClient(cfg.ScoringBaseURL, nil)
	receipts := services.NewReceiptService(cfg)
	sessions := services.NewFormSessionService(scoring, receipts, cfg.SessionIdleTTL)

	utils.Logger.Infof("Scoring endpoint: %s, score receipts enabled: %t", scoring.Endpoint(), receipts.Enabled())

	return &App{
		Config:             cfg,
		ScoringClient:      scoring,
		ReceiptService:     receipts,
		FormSessionService: sessions,
	}
}

func (a *App) Close() {
	utils.Logger.Info("Credit form app shutting down.")
}
