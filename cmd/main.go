package main

import (
	"context"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/harvey-allen/credit-risk-app/internal/app"
	"github.com/harvey-allen/credit-risk-app/internal/config"
	"github.com/harvey-allen/credit-risk-app/internal/controllers"
	"github.com/harvey-allen/credit-risk-app/internal/routes"
	"github.com/harvey-allen/credit-risk-app/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()
	defer cfg.Close()

	// 2) Core application (services, etc.)
	application := app.NewApp(cfg)
	defer application.Close()

	// 3) Controllers
	healthCtrl := controllers.NewHealthController(application.FormSessionService)
	pageCtrl := controllers.NewFormPageController(application.FormSessionService)
	formCtrl := controllers.NewCreditFormController(application.FormSessionService)

	// 4) Router
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)
	router.Handle(routes.Metrics, promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc(routes.FormIndex, pageCtrl.Index).Methods(http.MethodGet)
	router.HandleFunc(routes.FormPage, pageCtrl.Show).Methods(http.MethodGet)
	router.HandleFunc(routes.FormPage, pageCtrl.Submit).Methods(http.MethodPost)
	router.HandleFunc(routes.FormDismiss, pageCtrl.Dismiss).Methods(http.MethodPost)

	router.HandleFunc(routes.CreditFormOptions, formCtrl.Options).Methods(http.MethodGet)
	router.HandleFunc(routes.CreditFormSessions, formCtrl.OpenSession).Methods(http.MethodPost)
	router.HandleFunc(routes.CreditFormSession, formCtrl.GetSession).Methods(http.MethodGet)
	router.HandleFunc(routes.CreditFormSession, formCtrl.CloseSession).Methods(http.MethodDelete)
	router.HandleFunc(routes.CreditFormFields, formCtrl.ChangeField).Methods(http.MethodPatch)
	router.HandleFunc(routes.CreditFormSubmit, formCtrl.Submit).Methods(http.MethodPost)

	// 5) Idle session sweep
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(cfg.SessionSweepSpec, func() {
		application.FormSessionService.SweepIdle(context.Background())
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule idle session sweep")
	}
	c.Start()
	defer c.Stop()

	// 6) CORS
	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("credit-form-service failed to start:", err)
	}
}
