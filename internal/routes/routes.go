package routes

const (
	// Health & metrics
	Health  = "/health"
	Metrics = "/metrics"

	// Server-rendered form
	FormIndex   = "/"
	FormPage    = "/form/{sessionID}"
	FormDismiss = "/form/{sessionID}/dismiss"

	// JSON API
	CreditFormOptions  = "/api/v1/credit-form/options"
	CreditFormSessions = "/api/v1/credit-form/sessions"
	CreditFormSession  = "/api/v1/credit-form/sessions/{sessionID}"
	CreditFormFields   = "/api/v1/credit-form/sessions/{sessionID}/fields"
	CreditFormSubmit   = "/api/v1/credit-form/sessions/{sessionID}/submit"
)
