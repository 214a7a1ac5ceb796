package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/harvey-allen/credit-risk-app/internal/utils"
)

type Config struct {
	AppName string
	AppPort string
	AppUrl  string
	Env     string

	ScoringBaseURL   string
	SessionIdleTTL   time.Duration
	SessionSweepSpec string

	SendgridAPIKey    string
	SendgridFromEmail string

	// Feature-flag snapshots
	LDFlag_CORSHighSecurity    bool
	LDFlag_SendScoreReceipt    bool
	LDFlag_ValidateEmailWithSG bool

	ldClient *ld.LDClient
}

const (
	DefaultAppName          = "credit-form-service"
	DefaultAppPort          = "8080"
	DefaultSessionIdleTTL   = 30 * time.Minute
	DefaultSessionSweepSpec = "@every 1m"
	LDConnectionTimeout     = 5 * time.Second
)

// build-time overrides, set with -ldflags
var (
	AppName             = DefaultAppName
	LDServerContextKey  string
	LDServerContextKind string
)

// LoadConfig reads .env, the environment, optional Bitwarden secrets and
// optional LaunchDarkly flags. Any unusable value is fatal.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	loadEnvFile()

	cfg, err := fromEnv(os.Getenv)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	if token := os.Getenv("BWS_ACCESS_TOKEN"); token != "" {
		if err := cfg.applyBWSSecrets(token, os.Getenv("BWS_ORG_ID")); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to fetch secrets from BWS")
		}
	}

	if sdkKey := os.Getenv("LD_SDK_KEY"); sdkKey != "" {
		if err := cfg.applyLaunchDarklyFlags(sdkKey); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to read LaunchDarkly flags")
		}
	} else {
		utils.Logger.Debug("LD_SDK_KEY not set; feature flags come from the environment")
	}

	cfg.disableUnusableFeatures()

	utils.Logger.Infof("Loaded config for %s (%s), scoring backend %s", cfg.AppName, cfg.Env, cfg.ScoringBaseURL)
	return cfg
}

func (c *Config) Close() {
	if c.ldClient != nil {
		_ = c.ldClient.Close()
		c.ldClient = nil
	}
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			utils.Logger.WithError(err).Warnf("Could not parse %s", path)
			continue
		}
		utils.Logger.Debugf("Loaded environment from %s", path)
		return
	}
}

func fromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppName:           AppName,
		AppPort:           getenv("APP_PORT"),
		AppUrl:            getenv("APP_URL"),
		Env:               getenv("ENV"),
		ScoringBaseURL:    strings.TrimRight(getenv("SCORING_BASE_URL"), "/"),
		SessionIdleTTL:    DefaultSessionIdleTTL,
		SessionSweepSpec:  getenv("SESSION_SWEEP_SPEC"),
		SendgridAPIKey:    getenv("SENDGRID_API_KEY"),
		SendgridFromEmail: getenv("SENDGRID_FROM_EMAIL"),
	}
	if cfg.AppName == "" {
		cfg.AppName = DefaultAppName
	}
	if cfg.AppPort == "" {
		cfg.AppPort = DefaultAppPort
	}
	if cfg.AppUrl == "" {
		cfg.AppUrl = "http://localhost:" + cfg.AppPort
	}
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.SessionSweepSpec == "" {
		cfg.SessionSweepSpec = DefaultSessionSweepSpec
	}

	if cfg.ScoringBaseURL == "" {
		return nil, errors.New("SCORING_BASE_URL env var is missing")
	}
	u, err := url.Parse(cfg.ScoringBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("SCORING_BASE_URL %q is not an absolute URL", cfg.ScoringBaseURL)
	}

	if raw := getenv("SESSION_IDLE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("SESSION_IDLE_TTL %q is not a positive duration", raw)
		}
		cfg.SessionIdleTTL = ttl
	}

	if cfg.LDFlag_CORSHighSecurity, err = envBool(getenv, "CORS_HIGH_SECURITY", true); err != nil {
		return nil, err
	}
	if cfg.LDFlag_SendScoreReceipt, err = envBool(getenv, "SEND_SCORE_RECEIPT", false); err != nil {
		return nil, err
	}
	if cfg.LDFlag_ValidateEmailWithSG, err = envBool(getenv, "VALIDATE_EMAIL_WITH_SG", false); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envBool(getenv func(string) string, key string, def bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s %q is not a boolean", key, raw)
	}
	return v, nil
}

func (c *Config) applyBWSSecrets(token, orgID string) error {
	client, err := utils.NewBWSSecretsClient(token, orgID)
	if err != nil {
		return err
	}
	defer client.Close()

	project := fmt.Sprintf("%s-%s", c.AppName, c.Env)
	secrets, err := client.GetBWSSecrets(project)
	if err != nil {
		return err
	}
	if v := secrets["SENDGRID_API_KEY"]; v != "" {
		c.SendgridAPIKey = v
	}
	if v := secrets["LD_SDK_KEY"]; v != "" && os.Getenv("LD_SDK_KEY") == "" {
		_ = os.Setenv("LD_SDK_KEY", v)
	}
	utils.Logger.Debugf("Applied %d secrets from BWS project %s", len(secrets), project)
	return nil
}

func (c *Config) applyLaunchDarklyFlags(sdkKey string) error {
	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		return fmt.Errorf("create LaunchDarkly client: %w", err)
	}
	if !ldClient.Initialized() {
		_ = ldClient.Close()
		return errors.New("LaunchDarkly client failed to initialize")
	}

	kind, key := LDServerContextKind, LDServerContextKey
	if kind == "" {
		kind = "service"
	}
	if key == "" {
		key = c.AppName
	}
	ctx := ldcontext.NewWithKind(ldcontext.Kind(kind), key)

	corsHigh, err := ldClient.BoolVariation("cors_high_security", ctx, c.LDFlag_CORSHighSecurity)
	if err != nil {
		_ = ldClient.Close()
		return fmt.Errorf("cors_high_security flag: %w", err)
	}
	sendReceipt, err := ldClient.BoolVariation("send_score_receipt", ctx, c.LDFlag_SendScoreReceipt)
	if err != nil {
		_ = ldClient.Close()
		return fmt.Errorf("send_score_receipt flag: %w", err)
	}
	validateWithSG, err := ldClient.BoolVariation("validate_email_with_sg", ctx, c.LDFlag_ValidateEmailWithSG)
	if err != nil {
		_ = ldClient.Close()
		return fmt.Errorf("validate_email_with_sg flag: %w", err)
	}
	utils.Logger.Debugf("cors_high_security flag: %t, send_score_receipt flag: %t, validate_email_with_sg flag: %t",
		corsHigh, sendReceipt, validateWithSG)

	c.LDFlag_CORSHighSecurity = corsHigh
	c.LDFlag_SendScoreReceipt = sendReceipt
	c.LDFlag_ValidateEmailWithSG = validateWithSG
	c.ldClient = ldClient
	return nil
}

func (c *Config) disableUnusableFeatures() {
	if c.LDFlag_SendScoreReceipt && (c.SendgridAPIKey == "" || c.SendgridFromEmail == "") {
		utils.Logger.Warn("send_score_receipt is on but SendGrid is not configured; receipts disabled")
		c.LDFlag_SendScoreReceipt = false
	}
}
