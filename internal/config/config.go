package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort             = "8080"
	defaultPublicSiteURL    = "http://localhost:8080"
	defaultFormsBackend     = "local"
	defaultStorageBackend   = "local"
	defaultJotformBaseURL   = "https://api.jotform.com"
	defaultRecaptchaURL     = "https://www.google.com/recaptcha/api/siteverify"
	defaultDatabaseURL      = "file:leads.db?cache=shared"
	defaultUploadsDir       = "./uploads"
	defaultStaticDir        = "./web/static"
	defaultFilesBaseURL     = "/uploads"
	defaultUpstreamTimeout  = "10s"
	defaultLeadRatePerMin   = "10"
	defaultLeadRateBurst    = "3"
	defaultEmailFrom        = "PPC Ads <hello@example.com>"
	defaultEmailRecipients  = ""
	defaultEmailRecipientsD = ""

	BackendLocal   = "local"
	BackendJotform = "jotform"
	BackendFTP     = "ftp"
)

// Config holds every setting the API server needs. Secrets are only ever read from the
// environment (or a .env file in development).
type Config struct {
	AppEnv             string
	Port               string
	PublicSiteURL      string
	CORSAllowedOrigins []string

	FormsBackend   string
	JotformAPIKey  string
	JotformFormID  string
	JotformBaseURL string
	DatabaseURL    string

	StorageBackend     string
	FTPHost            string
	FTPUsername        string
	FTPPassword        string
	UploadsDir         string
	StaticDir          string
	FilesPublicBaseURL string
	FilesListingURL    string
	FilesArchiveURL    string

	MailgunDomain      string
	MailgunAPIKey      string
	EmailFrom          string
	EmailRecipients    []string
	EmailRecipientsDev []string

	RecaptchaSecret    string
	RecaptchaVerifyURL string

	CRMHost   string
	CRMAPIKey string

	ConversionEndpoint string

	MetricsToken      string
	MetricsAllowedIPs []string

	UpstreamTimeout   time.Duration
	LeadRatePerMinute int
	LeadRateBurst     int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.PublicSiteURL = strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_SITE_URL", defaultPublicSiteURL)), "/")
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	cfg.FormsBackend = strings.ToLower(strings.TrimSpace(getEnv("FORMS_BACKEND", defaultFormsBackend)))
	cfg.JotformAPIKey = strings.TrimSpace(os.Getenv("JOTFORM_API_KEY"))
	cfg.JotformFormID = strings.TrimSpace(os.Getenv("JOTFORM_FORM_ID"))
	cfg.JotformBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("JOTFORM_BASE_URL", defaultJotformBaseURL)), "/")
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))

	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(getEnv("STORAGE_BACKEND", defaultStorageBackend)))
	cfg.FTPHost = strings.TrimSpace(os.Getenv("FTP_HOST"))
	cfg.FTPUsername = strings.TrimSpace(os.Getenv("FTP_USERNAME"))
	cfg.FTPPassword = os.Getenv("FTP_PASSWORD")
	cfg.UploadsDir = strings.TrimSpace(getEnv("UPLOADS_DIR", defaultUploadsDir))
	cfg.StaticDir = strings.TrimSpace(getEnv("STATIC_DIR", defaultStaticDir))
	cfg.FilesPublicBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("FILES_PUBLIC_BASE_URL", defaultFilesBaseURL)), "/")
	cfg.FilesListingURL = strings.TrimSpace(os.Getenv("FILES_LISTING_URL"))
	cfg.FilesArchiveURL = strings.TrimSpace(os.Getenv("FILES_ARCHIVE_URL"))

	cfg.MailgunDomain = strings.TrimSpace(os.Getenv("MAILGUN_DOMAIN"))
	cfg.MailgunAPIKey = strings.TrimSpace(os.Getenv("MAILGUN_API_KEY"))
	cfg.EmailFrom = strings.TrimSpace(getEnv("EMAIL_FROM", defaultEmailFrom))
	cfg.EmailRecipients = splitList(getEnv("EMAIL_RECIPIENTS", defaultEmailRecipients))
	cfg.EmailRecipientsDev = splitList(getEnv("EMAIL_RECIPIENTS_DEV", defaultEmailRecipientsD))

	cfg.RecaptchaSecret = strings.TrimSpace(os.Getenv("RECAPTCHA_SECRET"))
	cfg.RecaptchaVerifyURL = strings.TrimSpace(getEnv("RECAPTCHA_VERIFY_URL", defaultRecaptchaURL))

	cfg.CRMHost = strings.TrimRight(strings.TrimSpace(os.Getenv("CRM_HOST")), "/")
	cfg.CRMAPIKey = strings.TrimSpace(os.Getenv("CRM_API_KEY"))

	cfg.ConversionEndpoint = strings.TrimSpace(os.Getenv("CONVERSION_ENDPOINT"))

	cfg.MetricsToken = strings.TrimSpace(os.Getenv("METRICS_TOKEN"))
	cfg.MetricsAllowedIPs = splitList(os.Getenv("METRICS_ALLOWED_IPS"))

	var err error
	cfg.UpstreamTimeout, err = parseDurationEnv("UPSTREAM_TIMEOUT", defaultUpstreamTimeout)
	if err != nil {
		return nil, err
	}
	cfg.LeadRatePerMinute, err = parseIntEnv("LEAD_RATE_PER_MINUTE", defaultLeadRatePerMin)
	if err != nil {
		return nil, err
	}
	cfg.LeadRateBurst, err = parseIntEnv("LEAD_RATE_BURST", defaultLeadRateBurst)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProd reports whether the server runs with production settings.
func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

// Recipients returns the notification list for the current environment.
func (c *Config) Recipients() []string {
	if c.IsProd() {
		return c.EmailRecipients
	}
	return c.EmailRecipientsDev
}

// EmailConfigured reports whether Mailgun credentials are present.
func (c *Config) EmailConfigured() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != ""
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be > 0")
	}
	if cfg.LeadRatePerMinute <= 0 {
		return fmt.Errorf("LEAD_RATE_PER_MINUTE must be > 0")
	}
	if cfg.LeadRateBurst <= 0 {
		return fmt.Errorf("LEAD_RATE_BURST must be > 0")
	}

	switch cfg.FormsBackend {
	case BackendLocal:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when FORMS_BACKEND=local")
		}
	case BackendJotform:
		if cfg.JotformAPIKey == "" || cfg.JotformFormID == "" {
			return fmt.Errorf("JOTFORM_API_KEY and JOTFORM_FORM_ID must be set when FORMS_BACKEND=jotform")
		}
	default:
		return fmt.Errorf("FORMS_BACKEND must be one of: local, jotform")
	}

	switch cfg.StorageBackend {
	case BackendLocal:
		if cfg.UploadsDir == "" {
			return fmt.Errorf("UPLOADS_DIR must be set when STORAGE_BACKEND=local")
		}
	case BackendFTP:
		if cfg.FTPHost == "" || cfg.FTPUsername == "" || cfg.FTPPassword == "" {
			return fmt.Errorf("FTP_HOST, FTP_USERNAME and FTP_PASSWORD must be set when STORAGE_BACKEND=ftp")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: local, ftp")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.FormsBackend != BackendJotform {
			return fmt.Errorf("in prod/release FORMS_BACKEND must be jotform")
		}
		if cfg.StorageBackend != BackendFTP {
			return fmt.Errorf("in prod/release STORAGE_BACKEND must be ftp")
		}
		if cfg.RecaptchaSecret == "" {
			return fmt.Errorf("in prod/release RECAPTCHA_SECRET must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
