// Package server assembles the HTTP surface: the HTML pages, the JSON API under /api and the
// operator endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"remodelsite/internal/config"
	"remodelsite/internal/domain/captcha"
	"remodelsite/internal/domain/crm"
	"remodelsite/internal/domain/email"
	"remodelsite/internal/domain/forms"
	"remodelsite/internal/domain/lead"
	"remodelsite/internal/domain/site"
	"remodelsite/internal/domain/storage"
	"remodelsite/internal/domain/upload"
	"remodelsite/internal/middleware"
)

// New builds the router for cfg. db backs the local forms store and may be nil when the
// forms backend is JotForm.
func New(cfg *config.Config, db *gorm.DB, log *logrus.Logger) (*gin.Engine, error) {
	leads, err := newFormsStore(cfg, db)
	if err != nil {
		return nil, err
	}
	store, err := newStorage(cfg, log)
	if err != nil {
		return nil, err
	}

	leadService := lead.NewService(lead.Deps{
		Store:      leads,
		Captcha:    newCaptcha(cfg),
		CRM:        newCRM(cfg),
		Mail:       newMailer(cfg, log),
		Templates:  email.NewTemplates(cfg.PublicSiteURL),
		Recipients: cfg.Recipients(),
		Log:        log,
	})
	uploadService := upload.NewService(leads, store, newLister(cfg, store), cfg.FilesArchiveURL, log)

	leadHandler := lead.NewHandler(leadService)
	uploadHandler := upload.NewHandler(uploadService)
	siteHandler := site.NewHandler(siteNotes{leadService}, siteFiles{uploadService}, cfg.PublicSiteURL, log)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(log),
		middleware.RequestLogger(log),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	site.RegisterRoutes(r, siteHandler)

	api := r.Group("/api")
	{
		limiter := middleware.NewIPRateLimiter(cfg.LeadRatePerMinute, cfg.LeadRateBurst)
		lead.RegisterPublicRoutes(api, leadHandler, middleware.RateLimit(limiter))
		upload.RegisterPublicRoutes(api, uploadHandler)
	}

	r.GET("/metrics",
		middleware.InternalTokenAuth(cfg.MetricsToken, cfg.MetricsAllowedIPs, log),
		gin.WrapH(promhttp.Handler()),
	)

	if cfg.StorageBackend == config.BackendLocal && strings.HasPrefix(cfg.FilesPublicBaseURL, "/") {
		r.Static(cfg.FilesPublicBaseURL, cfg.UploadsDir)
	}
	if info, err := os.Stat(cfg.StaticDir); err == nil && info.IsDir() {
		r.Static("/static", cfg.StaticDir)
	} else {
		log.WithField("dir", cfg.StaticDir).Warn("static directory missing, site assets are not served")
	}

	return r, nil
}

func newFormsStore(cfg *config.Config, db *gorm.DB) (forms.Store, error) {
	switch cfg.FormsBackend {
	case config.BackendJotform:
		return forms.NewJotformStore(cfg.JotformBaseURL, cfg.JotformAPIKey, cfg.JotformFormID, cfg.UpstreamTimeout), nil
	case config.BackendLocal:
		if db == nil {
			return nil, errors.New("local forms backend needs a database")
		}
		return forms.NewLocalStore(db)
	default:
		return nil, fmt.Errorf("unknown forms backend %q", cfg.FormsBackend)
	}
}

func newStorage(cfg *config.Config, log logrus.FieldLogger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendFTP:
		return storage.NewFTPStorage(cfg.FTPHost, cfg.FTPUsername, cfg.FTPPassword, cfg.UpstreamTimeout, log), nil
	case config.BackendLocal:
		return storage.NewLocalStorage(cfg.UploadsDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// newLister prefers the file host's listing endpoint. Without one the folder is listed
// through storage and linked under FILES_PUBLIC_BASE_URL, made absolute against the site
// when it is a path.
func newLister(cfg *config.Config, store storage.Storage) storage.Lister {
	if cfg.FilesListingURL != "" {
		return storage.NewHTTPLister(cfg.FilesListingURL, cfg.UpstreamTimeout)
	}
	base := cfg.FilesPublicBaseURL
	if strings.HasPrefix(base, "/") {
		base = cfg.PublicSiteURL + base
	}
	return storage.NewStorageLister(store, base)
}

func newCaptcha(cfg *config.Config) captcha.Verifier {
	if cfg.RecaptchaSecret == "" {
		return captcha.Disabled{}
	}
	return captcha.NewRecaptcha(cfg.RecaptchaVerifyURL, cfg.RecaptchaSecret, cfg.UpstreamTimeout)
}

func newCRM(cfg *config.Config) crm.Mirror {
	if cfg.CRMHost == "" {
		return crm.Noop{}
	}
	return crm.NewClient(cfg.CRMHost, cfg.CRMAPIKey, cfg.UpstreamTimeout)
}

func newMailer(cfg *config.Config, log logrus.FieldLogger) email.Sender {
	if !cfg.EmailConfigured() {
		return email.LogSender{Log: log}
	}
	return email.NewMailgunSender(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.EmailFrom, log)
}

type siteNotes struct{ svc *lead.Service }

func (n siteNotes) Notes(ctx context.Context, id string) (string, error) {
	notes, err := n.svc.GetNotes(ctx, id)
	if errors.Is(err, lead.ErrLeadNotFound) {
		return "", site.ErrNotFound
	}
	return notes, err
}

type siteFiles struct{ svc *upload.Service }

func (f siteFiles) Files(ctx context.Context, id string) ([]storage.RemoteFile, error) {
	listing, err := f.svc.List(ctx, id, "")
	if err != nil {
		if errors.Is(err, upload.ErrLeadNotFound) || errors.Is(err, upload.ErrInvalidName) {
			return nil, site.ErrNotFound
		}
		return nil, err
	}
	return listing.Files, nil
}
