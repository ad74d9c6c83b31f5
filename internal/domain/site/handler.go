package site

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"remodelsite/internal/domain/storage"
)

// ErrNotFound is what Notes and Files return for an unknown submission.
var ErrNotFound = errors.New("submission not found")

// Notes loads the notes saved for a submission.
type Notes interface {
	Notes(ctx context.Context, submissionID string) (string, error)
}

// Files lists a submission folder.
type Files interface {
	Files(ctx context.Context, submissionID string) ([]storage.RemoteFile, error)
}

// Handler serves the HTML pages and the sitemap.
type Handler struct {
	notes   Notes
	files   Files
	baseURL string
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewHandler(notes Notes, files Files, baseURL string, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		notes:   notes,
		files:   files,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
		now:     time.Now,
	}
}

// Landing handles GET /
func (h *Handler) Landing(c *gin.Context) {
	adSource := c.Query("src")
	if adSource == "" {
		adSource = c.Query("utm_source")
	}
	render(c, http.StatusOK, LandingPage(LandingData{AdSource: adSource}))
}

// Upload handles GET /upload/:id
func (h *Handler) Upload(c *gin.Context) {
	id := c.Param("id")
	if !storage.ValidName(id) {
		render(c, http.StatusNotFound, NotFoundPage())
		return
	}

	ctx := c.Request.Context()
	log := h.log.WithField("submission_id", id)

	notes, err := h.notes.Notes(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			render(c, http.StatusNotFound, NotFoundPage())
			return
		}
		// The page still works without notes; the script retries the load.
		log.WithError(err).Warn("failed to load notes for upload page")
	}

	data := UploadData{SubmissionID: id, Notes: notes}
	data.Files, err = h.files.Files(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			render(c, http.StatusNotFound, NotFoundPage())
			return
		}
		log.WithError(err).Warn("failed to list files for upload page")
		data.ListingFailed = true
	}

	render(c, http.StatusOK, UploadPage(data))
}

// Sitemap handles GET /sitemap.xml
func (h *Handler) Sitemap(c *gin.Context) {
	body, err := Sitemap(h.baseURL, h.now())
	if err != nil {
		h.log.WithError(err).Error("failed to render sitemap")
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func NotFoundPage() g.Node {
	return Layout(
		PageConfig{Title: "Not Found - " + BusinessName},
		Navbar(),
		Main(
			Class("container not-found"),
			H1(g.Text("We couldn't find that page")),
			P(g.Text("The link may be incomplete. Call us or request a new quote.")),
			A(Class("btn btn-primary"), Href("/"), g.Text("Back to Home")),
		),
	)
}

func render(c *gin.Context, status int, page g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	_ = page.Render(c.Writer)
}
