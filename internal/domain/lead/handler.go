package lead

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"remodelsite/internal/pkg/response"
	"remodelsite/internal/pkg/validator"
)

// Handler handles quote form and notes HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates lead handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SubmitQuote handles POST /api/submit-quote
// @Summary Submit the contact step of the quote form
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body SubmitQuoteRequest true "Contact details"
// @Success 201 {object} response.Response{data=SubmitQuoteResponse}
// @Failure 400,422,429,502 {object} response.Response
// @Router /submit-quote [post]
func (h *Handler) SubmitQuote(c *gin.Context) {
	var req SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, "Please fill in all required fields", errs)
		return
	}
	if errs := req.optionErrors(); errs != nil {
		response.ValidationError(c, "Invalid option selected", errs)
		return
	}

	id, err := h.service.SubmitQuote(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, SubmitQuoteResponse{SubmissionID: id})
}

// UpdateQuote handles POST /api/update-quote/:id
// @Summary Submit the project step of the quote form
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body UpdateQuoteRequest true "Project details"
// @Success 200 {object} response.Response{data=UpdateQuoteResponse}
// @Failure 400,404,422,502 {object} response.Response
// @Router /update-quote/{id} [post]
func (h *Handler) UpdateQuote(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Missing submission ID")
		return
	}

	var req UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(c, "Please fill in all required fields", errs)
		return
	}
	if errs := req.optionErrors(); errs != nil {
		response.ValidationError(c, "Invalid option selected", errs)
		return
	}

	if err := h.service.UpdateQuote(c.Request.Context(), id, &req); err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, UpdateQuoteResponse{
		Message:      "Project details saved",
		SubmissionID: id,
	})
}

// GetNotes handles GET /api/save-notes?submissionId=
func (h *Handler) GetNotes(c *gin.Context) {
	id := strings.TrimSpace(c.Query("submissionId"))
	if id == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_SUBMISSION_ID", "Missing submissionId")
		return
	}

	notes, err := h.service.GetNotes(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, NotesResponse{Notes: notes, SubmissionID: id})
}

// SaveNotes handles POST /api/save-notes
func (h *Handler) SaveNotes(c *gin.Context) {
	var req SaveNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "MISSING_SUBMISSION_ID", "Missing submissionId", errs)
		return
	}

	at, err := h.service.SaveNotes(c.Request.Context(), req.SubmissionID, req.Notes)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, SaveNotesResponse{
		Message:      "Notes saved",
		SubmissionID: req.SubmissionID,
		Timestamp:    at.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCaptchaFailed):
		response.Error(c, http.StatusBadRequest, "CAPTCHA_FAILED", "reCAPTCHA verification failed")
	case errors.Is(err, ErrLeadNotFound):
		response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Submission not found")
	case errors.Is(err, ErrFormsUnavailable):
		_ = c.Error(err)
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Could not reach the forms service, please try again")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
