package upload

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"remodelsite/internal/domain/storage"
	"remodelsite/internal/pkg/response"
)

// Bodies up to this much over MaxFileSize still parse, so slightly oversized files get the
// service's size error.
const requestSlack = 2 << 20

// Handler handles HTTP requests for submission files.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type fileItem struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modifiedAt,omitempty"`
	URL        string `json:"url"`
}

// Upload godoc
// @Summary Upload a file for a submission
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param submissionId formData string true "Submission ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,413,500 {object} map[string]interface{}
// @Router /upload-file [post]
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFileSize+requestSlack)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File size exceeds 10MB limit")
			return
		}
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file provided")
		return
	}
	submissionID := strings.TrimSpace(c.PostForm("submissionId"))
	if submissionID == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_SUBMISSION_ID", "Missing submissionId")
		return
	}

	res, err := h.service.Upload(c.Request.Context(), submissionID, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", err.Error())
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File size exceeds 10MB limit")
		case errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only JPEG, PNG, GIF, WebP and PDF files are allowed")
		case errors.Is(err, ErrInvalidName):
			response.Error(c, http.StatusBadRequest, "INVALID_SUBMISSION_ID", "Invalid submissionId")
		case errors.Is(err, ErrLeadNotFound):
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Submission not found")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Upload failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"fileName": res.FileName,
		"fileSize": res.FileSize,
		"message":  "File uploaded successfully",
	})
}

// ListFiles godoc
// @Summary List the files of a submission
// @Tags Uploads
// @Produce json
// @Param id path string true "Submission ID"
// @Param folder query string false "Folder override"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,502 {object} map[string]interface{}
// @Router /get-files/{id} [get]
func (h *Handler) ListFiles(c *gin.Context) {
	listing, err := h.service.List(c.Request.Context(), c.Param("id"), strings.TrimSpace(c.Query("folder")))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			response.Error(c, http.StatusBadRequest, "INVALID_FOLDER", "Invalid submission or folder")
		case errors.Is(err, ErrLeadNotFound):
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Submission not found")
		case errors.Is(err, ErrListingUnavailable):
			_ = c.Error(err)
			response.Error(c, http.StatusBadGateway, "LISTING_FAILED", "Could not load files")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load files")
		}
		return
	}

	urls := make([]string, 0, len(listing.Files))
	items := make([]fileItem, 0, len(listing.Files))
	for _, f := range listing.Files {
		urls = append(urls, f.URL)
		item := fileItem{Name: f.Name, Size: f.Size, URL: f.URL}
		if !f.ModifiedAt.IsZero() {
			item.ModifiedAt = f.ModifiedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"submissionId": listing.SubmissionID,
		"folder":       listing.Folder,
		"files":        urls,
		"items":        items,
	})
}

// DeleteFile godoc
// @Summary Delete one file of a submission
// @Tags Uploads
// @Produce json
// @Param fileName query string true "File name"
// @Param submissionId query string true "Submission ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,500 {object} map[string]interface{}
// @Router /delete-file [delete]
func (h *Handler) DeleteFile(c *gin.Context) {
	fileName := c.Query("fileName")
	submissionID := c.Query("submissionId")
	if fileName == "" || submissionID == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_PARAMETERS", "Missing fileName or submissionId")
		return
	}

	if err := h.service.Delete(c.Request.Context(), submissionID, fileName); err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_NAME", "Invalid file name")
		case errors.Is(err, storage.ErrFolderNotFound):
			response.Error(c, http.StatusNotFound, "FOLDER_NOT_FOUND", "Folder not found")
		case errors.Is(err, storage.ErrFileNotFound):
			response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete file")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}

// DownloadAll redirects to the storage host's archive of the submission folder.
func (h *Handler) DownloadAll(c *gin.Context) {
	target, err := h.service.ArchiveURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrArchiveDisabled), errors.Is(err, ErrLeadNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		case errors.Is(err, ErrInvalidName):
			response.Error(c, http.StatusBadRequest, "INVALID_SUBMISSION_ID", "Invalid submissionId")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not build download link")
		}
		return
	}
	c.Redirect(http.StatusFound, target)
}
