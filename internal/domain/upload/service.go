package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"remodelsite/internal/domain/forms"
	"remodelsite/internal/domain/storage"
	"remodelsite/internal/pkg/metrics"
)

const MaxFileSize = 10 * 1024 * 1024 // 10 MB

const (
	maxNameLen = 120
	maxExtLen  = 16
)

// AllowedMimeTypes defines which file types are accepted
var AllowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// Leads is the part of the forms service the upload routes need.
type Leads interface {
	Get(ctx context.Context, id string) (*forms.Lead, error)
}

// Result describes a stored file.
type Result struct {
	FileName string
	FileSize int64
	MimeType string
}

// Listing is the authoritative content of a submission folder.
type Listing struct {
	SubmissionID string
	Folder       string
	Files        []storage.RemoteFile
}

// Service checks uploads and passes them to storage. Files go into one folder per
// submission, named after the submission ID.
type Service struct {
	leads      Leads
	store      storage.Storage
	lister     storage.Lister
	archiveURL string
	log        logrus.FieldLogger
}

func NewService(leads Leads, store storage.Storage, lister storage.Lister, archiveURL string, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{leads: leads, store: store, lister: lister, archiveURL: archiveURL, log: log}
}

// Upload validates size and type before storage is touched, then writes the file into the
// submission folder, creating the folder when needed.
func (s *Service) Upload(ctx context.Context, submissionID string, fileHeader *multipart.FileHeader) (*Result, error) {
	if !storage.ValidName(submissionID) {
		return nil, ErrInvalidName
	}
	if fileHeader.Size == 0 {
		metrics.RecordUpload("rejected")
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		metrics.RecordUpload("rejected")
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	mimeType, err := detectMimeType(fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return nil, err
	}
	if !AllowedMimeTypes[mimeType] {
		metrics.RecordUpload("rejected")
		return nil, ErrInvalidMimeType
	}

	if err := s.ensureLead(ctx, submissionID); err != nil {
		return nil, err
	}

	name := sanitizeName(fileHeader.Filename, mimeType)
	if err := s.store.Put(ctx, submissionID, name, file); err != nil {
		metrics.RecordUpload("error")
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	metrics.RecordUpload("ok")

	s.log.WithFields(logrus.Fields{
		"submission_id": submissionID,
		"file":          name,
		"size":          fileHeader.Size,
	}).Info("file uploaded")

	return &Result{FileName: name, FileSize: fileHeader.Size, MimeType: mimeType}, nil
}

// List returns the folder listing for a real submission. folder overrides the default
// folder, which is the submission ID.
func (s *Service) List(ctx context.Context, submissionID, folder string) (*Listing, error) {
	if folder == "" {
		folder = submissionID
	}
	if !storage.ValidName(submissionID) || !storage.ValidName(folder) {
		return nil, ErrInvalidName
	}
	if err := s.ensureLead(ctx, submissionID); err != nil {
		return nil, err
	}

	files, err := s.lister.List(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListingUnavailable, err)
	}
	return &Listing{SubmissionID: submissionID, Folder: folder, Files: files}, nil
}

// Delete removes one file. It returns storage.ErrFolderNotFound or storage.ErrFileNotFound
// when there is nothing to delete.
func (s *Service) Delete(ctx context.Context, submissionID, fileName string) error {
	if !storage.ValidName(submissionID) || !storage.ValidName(fileName) {
		return ErrInvalidName
	}
	if err := s.store.Remove(ctx, submissionID, fileName); err != nil {
		if errors.Is(err, storage.ErrFolderNotFound) || errors.Is(err, storage.ErrFileNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.log.WithFields(logrus.Fields{"submission_id": submissionID, "file": fileName}).Info("file deleted")
	return nil
}

// ArchiveURL returns where the whole submission folder can be downloaded as one archive.
func (s *Service) ArchiveURL(ctx context.Context, submissionID string) (string, error) {
	if s.archiveURL == "" {
		return "", ErrArchiveDisabled
	}
	if !storage.ValidName(submissionID) {
		return "", ErrInvalidName
	}
	if err := s.ensureLead(ctx, submissionID); err != nil {
		return "", err
	}

	u, err := url.Parse(s.archiveURL)
	if err != nil {
		return "", fmt.Errorf("invalid archive url: %w", err)
	}
	q := u.Query()
	q.Set("folder", submissionID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *Service) ensureLead(ctx context.Context, id string) error {
	if _, err := s.leads.Get(ctx, id); err != nil {
		if errors.Is(err, forms.ErrSubmissionNotFound) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("failed to load submission: %w", err)
	}
	return nil
}

// detectMimeType trusts the declared part type and sniffs the content when the client sent
// none. The reader is rewound afterwards.
func detectMimeType(declared string, file multipart.File) (string, error) {
	if declared != "" && declared != "application/octet-stream" {
		mediaType, _, err := mime.ParseMediaType(declared)
		if err == nil {
			return strings.ToLower(mediaType), nil
		}
	}

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}
	mediaType, _, _ := mime.ParseMediaType(mt.String())
	return mediaType, nil
}

// sanitizeName keeps the visitor's file name, which is what the listing shows, but drops
// anything that could leave the folder.
func sanitizeName(name, mimeType string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || r == '/' {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if len(name) > maxNameLen {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		if len(ext) > maxExtLen {
			ext = mimeToExt(mimeType)
		}
		base = truncateUTF8(base, maxNameLen-len(ext))
		if base == "" {
			base = "file"
		}
		name = base + ext
	}
	if !storage.ValidName(name) {
		return "file" + mimeToExt(mimeType)
	}
	return name
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func mimeToExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
