// Package client is a typed HTTP client for the site's API routes.
package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"

	"remodelsite/internal/pkg/response"
)

// APIError is a non-success response from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type dataEnvelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// Lead is the contact step of the quote form.
type Lead struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Project        string `json:"project"`
	Budget         string `json:"budget"`
	Source         string `json:"source"`
	AdSource       string `json:"ad_source"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// Details is the project step of the quote form.
type Details struct {
	Project   string `json:"project"`
	Budget    string `json:"budget"`
	Financing string `json:"financing"`
}

type UploadResult struct {
	Success  bool   `json:"success"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	Message  string `json:"message"`
}

// RemoteFile is one entry of the authoritative storage listing.
type RemoteFile struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
	URL        string    `json:"url"`
}

type listResponse struct {
	SubmissionID string       `json:"submissionId"`
	Folder       string       `json:"folder"`
	Files        []string     `json:"files"`
	Items        []RemoteFile `json:"items"`
}

type NotesSaved struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
	Timestamp    string `json:"timestamp"`
}

type Client struct {
	http *resty.Client
}

// New returns a client for the API served at baseURL. timeout bounds every call; zero leaves
// deadlines to the caller's context.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetError(&response.Response{})
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c}
}

// SubmitLead creates the lead and returns its submission ID.
func (c *Client) SubmitLead(ctx context.Context, lead Lead) (string, error) {
	var out dataEnvelope[struct {
		SubmissionID string `json:"submissionId"`
	}]
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(lead).
		SetResult(&out).
		Post("/api/submit-quote")
	if err := check(resp, err); err != nil {
		return "", err
	}
	if out.Data.SubmissionID == "" {
		return "", &APIError{Status: resp.StatusCode(), Message: "response carried no submission ID"}
	}
	return out.Data.SubmissionID, nil
}

func (c *Client) UpdateLead(ctx context.Context, id string, d Details) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(d).
		Post("/api/update-quote/{id}")
	return check(resp, err)
}

// UploadFile sends one file as multipart form data with an explicit part content type.
func (c *Client) UploadFile(ctx context.Context, submissionID, name, contentType string, r io.Reader) (*UploadResult, error) {
	var out UploadResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{"submissionId": submissionID}).
		SetMultipartField("file", name, contentType, r).
		SetResult(&out).
		Post("/api/upload-file")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListFiles(ctx context.Context, submissionID string) ([]RemoteFile, error) {
	var out listResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", submissionID).
		SetResult(&out).
		Get("/api/get-files/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = make([]RemoteFile, 0, len(out.Files))
		for _, u := range out.Files {
			out.Items = append(out.Items, RemoteFile{URL: u})
		}
	}
	return out.Items, nil
}

func (c *Client) DeleteFile(ctx context.Context, submissionID, fileName string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fileName":     fileName,
			"submissionId": submissionID,
		}).
		Delete("/api/delete-file")
	return check(resp, err)
}

func (c *Client) GetNotes(ctx context.Context, submissionID string) (string, error) {
	var out dataEnvelope[struct {
		Notes string `json:"notes"`
	}]
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("submissionId", submissionID).
		SetResult(&out).
		Get("/api/save-notes")
	if err := check(resp, err); err != nil {
		return "", err
	}
	return out.Data.Notes, nil
}

func (c *Client) SaveNotes(ctx context.Context, submissionID, notes string) (*NotesSaved, error) {
	var out dataEnvelope[NotesSaved]
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"submissionId": submissionID, "notes": notes}).
		SetResult(&out).
		Post("/api/save-notes")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// check turns transport failures into wrapped errors, so context deadlines stay visible to
// errors.Is, and error statuses into *APIError.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode(), Message: resp.Status()}
	if env, ok := resp.Error().(*response.Response); ok && env.Error != nil && env.Error.Message != "" {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	}
	return apiErr
}
