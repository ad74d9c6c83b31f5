package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Question IDs of the lead form on JotForm.
const (
	FieldName      = "5"
	FieldEmail     = "6"
	FieldPhone     = "7"
	FieldProject   = "16"
	FieldBudget    = "17"
	FieldSource    = "18"
	FieldAdSource  = "19"
	FieldNotes     = "20"
	FieldFinancing = "21"
)

// JotformStore talks to the JotForm REST API.
type JotformStore struct {
	http   *resty.Client
	apiKey string
	formID string
}

type jotformEnvelope struct {
	ResponseCode int             `json:"responseCode"`
	Message      string          `json:"message"`
	Content      json.RawMessage `json:"content"`
}

type jotformCreated struct {
	SubmissionID string `json:"submissionID"`
}

type jotformSubmission struct {
	ID        string                   `json:"id"`
	CreatedAt string                   `json:"created_at"`
	Answers   map[string]jotformAnswer `json:"answers"`
}

type jotformAnswer struct {
	Answer       json.RawMessage `json:"answer"`
	PrettyFormat string          `json:"prettyFormat"`
}

func NewJotformStore(baseURL, apiKey, formID string, timeout time.Duration) *JotformStore {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &JotformStore{http: c, apiKey: apiKey, formID: formID}
}

func (s *JotformStore) Create(ctx context.Context, lead *Lead) (string, error) {
	fields := map[string]string{
		FieldName:      lead.Name,
		FieldEmail:     lead.Email,
		FieldPhone:     lead.Phone,
		FieldProject:   lead.Project,
		FieldBudget:    lead.Budget,
		FieldSource:    lead.Source,
		FieldAdSource:  lead.AdSource,
		FieldFinancing: lead.Financing,
	}

	var env jotformEnvelope
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("apiKey", s.apiKey).
		SetPathParam("formID", s.formID).
		SetFormData(submissionForm(fields)).
		SetResult(&env).
		SetError(&env).
		Post("/form/{formID}/submissions")
	if err != nil {
		return "", fmt.Errorf("%w: create submission: %v", ErrUpstream, err)
	}
	if resp.IsError() || env.ResponseCode != http.StatusOK {
		return "", fmt.Errorf("%w: create submission: status=%d message=%q", ErrUpstream, resp.StatusCode(), env.Message)
	}

	var created jotformCreated
	if err := json.Unmarshal(env.Content, &created); err != nil || created.SubmissionID == "" {
		return "", fmt.Errorf("%w: create submission: missing submission id", ErrUpstream)
	}
	return created.SubmissionID, nil
}

func (s *JotformStore) UpdateDetails(ctx context.Context, id string, d Details) error {
	return s.edit(ctx, id, map[string]string{
		FieldProject:   string(d.Project),
		FieldBudget:    string(d.Budget),
		FieldFinancing: string(d.Financing),
	})
}

func (s *JotformStore) SaveNotes(ctx context.Context, id, notes string) error {
	return s.edit(ctx, id, map[string]string{FieldNotes: notes})
}

func (s *JotformStore) Get(ctx context.Context, id string) (*Lead, error) {
	var env jotformEnvelope
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("apiKey", s.apiKey).
		SetPathParam("id", id).
		SetResult(&env).
		SetError(&env).
		Get("/submission/{id}")
	if err != nil {
		return nil, fmt.Errorf("%w: get submission: %v", ErrUpstream, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrSubmissionNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: get submission: status=%d message=%q", ErrUpstream, resp.StatusCode(), env.Message)
	}
	if env.ResponseCode != http.StatusOK || len(env.Content) == 0 || string(env.Content) == "null" {
		return nil, ErrSubmissionNotFound
	}

	var sub jotformSubmission
	if err := json.Unmarshal(env.Content, &sub); err != nil {
		return nil, fmt.Errorf("%w: decode submission: %v", ErrUpstream, err)
	}

	lead := &Lead{
		ID:        id,
		Name:      sub.text(FieldName),
		Email:     sub.text(FieldEmail),
		Phone:     sub.text(FieldPhone),
		Project:   sub.text(FieldProject),
		Budget:    sub.text(FieldBudget),
		Financing: sub.text(FieldFinancing),
		Source:    sub.text(FieldSource),
		AdSource:  sub.text(FieldAdSource),
		Notes:     sub.text(FieldNotes),
	}
	if t, err := time.Parse("2006-01-02 15:04:05", sub.CreatedAt); err == nil {
		lead.CreatedAt = t
	}
	return lead, nil
}

func (s *JotformStore) edit(ctx context.Context, id string, fields map[string]string) error {
	var env jotformEnvelope
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("apiKey", s.apiKey).
		SetPathParam("id", id).
		SetFormData(submissionForm(fields)).
		SetResult(&env).
		SetError(&env).
		Post("/submission/{id}")
	if err != nil {
		return fmt.Errorf("%w: edit submission: %v", ErrUpstream, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrSubmissionNotFound
	}
	if resp.IsError() || env.ResponseCode != http.StatusOK {
		return fmt.Errorf("%w: edit submission: status=%d message=%q", ErrUpstream, resp.StatusCode(), env.Message)
	}
	return nil
}

func submissionForm(fields map[string]string) map[string]string {
	form := make(map[string]string, len(fields))
	for qid, v := range fields {
		form["submission["+qid+"]"] = v
	}
	return form
}

// text flattens a JotForm answer. Textareas answer with a plain string, short text widgets
// with {"text": ...} and full-name widgets with {"first": ..., "last": ...}.
func (s *jotformSubmission) text(qid string) string {
	a, ok := s.Answers[qid]
	if !ok {
		return ""
	}
	if len(a.Answer) > 0 {
		var str string
		if err := json.Unmarshal(a.Answer, &str); err == nil {
			return str
		}
		var obj map[string]string
		if err := json.Unmarshal(a.Answer, &obj); err == nil {
			if t := obj["text"]; t != "" {
				return t
			}
			if name := strings.TrimSpace(obj["first"] + " " + obj["last"]); name != "" {
				return name
			}
		}
	}
	return a.PrettyFormat
}
