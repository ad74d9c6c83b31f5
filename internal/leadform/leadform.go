// Package leadform is the two step quote form: contact details first, project details
// second, then a redirect to the upload page.
package leadform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"remodelsite/internal/client"
	"remodelsite/internal/domain/captcha"
	"remodelsite/internal/domain/forms"
	"remodelsite/internal/domain/tracking"
	"remodelsite/internal/pkg/phone"
)

const DefaultRedirectDelay = 1500 * time.Millisecond

type Step int

const (
	StepContact Step = iota + 1
	StepDetails
	StepRedirecting
)

func (s Step) String() string {
	switch s {
	case StepContact:
		return "step1"
	case StepDetails:
		return "step2"
	case StepRedirecting:
		return "step3"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

var (
	ErrBusy          = errors.New("a submission is already in progress")
	ErrMissingField  = errors.New("required field is empty")
	ErrInvalidOption = errors.New("invalid option")
	ErrNoSubmission  = errors.New("no submission found, please start again")
	ErrWrongStep     = errors.New("form is not at this step")
)

// API is the part of the site API the form talks to.
type API interface {
	SubmitLead(ctx context.Context, lead client.Lead) (string, error)
	UpdateLead(ctx context.Context, id string, d client.Details) error
}

type Contact struct {
	Name  string
	Email string
	Phone string
}

type Details struct {
	Project   forms.Project
	Budget    forms.Budget
	Financing forms.Financing
}

type Options struct {
	// Source names the call to action that opened the form.
	Source string
	// AdSource is carried over from the landing page query string.
	AdSource     string
	CaptchaToken string
	Tracker      tracking.Tracker
	// RedirectDelay defaults to DefaultRedirectDelay.
	RedirectDelay time.Duration
	// OnRedirect receives the upload page path once the delay has passed.
	OnRedirect func(path string)
	Log        logrus.FieldLogger
}

// Form holds the state of one quote form. At most one submission is outstanding at a time.
type Form struct {
	api  API
	opts Options

	afterFunc func(d time.Duration, f func())

	mu           sync.Mutex
	step         Step
	busy         bool
	submissionID string
	lastErr      error
}

func New(api API, opts Options) *Form {
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = DefaultRedirectDelay
	}
	if opts.CaptchaToken == "" {
		opts.CaptchaToken = captcha.SkipToken
	}
	if opts.Tracker == nil {
		opts.Tracker = tracking.Noop{}
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &Form{
		api:       api,
		opts:      opts,
		afterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		step:      StepContact,
	}
}

func (f *Form) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Form) SubmissionID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submissionID
}

func (f *Form) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Err is the error of the last failed submission, cleared by the next success.
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// UploadPath is where the visitor goes after the second step.
func (f *Form) UploadPath() string {
	return "/upload/" + f.SubmissionID()
}

// SubmitContact sends the first step. Empty fields fail before any request is made.
func (f *Form) SubmitContact(ctx context.Context, c Contact) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = phone.Format(c.Phone)
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case c.Email == "":
		return fmt.Errorf("%w: email", ErrMissingField)
	case c.Phone == "":
		return fmt.Errorf("%w: phone", ErrMissingField)
	}

	if err := f.acquire(StepContact); err != nil {
		return err
	}

	id, err := f.api.SubmitLead(ctx, client.Lead{
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Project:        "",
		Budget:         "",
		Source:         f.opts.Source,
		AdSource:       f.opts.AdSource,
		RecaptchaToken: f.opts.CaptchaToken,
	})
	if err == nil && id == "" {
		err = errors.New("no submission ID returned")
	}

	f.mu.Lock()
	f.busy = false
	f.lastErr = err
	if err == nil {
		f.submissionID = id
		f.step = StepDetails
	}
	f.mu.Unlock()

	if err != nil {
		return fmt.Errorf("submit contact: %w", err)
	}

	if err := f.opts.Tracker.Track(ctx, tracking.Conversion{
		Event:        "Lead",
		SubmissionID: id,
		Source:       f.opts.Source,
		AdSource:     f.opts.AdSource,
	}); err != nil {
		f.opts.Log.WithError(err).WithField("submission_id", id).Warn("conversion ping failed")
	}
	return nil
}

// SubmitDetails sends the second step and schedules the redirect to the upload page.
// Without a submission ID from the first step the form goes back to the contact step.
func (f *Form) SubmitDetails(ctx context.Context, d Details) error {
	switch {
	case d.Project == "":
		return fmt.Errorf("%w: project", ErrMissingField)
	case d.Budget == "":
		return fmt.Errorf("%w: budget", ErrMissingField)
	case d.Financing == "":
		return fmt.Errorf("%w: financing", ErrMissingField)
	case !d.Project.Valid():
		return fmt.Errorf("%w: project %q", ErrInvalidOption, d.Project)
	case !d.Budget.Valid():
		return fmt.Errorf("%w: budget %q", ErrInvalidOption, d.Budget)
	case !d.Financing.Valid():
		return fmt.Errorf("%w: financing %q", ErrInvalidOption, d.Financing)
	}

	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.submissionID == "" {
		f.step = StepContact
		f.lastErr = ErrNoSubmission
		f.mu.Unlock()
		return ErrNoSubmission
	}
	if f.step != StepDetails {
		f.mu.Unlock()
		return ErrWrongStep
	}
	f.busy = true
	id := f.submissionID
	f.mu.Unlock()

	err := f.api.UpdateLead(ctx, id, client.Details{
		Project:   string(d.Project),
		Budget:    string(d.Budget),
		Financing: string(d.Financing),
	})

	f.mu.Lock()
	f.busy = false
	f.lastErr = err
	if err == nil {
		f.step = StepRedirecting
	}
	f.mu.Unlock()

	if err != nil {
		return fmt.Errorf("submit details: %w", err)
	}

	if f.opts.OnRedirect != nil {
		path := "/upload/" + id
		f.afterFunc(f.opts.RedirectDelay, func() { f.opts.OnRedirect(path) })
	}
	return nil
}

func (f *Form) acquire(want Step) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return ErrBusy
	}
	if f.step != want {
		return ErrWrongStep
	}
	f.busy = true
	return nil
}
