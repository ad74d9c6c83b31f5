package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"remodelsite/internal/domain/captcha"
	"remodelsite/internal/domain/crm"
	"remodelsite/internal/domain/email"
	"remodelsite/internal/domain/forms"
	"remodelsite/internal/pkg/metrics"
	"remodelsite/internal/pkg/phone"
)

// Deps wires the external services a Service talks to.
type Deps struct {
	Store      forms.Store
	Captcha    captcha.Verifier
	CRM        crm.Mirror
	Mail       email.Sender
	Templates  *email.Templates
	Recipients []string
	Log        logrus.FieldLogger
}

// Service runs the two quote steps and the notes endpoints. The forms service is the only
// dependency whose failure fails a request; CRM and email are best effort.
type Service struct {
	store      forms.Store
	captcha    captcha.Verifier
	crm        crm.Mirror
	mail       email.Sender
	templates  *email.Templates
	recipients []string
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewService(d Deps) *Service {
	s := &Service{
		store:      d.Store,
		captcha:    d.Captcha,
		crm:        d.CRM,
		mail:       d.Mail,
		templates:  d.Templates,
		recipients: d.Recipients,
		log:        d.Log,
		now:        time.Now,
	}
	if s.captcha == nil {
		s.captcha = captcha.Disabled{}
	}
	if s.crm == nil {
		s.crm = crm.Noop{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

// SubmitQuote creates the lead and returns the identifier issued by the forms service.
func (s *Service) SubmitQuote(ctx context.Context, req *SubmitQuoteRequest, remoteIP string) (string, error) {
	if req.RecaptchaToken != captcha.SkipToken {
		if err := s.captcha.Verify(ctx, req.RecaptchaToken, remoteIP); err != nil {
			metrics.RecordLeadStep("contact", "captcha_failed")
			return "", fmt.Errorf("%w: %v", ErrCaptchaFailed, err)
		}
	}

	l := &forms.Lead{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    phone.Format(req.Phone),
		Project:  req.Project,
		Budget:   req.Budget,
		Source:   req.Source,
		AdSource: req.AdSource,
	}
	id, err := s.store.Create(ctx, l)
	if err != nil {
		metrics.RecordLeadStep("contact", "error")
		return "", fmt.Errorf("%w: %v", ErrFormsUnavailable, err)
	}
	metrics.RecordLeadStep("contact", "ok")

	log := s.log.WithField("submission_id", id)
	log.Info("lead created")

	if err := s.crm.CreateLead(ctx, crm.NewLead{
		ExternalID: id,
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		Source:     l.Source,
		AdSource:   l.AdSource,
	}); err != nil {
		s.sideChannelFailed(log, "crm", err)
	}

	if s.templates != nil && s.mail != nil {
		subject, html, err := s.templates.NewLead(email.NewLeadData{
			ID:       id,
			Name:     l.Name,
			Email:    l.Email,
			Phone:    l.Phone,
			Source:   l.Source,
			AdSource: l.AdSource,
		}, s.now())
		if err == nil {
			err = s.mail.Send(ctx, email.Message{To: s.recipients, Subject: subject, HTML: html})
		}
		if err != nil {
			s.sideChannelFailed(log, "email", err)
		}
	}

	return id, nil
}

// UpdateQuote stores the second step answers on an existing lead.
func (s *Service) UpdateQuote(ctx context.Context, id string, req *UpdateQuoteRequest) error {
	l, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	d := forms.Details{Project: req.Project, Budget: req.Budget, Financing: req.Financing}
	if err := s.store.UpdateDetails(ctx, id, d); err != nil {
		metrics.RecordLeadStep("details", "error")
		if errors.Is(err, forms.ErrSubmissionNotFound) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("%w: %v", ErrFormsUnavailable, err)
	}
	metrics.RecordLeadStep("details", "ok")

	log := s.log.WithField("submission_id", id)
	log.Info("lead details updated")

	if err := s.crm.UpdateLead(ctx, id, crm.LeadUpdate{
		ProjectInterest: string(d.Project),
		Budget:          string(d.Budget),
		FinanceNeed:     string(d.Financing),
		Status:          crm.StatusActive,
	}); err != nil {
		s.sideChannelFailed(log, "crm", err)
	}

	if s.templates != nil && s.mail != nil {
		subject, html, err := s.templates.Details(email.DetailsData{
			ID:        id,
			Name:      l.Name,
			Project:   string(d.Project),
			Budget:    string(d.Budget),
			Financing: string(d.Financing),
		}, s.now())
		if err == nil {
			err = s.mail.Send(ctx, email.Message{To: s.recipients, Subject: subject, HTML: html})
		}
		if err != nil {
			s.sideChannelFailed(log, "email", err)
		}
	}

	return nil
}

func (s *Service) GetNotes(ctx context.Context, id string) (string, error) {
	l, err := s.get(ctx, id)
	if err != nil {
		return "", err
	}
	return l.Notes, nil
}

// SaveNotes overwrites the notes and returns the time of the save. Saving the same text
// twice leaves the lead unchanged.
func (s *Service) SaveNotes(ctx context.Context, id, notes string) (time.Time, error) {
	if err := s.store.SaveNotes(ctx, id, notes); err != nil {
		if errors.Is(err, forms.ErrSubmissionNotFound) {
			return time.Time{}, ErrLeadNotFound
		}
		return time.Time{}, fmt.Errorf("%w: %v", ErrFormsUnavailable, err)
	}
	return s.now(), nil
}

func (s *Service) get(ctx context.Context, id string) (*forms.Lead, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, forms.ErrSubmissionNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrFormsUnavailable, err)
	}
	return l, nil
}

func (s *Service) sideChannelFailed(log logrus.FieldLogger, channel string, err error) {
	metrics.RecordSideChannelFailure(channel)
	log.WithError(err).WithField("channel", channel).Warn("best-effort call failed")
}
