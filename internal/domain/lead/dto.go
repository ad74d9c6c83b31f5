package lead

import "remodelsite/internal/domain/forms"

// SubmitQuoteRequest is the first step of the quote form. Project and budget are usually
// empty here and filled in by the second step.
type SubmitQuoteRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,phone"`
	Project        string `json:"project"`
	Budget         string `json:"budget"`
	Source         string `json:"source"`
	AdSource       string `json:"ad_source"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// UpdateQuoteRequest is the second step of the quote form.
type UpdateQuoteRequest struct {
	Project   forms.Project   `json:"project" validate:"required"`
	Budget    forms.Budget    `json:"budget" validate:"required"`
	Financing forms.Financing `json:"financing" validate:"required"`
}

type SaveNotesRequest struct {
	SubmissionID string `json:"submissionId" validate:"required"`
	Notes        string `json:"notes"`
}

type SubmitQuoteResponse struct {
	SubmissionID string `json:"submissionId"`
}

type UpdateQuoteResponse struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
}

type NotesResponse struct {
	Notes        string `json:"notes"`
	SubmissionID string `json:"submissionId"`
}

type SaveNotesResponse struct {
	Message      string `json:"message"`
	SubmissionID string `json:"submissionId"`
	Timestamp    string `json:"timestamp"`
}

// optionErrors checks the enum fields that validator tags cannot express. Empty values are
// left to the required tags.
func (r *SubmitQuoteRequest) optionErrors() map[string]string {
	errs := map[string]string{}
	if r.Project != "" && !forms.Project(r.Project).Valid() {
		errs["Project"] = "oneof"
	}
	if r.Budget != "" && !forms.Budget(r.Budget).Valid() {
		errs["Budget"] = "oneof"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r *UpdateQuoteRequest) optionErrors() map[string]string {
	errs := map[string]string{}
	if r.Project != "" && !r.Project.Valid() {
		errs["Project"] = "oneof"
	}
	if r.Budget != "" && !r.Budget.Valid() {
		errs["Budget"] = "oneof"
	}
	if r.Financing != "" && !r.Financing.Valid() {
		errs["Financing"] = "oneof"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
