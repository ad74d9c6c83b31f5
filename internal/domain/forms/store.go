package forms

import "context"

// Store is the forms/CRM platform that owns lead records.
type Store interface {
	// Create stores a new lead and returns the identifier issued by the service.
	Create(ctx context.Context, lead *Lead) (string, error)
	// UpdateDetails writes the step two answers onto an existing lead.
	UpdateDetails(ctx context.Context, id string, d Details) error
	// Get returns ErrSubmissionNotFound when id is not a real lead.
	Get(ctx context.Context, id string) (*Lead, error)
	SaveNotes(ctx context.Context, id, notes string) error
}
