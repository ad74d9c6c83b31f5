package forms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission is the row LocalStore keeps for each lead. LocalStore stands in for the hosted
// forms service during development and in tests.
type Submission struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	Project   string    `gorm:"column:project"`
	Budget    string    `gorm:"column:budget"`
	Financing string    `gorm:"column:financing"`
	Source    string    `gorm:"column:source"`
	AdSource  string    `gorm:"column:ad_source"`
	Notes     string    `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Submission) TableName() string { return "submissions" }

type LocalStore struct {
	db *gorm.DB
}

// NewLocalStore migrates the submissions table and returns the store.
func NewLocalStore(db *gorm.DB) (*LocalStore, error) {
	if err := db.AutoMigrate(&Submission{}); err != nil {
		return nil, fmt.Errorf("migrate submissions: %w", err)
	}
	return &LocalStore{db: db}, nil
}

func (s *LocalStore) Create(ctx context.Context, lead *Lead) (string, error) {
	now := time.Now().UTC()
	row := &Submission{
		ID:        uuid.New().String(),
		Name:      lead.Name,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Project:   lead.Project,
		Budget:    lead.Budget,
		Financing: lead.Financing,
		Source:    lead.Source,
		AdSource:  lead.AdSource,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return row.ID, nil
}

func (s *LocalStore) UpdateDetails(ctx context.Context, id string, d Details) error {
	return s.update(ctx, id, map[string]any{
		"project":   string(d.Project),
		"budget":    string(d.Budget),
		"financing": string(d.Financing),
	})
}

func (s *LocalStore) SaveNotes(ctx context.Context, id, notes string) error {
	return s.update(ctx, id, map[string]any{"notes": notes})
}

func (s *LocalStore) Get(ctx context.Context, id string) (*Lead, error) {
	var row Submission
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &Lead{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Project:   row.Project,
		Budget:    row.Budget,
		Financing: row.Financing,
		Source:    row.Source,
		AdSource:  row.AdSource,
		Notes:     row.Notes,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (s *LocalStore) update(ctx context.Context, id string, cols map[string]any) error {
	cols["updated_at"] = time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&Submission{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
