// Package uploadqueue uploads a visitor's files one at a time and keeps a mirror of the
// remote listing, refreshed after every change.
package uploadqueue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"remodelsite/internal/client"
)

const (
	DefaultTimeout = 60 * time.Second

	timeoutMessage = "Upload timed out"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

var (
	ErrEntryNotFound   = errors.New("queue entry not found")
	ErrEntryUploading  = errors.New("entry is uploading and cannot be removed")
	ErrDeleteCancelled = errors.New("delete cancelled")
)

// API is the part of the site API the queue talks to.
type API interface {
	UploadFile(ctx context.Context, submissionID, name, contentType string, r io.Reader) (*client.UploadResult, error)
	ListFiles(ctx context.Context, submissionID string) ([]client.RemoteFile, error)
	DeleteFile(ctx context.Context, submissionID, fileName string) error
}

// Confirmer asks the visitor before a remote file is deleted.
type Confirmer interface {
	Confirm(ctx context.Context, fileName string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, fileName string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, fileName string) (bool, error) {
	return f(ctx, fileName)
}

// Entry is one local file waiting in, or failed out of, the queue. Successful entries leave
// the queue and show up in the remote listing instead.
type Entry struct {
	ID     string
	File   File
	Status Status
	Err    string
}

type Options struct {
	// Timeout bounds each upload. Defaults to DefaultTimeout.
	Timeout time.Duration
	// OnChange is called after every state change, outside the manager's lock.
	OnChange func()
	Log      logrus.FieldLogger
}

// Manager owns the queue for one submission. A single worker drains it in FIFO order, so
// at most one entry is ever uploading.
type Manager struct {
	api          API
	submissionID string
	opts         Options

	mu         sync.Mutex
	entries    []*Entry
	remote     []client.RemoteFile
	processing bool
	idle       chan struct{}
}

func New(api API, submissionID string, opts Options) *Manager {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	idle := make(chan struct{})
	close(idle)
	return &Manager{
		api:          api,
		submissionID: submissionID,
		opts:         opts,
		idle:         idle,
	}
}

// Enqueue adds files as pending entries and starts the worker when it is not running.
// It returns the new entry IDs in order.
func (m *Manager) Enqueue(files ...File) []string {
	if len(files) == 0 {
		return nil
	}

	ids := make([]string, 0, len(files))
	m.mu.Lock()
	for _, f := range files {
		e := &Entry{ID: uuid.NewString(), File: f, Status: StatusPending}
		m.entries = append(m.entries, e)
		ids = append(ids, e.ID)
	}
	start := !m.processing
	if start {
		m.processing = true
		m.idle = make(chan struct{})
	}
	m.mu.Unlock()

	m.changed()
	if start {
		go m.process()
	}
	return ids
}

func (m *Manager) process() {
	for {
		m.mu.Lock()
		e := m.nextPending()
		if e == nil {
			m.processing = false
			close(m.idle)
			m.mu.Unlock()
			return
		}
		e.Status = StatusUploading
		file := e.File
		m.mu.Unlock()
		m.changed()

		err := m.upload(file)

		m.mu.Lock()
		if err == nil {
			m.drop(e.ID)
		} else {
			e.Status = StatusError
			e.Err = errorMessage(err)
		}
		m.mu.Unlock()
		m.changed()

		log := m.opts.Log.WithFields(logrus.Fields{"submission_id": m.submissionID, "file": file.Name})
		if err != nil {
			log.WithError(err).Warn("upload failed")
			continue
		}
		log.Info("upload finished")
		if err := m.refresh(); err != nil {
			log.WithError(err).Warn("listing refresh failed")
		}
	}
}

func (m *Manager) refresh() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.opts.Timeout)
	defer cancel()
	return m.Refresh(ctx)
}

func (m *Manager) upload(f File) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.opts.Timeout)
	defer cancel()

	r, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer r.Close()

	_, err = m.api.UploadFile(ctx, m.submissionID, f.Name, f.ContentType, r)
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return err
}

func errorMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutMessage
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// Remove drops a pending or failed entry. Uploading entries cannot be removed.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	e := m.find(id)
	switch {
	case e == nil:
		m.mu.Unlock()
		return ErrEntryNotFound
	case e.Status == StatusUploading:
		m.mu.Unlock()
		return ErrEntryUploading
	}
	m.drop(id)
	m.mu.Unlock()

	m.changed()
	return nil
}

// Delete removes a remote file once the visitor confirms. A cancelled confirmation makes
// no request. After a successful delete the file is dropped from the mirror right away and
// the listing is fetched again.
func (m *Manager) Delete(ctx context.Context, fileName string, confirm Confirmer) error {
	ok, err := confirm.Confirm(ctx, fileName)
	if err != nil {
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return ErrDeleteCancelled
	}

	if err := m.api.DeleteFile(ctx, m.submissionID, fileName); err != nil {
		return fmt.Errorf("delete %s: %w", fileName, err)
	}

	m.mu.Lock()
	kept := m.remote[:0:0]
	for _, f := range m.remote {
		if f.Name != fileName {
			kept = append(kept, f)
		}
	}
	m.remote = kept
	m.mu.Unlock()
	m.changed()

	if err := m.Refresh(ctx); err != nil {
		m.opts.Log.WithError(err).WithField("submission_id", m.submissionID).Warn("listing refresh failed")
	}
	return nil
}

// Refresh replaces the mirror with a fresh listing. On error the mirror is left as it was.
func (m *Manager) Refresh(ctx context.Context) error {
	files, err := m.api.ListFiles(ctx, m.submissionID)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}

	m.mu.Lock()
	m.remote = files
	m.mu.Unlock()
	m.changed()
	return nil
}

// Wait blocks until no entry is pending or uploading.
func (m *Manager) Wait(ctx context.Context) error {
	m.mu.Lock()
	idle := m.idle
	m.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) SubmissionID() string { return m.submissionID }

// Entries returns a snapshot of the queue in FIFO order.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, *e)
	}
	return out
}

// RemoteFiles returns a snapshot of the last listing.
func (m *Manager) RemoteFiles() []client.RemoteFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]client.RemoteFile(nil), m.remote...)
}

func (m *Manager) nextPending() *Entry {
	for _, e := range m.entries {
		if e.Status == StatusPending {
			return e
		}
	}
	return nil
}

func (m *Manager) find(id string) *Entry {
	for _, e := range m.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (m *Manager) drop(id string) {
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return
		}
	}
}

func (m *Manager) changed() {
	if m.opts.OnChange != nil {
		m.opts.OnChange()
	}
}
