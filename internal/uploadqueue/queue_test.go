package uploadqueue

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remodelsite/internal/client"
	"remodelsite/internal/pkg/logger"
)

// fakeAPI keeps an in-memory folder and can be told to fail or stall per file name.
type fakeAPI struct {
	mu       sync.Mutex
	files    []client.RemoteFile
	order    []string
	fail     map[string]error
	stall    map[string]bool
	inFlight int32
	maxSeen  int32

	listCalls   int32
	deleteCalls int32
	deleteErr   error
	listStall   bool

	// onUpload runs while an upload is in flight.
	onUpload func(name string)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{fail: map[string]error{}, stall: map[string]bool{}}
}

func (f *fakeAPI) UploadFile(ctx context.Context, submissionID, name, contentType string, r io.Reader) (*client.UploadResult, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		max := atomic.LoadInt32(&f.maxSeen)
		if n <= max || atomic.CompareAndSwapInt32(&f.maxSeen, max, n) {
			break
		}
	}

	if f.onUpload != nil {
		f.onUpload(name)
	}
	data, _ := io.ReadAll(r)

	f.mu.Lock()
	f.order = append(f.order, name)
	err := f.fail[name]
	stall := f.stall[name]
	f.mu.Unlock()

	if stall {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.files = append(f.files, client.RemoteFile{Name: name, Size: int64(len(data)), URL: "http://files/" + submissionID + "/" + name})
	f.mu.Unlock()
	return &client.UploadResult{Success: true, FileName: name, FileSize: int64(len(data))}, nil
}

func (f *fakeAPI) ListFiles(ctx context.Context, submissionID string) ([]client.RemoteFile, error) {
	atomic.AddInt32(&f.listCalls, 1)
	if f.listStall {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.RemoteFile(nil), f.files...), nil
}

func (f *fakeAPI) DeleteFile(ctx context.Context, submissionID, fileName string) error {
	atomic.AddInt32(&f.deleteCalls, 1)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, file := range f.files {
		if file.Name == fileName {
			f.files = append(f.files[:i], f.files[i+1:]...)
			return nil
		}
	}
	return &client.APIError{Status: 404, Code: "FILE_NOT_FOUND", Message: "File not found"}
}

func newManager(api API, timeout time.Duration) *Manager {
	return New(api, "sub-1", Options{Timeout: timeout, Log: logger.Discard()})
}

func wait(t *testing.T, m *Manager) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Wait(ctx))
}

func names(files []client.RemoteFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func jpeg(name string) File {
	return FromBytes(name, "image/jpeg", []byte("\xff\xd8\xff"+name))
}

func TestManager_UploadsInOrderOneAtATime(t *testing.T) {
	api := newFakeAPI()
	m := newManager(api, time.Second)

	var violations int32
	api.onUpload = func(string) {
		uploading := 0
		for _, e := range m.Entries() {
			if e.Status == StatusUploading {
				uploading++
			}
		}
		if uploading != 1 {
			atomic.AddInt32(&violations, 1)
		}
	}

	m.Enqueue(jpeg("a.jpg"), jpeg("b.jpg"))
	m.Enqueue(jpeg("c.jpg"))
	wait(t, m)

	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, api.order)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.maxSeen))
	assert.Zero(t, atomic.LoadInt32(&violations))
	assert.Empty(t, m.Entries())
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, names(m.RemoteFiles()))
	assert.Equal(t, int32(3), atomic.LoadInt32(&api.listCalls))
}

func TestManager_FailureMarksErrorAndContinues(t *testing.T) {
	api := newFakeAPI()
	api.fail["bad.pdf"] = &client.APIError{Status: 400, Code: "INVALID_FILE_TYPE", Message: "Only JPEG, PNG, GIF, WebP and PDF files are allowed"}
	m := newManager(api, time.Second)

	m.Enqueue(jpeg("a.jpg"), FromBytes("bad.pdf", "application/pdf", []byte("x")), jpeg("c.jpg"))
	wait(t, m)

	entries := m.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "bad.pdf", entries[0].File.Name)
	assert.Equal(t, StatusError, entries[0].Status)
	assert.Equal(t, "Only JPEG, PNG, GIF, WebP and PDF files are allowed", entries[0].Err)
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, names(m.RemoteFiles()))
}

func TestManager_Timeout(t *testing.T) {
	api := newFakeAPI()
	api.stall["slow.jpg"] = true
	m := newManager(api, 30*time.Millisecond)

	m.Enqueue(jpeg("slow.jpg"), jpeg("next.jpg"))
	wait(t, m)

	entries := m.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, StatusError, entries[0].Status)
	assert.Equal(t, "Upload timed out", entries[0].Err)
	assert.Equal(t, []string{"next.jpg"}, names(m.RemoteFiles()))
}

func TestManager_HungListingDoesNotBlockQueue(t *testing.T) {
	api := newFakeAPI()
	api.listStall = true
	m := newManager(api, 30*time.Millisecond)

	m.Enqueue(jpeg("a.jpg"), jpeg("b.jpg"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Wait(ctx))

	assert.Empty(t, m.Entries())
	assert.Equal(t, int32(2), atomic.LoadInt32(&api.listCalls))
	api.mu.Lock()
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, api.order)
	api.mu.Unlock()
}

func TestManager_Remove(t *testing.T) {
	api := newFakeAPI()
	started := make(chan struct{})
	release := make(chan struct{})
	api.onUpload = func(name string) {
		if name == "a.jpg" {
			close(started)
			<-release
		}
	}
	m := newManager(api, time.Second)

	ids := m.Enqueue(jpeg("a.jpg"), jpeg("b.jpg"))
	<-started

	assert.ErrorIs(t, m.Remove(ids[0]), ErrEntryUploading)
	require.NoError(t, m.Remove(ids[1]))
	assert.ErrorIs(t, m.Remove("missing"), ErrEntryNotFound)

	close(release)
	wait(t, m)

	assert.Equal(t, []string{"a.jpg"}, api.order)
	assert.Empty(t, m.Entries())
}

func TestManager_RemoveFailedEntry(t *testing.T) {
	api := newFakeAPI()
	api.fail["a.jpg"] = errors.New("connection reset")
	m := newManager(api, time.Second)

	ids := m.Enqueue(jpeg("a.jpg"))
	wait(t, m)

	require.Len(t, m.Entries(), 1)
	assert.Equal(t, "connection reset", m.Entries()[0].Err)
	require.NoError(t, m.Remove(ids[0]))
	assert.Empty(t, m.Entries())
}

func TestManager_DeleteConfirmed(t *testing.T) {
	api := newFakeAPI()
	m := newManager(api, time.Second)
	ctx := context.Background()

	m.Enqueue(jpeg("x.jpg"), jpeg("y.jpg"))
	wait(t, m)
	require.Equal(t, []string{"x.jpg", "y.jpg"}, names(m.RemoteFiles()))

	var asked string
	err := m.Delete(ctx, "x.jpg", ConfirmFunc(func(_ context.Context, name string) (bool, error) {
		asked = name
		return true, nil
	}))

	require.NoError(t, err)
	assert.Equal(t, "x.jpg", asked)
	assert.Equal(t, []string{"y.jpg"}, names(m.RemoteFiles()))
}

func TestManager_DeleteCancelled(t *testing.T) {
	api := newFakeAPI()
	m := newManager(api, time.Second)
	ctx := context.Background()

	m.Enqueue(jpeg("x.jpg"))
	wait(t, m)

	err := m.Delete(ctx, "x.jpg", ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil }))

	assert.ErrorIs(t, err, ErrDeleteCancelled)
	assert.Zero(t, atomic.LoadInt32(&api.deleteCalls))
	assert.Equal(t, []string{"x.jpg"}, names(m.RemoteFiles()))
}

func TestManager_DeleteFailureKeepsFile(t *testing.T) {
	api := newFakeAPI()
	m := newManager(api, time.Second)
	ctx := context.Background()

	m.Enqueue(jpeg("x.jpg"))
	wait(t, m)
	api.deleteErr = &client.APIError{Status: 500, Message: "Failed to delete file"}

	err := m.Delete(ctx, "x.jpg", ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil }))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"x.jpg"}, names(m.RemoteFiles()))
}

func TestManager_OnChange(t *testing.T) {
	api := newFakeAPI()
	var changes int32
	m := New(api, "sub-1", Options{OnChange: func() { atomic.AddInt32(&changes, 1) }, Log: logger.Discard()})

	m.Enqueue(jpeg("a.jpg"))
	wait(t, m)

	// enqueue, uploading, done, refreshed
	assert.GreaterOrEqual(t, atomic.LoadInt32(&changes), int32(4))
}

func TestManager_WaitWhenIdle(t *testing.T) {
	m := newManager(newFakeAPI(), time.Second)
	wait(t, m)
	assert.Empty(t, m.Enqueue())
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%âãÏÓ\n"), 0o644))

	f, err := FromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "plan.pdf", f.Name)
	assert.Equal(t, "application/pdf", f.ContentType)

	r, err := f.Open()
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, f.Size, int64(len(data)))

	_, err = FromPath(dir)
	assert.Error(t, err)
}
