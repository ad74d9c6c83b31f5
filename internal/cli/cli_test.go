package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remodelsite/internal/client"
	"remodelsite/internal/config"
	"remodelsite/internal/database"
	"remodelsite/internal/pkg/logger"
	"remodelsite/internal/server"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

var submissionLine = regexp.MustCompile(`Submission ID: (\S+)`)

func startServer(t *testing.T) string {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	r, err := server.New(&config.Config{
		AppEnv:             "test",
		PublicSiteURL:      "http://site.test",
		FormsBackend:       config.BackendLocal,
		StorageBackend:     config.BackendLocal,
		UploadsDir:         t.TempDir(),
		StaticDir:          filepath.Join(t.TempDir(), "missing"),
		FilesPublicBaseURL: "/uploads",
		UpstreamTimeout:    time.Second,
		LeadRatePerMinute:  60,
		LeadRateBurst:      10,
	}, db, logger.Discard())
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(strings.NewReader(stdin), &out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func createQuote(t *testing.T, serverURL string) string {
	t.Helper()
	out, err := run(t, "",
		"--server", serverURL,
		"quote",
		"--name", "Jane Doe",
		"--email", "jane@example.com",
		"--phone", "6578880026",
		"--project", "Kitchen",
		"--budget", "$50k - $100k",
		"--financing", "No",
	)
	require.NoError(t, err)
	m := submissionLine.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestQuote(t *testing.T) {
	url := startServer(t)

	id := createQuote(t, url)
	assert.NotEmpty(t, id)

	out, err := run(t, "", "--server", url, "notes", "get", id)
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestQuote_RequiresDetails(t *testing.T) {
	url := startServer(t)

	_, err := run(t, "", "--server", url, "quote", "--name", "Jane", "--email", "jane@example.com", "--phone", "6578880026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestQuote_InvalidOption(t *testing.T) {
	url := startServer(t)

	_, err := run(t, "",
		"--server", url, "quote",
		"--name", "Jane", "--email", "jane@example.com", "--phone", "6578880026",
		"--project", "Garage", "--budget", "$100k+", "--financing", "Yes",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "details failed")
}

func TestUploadFilesAndRemove(t *testing.T) {
	url := startServer(t)
	id := createQuote(t, url)

	photo := writeFile(t, "kitchen.png", pngHeader)
	text := writeFile(t, "notes.txt", []byte("plain text"))

	out, err := run(t, "", "--server", url, "upload", id, photo, text)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 uploads failed")
	assert.Contains(t, out, "FAILED  notes.txt")
	assert.Contains(t, out, "kitchen.png")

	out, err = run(t, "", "--server", url, "files", id, "-o", "json")
	require.NoError(t, err)
	var files []client.RemoteFile
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "kitchen.png", files[0].Name)
	assert.Equal(t, "http://site.test/uploads/"+id+"/kitchen.png", files[0].URL)

	out, err = run(t, "n\n", "--server", url, "rm", id, "kitchen.png")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete kitchen.png? [y/N]: ")
	assert.Contains(t, out, "Cancelled.")

	out, err = run(t, "y\n", "--server", url, "rm", id, "kitchen.png")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted kitchen.png.")

	out, err = run(t, "", "--server", url, "files", id)
	require.NoError(t, err)
	assert.Contains(t, out, "No files.")
}

func TestRm_Yes(t *testing.T) {
	url := startServer(t)
	id := createQuote(t, url)

	_, err := run(t, "", "--server", url, "upload", id, writeFile(t, "plan.png", pngHeader))
	require.NoError(t, err)

	out, err := run(t, "", "--server", url, "rm", "--yes", id, "plan.png")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, "Deleted plan.png.")
}

func TestRm_MissingFile(t *testing.T) {
	url := startServer(t)
	id := createQuote(t, url)

	_, err := run(t, "", "--server", url, "rm", "-y", id, "ghost.png")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "FOLDER_NOT_FOUND", apiErr.Code)
}

func TestNotes(t *testing.T) {
	url := startServer(t)
	id := createQuote(t, url)

	out, err := run(t, "", "--server", url, "notes", "set", id, "white", "oak", "floors")
	require.NoError(t, err)
	assert.Contains(t, out, "Notes saved at ")

	out, err = run(t, "", "--server", url, "notes", "get", id)
	require.NoError(t, err)
	assert.Equal(t, "white oak floors\n", out)
}

func TestServerFromEnvironment(t *testing.T) {
	url := startServer(t)
	t.Setenv("LEADCTL_SERVER", url)

	id := createQuote(t, url)
	out, err := run(t, "", "files", id)
	require.NoError(t, err)
	assert.Contains(t, out, "No files.")
}

func TestFiles_UnknownFormat(t *testing.T) {
	url := startServer(t)
	id := createQuote(t, url)

	_, err := run(t, "", "--server", url, "files", id, "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
