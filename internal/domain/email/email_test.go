package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remodelsite/internal/pkg/logger"
)

func TestTemplates_Details(t *testing.T) {
	tpl := NewTemplates("https://example.com")
	at := time.Date(2025, 6, 1, 19, 30, 0, 0, time.UTC)

	subject, html, err := tpl.Details(DetailsData{
		ID:        "42",
		Name:      "Jane Doe",
		Project:   "Kitchen & Bath",
		Budget:    "$100k+",
		Financing: "Yes",
	}, at)
	require.NoError(t, err)

	assert.Equal(t, "[PPC] Jane Doe - 42", subject)
	assert.Contains(t, html, "Kitchen &amp; Bath")
	assert.Contains(t, html, "https://example.com/upload/42")
	assert.Contains(t, html, "6/1/2025, 12:30:00 PM")
}

func TestTemplates_NewLeadOmitsEmptyTags(t *testing.T) {
	tpl := NewTemplates("https://example.com")

	_, html, err := tpl.NewLead(NewLeadData{ID: "1", Name: "Jane", Email: "j@example.com", Phone: "(657) 888-0026"}, time.Now())
	require.NoError(t, err)
	assert.Contains(t, html, "(657) 888-0026")
	assert.NotContains(t, html, "Clicked:")
	assert.NotContains(t, html, "Ad source:")
}

func TestLogSender(t *testing.T) {
	s := LogSender{Log: logger.Discard()}
	assert.NoError(t, s.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "x"}))
}

func TestMailgunSender_NoRecipients(t *testing.T) {
	s := NewMailgunSender("mg.example.com", "key-abc", "Site <hello@example.com>", logger.Discard())
	assert.ErrorIs(t, s.Send(context.Background(), Message{Subject: "x"}), ErrNoRecipients)
}
