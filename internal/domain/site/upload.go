package site

import (
	"fmt"

	"github.com/dustin/go-humanize"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"remodelsite/internal/domain/storage"
)

// UploadData is the server-side state the upload page starts from. The site script keeps
// the list in sync after every upload or delete.
type UploadData struct {
	SubmissionID string
	Notes        string
	Files        []storage.RemoteFile
	// ListingFailed hides the file list instead of showing an empty folder.
	ListingFailed bool
}

func UploadPage(d UploadData) g.Node {
	return Layout(
		PageConfig{Title: "Upload Photos - " + BusinessName},
		Navbar(),
		Main(
			Class("container upload-page"),
			g.Attr("data-submission-id", d.SubmissionID),
			Div(
				Class("upload-header"),
				H1(g.Text("Upload Photos of Your Space")),
				P(g.Text("Share photos, drawings or inspiration so we can prepare an accurate quote.")),
				A(
					Class("btn btn-ghost"),
					Href("/api/download-all/"+d.SubmissionID),
					g.Text("Download All"),
				),
			),
			uploadForm(),
			Div(ID("upload-queue"), Class("upload-queue")),
			fileList(d),
			notesForm(d.Notes),
		),
	)
}

func uploadForm() g.Node {
	return Div(
		Class("dropzone"),
		Label(
			For("files"),
			Class("btn btn-primary"),
			g.Text("Choose Files"),
		),
		Input(
			ID("files"),
			Name("file"),
			Type("file"),
			Multiple(),
			Accept("image/jpeg,image/png,image/gif,image/webp,application/pdf"),
			g.Attr("hidden"),
		),
		P(Class("hint"), g.Text("Supported formats: JPG, PNG, PDF (Max 10MB per file)")),
	)
}

func fileList(d UploadData) g.Node {
	if d.ListingFailed {
		return Div(ID("file-list"), Class("file-list"), g.Attr("data-stale", "true"))
	}
	if len(d.Files) == 0 {
		return Div(
			ID("file-list"),
			Class("file-list"),
			P(Class("empty"), g.Text("No files uploaded yet.")),
		)
	}

	rows := make([]g.Node, 0, len(d.Files))
	for _, f := range d.Files {
		rows = append(rows, fileRow(f))
	}
	return Div(
		ID("file-list"),
		Class("file-list"),
		H2(g.Textf("Uploaded Files (%d)", len(d.Files))),
		Ul(g.Group(rows)),
	)
}

func fileRow(f storage.RemoteFile) g.Node {
	meta := humanize.Bytes(uint64(max(f.Size, 0)))
	if !f.ModifiedAt.IsZero() {
		meta = fmt.Sprintf("%s • %s", meta, f.ModifiedAt.Format("1/2/2006"))
	}

	return Li(
		Class("file-row"),
		g.Attr("data-file-name", f.Name),
		Div(
			Class("file-info"),
			Span(Class("file-name"), g.Text(f.Name)),
			Span(Class("file-meta"), g.Text(meta)),
		),
		Div(
			Class("file-actions"),
			g.If(f.URL != "", A(Href(f.URL), Target("_blank"), Rel("noopener noreferrer"), g.Text("View"))),
			Button(
				Type("button"),
				Class("btn-delete"),
				g.Attr("data-delete-file", f.Name),
				g.Attr("aria-label", "Delete "+f.Name),
				g.Text("Delete"),
			),
		),
	)
}

func notesForm(notes string) g.Node {
	return Form(
		ID("notes-form"),
		Class("notes"),
		Label(For("notes"), g.Text("Design Notes & Preferences")),
		Textarea(
			ID("notes"),
			Name("notes"),
			Rows("6"),
			Placeholder("Tell us about your style preferences, must-haves, or anything else we should know about your project..."),
			g.Text(notes),
		),
		Button(Type("submit"), Class("btn btn-primary"), g.Text("Save Notes")),
	)
}
