package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteFile is a stored file as shown to the visitor.
type RemoteFile struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
	URL        string    `json:"url"`
}

// Lister produces the authoritative listing of a folder.
type Lister interface {
	List(ctx context.Context, folder string) ([]RemoteFile, error)
}

// StorageLister lists through the Storage itself and builds public URLs from baseURL.
type StorageLister struct {
	store   Storage
	baseURL string
}

func NewStorageLister(store Storage, baseURL string) *StorageLister {
	return &StorageLister{store: store, baseURL: baseURL}
}

func (l *StorageLister) List(ctx context.Context, folder string) ([]RemoteFile, error) {
	objects, err := l.store.List(ctx, folder)
	if err != nil {
		return nil, err
	}
	files := make([]RemoteFile, 0, len(objects))
	for _, o := range objects {
		files = append(files, RemoteFile{
			Name:       o.Name,
			Size:       o.Size,
			ModifiedAt: o.ModifiedAt,
			URL:        PublicURL(l.baseURL, folder, o.Name),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// HTTPLister asks the storage host's listing endpoint, which answers with a JSON array of
// absolute file URLs.
type HTTPLister struct {
	http *resty.Client
	url  string
}

func NewHTTPLister(listingURL string, timeout time.Duration) *HTTPLister {
	return &HTTPLister{
		http: resty.New().SetTimeout(timeout).SetHeader("Accept", "application/json"),
		url:  listingURL,
	}
}

func (l *HTTPLister) List(ctx context.Context, folder string) ([]RemoteFile, error) {
	var urls []string
	resp, err := l.http.R().
		SetContext(ctx).
		SetQueryParam("folder", folder).
		SetResult(&urls).
		Get(l.url)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list files: status=%d", resp.StatusCode())
	}
	if urls == nil {
		return nil, fmt.Errorf("list files: unexpected response format")
	}

	files := make([]RemoteFile, 0, len(urls))
	for _, u := range urls {
		files = append(files, RemoteFile{Name: nameFromURL(u), URL: u})
	}
	return files, nil
}

// PublicURL joins the public base, folder and file name with each segment escaped.
func PublicURL(baseURL, folder, name string) string {
	return baseURL + "/" + url.PathEscape(folder) + "/" + url.PathEscape(name)
}

func nameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return path.Base(raw)
	}
	name, err := url.PathUnescape(path.Base(u.Path))
	if err != nil {
		return path.Base(u.Path)
	}
	return name
}
