package apiv0

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/consoleapi/httpclient/rest"
	"github.com/kbukum/consoleapi/validation"
)

// DocumentsRoot is the root path of the documents API.
const DocumentsRoot = "/api/v0/docs"

// DocumentsClient calls the documents API.
type DocumentsClient struct {
	res *rest.Resource[Document]
}

// NewDocumentsClient creates a documents client on c.
func NewDocumentsClient(c *rest.Client) *DocumentsClient {
	return &DocumentsClient{res: rest.NewResource[Document](c, DocumentsRoot)}
}

// Get lists all documents.
func (d *DocumentsClient) Get(ctx context.Context) ([]Document, error) {
	return d.res.List(ctx)
}

// GetOne fetches the document at path.
func (d *DocumentsClient) GetOne(ctx context.Context, path string) (Document, error) {
	return d.res.Get(ctx, path)
}

// GetTag fetches the values of tag tagName on the document at path.
func (d *DocumentsClient) GetTag(ctx context.Context, path, tagName string) ([]string, error) {
	return d.res.Values(ctx, path, tagName)
}

// GetVersions lists the revisions of the document at path.
func (d *DocumentsClient) GetVersions(ctx context.Context, path string) ([]Version, error) {
	return rest.Fetch[[]Version](ctx, d.res.Client(), http.MethodGet, d.res.Path(path, "versions"), nil, nil)
}

// UpdateContent replaces the content of the document at path. id and date
// identify the revision being replaced.
func (d *DocumentsClient) UpdateContent(ctx context.Context, req NewDocument, path string, id uuid.UUID, date time.Time) (Document, error) {
	if err := validation.Validate(req); err != nil {
		return Document{}, err
	}
	query := url.Values{}
	query.Set("id", id.String())
	query.Set("date", date.UTC().Format(time.RFC3339Nano))
	return d.res.Update(ctx, path, query, req)
}
