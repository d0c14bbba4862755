package project

import "context"

// DocumentStore persists the whole application document. Load reports
// repository.ErrNotFound when no document has been stored yet; Save
// overwrites the stored document in full.
type DocumentStore interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}
