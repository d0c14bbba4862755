package mocks

import (
	"context"

	"github.com/avenclark/photosift/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// DocumentStore is a mock for project.DocumentStore.
type DocumentStore struct {
	mock.Mock
}

func (m *DocumentStore) Load(ctx context.Context) (*project.Document, error) {
	args := m.Called(ctx)
	if doc, ok := args.Get(0).(*project.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentStore) Save(ctx context.Context, doc *project.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}
