package file_io

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEnumerator is a mock type for the Enumerator type
type MockEnumerator struct {
	mock.Mock
}

// Enumerate is a mock method
func (m *MockEnumerator) Enumerate(ctx context.Context, root string, ignorePaths map[string]bool) (*Enumeration, error) {
	args := m.Called(ctx, root, ignorePaths)
	e, _ := args.Get(0).(*Enumeration)
	return e, args.Error(1)
}
