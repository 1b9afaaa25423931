package mocks

import (
	"context"

	"pokemon-service/feature/pokemon/lookup"

	"github.com/stretchr/testify/mock"
)

// Lookup is a mock implementation of lookup.Lookup
type Lookup struct {
	mock.Mock
}

func (m *Lookup) Find(ctx context.Context, name string) (*lookup.Pokemon, error) {
	args := m.Called(ctx, name)
	if p, ok := args.Get(0).(*lookup.Pokemon); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
