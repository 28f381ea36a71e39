package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseName(t *testing.T) {
	name, err := DatabaseName("mongodb://localhost:27017/fleet_prod")
	require.NoError(t, err)
	assert.Equal(t, "fleet_prod", name)

	name, err = DatabaseName("mongodb://localhost:27017")
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabase, name)

	_, err = DatabaseName("postgres://localhost")
	assert.ErrorContains(t, err, "invalid MongoDB URI")
}

type stubIndexes struct {
	calls int
	err   error
}

func (s *stubIndexes) CreateIndexes(ctx context.Context) error {
	s.calls++
	return s.err
}

func TestEnsureIndexes_ContinuesAfterFailure(t *testing.T) {
	failing := &stubIndexes{err: errors.New("boom")}
	ok := &stubIndexes{}

	EnsureIndexes(context.Background(), failing, ok)

	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls)
}
