package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFactory(t *testing.T) {
	factory := NewFactory(Config{
		Host: "localhost",
		Port: "5432",
		Name: "portal",
		User: "reader",
	})

	require.NotNil(t, factory)
	assert.Equal(t, "portal", factory.cfg.Name)
}

func TestFetchProjectRefs_EmptyIDs(t *testing.T) {
	// An empty id set must return an empty map without touching the
	// database; the nil db would panic if a query were issued.
	store := &Store{db: nil}

	refs, err := store.FetchProjectRefs(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
}
