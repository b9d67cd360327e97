package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCommonReturnsACopy(t *testing.T) {
	catalog := NewProcedureCatalog()

	first := catalog.Common()
	require.NotEmpty(t, first)
	first[0].Name = "mutated"

	second := catalog.Common()
	assert.NotEqual(t, "mutated", second[0].Name)
}

func TestCatalogDraft(t *testing.T) {
	catalog := NewProcedureCatalog()
	entry := catalog.Common()[0]

	draft := catalog.Draft(entry)
	assert.Equal(t, entry.Name, draft.Description)
	assert.True(t, draft.Cost.Equal(entry.DefaultCost))
}
