package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	reg, err := DefaultRegistry("www.Example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"dummy", "www.bbcgoodfood.com", "www.example.com"}, reg.Hosts())

	a, ok := reg.Lookup("www.bbcgoodfood.com")
	require.True(t, ok)
	assert.IsType(t, BBCGoodFood{}, a)

	_, ok = reg.Lookup("bbcgoodfood.com")
	assert.False(t, ok)
}

func TestNewRegistry_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(BBCGoodFood{}, NewSchemaOrg("WWW.BBCGOODFOOD.COM"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = NewRegistry(NewSchemaOrg(" "))
	assert.Error(t, err)

	_, err = NewRegistry(nil)
	assert.Error(t, err)
}

func TestNilRegistry(t *testing.T) {
	t.Parallel()

	var reg *Registry
	_, ok := reg.Lookup("dummy")
	assert.False(t, ok)
	assert.Empty(t, reg.Hosts())
}
