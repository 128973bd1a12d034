package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjects_UniqueIDs(t *testing.T) {
	seen := make(map[int]bool)
	for _, p := range Projects() {
		assert.False(t, seen[p.ID], "duplicate project id %d", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Technologies)
	}
	assert.Len(t, seen, 6)
}

func TestProjects_ReturnsIndependentCopies(t *testing.T) {
	first := Projects()
	first[0].Title = "changed"
	first[0].Technologies[0] = "changed"
	*first[0].Link = "changed"

	second := Projects()
	require.NotEmpty(t, second)
	assert.Equal(t, "E-commerce Platform", second[0].Title)
	assert.Equal(t, "React", second[0].Technologies[0])
	assert.Equal(t, "https://example.com/ecommerce", *second[0].Link)
}

func TestServices_ReturnsIndependentCopies(t *testing.T) {
	first := Services()
	first[1].Features[0] = "changed"

	second := Services()
	assert.Len(t, second, 6)
	assert.Equal(t, "3D product configurators", second[1].Features[0])
}
