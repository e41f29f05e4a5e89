package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCriteriaDefaults(t *testing.T) {
	c := BuildCriteria("", "", "", "", 0)

	assert.Empty(t, c.Clauses)
	assert.Equal(t, DefaultSort, c.Sort)
	assert.Equal(t, 1, c.Page)
}

func TestBuildCriteriaAllParams(t *testing.T) {
	c := BuildCriteria("  usb cable ", "electronics", "active", "price-desc", 3)

	assert.Len(t, c.Clauses, 3)
	assert.Equal(t, TextSearch{Query: "usb cable"}, c.Clauses[0])
	assert.Equal(t, CategoryEquals{Category: "electronics"}, c.Clauses[1])
	assert.Equal(t, StatusEquals{Active: true}, c.Clauses[2])
	assert.Equal(t, Sort{Column: "price_cents", Desc: true}, c.Sort)
	assert.Equal(t, 3, c.Page)
}

func TestBuildCriteriaCategoryAllIsNoFilter(t *testing.T) {
	c := BuildCriteria("", "all", "", "", 1)
	assert.Empty(t, c.Clauses)
}

func TestBuildCriteriaInactiveStatus(t *testing.T) {
	c := BuildCriteria("", "", "inactive", "", 1)

	assert.Len(t, c.Clauses, 1)
	assert.Equal(t, StatusEquals{Active: false}, c.Clauses[0])
}

func TestBuildCriteriaUnknownStatusIgnored(t *testing.T) {
	c := BuildCriteria("", "", "archived", "", 1)
	assert.Empty(t, c.Clauses)
}

func TestBuildCriteriaSortKeys(t *testing.T) {
	tests := []struct {
		sortBy string
		want   Sort
	}{
		{"name-asc", Sort{Column: "name"}},
		{"name-desc", Sort{Column: "name", Desc: true}},
		{"price-asc", Sort{Column: "price_cents"}},
		{"createdAt-desc", Sort{Column: "created_at", Desc: true}},
		{"updatedAt-asc", Sort{Column: "updated_at"}},
		// anything unrecognized falls back to name ascending
		{"", DefaultSort},
		{"price", DefaultSort},
		{"price-sideways", DefaultSort},
		{"rating-desc", DefaultSort},
	}

	for _, tt := range tests {
		c := BuildCriteria("", "", "", tt.sortBy, 1)
		assert.Equal(t, tt.want, c.Sort, "sortBy=%q", tt.sortBy)
	}
}

func TestBuildCriteriaNegativePageClamped(t *testing.T) {
	c := BuildCriteria("", "", "", "", -7)
	assert.Equal(t, 1, c.Page)
}
