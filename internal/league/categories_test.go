package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	require.Equal(t, 9, cats.Len())
	assert.Equal(t, []string{"FG%", "FT%", "3PM", "PTS", "REB", "AST", "STL", "BLK", "TO"}, cats.Names())

	fg, ok := cats.ByID("5")
	require.True(t, ok)
	assert.Equal(t, "FG%", fg.Name)
	assert.True(t, fg.IsPercentage())
	assert.Equal(t, 3, fg.AverageDecimals)

	to, ok := cats.ByName("TO")
	require.True(t, ok)
	assert.True(t, to.LowerIsBetter)
	assert.Equal(t, "19", to.ID)

	_, ok = cats.ByID("9004003")
	assert.False(t, ok, "unknown stat IDs are not in the table")
}

func TestNewCategoriesIgnoresDuplicates(t *testing.T) {
	cats := NewCategories(
		Category{ID: "1", Name: "A"},
		Category{ID: "1", Name: "B"},
		Category{ID: "2", Name: "A"},
		Category{ID: "3", Name: "C"},
	)
	assert.Equal(t, []string{"A", "C"}, cats.Names())
}

func TestAllReturnsCopy(t *testing.T) {
	cats := DefaultCategories()
	all := cats.All()
	all[0].Name = "changed"
	assert.Equal(t, "FG%", cats.All()[0].Name)
}

func TestWeekSet(t *testing.T) {
	s := NewWeekSet(16, 1, 7)
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(2))
	assert.Equal(t, []int{1, 7, 16}, s.Sorted())

	var empty WeekSet
	assert.False(t, empty.Has(1))
}
