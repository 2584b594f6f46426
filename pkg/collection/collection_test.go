package collection_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/kidsisland/pkg/collection"
)

func TestMapFilter(t *testing.T) {
	upper := collection.Map([]string{"kite", "duck"}, strings.ToUpper)
	assert.Equal(t, []string{"KITE", "DUCK"}, upper)

	even := collection.Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)

	none := collection.Filter([]int{1}, func(int) bool { return false })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUniqueSorted(t *testing.T) {
	in := []string{"wooden", "bath", "wooden", "plush", "bath"}
	assert.Equal(t, []string{"wooden", "bath", "plush"}, collection.Unique(in))
	assert.Equal(t, []string{"bath", "plush", "wooden"}, collection.Sorted(collection.Unique(in)))
	assert.Equal(t, "wooden", in[0], "Sorted leaves its input alone")
}
