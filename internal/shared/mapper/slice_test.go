package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	got := MapSlice([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, got)

	empty := MapSlice[int, string](nil, strconv.Itoa)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMapSliceErr(t *testing.T) {
	got, err := MapSliceErr([]string{"4", "5"}, strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, got)

	_, err = MapSliceErr([]string{"4", "x"}, strconv.Atoi)
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = MapSliceErr([]int{1}, func(int) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}
