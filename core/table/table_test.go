package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CopiesHeaders(t *testing.T) {
	headers := []string{"id", "name"}
	tbl := New(headers)
	headers[0] = "changed"

	assert.Equal(t, []string{"id", "name"}, tbl.Headers)
	assert.Equal(t, 0, tbl.Len())
}

func TestAppendRow(t *testing.T) {
	tbl := New([]string{"id", "name"})

	require.NoError(t, tbl.AppendRow([]string{"1", "alice"}))
	assert.Equal(t, 1, tbl.Len())

	err := tbl.AppendRow([]string{"2"})
	require.Error(t, err)

	var widthErr *RowWidthError
	require.True(t, errors.As(err, &widthErr))
	assert.Equal(t, 1, widthErr.Index)
	assert.Equal(t, 1, widthErr.Got)
	assert.Equal(t, 2, widthErr.Want)
	assert.Equal(t, 1, tbl.Len(), "rejected row must not be stored")
}

func TestValidate(t *testing.T) {
	tbl := &Table{
		Headers: []string{"a", "b"},
		Rows:    [][]string{{"1", "2"}, {"3", "4", "5"}},
	}
	err := tbl.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1 has 3 cells")

	assert.NoError(t, Empty().Validate())
}
