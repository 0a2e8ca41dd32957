package cmd

import (
	"testing"

	"data-extractor/core/fault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaders(t *testing.T) {
	got, err := parseHeaders(`["id","name"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, got)

	got, err = parseHeaders(`[]`)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = parseHeaders(`id,name`)
	assert.True(t, fault.Is(err, fault.KindConfiguration))
}

func TestParseFields(t *testing.T) {
	got, err := parseFields(`{"Status":"done","Count":2}`)
	require.NoError(t, err)
	assert.Equal(t, "done", got["Status"])

	_, err = parseFields(`[1,2]`)
	assert.True(t, fault.Is(err, fault.KindConfiguration))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"extract", "update", "sources", "serve"} {
		assert.True(t, names[want], want)
	}
}
