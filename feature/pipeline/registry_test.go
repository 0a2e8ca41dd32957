package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds_ReturnsCopy(t *testing.T) {
	got := Kinds()
	got[0].Name = "changed"
	assert.Equal(t, "postgres", Kinds()[0].Name)
}

func TestLookup(t *testing.T) {
	k, ok := lookup("mongodb")
	assert.True(t, ok)
	assert.Equal(t, "document", k.Family)

	_, ok = lookup("oracle")
	assert.False(t, ok)

	// Every kind is accepted by request validation.
	for _, k := range Kinds() {
		assert.Contains(t, "postgres mysql sqlite mongodb redis elasticsearch csv", k.Name)
	}
}
