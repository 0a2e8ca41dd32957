package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := Connection("postgres", errors.New("dial tcp: refused"))
	assert.Equal(t, "postgres: connection error during connecting: dial tcp: refused", err.Error())

	err = Sink("", errors.New("bad extension"))
	assert.Equal(t, "sink error during sink: bad extension", err.Error())
}

func TestIs_ThroughWrapping(t *testing.T) {
	base := Protocol("elasticsearch", StageDiscovering, "missing %s", "hits.hits")
	wrapped := fmt.Errorf("extract: %w", base)

	assert.True(t, Is(wrapped, KindSourceProtocol))
	assert.False(t, Is(wrapped, KindConnection))
	assert.Equal(t, KindSourceProtocol, KindOf(wrapped))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := New(KindSink, "xlsx", StageSink, inner)
	assert.True(t, errors.Is(err, inner))
}
