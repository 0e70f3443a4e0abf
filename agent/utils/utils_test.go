package utils

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
)

func TestRawKey(t *testing.T) {
	key := RawKey("8709812d-64e9-49ae-80a4-3c911209062b")
	b, err := base58.Decode(key)
	assert.NoError(t, err)
	assert.Len(t, b, 32)
	assert.Equal(t, key, RawKey("8709812d-64e9-49ae-80a4-3c911209062b"))
	assert.NotEqual(t, key, RawKey("other"))
}

func TestShortDID(t *testing.T) {
	did := ShortDID("link secret id")
	b, err := base58.Decode(did)
	assert.NoError(t, err)
	assert.Len(t, b, 16)
}

func TestHub_Defaults(t *testing.T) {
	h := &Hub{}
	assert.Equal(t, "test-vectors", h.VectorsDir())
	assert.Equal(t, "temp", h.TailsDir())
	assert.Contains(t, h.WorkDir(), ".indy_client")
	assert.Equal(t, Version, h.VersionInfo())

	h.SetVectorsDir("out")
	h.SetTailsDir("/tmp/tails")
	h.SetWorkDir("/tmp/work")
	assert.Equal(t, "out", h.VectorsDir())
	assert.Equal(t, "/tmp/tails", h.TailsDir())
	assert.Equal(t, "/tmp/work", h.WorkDir())
}
