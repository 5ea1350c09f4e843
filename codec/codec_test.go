package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodecResolvesKnownPayloadTypes(t *testing.T) {
	for _, pt := range []uint8{PayloadTypePCMU, PayloadTypePCMA, PayloadTypeTelephoneEvent} {
		c, err := NewCodec(pt)
		require.NoError(t, err)
		assert.Equal(t, pt, c.PayloadType())
		assert.NoError(t, c.Close())
	}
}

func TestNewCodecPanicsOnUnknownPayloadType(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewCodec(111)
	})
}

func TestNewCodecPanicsOnG722(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewCodec(9)
	})
}
