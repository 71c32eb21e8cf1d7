package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnownValues(t *testing.T) {
	assert.Equal(t, "a", Encode(0))
	assert.Equal(t, "b", Encode(1))
	assert.Equal(t, "Z", Encode(51))
	assert.Equal(t, "ab", Encode(52))
	assert.Equal(t, "bb", Encode(53))
}

func TestEncodeNeverEmpty(t *testing.T) {
	for n := 0; n < 10000; n++ {
		assert.NotEmpty(t, Encode(n))
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 51, 52, 101, 5163, 20091, 1<<20 + 7} {
		got, err := Decode(Encode(n))
		require.NoError(t, err)
		assert.Equal(t, n, got, "vnum %d", n)
	}
}

func TestDecodeLeastSignificantFirst(t *testing.T) {
	// "ba" is digit 1 then digit 0: 1*1 + 0*52.
	n, err := Decode("ba")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = Decode("ab")
	require.NoError(t, err)
	assert.Equal(t, 52, n)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := Decode("")
	assert.Error(t, err)

	_, err = Decode("ab3")
	assert.Error(t, err)

	_, err = Decode("é")
	assert.Error(t, err)
}

func TestEncodePanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { Encode(-1) })
}
