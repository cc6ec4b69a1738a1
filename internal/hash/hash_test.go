package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name string
		data string
		want uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Fingerprint([]byte(tt.data)))
		})
	}
}

func TestDigest(t *testing.T) {
	// BLAKE3 of the empty input.
	require.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", DigestHex(nil))

	a := Digest([]byte("NCS payload"))
	b := Digest([]byte("NCS payload"))
	c := Digest([]byte("NCS payloaD"))
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}
