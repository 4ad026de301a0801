package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeccak256_FixedLength(t *testing.T) {
	got := Keccak256([]byte{})
	assert.Len(t, got, 32)

	got2 := Keccak256([]byte("nonempty"))
	assert.Len(t, got2, 32)
	assert.NotEqual(t, got, got2)
}

func TestKeccak256_Concat(t *testing.T) {
	single := Keccak256([]byte("hello"))
	split := Keccak256([]byte("hel"), []byte("lo"))
	assert.Equal(t, single, split)
}

func TestDoubleSHA256_Deterministic(t *testing.T) {
	a := DoubleSHA256([]byte("payload"))
	b := DoubleSHA256([]byte("payload"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestHexEncodeDecode_RoundTrip(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	encoded := HexEncode(data)
	assert.Equal(t, "0xdeadbeef", encoded)

	decoded, err := HexDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestHexDecode_AcceptsMissingPrefix(t *testing.T) {
	decoded, err := HexDecode("deadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, decoded)
}

func TestBase58CheckEncodeDecode_RoundTrip(t *testing.T) {
	payload := make([]byte, 20)
	for i := range payload {
		payload[i] = byte(i)
	}
	encoded := Base58CheckEncode(0x41, payload)

	version, decoded, err := Base58CheckDecode(encoded)
	require.NoError(t, err)
	assert.Equal(t, byte(0x41), version)
	assert.Equal(t, payload, decoded)
}

func TestBase58CheckDecode_RejectsBadChecksum(t *testing.T) {
	payload := make([]byte, 20)
	encoded := Base58CheckEncode(0x41, payload)
	tampered := "1" + encoded[1:] // corrupt a body byte, checksum no longer matches
	_, _, err := Base58CheckDecode(tampered)
	assert.Error(t, err)
}

