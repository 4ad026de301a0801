// Package codec implements the primitive byte/text codecs shared by the
// EVM and TRON signers: hex, base58check, and keccak256 and double-SHA256
// digests. RLP transaction envelopes are encoded in internal/evmsigner.
//
// Grounded on the teacher's internal/wallet/btc.go (base58CheckEncode,
// hash160, doubleSHA256) and internal/wallet/eth.go (keccak256), widened
// to a standalone package so both the EVM and TRON signers can share it
// without importing each other.
package codec

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes data with the Keccak-256 (pre-NIST SHA3) function used
// by Ethereum and TRON address/signature derivation.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// DoubleSHA256 computes SHA256(SHA256(data)), used for base58check
// checksums and Bitcoin-style transaction ids.
func DoubleSHA256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// HexEncode returns the 0x-prefixed lowercase hex encoding of data.
func HexEncode(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}

// HexDecode decodes a hex string, accepting an optional 0x/0X prefix.
func HexDecode(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

// Base58CheckEncode encodes a version byte and payload as
// Base58(version || payload || checksum[:4]) where checksum is the
// double-SHA256 of version||payload. Used for TRON (version 0x41).
func Base58CheckEncode(version byte, payload []byte) string {
	data := make([]byte, 0, 1+len(payload)+4)
	data = append(data, version)
	data = append(data, payload...)
	checksum := DoubleSHA256(data)
	data = append(data, checksum[:4]...)
	return base58.Encode(data)
}

// Base58CheckDecode reverses Base58CheckEncode, validating the checksum.
// It returns the version byte and payload.
func Base58CheckDecode(s string) (version byte, payload []byte, err error) {
	decoded := base58.Decode(s)
	if len(decoded) < 5 {
		return 0, nil, errShortPayload
	}
	body := decoded[:len(decoded)-4]
	checksum := decoded[len(decoded)-4:]
	want := DoubleSHA256(body)[:4]
	if string(checksum) != string(want) {
		return 0, nil, errBadChecksum
	}
	return body[0], body[1:], nil
}

var (
	errShortPayload = codecError("base58check: payload too short")
	errBadChecksum  = codecError("base58check: checksum mismatch")
)

type codecError string

func (e codecError) Error() string { return string(e) }
