// Package tronsigner builds and signs TRON TransferContract transactions,
// signs TRON-prefixed messages, and validates TRON addresses.
//
// Grounded on
// _examples/original_source/packages/wallet-core/core-rust/src/tron.rs
// (build_transaction/sign_message/validate_address/compute_txid) and on
// the address-constant naming used by
// _examples/other_examples/b9c54b1f_kslamph-tronlib__pkg-types-account.go.go
// (TronMessagePrefix, the 0x41 address version byte).
package tronsigner

import (
	"crypto/sha256"
	"encoding/json"
	"strconv"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/norwallet/walletcore/internal/codec"
	"github.com/norwallet/walletcore/internal/coreerr"
	"github.com/norwallet/walletcore/pkg/models"
)

// AddressVersion is TRON mainnet's base58check version byte.
const AddressVersion byte = 0x41

// TronMessagePrefix is prepended to messages before hashing, mirroring
// Ethereum's personal-sign convention but with TRON's own banner text.
const TronMessagePrefix = "\x19TRON Signed Message:\n"

// ValidateAddress reports whether s is a well-formed base58check TRON
// address with the 0x41 version byte and a 20-byte payload.
func ValidateAddress(s string) error {
	version, payload, err := codec.Base58CheckDecode(s)
	if err != nil {
		return coreerr.Wrap(coreerr.InvalidAddress, "tronsigner.ValidateAddress", err)
	}
	if version != AddressVersion {
		return coreerr.New(coreerr.InvalidAddress, "tronsigner.ValidateAddress", errBadVersion)
	}
	if len(payload) != 20 {
		return coreerr.New(coreerr.InvalidAddress, "tronsigner.ValidateAddress", errBadLength)
	}
	return nil
}

// canonicalRawData is the JSON shape TXID and signing are computed over.
// Field order is fixed by Go's encoding/json, which always marshals
// struct fields in declaration order — a stable, deterministic encoding,
// satisfying tron.rs's "canonical ordering is producer-chosen but stable"
// requirement without needing TRON's native protobuf wire format.
type canonicalRawData struct {
	OwnerAddress string `json:"owner_address"`
	ToAddress    string `json:"to_address"`
	Amount       string `json:"amount"`
	RefBlockHash string `json:"ref_block_hash"`
	RefBlockNum  int64  `json:"ref_block_num"`
	Expiration   int64  `json:"expiration"`
	Timestamp    int64  `json:"timestamp"`
	FeeLimit     int64  `json:"fee_limit,omitempty"`
}

// BuildTransaction assembles the canonical raw-data envelope for a TRON
// transfer. Kept as a distinct step from SignTransaction, mirroring
// tron.rs's build_transaction/sign_transaction split.
func BuildTransaction(p models.TronTxParams) ([]byte, error) {
	if err := ValidateAddress(p.OwnerAddress); err != nil {
		return nil, err
	}
	if err := ValidateAddress(p.ToAddress); err != nil {
		return nil, err
	}
	amount := p.Amount
	if amount == nil {
		return nil, coreerr.New(coreerr.InvalidTransaction, "tronsigner.BuildTransaction", errNilAmount)
	}
	raw := canonicalRawData{
		OwnerAddress: p.OwnerAddress,
		ToAddress:    p.ToAddress,
		Amount:       amount.String(),
		RefBlockHash: p.RefBlockHash,
		RefBlockNum:  p.RefBlockNum,
		Expiration:   p.Expiration,
		Timestamp:    p.Timestamp,
		FeeLimit:     p.FeeLimit,
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InternalError, "tronsigner.BuildTransaction", err)
	}
	return encoded, nil
}

// ComputeTxID hashes the canonical raw-data bytes with SHA256, mirroring
// tron.rs's compute_txid (TRON identifies transactions by the SHA256 of
// their raw_data, unlike Ethereum's Keccak256 of the signed envelope).
func ComputeTxID(rawData []byte) []byte {
	sum := sha256.Sum256(rawData)
	return sum[:]
}

// SignTransaction builds the raw-data envelope, computes its txid, and
// signs the txid with privateKey using the same secp256k1 recoverable
// signature scheme as EVM (TRON shares Ethereum's curve).
func SignTransaction(p models.TronTxParams, privateKey []byte) (*models.TronTransaction, error) {
	rawData, err := BuildTransaction(p)
	if err != nil {
		return nil, err
	}
	txID := ComputeTxID(rawData)

	key, err := gethcrypto.ToECDSA(privateKey)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InvalidPrivateKey, "tronsigner.SignTransaction", err)
	}
	sig, err := gethcrypto.Sign(txID, key)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.SigningError, "tronsigner.SignTransaction", err)
	}

	return &models.TronTransaction{
		TxID:      codec.HexEncode(txID),
		RawData:   rawData,
		Signature: sig,
	}, nil
}

// SignMessage signs an arbitrary message using TRON's prefixed-message
// convention: SHA256(TronMessagePrefix + decimalLen(message) + message).
// Per spec.md §4.4, the recovery byte is reported as 27/28 (same convention
// as EVM personal-sign), not TRON's raw 0/1 recovery id.
func SignMessage(message, privateKey []byte) ([]byte, error) {
	hash := MessageHash(message)
	key, err := gethcrypto.ToECDSA(privateKey)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InvalidPrivateKey, "tronsigner.SignMessage", err)
	}
	sig, err := gethcrypto.Sign(hash, key)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.SigningError, "tronsigner.SignMessage", err)
	}
	sig[64] += 27
	return sig, nil
}

// MessageHash computes the TRON-prefixed digest of a message. TRON uses
// SHA256 here, not Keccak256 — the same hash it uses for raw-data/txid,
// unlike EVM's keccak256-based personal-sign.
func MessageHash(message []byte) []byte {
	prefixed := append([]byte(TronMessagePrefix), []byte(strconv.Itoa(len(message)))...)
	prefixed = append(prefixed, message...)
	sum := sha256.Sum256(prefixed)
	return sum[:]
}

type tronError string

func (e tronError) Error() string { return string(e) }

const (
	errBadVersion = tronError("tronsigner: address has wrong version byte")
	errBadLength  = tronError("tronsigner: address payload must be 20 bytes")
	errNilAmount  = tronError("tronsigner: amount must not be nil")
)
