// Package evmsigner implements EVM transaction and message signing: legacy
// EIP-155 and EIP-1559 transaction envelopes, EIP-191 personal-sign,
// ERC-4337 UserOperation hashing/signing, and signature recovery.
//
// Grounded on
// _examples/original_source/backup/wallets/wallet-core/core-rust/src/evm.rs
// (build_transaction/sign_transaction/sign_message/recover_signer/
// estimate_gas) and aa.rs (build_user_operation/sign_user_operation/
// compute_userop_hash), reimplemented with go-ethereum's crypto and rlp
// packages in place of evm.rs's hand-rolled hashing — the same library the
// rest of the retrieved pack reaches for (other_examples/Covsj-gokit,
// other_examples/vorpalengineering-x402-go, other_examples/kslamph-tronlib)
// — and using *big.Int throughout to avoid the u64-overflow bug evm.rs has
// when parsing value/gas_price.
package evmsigner

import (
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strconv"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/norwallet/walletcore/internal/codec"
	"github.com/norwallet/walletcore/internal/coreerr"
	"github.com/norwallet/walletcore/pkg/models"
)

// accessTuple is an empty placeholder for EIP-2930 access lists; this
// module never populates one but must emit a correctly-shaped empty RLP
// list for EIP-1559 envelopes.
type accessTuple struct {
	Address     []byte
	StorageKeys [][]byte
}

type legacySigningRLP struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       []byte
	Value    *big.Int
	Data     []byte
	ChainID  *big.Int
	Zero1    *big.Int
	Zero2    *big.Int
}

type legacySignedRLP struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       []byte
	Value    *big.Int
	Data     []byte
	V        *big.Int
	R        *big.Int
	S        *big.Int
}

type dynamicFeeSigningRLP struct {
	ChainID              *big.Int
	Nonce                uint64
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int
	GasLimit             uint64
	To                   []byte
	Value                *big.Int
	Data                 []byte
	AccessList           []accessTuple
}

type dynamicFeeSignedRLP struct {
	ChainID              *big.Int
	Nonce                uint64
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int
	GasLimit             uint64
	To                   []byte
	Value                *big.Int
	Data                 []byte
	AccessList           []accessTuple
	V                    *big.Int
	R                    *big.Int
	S                    *big.Int
}

func toBytes(addr string) ([]byte, error) {
	if addr == "" {
		return nil, nil
	}
	return codec.HexDecode(addr)
}

// SignTransaction builds and signs an EVM transaction per params, choosing
// the legacy EIP-155 envelope or the EIP-1559 type-2 envelope depending on
// which fee fields are populated.
func SignTransaction(params models.EvmTxParams, privateKey []byte) (*models.EvmTransaction, error) {
	to, err := toBytes(params.To)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InvalidAddress, "evmsigner.SignTransaction", err)
	}
	value := params.Value
	if value == nil {
		value = big.NewInt(0)
	}

	if params.IsEIP1559() {
		return sign1559(params, to, value, privateKey)
	}
	return signLegacy(params, to, value, privateKey)
}

func signLegacy(params models.EvmTxParams, to []byte, value *big.Int, privateKey []byte) (*models.EvmTransaction, error) {
	gasPrice := params.GasPrice
	if gasPrice == nil {
		gasPrice = big.NewInt(0)
	}
	chainID := big.NewInt(params.ChainID)

	unsigned := legacySigningRLP{
		Nonce:    params.Nonce,
		GasPrice: gasPrice,
		Gas:      params.GasLimit,
		To:       to,
		Value:    value,
		Data:     params.Data,
		ChainID:  chainID,
		Zero1:    big.NewInt(0),
		Zero2:    big.NewInt(0),
	}
	encoded, err := rlp.EncodeToBytes(unsigned)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InvalidTransaction, "evmsigner.signLegacy", err)
	}
	hash := codec.Keccak256(encoded)

	key, err := toECDSA(privateKey)
	if err != nil {
		return nil, err
	}
	sig, err := gethcrypto.Sign(hash, key)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.SigningError, "evmsigner.signLegacy", err)
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	recID := uint64(sig[64])
	v := recID + 35 + 2*uint64(params.ChainID)

	signed := legacySignedRLP{
		Nonce:    params.Nonce,
		GasPrice: gasPrice,
		Gas:      params.GasLimit,
		To:       to,
		Value:    value,
		Data:     params.Data,
		V:        new(big.Int).SetUint64(v),
		R:        r,
		S:        s,
	}
	rawSigned, err := rlp.EncodeToBytes(signed)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InvalidTransaction, "evmsigner.signLegacy", err)
	}
	txHash := codec.Keccak256(rawSigned)

	from, err := recoverAddress(hash, sig)
	if err != nil {
		return nil, err
	}

	return &models.EvmTransaction{
		Hash:      codec.HexEncode(txHash),
		RawSigned: rawSigned,
		From:      from,
		V:         v,
		R:         codec.HexEncode(r.Bytes()),
		S:         codec.HexEncode(s.Bytes()),
	}, nil
}

func sign1559(params models.EvmTxParams, to []byte, value *big.Int, privateKey []byte) (*models.EvmTransaction, error) {
	chainID := big.NewInt(params.ChainID)

	unsigned := dynamicFeeSigningRLP{
		ChainID:              chainID,
		Nonce:                params.Nonce,
		MaxPriorityFeePerGas: params.MaxPriorityFeePerGas,
		MaxFeePerGas:         params.MaxFeePerGas,
		GasLimit:             params.GasLimit,
		To:                   to,
		Value:                value,
		Data:                 params.Data,
		AccessList:           []accessTuple{},
	}
	body, err := rlp.EncodeToBytes(unsigned)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InvalidTransaction, "evmsigner.sign1559", err)
	}
	encoded := append([]byte{0x02}, body...)
	hash := codec.Keccak256(encoded)

	key, err := toECDSA(privateKey)
	if err != nil {
		return nil, err
	}
	sig, err := gethcrypto.Sign(hash, key)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.SigningError, "evmsigner.sign1559", err)
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	recID := uint64(sig[64])

	signed := dynamicFeeSignedRLP{
		ChainID:              chainID,
		Nonce:                params.Nonce,
		MaxPriorityFeePerGas: params.MaxPriorityFeePerGas,
		MaxFeePerGas:         params.MaxFeePerGas,
		GasLimit:             params.GasLimit,
		To:                   to,
		Value:                value,
		Data:                 params.Data,
		AccessList:           []accessTuple{},
		V:                    new(big.Int).SetUint64(recID),
		R:                    r,
		S:                    s,
	}
	signedBody, err := rlp.EncodeToBytes(signed)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InvalidTransaction, "evmsigner.sign1559", err)
	}
	rawSigned := append([]byte{0x02}, signedBody...)
	txHash := codec.Keccak256(rawSigned)

	from, err := recoverAddress(hash, sig)
	if err != nil {
		return nil, err
	}

	return &models.EvmTransaction{
		Hash:      codec.HexEncode(txHash),
		RawSigned: rawSigned,
		From:      from,
		V:         recID,
		R:         codec.HexEncode(r.Bytes()),
		S:         codec.HexEncode(s.Bytes()),
	}, nil
}

// SignPersonalMessage implements EIP-191 personal-sign: keccak256 of
// "\x19Ethereum Signed Message:\n" + len(message) + message, signed with
// the given private key.
func SignPersonalMessage(message, privateKey []byte) ([]byte, error) {
	hash := PersonalMessageHash(message)
	key, err := toECDSA(privateKey)
	if err != nil {
		return nil, err
	}
	sig, err := gethcrypto.Sign(hash, key)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.SigningError, "evmsigner.SignPersonalMessage", err)
	}
	// EIP-191 recovery byte is reported as 27/28, not 0/1.
	sig[64] += 27
	return sig, nil
}

// PersonalMessageHash computes the EIP-191 prefixed digest of a message.
func PersonalMessageHash(message []byte) []byte {
	prefix := []byte("\x19Ethereum Signed Message:\n")
	lenStr := []byte(strconv.Itoa(len(message)))
	return codec.Keccak256(prefix, lenStr, message)
}

// RecoverSigner recovers the EIP-55 checksummed hex address that produced sig
// over hash. sig must be 65 bytes (r||s||v) with v in {0,1,27,28}.
func RecoverSigner(hash, sig []byte) (string, error) {
	if len(sig) != 65 {
		return "", coreerr.New(coreerr.SigningError, "evmsigner.RecoverSigner", errBadSigLen)
	}
	normalized := append([]byte(nil), sig...)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	return recoverAddress(hash, normalized)
}

func recoverAddress(hash, sig []byte) (string, error) {
	pub, err := gethcrypto.SigToPub(hash, sig)
	if err != nil {
		return "", coreerr.Wrap(coreerr.SigningError, "evmsigner.recoverAddress", err)
	}
	addr := gethcrypto.PubkeyToAddress(*pub)
	return addr.Hex(), nil
}

func toECDSA(privateKey []byte) (*ecdsa.PrivateKey, error) {
	key, err := gethcrypto.ToECDSA(privateKey)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InvalidPrivateKey, "evmsigner.toECDSA", err)
	}
	return key, nil
}

var errBadSigLen = errors.New("evmsigner: signature must be 65 bytes")
