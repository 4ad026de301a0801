// ERC-4337 UserOperation hashing, signing, and counterfactual account
// address computation.
//
// Grounded on
// _examples/original_source/packages/wallet-core/core-rust/src/aa.rs
// (build_user_operation/sign_user_operation/compute_userop_hash,
// create_account placeholder). aa.rs's compute_userop_hash is a simplified
// string-concat-then-keccak; SPEC_FULL.md §3.7 calls for the normative
// nested ABI-encode form instead, implemented below by padding each field
// into a 32-byte ABI word by hand (no accounts/abi dependency).
package evmsigner

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/norwallet/walletcore/internal/codec"
	"github.com/norwallet/walletcore/internal/coreerr"
	"github.com/norwallet/walletcore/pkg/models"
)

// leftPad32 returns data right-aligned in a 32-byte big-endian word, the
// ABI "uint256"/"address" packing convention.
func leftPad32(b []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func bigWord(v *big.Int) []byte {
	if v == nil {
		v = big.NewInt(0)
	}
	return leftPad32(v.Bytes())
}

// packUserOp ABI-encodes the UserOperation fields in EntryPoint v0.6's
// getUserOpHash layout: each dynamic field (initCode, callData,
// paymasterAndData) is hashed first, then the fixed-size fields and those
// inner hashes are concatenated and hashed again — the "nested ABI-encode"
// form the original hand-rolled implementation skipped.
func packUserOp(p models.UserOpParams) []byte {
	sender := common.HexToAddress(p.Sender)
	initCodeHash := codec.Keccak256(p.InitCode)
	callDataHash := codec.Keccak256(p.CallData)
	paymasterHash := codec.Keccak256(p.PaymasterAndData)

	var buf []byte
	buf = append(buf, leftPad32(sender.Bytes())...)
	buf = append(buf, bigWord(p.Nonce)...)
	buf = append(buf, initCodeHash...)
	buf = append(buf, callDataHash...)
	buf = append(buf, bigWord(p.CallGasLimit)...)
	buf = append(buf, bigWord(p.VerificationGasLimit)...)
	buf = append(buf, bigWord(p.PreVerificationGas)...)
	buf = append(buf, bigWord(p.MaxFeePerGas)...)
	buf = append(buf, bigWord(p.MaxPriorityFeePerGas)...)
	buf = append(buf, paymasterHash...)
	return buf
}

// UserOpHash computes the EntryPoint-domain-separated UserOperation hash:
// keccak256(abi.encode(keccak256(packUserOp(op)), entryPoint, chainId)).
func UserOpHash(p models.UserOpParams, chainID int64) []byte {
	inner := codec.Keccak256(packUserOp(p))
	entryPoint := common.HexToAddress(p.EntryPoint)

	var buf []byte
	buf = append(buf, inner...)
	buf = append(buf, leftPad32(entryPoint.Bytes())...)
	buf = append(buf, bigWord(big.NewInt(chainID))...)
	return codec.Keccak256(buf)
}

// SignUserOperation computes the UserOpHash and signs that digest directly
// with the same recoverable-ECDSA routine personal-sign uses internally
// (v = recoveryId + 27), per aa.rs's sign_user_operation
// (Message::from_digest_slice(&hash), v = recovery_id + 27) and SPEC_FULL.md
// §3.7 — NOT a second EIP-191 wrapping, since the returned UserOperation.Hash
// is the bare UserOpHash and a caller recovering (Hash, Signature) must land
// on the signer without re-framing it.
func SignUserOperation(p models.UserOpParams, chainID int64, privateKey []byte) (*models.UserOperation, error) {
	hash := UserOpHash(p, chainID)
	key, err := toECDSA(privateKey)
	if err != nil {
		return nil, err
	}
	sig, err := gethcrypto.Sign(hash, key)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.SigningError, "evmsigner.SignUserOperation", err)
	}
	sig[64] += 27
	return &models.UserOperation{
		UserOpParams: p,
		Signature:    sig,
		Hash:         codec.HexEncode(hash),
	}, nil
}

// CreateAccountAddress is the documented placeholder counterfactual
// address scheme from aa.rs's create_account: keccak256(owner ||
// chainId || entryPoint)[12:]. It is NOT a real CREATE2 address and must
// not be used to predict an on-chain account factory's output; kept only
// for compatibility with callers that depended on aa.rs's original
// behavior. Prefer ComputeCreate2Address for anything that needs to match
// an actual factory deployment.
//
// Deprecated: use ComputeCreate2Address.
func CreateAccountAddress(owner string, chainID int64, entryPoint string) (string, error) {
	ownerAddr := common.HexToAddress(owner)
	epAddr := common.HexToAddress(entryPoint)
	data := append(append([]byte{}, ownerAddr.Bytes()...), bigWord(big.NewInt(chainID))...)
	data = append(data, epAddr.Bytes()...)
	hash := codec.Keccak256(data)
	return codec.HexEncode(hash[12:]), nil
}

// ComputeCreate2Address implements the normative CREATE2 address formula
// (EIP-1014): keccak256(0xff || factory || salt || keccak256(initCode))[12:].
// This is the correct replacement for CreateAccountAddress's placeholder,
// as flagged in SPEC_FULL.md §3.8 / spec.md §9.
func ComputeCreate2Address(factory string, salt [32]byte, initCode []byte) (string, error) {
	if factory == "" {
		return "", coreerr.New(coreerr.InvalidAddress, "evmsigner.ComputeCreate2Address", nil)
	}
	factoryAddr := common.HexToAddress(factory)
	initCodeHash := codec.Keccak256(initCode)

	var buf []byte
	buf = append(buf, 0xff)
	buf = append(buf, factoryAddr.Bytes()...)
	buf = append(buf, salt[:]...)
	buf = append(buf, initCodeHash...)
	hash := codec.Keccak256(buf)
	return codec.HexEncode(hash[12:]), nil
}
