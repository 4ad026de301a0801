// Package walletcore implements hierarchical-deterministic key management:
// mnemonic/entropy/private-key wallet construction, BIP-44 account
// derivation, and secret zeroization.
//
// Grounded on
// _examples/original_source/packages/wallet-core/core-rust/src/crypto/mod.rs
// (Wallet::new/from_mnemonic/from_private_key, derive_account idempotency,
// export_mnemonic/export_private_key, Drop/zeroize) and on the teacher's
// internal/wallet/eth.go deriveKey helper (BIP-32 hardened path walk using
// tyler-smith/go-bip32), generalized to any BIP-44 coin type.
package walletcore

import (
	"fmt"
	"math/big"
	"runtime"
	"sort"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/google/uuid"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	"github.com/norwallet/walletcore/internal/codec"
	"github.com/norwallet/walletcore/internal/coreerr"
)

// CoinType is the BIP-44 coin type segment of a derivation path.
type CoinType uint32

const (
	CoinTypeETH CoinType = 60
	CoinTypeTRX CoinType = 195
)

// DerivedAccount is one BIP-44 child key, with its secp256k1 scalar kept
// alongside the public address so signers can use it directly.
type DerivedAccount struct {
	Index          uint32
	Path           string
	Address        string
	PublicKeyBytes []byte
	privateKey     []byte // 32-byte secp256k1 scalar, zeroized on Close
}

// PrivateKey returns a copy of the account's private scalar. Callers must
// not retain it past the wallet's lifetime expectations.
func (a *DerivedAccount) PrivateKey() []byte {
	out := make([]byte, len(a.privateKey))
	copy(out, a.privateKey)
	return out
}

func (a *DerivedAccount) zero() {
	for i := range a.privateKey {
		a.privateKey[i] = 0
	}
}

// Wallet is a single HD wallet: an optional mnemonic, its BIP-32 master
// key, and a set of derived accounts for one coin type.
type Wallet struct {
	ID         string
	CoinType   CoinType
	mnemonic   string
	seed       []byte
	masterKey  *bip32.Key
	accounts   map[uint32]*DerivedAccount
	closed     bool
}

// FromEntropy generates a fresh wallet from random entropy (128 bits =
// 12-word mnemonic, per the teacher's bip39 usage and crypto/mod.rs's
// Wallet::new).
func FromEntropy(coinType CoinType, entropyBits int) (*Wallet, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InternalError, "walletcore.FromEntropy", err)
	}
	return FromEntropyBytes(coinType, entropy)
}

// FromEntropyBytes builds a wallet from caller-supplied entropy bytes
// (16 bytes = 128 bits = 12 words, 32 bytes = 256 bits = 24 words),
// mirroring crypto/mod.rs's Wallet::from_entropy(entropy: &[u8], ...)
// signature directly, rather than generating random entropy internally.
func FromEntropyBytes(coinType CoinType, entropy []byte) (*Wallet, error) {
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InternalError, "walletcore.FromEntropyBytes", err)
	}
	return FromMnemonic(coinType, mnemonic, "")
}

// FromMnemonic reconstructs a wallet from an existing BIP-39 mnemonic
// (optionally with a BIP-39 passphrase).
func FromMnemonic(coinType CoinType, mnemonic, passphrase string) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, coreerr.New(coreerr.InvalidMnemonic, "walletcore.FromMnemonic", nil)
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InvalidMnemonic, "walletcore.FromMnemonic", err)
	}
	w := &Wallet{
		ID:        uuid.NewString(),
		CoinType:  coinType,
		mnemonic:  mnemonic,
		seed:      seed,
		masterKey: master,
		accounts:  make(map[uint32]*DerivedAccount),
	}
	// Mirrors crypto/mod.rs's Wallet::from_entropy/from_mnemonic, which
	// eagerly derive account 0 so a freshly constructed wallet always has
	// a usable address without a separate derive call.
	if _, err := w.DeriveAccount(0); err != nil {
		return nil, err
	}
	// Best-effort zeroization if the caller forgets to call Close,
	// mirroring simple_wallet.go's runtime.SetFinalizer(wallet, cleanup).
	runtime.SetFinalizer(w, (*Wallet).Close)
	return w, nil
}

// FromPrivateKeyHex builds a wallet from a hex-encoded secp256k1 scalar,
// accepting an optional "0x"/"0X" prefix. Per spec.md §4.1, the string
// must decode to exactly 32 bytes (64 hex chars) and the scalar must be in
// [1, n-1]; anything else fails InvalidPrivateKey.
func FromPrivateKeyHex(coinType CoinType, hexScalar string) (*Wallet, error) {
	trimmed := hexScalar
	if len(trimmed) >= 2 && trimmed[0] == '0' && (trimmed[1] == 'x' || trimmed[1] == 'X') {
		trimmed = trimmed[2:]
	}
	if len(trimmed) != 64 {
		return nil, coreerr.New(coreerr.InvalidPrivateKey, "walletcore.FromPrivateKeyHex", fmt.Errorf("expected 64 hex chars, got %d", len(trimmed)))
	}
	raw, err := codec.HexDecode(trimmed)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InvalidPrivateKey, "walletcore.FromPrivateKeyHex", err)
	}
	return FromPrivateKey(coinType, raw)
}

// secp256k1Order is the order n of the secp256k1 group, against which a raw
// scalar must validate to [1, n-1] before it can be used as a private key.
var secp256k1Order = func() *big.Int {
	n, ok := new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
	if !ok {
		panic("walletcore: invalid secp256k1 order constant")
	}
	return n
}()

// FromPrivateKey builds a single-account, mnemonic-less wallet directly
// from a 32-byte secp256k1 scalar. No further derivation is possible; the
// lone account is stored at index 0.
func FromPrivateKey(coinType CoinType, privateKey []byte) (*Wallet, error) {
	if len(privateKey) != 32 {
		return nil, coreerr.New(coreerr.InvalidPrivateKey, "walletcore.FromPrivateKey", nil)
	}
	scalar := new(big.Int).SetBytes(privateKey)
	if scalar.Sign() == 0 || scalar.Cmp(secp256k1Order) >= 0 {
		return nil, coreerr.New(coreerr.InvalidPrivateKey, "walletcore.FromPrivateKey", fmt.Errorf("scalar out of range [1, n-1]"))
	}
	addr, pub, err := addressFor(coinType, privateKey)
	if err != nil {
		return nil, err
	}
	acc := &DerivedAccount{
		Index:          0,
		Path:           "imported",
		Address:        addr,
		PublicKeyBytes: pub,
		privateKey:     append([]byte(nil), privateKey...),
	}
	w := &Wallet{
		ID:       uuid.NewString(),
		CoinType: coinType,
		accounts: map[uint32]*DerivedAccount{0: acc},
	}
	runtime.SetFinalizer(w, (*Wallet).Close)
	return w, nil
}

// DeriveAccount derives (or returns the already-derived) account at the
// given index. Idempotent: calling it twice with the same index returns
// the same address, mirroring crypto/mod.rs's derive_account.
func (w *Wallet) DeriveAccount(index uint32) (*DerivedAccount, error) {
	if acc, ok := w.accounts[index]; ok {
		return acc, nil
	}
	if w.masterKey == nil {
		return nil, coreerr.New(coreerr.InvalidInput, "Wallet.DeriveAccount", fmt.Errorf("wallet has no mnemonic to derive from"))
	}

	path := fmt.Sprintf("m/44'/%d'/0'/0/%d", uint32(w.CoinType), index)
	key, err := deriveChild(w.masterKey, uint32(w.CoinType), index)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.InternalError, "Wallet.DeriveAccount", err)
	}

	addr, pub, err := addressFor(w.CoinType, key.Key)
	if err != nil {
		return nil, err
	}

	acc := &DerivedAccount{
		Index:          index,
		Path:           path,
		Address:        addr,
		PublicKeyBytes: pub,
		privateKey:     append([]byte(nil), key.Key...),
	}
	w.accounts[index] = acc
	return acc, nil
}

// ExportMnemonic returns the wallet's BIP-39 mnemonic, if it has one.
func (w *Wallet) ExportMnemonic() (string, error) {
	if w.mnemonic == "" {
		return "", coreerr.New(coreerr.InvalidInput, "Wallet.ExportMnemonic", fmt.Errorf("wallet was not created from a mnemonic"))
	}
	return w.mnemonic, nil
}

// ExportPrivateKey returns the hex-encoded private scalar for a derived
// account index.
func (w *Wallet) ExportPrivateKey(index uint32) (string, error) {
	acc, ok := w.accounts[index]
	if !ok {
		return "", coreerr.New(coreerr.InvalidInput, "Wallet.ExportPrivateKey", fmt.Errorf("account %d not derived", index))
	}
	return codec.HexEncode(acc.privateKey), nil
}

// Accounts returns all derived accounts for this wallet, sorted by index.
func (w *Wallet) Accounts() []*DerivedAccount {
	out := make([]*DerivedAccount, 0, len(w.accounts))
	for _, acc := range w.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Close zeroizes the wallet's seed and every derived account's private
// scalar. Mirrors crypto/mod.rs's Drop impl via the zeroize crate; Go has
// no destructor equivalent so callers should invoke Close explicitly, but
// every constructor also registers it as a runtime finalizer as a
// best-effort backstop.
func (w *Wallet) Close() {
	if w.closed {
		return
	}
	for i := range w.seed {
		w.seed[i] = 0
	}
	for _, acc := range w.accounts {
		acc.zero()
	}
	w.mnemonic = ""
	w.closed = true
	runtime.SetFinalizer(w, nil)
}

// Clone deep-copies a wallet, including independent copies of every
// secret scalar, so the registry can hand out clones without sharing
// mutable secret state across callers.
func (w *Wallet) Clone() *Wallet {
	clone := &Wallet{
		ID:       w.ID,
		CoinType: w.CoinType,
		mnemonic: w.mnemonic,
		accounts: make(map[uint32]*DerivedAccount, len(w.accounts)),
	}
	if w.seed != nil {
		clone.seed = append([]byte(nil), w.seed...)
	}
	if w.masterKey != nil {
		mk := *w.masterKey
		clone.masterKey = &mk
	}
	for idx, acc := range w.accounts {
		clone.accounts[idx] = &DerivedAccount{
			Index:          acc.Index,
			Path:           acc.Path,
			Address:        acc.Address,
			PublicKeyBytes: append([]byte(nil), acc.PublicKeyBytes...),
			privateKey:     append([]byte(nil), acc.privateKey...),
		}
	}
	runtime.SetFinalizer(clone, (*Wallet).Close)
	return clone
}

// --- derivation helpers ---

func deriveChild(master *bip32.Key, coinType, index uint32) (*bip32.Key, error) {
	purpose, err := master.NewChildKey(bip32.FirstHardenedChild + 44)
	if err != nil {
		return nil, fmt.Errorf("derive purpose: %w", err)
	}
	coin, err := purpose.NewChildKey(bip32.FirstHardenedChild + coinType)
	if err != nil {
		return nil, fmt.Errorf("derive coin: %w", err)
	}
	account, err := coin.NewChildKey(bip32.FirstHardenedChild + 0)
	if err != nil {
		return nil, fmt.Errorf("derive account: %w", err)
	}
	change, err := account.NewChildKey(0)
	if err != nil {
		return nil, fmt.Errorf("derive change: %w", err)
	}
	child, err := change.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child: %w", err)
	}
	return child, nil
}

// addressFor computes the network-appropriate address string and
// uncompressed public key bytes for a 32-byte secp256k1 scalar. EVM
// coin types (60) get 0x-hex addresses; TRON (195) gets base58check.
func addressFor(coinType CoinType, privKeyBytes []byte) (address string, pubKey []byte, err error) {
	_, pub := btcec.PrivKeyFromBytes(privKeyBytes)
	pubBytes := pub.SerializeUncompressed()
	hash := codec.Keccak256(pubBytes[1:]) // skip 0x04 prefix
	last20 := hash[12:]

	switch coinType {
	case CoinTypeTRX:
		return codec.Base58CheckEncode(0x41, last20), pubBytes, nil
	case CoinTypeETH:
		return codec.HexEncode(last20), pubBytes, nil
	default:
		return codec.HexEncode(last20), pubBytes, nil
	}
}
