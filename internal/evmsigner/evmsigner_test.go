package evmsigner

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norwallet/walletcore/internal/coreerr"
	"github.com/norwallet/walletcore/pkg/models"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	return key
}

func TestSignTransaction_Legacy_ProducesHashAndFrom(t *testing.T) {
	key := testKey()
	params := models.EvmTxParams{
		ChainID:  65001,
		Nonce:    0,
		To:       "0x000000000000000000000000000000deadbeef",
		Value:    big.NewInt(1_000_000),
		GasLimit: 21_000,
		GasPrice: big.NewInt(20_000_000_000),
	}

	tx, err := SignTransaction(params, key)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tx.Hash, "0x"))
	assert.NotEmpty(t, tx.RawSigned)
	assert.True(t, tx.V >= 35+2*65001)
	assert.True(t, strings.HasPrefix(tx.From, "0x"))
}

func TestSignTransaction_EIP1559_UsesTypeTwoEnvelope(t *testing.T) {
	key := testKey()
	params := models.EvmTxParams{
		ChainID:              65001,
		Nonce:                5,
		To:                   "0x000000000000000000000000000000deadbeef",
		Value:                big.NewInt(0),
		GasLimit:             100_000,
		MaxFeePerGas:         big.NewInt(30_000_000_000),
		MaxPriorityFeePerGas: big.NewInt(1_000_000_000),
	}
	require.True(t, params.IsEIP1559())

	tx, err := SignTransaction(params, key)
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), tx.RawSigned[0])
	assert.True(t, tx.V == 0 || tx.V == 1)
}

func TestSignTransaction_DeterministicSamePrivateKey(t *testing.T) {
	key := testKey()
	params := models.EvmTxParams{
		ChainID:  65001,
		To:       "0x000000000000000000000000000000deadbeef",
		Value:    big.NewInt(1),
		GasLimit: 21_000,
		GasPrice: big.NewInt(1),
	}
	tx1, err := SignTransaction(params, key)
	require.NoError(t, err)
	tx2, err := SignTransaction(params, key)
	require.NoError(t, err)
	assert.Equal(t, tx1.Hash, tx2.Hash)
	assert.Equal(t, tx1.From, tx2.From)
}

func TestSignPersonalMessage_RecoversSameAddress(t *testing.T) {
	key := testKey()
	message := []byte("hello nor wallet")

	sig, err := SignPersonalMessage(message, key)
	require.NoError(t, err)
	require.Len(t, sig, 65)

	hash := PersonalMessageHash(message)
	recoveredAddr, err := RecoverSigner(hash, sig)
	require.NoError(t, err)

	ecdsaKey, err := crypto.ToECDSA(key)
	require.NoError(t, err)
	wantAddr := crypto.PubkeyToAddress(ecdsaKey.PublicKey).Hex()

	assert.Equal(t, strings.ToLower(wantAddr), strings.ToLower(recoveredAddr))
}

func TestRecoverSigner_RejectsWrongLengthSignature(t *testing.T) {
	_, err := RecoverSigner([]byte("somehash"), []byte{1, 2, 3})
	assert.ErrorIs(t, err, coreerr.New(coreerr.SigningError, "", nil))
}

func TestEstimateTotalCost_NoOverflowWithLargeGasPrice(t *testing.T) {
	huge, ok := new(big.Int).SetString("1000000000000000000000000000000", 10)
	require.True(t, ok)
	total := EstimateTotalCost(21_000, huge)
	want := new(big.Int).Mul(big.NewInt(21_000), huge)
	assert.Equal(t, want, total)
}

func TestComputeCreate2Address_Deterministic(t *testing.T) {
	var salt [32]byte
	salt[31] = 1
	initCode := []byte{0x60, 0x80, 0x60, 0x40}

	addr1, err := ComputeCreate2Address("0x000000000000000000000000000000deadbeef", salt, initCode)
	require.NoError(t, err)
	addr2, err := ComputeCreate2Address("0x000000000000000000000000000000deadbeef", salt, initCode)
	require.NoError(t, err)
	assert.Equal(t, addr1, addr2)
	assert.True(t, strings.HasPrefix(addr1, "0x"))
}

func TestComputeCreate2Address_RejectsEmptyFactory(t *testing.T) {
	var salt [32]byte
	_, err := ComputeCreate2Address("", salt, nil)
	assert.Error(t, err)
}

func TestUserOpHash_ChangesWithNonce(t *testing.T) {
	base := models.UserOpParams{
		Sender:               "0x000000000000000000000000000000deadbeef",
		Nonce:                big.NewInt(0),
		CallData:             []byte{0x01},
		CallGasLimit:         big.NewInt(100000),
		VerificationGasLimit: big.NewInt(100000),
		PreVerificationGas:   big.NewInt(21000),
		MaxFeePerGas:         big.NewInt(1),
		MaxPriorityFeePerGas: big.NewInt(1),
		EntryPoint:           "0x0000000000000000000000000000000000dead",
	}
	other := base
	other.Nonce = big.NewInt(1)

	h1 := UserOpHash(base, 65001)
	h2 := UserOpHash(other, 65001)
	assert.NotEqual(t, h1, h2)
}

func TestSignUserOperation_ProducesSignatureAndHash(t *testing.T) {
	key := testKey()
	p := models.UserOpParams{
		Sender:               "0x000000000000000000000000000000deadbeef",
		Nonce:                big.NewInt(0),
		CallData:             []byte{0x01},
		CallGasLimit:         big.NewInt(100000),
		VerificationGasLimit: big.NewInt(100000),
		PreVerificationGas:   big.NewInt(21000),
		MaxFeePerGas:         big.NewInt(1),
		MaxPriorityFeePerGas: big.NewInt(1),
		EntryPoint:           "0x0000000000000000000000000000000000dead",
	}
	op, err := SignUserOperation(p, 65001, key)
	require.NoError(t, err)
	assert.Len(t, op.Signature, 65)
	assert.True(t, strings.HasPrefix(op.Hash, "0x"))
}

func TestSignUserOperation_SignatureRecoversReportedSigner(t *testing.T) {
	key := testKey()
	p := models.UserOpParams{
		Sender:               "0x000000000000000000000000000000deadbeef",
		Nonce:                big.NewInt(0),
		CallData:             []byte{0x01},
		CallGasLimit:         big.NewInt(100000),
		VerificationGasLimit: big.NewInt(100000),
		PreVerificationGas:   big.NewInt(21000),
		MaxFeePerGas:         big.NewInt(1),
		MaxPriorityFeePerGas: big.NewInt(1),
		EntryPoint:           "0x0000000000000000000000000000000000dead",
	}
	op, err := SignUserOperation(p, 65001, key)
	require.NoError(t, err)

	hash := UserOpHash(p, 65001)
	recovered, err := RecoverSigner(hash, op.Signature)
	require.NoError(t, err)

	ecdsaKey, err := crypto.ToECDSA(key)
	require.NoError(t, err)
	wantAddr := crypto.PubkeyToAddress(ecdsaKey.PublicKey).Hex()
	assert.Equal(t, strings.ToLower(wantAddr), strings.ToLower(recovered))
}
