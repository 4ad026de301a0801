//go:build cgo

// Command norwalletffi is the cgo C-ABI boundary for embedding the wallet
// core in Swift/Kotlin host apps, mirroring
// _examples/original_source/backup/wallets/wallet-core/core-rust/src/ffi.rs's
// #[no_mangle] extern "C" surface (NorString, nor_wallet_create,
// nor_wallet_from_mnemonic, nor_wallet_from_private_key, nor_sign_transaction,
// nor_get_balance, nor_get_chain_rpc, nor_get_chain_id, nor_string_free,
// nor_init_logger) translated to Go's //export mechanism. Built with
// `go build -buildmode=c-shared`; the cgo build constraint above limits it
// to builds with cgo enabled, since it requires a C toolchain, and it is
// not imported by the rest of the module.
package main

/*
#include <stdlib.h>

typedef struct NorString {
	char* ptr;
	size_t len;
} NorString;
*/
import "C"

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/big"
	"os"
	"time"
	"unsafe"

	"github.com/norwallet/walletcore/internal/codec"
	"github.com/norwallet/walletcore/internal/network"
	"github.com/norwallet/walletcore/internal/registry"
	"github.com/norwallet/walletcore/internal/rpcclient"
	"github.com/norwallet/walletcore/internal/walletcore"
	"github.com/norwallet/walletcore/pkg/manager"
	"github.com/norwallet/walletcore/pkg/models"
)

var ffiRegistry = registry.New()

func norString(s string) C.NorString {
	cs := C.CString(s)
	return C.NorString{ptr: cs, len: C.size_t(len(s))}
}

func emptyObject() C.NorString { return norString("{}") }

//export nor_wallet_create
func nor_wallet_create() C.NorString {
	wm := manager.NewWalletManager(ffiRegistry)
	info, err := wm.CreateWallet(walletcore.CoinTypeETH)
	if err != nil {
		return emptyObject()
	}
	data, err := json.Marshal(info)
	if err != nil {
		return emptyObject()
	}
	return norString(string(data))
}

//export nor_wallet_from_mnemonic
func nor_wallet_from_mnemonic(mnemonic *C.char) C.NorString {
	if mnemonic == nil {
		return emptyObject()
	}
	wm := manager.NewWalletManager(ffiRegistry)
	info, err := wm.ImportMnemonic(walletcore.CoinTypeETH, C.GoString(mnemonic), "")
	if err != nil {
		return emptyObject()
	}
	data, err := json.Marshal(info)
	if err != nil {
		return emptyObject()
	}
	return norString(string(data))
}

//export nor_wallet_from_private_key
func nor_wallet_from_private_key(privateKeyHex *C.char) C.NorString {
	if privateKeyHex == nil {
		return emptyObject()
	}
	wm := manager.NewWalletManager(ffiRegistry)
	info, err := wm.ImportPrivateKeyHex(walletcore.CoinTypeETH, C.GoString(privateKeyHex))
	if err != nil {
		return emptyObject()
	}
	data, err := json.Marshal(info)
	if err != nil {
		return emptyObject()
	}
	return norString(string(data))
}

//export nor_wallet_get_mnemonic
func nor_wallet_get_mnemonic(walletID *C.char) C.NorString {
	if walletID == nil {
		return emptyObject()
	}
	wm := manager.NewWalletManager(ffiRegistry)
	mnemonic, err := wm.ExportMnemonic(C.GoString(walletID))
	if err != nil {
		return emptyObject()
	}
	return norString(mnemonic)
}

// nor_sign_transaction signs a legacy EVM transaction for an account
// already registered under walletID, per spec.md §6's
// sign_transaction(from, to, value, data, gasLimit, gasPrice, nonce,
// chainId) entry point. The opaque walletID + accountIndex pair stands in
// for spec.md's bare "from" since the FFI boundary never holds a raw
// private key itself — only the registry, behind the same wallet id the
// Swift/Kotlin host already received from nor_wallet_create, can resolve
// one.
//
//export nor_sign_transaction
func nor_sign_transaction(walletID *C.char, accountIndex C.uint, to, value, dataHex, gasPrice *C.char, gasLimit, nonce, chainID C.ulonglong) C.NorString {
	if walletID == nil {
		return emptyObject()
	}
	data, err := codec.HexDecode(C.GoString(dataHex))
	if err != nil {
		data = nil
	}
	valueWei, ok := new(big.Int).SetString(C.GoString(value), 10)
	if !ok {
		valueWei = big.NewInt(0)
	}
	gasPriceWei, ok := new(big.Int).SetString(C.GoString(gasPrice), 10)
	if !ok {
		gasPriceWei = big.NewInt(0)
	}

	params := models.EvmTxParams{
		ChainID:  int64(chainID),
		Nonce:    uint64(nonce),
		To:       C.GoString(to),
		Value:    valueWei,
		Data:     data,
		GasLimit: uint64(gasLimit),
		GasPrice: gasPriceWei,
	}

	em := manager.NewEvmManager(ffiRegistry)
	tx, err := em.SignTransaction(C.GoString(walletID), uint32(accountIndex), params)
	if err != nil {
		return emptyObject()
	}
	out, err := json.Marshal(tx)
	if err != nil {
		return emptyObject()
	}
	return norString(string(out))
}

// nor_get_balance queries addr's wei balance against rpcURL, per spec.md
// §6's get_balance(addr, rpcUrl) entry point. A fresh *rpcclient.Client is
// built per call since the FFI boundary has no long-lived session to hang
// a reused client off; internal callers should prefer RpcManager directly.
//
//export nor_get_balance
func nor_get_balance(addr, rpcURL *C.char) C.NorString {
	if addr == nil || rpcURL == nil {
		return emptyObject()
	}
	client := rpcclient.NewClient(C.GoString(rpcURL))
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	balance, err := client.GetBalance(ctx, C.GoString(addr))
	if err != nil {
		return norString("")
	}
	return norString(balance.String())
}

//export nor_get_chain_rpc
func nor_get_chain_rpc() C.NorString {
	return norString(network.NorChain.RPCURL)
}

//export nor_get_chain_id
func nor_get_chain_id() C.ulonglong {
	return C.ulonglong(network.NorChain.ChainID)
}

//export nor_string_free
func nor_string_free(s C.NorString) {
	if s.ptr != nil {
		C.free(unsafe.Pointer(s.ptr))
	}
}

//export nor_init_logger
func nor_init_logger(level C.uchar) {
	// Levels per spec.md §6: {0: Trace, 1: Debug, 2: Info, 3: Warn,
	// 4: Error}; unknown values map to Info. slog has no Trace level, so
	// Trace is folded into Debug (the next-finest level slog offers).
	var lvl slog.Level
	switch level {
	case 0, 1:
		lvl = slog.LevelDebug
	case 2:
		lvl = slog.LevelInfo
	case 3:
		lvl = slog.LevelWarn
	case 4:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func main() {}
