// Package coreerr defines the closed error taxonomy shared across the
// wallet core. The wallet core's exported operations return a *CoreError
// (wrapped via the standard error interface) rather than an ad-hoc error,
// so callers can branch on Kind with errors.As. The primitive decoders in
// internal/codec are the exception: they return plain errors, which their
// callers wrap into a Kind.
//
// Grounded on _examples/original_source/packages/wallet-core/core-rust/src/error.rs,
// whose CoreError enum and From<...> conversions this mirrors idiomatically.
package coreerr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of error categories a caller can branch on.
type Kind string

const (
	InvalidMnemonic   Kind = "InvalidMnemonic"
	InvalidPrivateKey Kind = "InvalidPrivateKey"
	InvalidAddress    Kind = "InvalidAddress"
	InvalidTransaction Kind = "InvalidTransaction"
	SigningError      Kind = "SigningError"
	RpcError          Kind = "RpcError"
	NetworkError      Kind = "NetworkError"
	InvalidInput      Kind = "InvalidInput"
	InternalError     Kind = "InternalError"
)

// CoreError is the concrete error type returned by this module's public API.
type CoreError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *CoreError) Error() string {
	if e.Err == nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s", e.Op, e.Kind)
		}
		return string(e.Kind)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *CoreError) Unwrap() error { return e.Err }

// Is allows errors.Is(err, coreerr.New(coreerr.InvalidAddress, "", nil))
// style kind comparisons: any *CoreError target with the same Kind matches.
func (e *CoreError) Is(target error) bool {
	var ce *CoreError
	if errors.As(target, &ce) {
		return ce.Kind == e.Kind
	}
	return false
}

// New constructs a CoreError of the given Kind, optionally wrapping an
// underlying cause and recording the operation that failed.
func New(kind Kind, op string, cause error) *CoreError {
	return &CoreError{Kind: kind, Op: op, Err: cause}
}

// Wrap classifies a foreign error (from a dependency) into the given Kind,
// preserving it as the wrapped cause. Mirrors error.rs's From<T> impls that
// map bip39::Error, hex::FromHexError, serde_json::Error, reqwest::Error,
// etc. into CoreError variants.
func Wrap(kind Kind, op string, cause error) *CoreError {
	if cause == nil {
		return nil
	}
	return New(kind, op, cause)
}

// KindOf extracts the Kind of err if it is (or wraps) a *CoreError,
// returning InternalError for anything else.
func KindOf(err error) Kind {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return InternalError
}
