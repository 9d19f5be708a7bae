package types

import (
	"fmt"
	"strings"
)

// ErrorKind is the machine-readable classification of a failed request
type ErrorKind string

const (
	KindInvalidInput             ErrorKind = "InvalidInput"
	KindCodecError               ErrorKind = "CodecError"
	KindUpstreamQuoteUnavailable ErrorKind = "UpstreamQuoteUnavailable"
	KindRemoteCallError          ErrorKind = "RemoteCallError"
)

// KindError is implemented by every request-level error
type KindError interface {
	error
	Kind() ErrorKind
}

// InvalidInputError is returned when a request field fails validation
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Kind() ErrorKind { return KindInvalidInput }

// InvalidInput creates an InvalidInputError
func InvalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// CodecError reports a failure to encode a call or decode its return data
type CodecError struct {
	Method string
	Err    error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("abi codec %s: %v", e.Method, e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

func (e *CodecError) Kind() ErrorKind { return KindCodecError }

// UpstreamQuoteUnavailableError is returned when no quote source produced a
// usable answer. Tiers lists the V3 fee tiers attempted and is empty for V2.
type UpstreamQuoteUnavailableError struct {
	Tiers []FeeTier
	Err   error
}

func (e *UpstreamQuoteUnavailableError) Error() string {
	if len(e.Tiers) == 0 {
		return fmt.Sprintf("no quote available: %v", e.Err)
	}
	tiers := make([]string, len(e.Tiers))
	for i, t := range e.Tiers {
		tiers[i] = fmt.Sprint(uint32(t))
	}
	return fmt.Sprintf("no quote available for fee tiers [%s]: %v", strings.Join(tiers, ", "), e.Err)
}

func (e *UpstreamQuoteUnavailableError) Unwrap() error { return e.Err }

func (e *UpstreamQuoteUnavailableError) Kind() ErrorKind { return KindUpstreamQuoteUnavailable }

// RemoteCallError wraps a failed request to the upstream chain provider or
// price index.
type RemoteCallError struct {
	Method string
	Err    error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Method, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

func (e *RemoteCallError) Kind() ErrorKind { return KindRemoteCallError }
