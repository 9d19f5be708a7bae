package server

import (
	"errors"

	"eth-swap/pkg/types"
)

// JSON-RPC error codes per error kind
const (
	codeInvalidInput             = -32602
	codeCodecError               = -32603
	codeUpstreamQuoteUnavailable = -32001
	codeRemoteCallError          = -32002
	codeInternal                 = -32000
)

// toolError carries the machine-readable kind to the client in the error's
// data member. It implements rpc.Error and rpc.DataError.
type toolError struct {
	code int
	msg  string
	data map[string]interface{}
}

func (e *toolError) Error() string          { return e.msg }
func (e *toolError) ErrorCode() int         { return e.code }
func (e *toolError) ErrorData() interface{} { return e.data }

// Kinds are matched outermost first: an unavailable quote wraps the remote
// or codec failure of its last attempt.
func toRPCError(err error) error {
	if err == nil {
		return nil
	}

	te := &toolError{code: codeInternal, msg: err.Error(), data: map[string]interface{}{}}

	var (
		invalid     *types.InvalidInputError
		codecErr    *types.CodecError
		unavailable *types.UpstreamQuoteUnavailableError
		remote      *types.RemoteCallError
	)
	switch {
	case errors.As(err, &invalid):
		te.code = codeInvalidInput
		te.data["kind"] = types.KindInvalidInput
		te.data["field"] = invalid.Field
	case errors.As(err, &unavailable):
		te.code = codeUpstreamQuoteUnavailable
		te.data["kind"] = types.KindUpstreamQuoteUnavailable
		tiers := make([]uint32, len(unavailable.Tiers))
		for i, t := range unavailable.Tiers {
			tiers[i] = uint32(t)
		}
		te.data["tiers"] = tiers
	case errors.As(err, &codecErr):
		te.code = codeCodecError
		te.data["kind"] = types.KindCodecError
		te.data["method"] = codecErr.Method
	case errors.As(err, &remote):
		te.code = codeRemoteCallError
		te.data["kind"] = types.KindRemoteCallError
		te.data["method"] = remote.Method
	default:
		te.data["kind"] = "Internal"
	}
	return te
}
