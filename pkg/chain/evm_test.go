package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eth-swap/pkg/chain/chaintest"
	"eth-swap/pkg/types"
)

var (
	usdc   = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	wallet = common.HexToAddress("0x00000000219ab540356cBB839Cbe05303d7705Fa")
)

func TestTokenDecimals(t *testing.T) {
	p := chaintest.New()
	p.OnCall(usdc, "decimals()", chaintest.Returns(chaintest.Words(big.NewInt(6))))
	c := NewEVMClient(p)
	ctx := context.Background()

	assert.Equal(t, uint8(6), c.TokenDecimals(ctx, types.Token{Address: usdc}))
	assert.Equal(t, uint8(18), c.TokenDecimals(ctx, types.Token{Address: types.WETH, Native: true}))
	assert.Zero(t, p.CallCount(types.WETH, "decimals()"))

	// unknown contract reverts and falls back
	other := common.HexToAddress("0x1111111111111111111111111111111111111111")
	assert.Equal(t, uint8(18), c.TokenDecimals(ctx, types.Token{Address: other}))

	// undecodable answer falls back too
	p.OnCall(other, "decimals()", chaintest.Returns([]byte{0x01}))
	assert.Equal(t, uint8(18), c.TokenDecimals(ctx, types.Token{Address: other}))
}

func TestGasPriceFailureIsRemoteCallError(t *testing.T) {
	p := chaintest.New()
	p.GasPriceErr = errors.New("connection refused")

	_, err := NewEVMClient(p).GasPrice(context.Background())
	var rce *types.RemoteCallError
	require.True(t, errors.As(err, &rce))
	assert.Equal(t, "eth_gasPrice", rce.Method)
}

func TestCallFailureIsRemoteCallError(t *testing.T) {
	_, err := NewEVMClient(chaintest.New()).Call(context.Background(), common.Address{}, usdc, []byte{1, 2, 3, 4}, nil)
	var rce *types.RemoteCallError
	require.True(t, errors.As(err, &rce))
	assert.ErrorIs(t, err, chaintest.ErrReverted)
}

func TestBalance(t *testing.T) {
	p := chaintest.New()
	p.Balances[wallet] = new(big.Int).Mul(big.NewInt(15), big.NewInt(1e17))
	p.OnCall(usdc, "balanceOf(address)", chaintest.Returns(chaintest.Words(big.NewInt(2_500_000))))
	p.OnCall(usdc, "decimals()", chaintest.Returns(chaintest.Words(big.NewInt(6))))
	c := NewEVMClient(p)

	eth, err := c.Balance(context.Background(), wallet, nil)
	require.NoError(t, err)
	assert.Equal(t, "1.500000000000000000", eth.Balance)
	assert.Equal(t, uint8(18), eth.Decimals)
	assert.Equal(t, "1500000000000000000", eth.RawBalance)
	assert.Empty(t, eth.TokenAddress)

	tok, err := c.Balance(context.Background(), wallet, &usdc)
	require.NoError(t, err)
	assert.Equal(t, "2.500000", tok.Balance)
	assert.Equal(t, uint8(6), tok.Decimals)
	assert.Equal(t, usdc.Hex(), tok.TokenAddress)
}
