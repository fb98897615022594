package chain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sip/curve"
)

func TestNormalizeChain(t *testing.T) {
	assert.Equal(t, "eth", NormalizeChain("  ETH "))
	assert.Equal(t, "sol", NormalizeChain("Sol"))
}

func TestIsValidChain(t *testing.T) {
	for _, c := range SupportedChains {
		assert.True(t, IsValidChain(c))
		assert.True(t, IsValidChain(strings.ToUpper(c)))
	}
	assert.False(t, IsValidChain("dogecoin"))
	assert.False(t, IsValidChain(""))
}

func TestCurveFor(t *testing.T) {
	for _, c := range []string{ChainETH, ChainBNB, ChainPOL} {
		g, err := CurveFor(c)
		require.NoError(t, err)
		assert.Equal(t, "secp256k1", g.Name())
		assert.True(t, IsEVM(c))
	}
	for _, c := range []string{ChainSOL, ChainNEAR} {
		g, err := CurveFor(c)
		require.NoError(t, err)
		assert.Equal(t, "ed25519", g.Name())
		assert.False(t, IsEVM(c))
	}

	_, err := CurveFor("dogecoin")
	assert.ErrorIs(t, err, ErrUnsupportedChain)
}

func TestAddressFromPoint_EVM(t *testing.T) {
	g, err := CurveFor(ChainETH)
	require.NoError(t, err)
	k, err := g.RandomScalar()
	require.NoError(t, err)
	p := g.ScalarBaseMult(k)

	addr, err := AddressFromPoint(ChainETH, p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(addr, "0x"))
	assert.Equal(t, 42, len(addr))

	// 同一个点在所有 EVM 链上的地址一致
	addr2, err := AddressFromPoint(ChainBNB, p)
	require.NoError(t, err)
	assert.Equal(t, addr, addr2)
}

func TestAddressFromPoint_Base58(t *testing.T) {
	g, err := CurveFor(ChainSOL)
	require.NoError(t, err)
	k, err := g.RandomScalar()
	require.NoError(t, err)
	p := g.ScalarBaseMult(k)

	addr, err := AddressFromPoint(ChainSOL, p)
	require.NoError(t, err)
	assert.NotEmpty(t, addr)
	assert.False(t, strings.HasPrefix(addr, "0x"))
	// base58 字母表不含 0 O I l
	assert.NotContains(t, addr, "0")
	assert.NotContains(t, addr, "O")
	assert.NotContains(t, addr, "I")
	assert.NotContains(t, addr, "l")
}

func TestAddressFromPoint_Rejects(t *testing.T) {
	g, _ := CurveFor(ChainETH)
	k, err := g.RandomScalar()
	require.NoError(t, err)
	p := g.ScalarBaseMult(k)

	_, err = AddressFromPoint("dogecoin", p)
	assert.ErrorIs(t, err, ErrUnsupportedChain)

	_, err = AddressFromPoint(ChainETH, curve.Point{})
	assert.ErrorIs(t, err, curve.ErrInvalidPoint)
}
