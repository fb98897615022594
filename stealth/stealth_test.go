package stealth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sip/chain"
)

func newRecipient(t *testing.T, chainTag string) (*MetaAddress, *RecipientKeys) {
	t.Helper()
	meta, keys, err := GenerateMetaAddress(chainTag)
	require.NoError(t, err)
	return meta, keys
}

func TestGenerateMetaAddress(t *testing.T) {
	for _, chainTag := range []string{chain.ChainETH, chain.ChainSOL} {
		t.Run(chainTag, func(t *testing.T) {
			meta, keys := newRecipient(t, chainTag)
			require.NoError(t, meta.Validate())
			assert.NotNil(t, keys.SpendPriv)
			assert.NotNil(t, keys.ViewPriv)
			assert.NotEqual(t, 0, keys.SpendPriv.Cmp(keys.ViewPriv))

			g, err := chain.CurveFor(chainTag)
			require.NoError(t, err)
			assert.Equal(t, g.PointSize(), len(meta.SpendPub))
			assert.Equal(t, g.PointSize(), len(meta.ViewPub))
		})
	}
}

func TestGenerateMetaAddress_UnsupportedChain(t *testing.T) {
	_, _, err := GenerateMetaAddress("dogecoin")
	assert.ErrorIs(t, err, chain.ErrUnsupportedChain)
}

func TestMetaAddress_TextRoundTrip(t *testing.T) {
	for _, chainTag := range []string{chain.ChainETH, chain.ChainSOL} {
		t.Run(chainTag, func(t *testing.T) {
			meta, _ := newRecipient(t, chainTag)

			s := meta.String()
			assert.True(t, strings.HasPrefix(s, "sip:"+chainTag+":0x"))
			assert.Equal(t, s, strings.ToLower(s))

			parsed, err := ParseMetaAddress(s)
			require.NoError(t, err)
			assert.Equal(t, meta.Chain, parsed.Chain)
			assert.Equal(t, meta.SpendPub, parsed.SpendPub)
			assert.Equal(t, meta.ViewPub, parsed.ViewPub)
		})
	}
}

func TestParseMetaAddress_Malformed(t *testing.T) {
	meta, _ := newRecipient(t, chain.ChainETH)
	good := meta.String()

	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong prefix", strings.Replace(good, "sip:", "pay:", 1)},
		{"missing field", "sip:eth:0xabcd"},
		{"unknown chain", strings.Replace(good, ":eth:", ":dogecoin:", 1)},
		{"no 0x prefix", strings.ReplaceAll(good, ":0x", ":")},
		{"uppercase hex", strings.ToUpper(good)},
		{"truncated key", good[:len(good)-8]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMetaAddress(tc.input)
			assert.Error(t, err)
		})
	}
}

func TestStealthRoundTrip(t *testing.T) {
	// 两个曲线族都必须通过：派生→回收→公钥一致
	for _, chainTag := range []string{chain.ChainETH, chain.ChainBNB, chain.ChainSOL, chain.ChainNEAR} {
		t.Run(chainTag, func(t *testing.T) {
			meta, keys := newRecipient(t, chainTag)

			sa, err := DeriveAddress(meta)
			require.NoError(t, err)
			assert.Equal(t, chainTag, sa.Chain)
			assert.NotEmpty(t, sa.Address)
			require.NoError(t, sa.Validate())

			priv, err := RecoverPrivateKey(sa, keys.SpendPriv, keys.ViewPriv)
			require.NoError(t, err)

			// 回收出的私钥必须重现一次性地址
			g, err := chain.CurveFor(chainTag)
			require.NoError(t, err)
			addr, err := chain.AddressFromPoint(chainTag, g.ScalarBaseMult(priv))
			require.NoError(t, err)
			assert.Equal(t, sa.Address, addr)
		})
	}
}

func TestDeriveAddress_FreshPerCall(t *testing.T) {
	meta, _ := newRecipient(t, chain.ChainETH)

	sa1, err := DeriveAddress(meta)
	require.NoError(t, err)
	sa2, err := DeriveAddress(meta)
	require.NoError(t, err)

	// 一次性地址绝不复用：每次派生临时标量都是新抽的
	assert.NotEqual(t, sa1.Address, sa2.Address)
	assert.NotEqual(t, sa1.EphemeralPub, sa2.EphemeralPub)
}

func TestRecoverPrivateKey_WrongKeys(t *testing.T) {
	meta, _ := newRecipient(t, chain.ChainSOL)
	_, otherKeys := newRecipient(t, chain.ChainSOL)

	sa, err := DeriveAddress(meta)
	require.NoError(t, err)

	_, err = RecoverPrivateKey(sa, otherKeys.SpendPriv, otherKeys.ViewPriv)
	assert.ErrorIs(t, err, ErrRecoveryMismatch)
}

func TestRecoverPrivateKey_MalformedAddress(t *testing.T) {
	meta, keys := newRecipient(t, chain.ChainETH)
	sa, err := DeriveAddress(meta)
	require.NoError(t, err)

	bad := *sa
	bad.EphemeralPub = make([]byte, 5)
	_, err = RecoverPrivateKey(&bad, keys.SpendPriv, keys.ViewPriv)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	bad = *sa
	bad.Chain = "dogecoin"
	_, err = RecoverPrivateKey(&bad, keys.SpendPriv, keys.ViewPriv)
	assert.ErrorIs(t, err, chain.ErrUnsupportedChain)
}

func TestScan_FindsOwnAddress(t *testing.T) {
	meta, keys := newRecipient(t, chain.ChainSOL)

	// 1 个属于接收方 + 63 个他人的候选
	candidates := make([]*Address, 0, 64)
	for i := 0; i < 63; i++ {
		other, _ := newRecipient(t, chain.ChainSOL)
		sa, err := DeriveAddress(other)
		require.NoError(t, err)
		candidates = append(candidates, sa)
	}
	mine, err := DeriveAddress(meta)
	require.NoError(t, err)
	ownIndex := 41
	candidates = append(candidates[:ownIndex], append([]*Address{mine}, candidates[ownIndex:]...)...)

	matches, err := Scan(candidates, chain.ChainSOL, keys.SpendPriv, keys.ViewPriv)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, ownIndex, matches[0].Index)
	assert.Equal(t, mine, matches[0].Address)

	g, _ := chain.CurveFor(chain.ChainSOL)
	addr, err := chain.AddressFromPoint(chain.ChainSOL, g.ScalarBaseMult(matches[0].Priv))
	require.NoError(t, err)
	assert.Equal(t, mine.Address, addr)
}

func TestScan_SkipsGarbageCandidates(t *testing.T) {
	meta, keys := newRecipient(t, chain.ChainETH)
	mine, err := DeriveAddress(meta)
	require.NoError(t, err)

	candidates := []*Address{
		nil,
		{Chain: "sol"}, // 链不匹配
		{Chain: "eth", EphemeralPub: make([]byte, 3)}, // 编码垃圾
		mine,
	}
	matches, err := Scan(candidates, chain.ChainETH, keys.SpendPriv, keys.ViewPriv)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 3, matches[0].Index)
}

func TestViewTag_PrefilterRate(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}
	_, keys := newRecipient(t, chain.ChainETH)
	g, err := chain.CurveFor(chain.ChainETH)
	require.NoError(t, err)

	// 对 2048 个他人候选重算本地 view tag：
	// 期望约 2048/256 = 8 个碰撞触发完整回收，上界取 40（远超 5σ）
	const n = 2048
	collisions := 0
	for i := 0; i < n; i++ {
		other, _ := newRecipient(t, chain.ChainETH)
		sa, err := DeriveAddress(other)
		require.NoError(t, err)

		ephemeral, err := g.DecompressPoint(sa.EphemeralPub)
		require.NoError(t, err)
		digest := sharedSecretDigest(g, g.ScalarMult(ephemeral, keys.SpendPriv))
		if digest[0] == sa.ViewTag {
			collisions++
		}
	}
	assert.Less(t, collisions, 40, "view tag should reject roughly 255/256 of foreign candidates")
}
