// stealth/metaaddress.go
// 接收方长期身份：双密钥（spending/viewing）元地址及其文本编码
// 文本格式：sip:<chain>:<spendingKeyHex>:<viewingKeyHex>（小写 hex，0x 前缀）

package stealth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"sip/chain"
	"sip/curve"
	"sip/secret"
)

// ========== 错误定义 ==========

var (
	// ErrInvalidEncoding 元地址/隐匿地址编码非法
	ErrInvalidEncoding = errors.New("invalid stealth encoding")
	// ErrRecoveryMismatch 回收出的私钥与隐匿地址不匹配（预期内的校验结果，非异常）
	ErrRecoveryMismatch = errors.New("recovered key does not match stealth address")
)

// metaAddressPrefix 元地址文本前缀
const metaAddressPrefix = "sip"

// MetaAddress 接收方元地址（公开部分）
type MetaAddress struct {
	Chain    string // 链标识（决定曲线族和地址编码规则）
	SpendPub []byte // spending 公钥压缩编码
	ViewPub  []byte // viewing 公钥压缩编码
}

// RecipientKeys 接收方私钥对；由调用方独占持有，本库绝不缓存
type RecipientKeys struct {
	SpendPriv *big.Int
	ViewPriv  *big.Int
}

// GenerateMetaAddress 生成元地址：两个独立随机种子各经曲线族的 seed→scalar 规则
// （ed25519 走 RFC-8032 clamping）得到 spending/viewing 私钥
func GenerateMetaAddress(chainTag string) (*MetaAddress, *RecipientKeys, error) {
	g, err := chain.CurveFor(chainTag)
	if err != nil {
		return nil, nil, err
	}

	spendPriv, err := randomSeedScalar(g)
	if err != nil {
		return nil, nil, err
	}
	viewPriv, err := randomSeedScalar(g)
	if err != nil {
		secret.WipeBig(spendPriv)
		return nil, nil, err
	}

	meta := &MetaAddress{
		Chain:    chain.NormalizeChain(chainTag),
		SpendPub: g.SerializePoint(g.ScalarBaseMult(spendPriv)),
		ViewPub:  g.SerializePoint(g.ScalarBaseMult(viewPriv)),
	}
	return meta, &RecipientKeys{SpendPriv: spendPriv, ViewPriv: viewPriv}, nil
}

// Wipe 擦除私钥标量
func (k *RecipientKeys) Wipe() {
	if k == nil {
		return
	}
	secret.WipeBig(k.SpendPriv)
	secret.WipeBig(k.ViewPriv)
}

// String 文本编码：sip:<chain>:0x<spend>:0x<view>
func (m *MetaAddress) String() string {
	return fmt.Sprintf("%s:%s:0x%s:0x%s",
		metaAddressPrefix, m.Chain,
		hex.EncodeToString(m.SpendPub),
		hex.EncodeToString(m.ViewPub))
}

// Validate 解码校验两个公钥点（失败即 fail closed，不做任何点运算）
func (m *MetaAddress) Validate() error {
	g, err := chain.CurveFor(m.Chain)
	if err != nil {
		return err
	}
	if _, err := g.DecompressPoint(m.SpendPub); err != nil {
		return fmt.Errorf("%w: spending key: %v", ErrInvalidEncoding, err)
	}
	if _, err := g.DecompressPoint(m.ViewPub); err != nil {
		return fmt.Errorf("%w: viewing key: %v", ErrInvalidEncoding, err)
	}
	return nil
}

// ParseMetaAddress 解析文本编码的元地址
func ParseMetaAddress(s string) (*MetaAddress, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: want 4 colon-separated fields, got %d", ErrInvalidEncoding, len(parts))
	}
	if parts[0] != metaAddressPrefix {
		return nil, fmt.Errorf("%w: prefix %q", ErrInvalidEncoding, parts[0])
	}
	chainTag := chain.NormalizeChain(parts[1])
	if !chain.IsValidChain(chainTag) {
		return nil, fmt.Errorf("%w: %q", chain.ErrUnsupportedChain, parts[1])
	}
	spendPub, err := decodeKeyHex(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: spending key: %v", ErrInvalidEncoding, err)
	}
	viewPub, err := decodeKeyHex(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: viewing key: %v", ErrInvalidEncoding, err)
	}
	m := &MetaAddress{Chain: chainTag, SpendPub: spendPub, ViewPub: viewPub}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeKeyHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") {
		return nil, errors.New("missing 0x prefix")
	}
	if s != strings.ToLower(s) {
		return nil, errors.New("must be lowercase hex")
	}
	return hex.DecodeString(s[2:])
}

// randomSeedScalar 32 字节随机种子经族规则转标量；种子用后即擦
func randomSeedScalar(g curve.Group) (*big.Int, error) {
	for {
		seed := make([]byte, curve.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			return nil, err
		}
		k, err := g.ScalarFromSeed(seed)
		secret.Wipe(seed)
		if err == nil {
			return k, nil
		}
		if !errors.Is(err, curve.ErrInvalidScalar) {
			return nil, err
		}
		// 零标量种子概率约 2^-252，重抽即可
	}
}
