// stealth/stealth.go
// DKSAP 一次性地址：发送方派生 + 接收方回收
// 共享密钥 S 只在双方本地出现，绝不上链

package stealth

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"sip/chain"
	"sip/curve"
	"sip/secret"
)

// sharedSecretDomain ECDH 共享密钥哈希的域分离字符串
// 必须与外部电路/其他实现逐字节一致
const sharedSecretDomain = "sip/stealth/shared/v1"

// Address 一次性隐匿地址（每笔交易由发送方生成，接收方消费一次，绝不复用）
type Address struct {
	Chain        string // 链标识
	Address      string // 按链规则编码的一次性地址
	StealthPub   []byte // 隐匿公钥压缩编码
	EphemeralPub []byte // 临时公钥 R 压缩编码
	ViewTag      byte   // Hash(S) 首字节，扫描时的廉价预过滤
}

// DeriveAddress 发送方派生一次性地址
// r 随机临时标量；R = r·G；S = r·SpendPub（DH）；h = HashToScalar(S)
// 隐匿公钥 = ViewPub + h·G；view tag = Hash(S)[0]
func DeriveAddress(meta *MetaAddress) (*Address, error) {
	if meta == nil {
		return nil, fmt.Errorf("%w: nil meta-address", ErrInvalidEncoding)
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	g, err := chain.CurveFor(meta.Chain)
	if err != nil {
		return nil, err
	}
	spendPub, _ := g.DecompressPoint(meta.SpendPub)
	viewPub, _ := g.DecompressPoint(meta.ViewPub)

	r, err := g.RandomScalar()
	if err != nil {
		return nil, err
	}
	defer secret.WipeBig(r)

	ephemeral := g.ScalarBaseMult(r)
	shared := g.ScalarMult(spendPub, r)
	digest := sharedSecretDigest(g, shared)
	defer secret.Wipe(digest[:])
	wipePoint(shared)

	h := g.ReduceScalar(digest[:])
	defer secret.WipeBig(h)

	stealthPub := g.Add(viewPub, g.ScalarBaseMult(h))
	addr, err := chain.AddressFromPoint(meta.Chain, stealthPub)
	if err != nil {
		return nil, err
	}

	return &Address{
		Chain:        meta.Chain,
		Address:      addr,
		StealthPub:   g.SerializePoint(stealthPub),
		EphemeralPub: g.SerializePoint(ephemeral),
		ViewTag:      digest[0],
	}, nil
}

// RecoverPrivateKey 接收方回收一次性地址的私钥
// S' = spendPriv·R（与发送方的 S 因标量乘交换律相同）；priv = viewPriv + h' mod Order
// 返回的私钥标量归调用方所有，用后必须擦除
//
// twisted-Edwards 族注意：返回值是裸的域标量，必须直接作为标量派生公钥，
// 绝不能再走该族标准的 seed→key 哈希展开（那会悄悄得到一把无关密钥）
func RecoverPrivateKey(sa *Address, spendPriv, viewPriv *big.Int) (*big.Int, error) {
	g, stealthPub, ephemeral, err := decodeAddress(sa)
	if err != nil {
		return nil, err
	}

	shared := g.ScalarMult(ephemeral, spendPriv)
	digest := sharedSecretDigest(g, shared)
	defer secret.Wipe(digest[:])
	wipePoint(shared)

	h := g.ReduceScalar(digest[:])
	defer secret.WipeBig(h)

	priv := new(big.Int).Add(viewPriv, h)
	priv.Mod(priv, g.Order())

	// 回收结果必须能重现隐匿公钥
	if !g.ScalarBaseMult(priv).Equal(stealthPub) {
		secret.WipeBig(priv)
		return nil, ErrRecoveryMismatch
	}
	return priv, nil
}

// Validate 解码校验隐匿地址的所有字段（不做回收运算）
func (sa *Address) Validate() error {
	_, _, _, err := decodeAddress(sa)
	return err
}

// decodeAddress 所有校验在任何点运算之前完成
func decodeAddress(sa *Address) (curve.Group, curve.Point, curve.Point, error) {
	if sa == nil {
		return nil, curve.Point{}, curve.Point{}, fmt.Errorf("%w: nil stealth address", ErrInvalidEncoding)
	}
	g, err := chain.CurveFor(sa.Chain)
	if err != nil {
		return nil, curve.Point{}, curve.Point{}, err
	}
	stealthPub, err := g.DecompressPoint(sa.StealthPub)
	if err != nil {
		return nil, curve.Point{}, curve.Point{}, fmt.Errorf("%w: stealth public point: %v", ErrInvalidEncoding, err)
	}
	ephemeral, err := g.DecompressPoint(sa.EphemeralPub)
	if err != nil {
		return nil, curve.Point{}, curve.Point{}, fmt.Errorf("%w: ephemeral point: %v", ErrInvalidEncoding, err)
	}
	return g, stealthPub, ephemeral, nil
}

// sharedSecretDigest Hash(domain || S)，h 标量与 view tag 都从这一个摘要取
func sharedSecretDigest(g curve.Group, shared curve.Point) [32]byte {
	h := sha256.New()
	h.Write([]byte(sharedSecretDomain))
	h.Write([]byte{0x00})
	h.Write(g.SerializePoint(shared))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func wipePoint(p curve.Point) {
	secret.WipeBig(p.X)
	secret.WipeBig(p.Y)
}
