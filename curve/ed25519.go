// curve/ed25519.go
// twisted-Edwards 族后端：Kyber 的 edwards25519 封装为 Group 接口
// 压缩编码：32 字节，无前缀；原始种子转标量必须走 RFC-8032 clamping

package curve

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/edwards25519"
)

// Ed25519Group 将 Edwards25519 曲线封装为 Group 接口
// 注意：Solana/NEAR 使用标准 Ed25519，此处基于 Kyber 实现其点运算
type Ed25519Group struct {
	suite *edwards25519.SuiteEd25519
}

// NewEd25519Group 返回一个新的 Ed25519Group 实例
func NewEd25519Group() *Ed25519Group {
	return &Ed25519Group{
		suite: edwards25519.NewBlakeSHA256Ed25519(),
	}
}

func (g *Ed25519Group) Name() string { return "ed25519" }

func (g *Ed25519Group) Order() *big.Int {
	// Ed25519 群阶 L = 2^252 + 27742317777372353535851937790883648493
	order, _ := new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	return order
}

func (g *Ed25519Group) Modulus() *big.Int {
	// Ed25519 素数域 P = 2^255 - 19
	p, _ := new(big.Int).SetString("57896044618658097711785492504343953926634992332820282019728792003956564819949", 10)
	return p
}

func (g *Ed25519Group) BitSize() int { return 255 }

func (g *Ed25519Group) PointSize() int { return 32 }

func (g *Ed25519Group) ScalarBaseMult(k *big.Int) Point {
	s := g.scalarFromBig(k)
	p := g.suite.Point().Mul(s, nil)
	return g.toPoint(p)
}

func (g *Ed25519Group) ScalarMult(P Point, k *big.Int) Point {
	kp := g.fromPoint(P)
	s := g.scalarFromBig(k)
	res := g.suite.Point().Mul(s, kp)
	return g.toPoint(res)
}

func (g *Ed25519Group) Add(P, Q Point) Point {
	pp := g.fromPoint(P)
	qp := g.fromPoint(Q)
	res := g.suite.Point().Add(pp, qp)
	return g.toPoint(res)
}

func (g *Ed25519Group) Neg(P Point) Point {
	pp := g.fromPoint(P)
	res := g.suite.Point().Neg(pp)
	return g.toPoint(res)
}

func (g *Ed25519Group) IsIdentity(P Point) bool {
	if !P.IsSet() {
		return true
	}
	return g.fromPoint(P).Equal(g.suite.Point().Null())
}

// SerializePoint 返回 32 字节压缩格式；单位元序列化为全零哨兵
func (g *Ed25519Group) SerializePoint(P Point) []byte {
	if g.IsIdentity(P) {
		return make([]byte, 32)
	}
	kp := g.fromPoint(P)
	b, _ := kp.MarshalBinary()
	return b
}

// DecompressPoint 从 32 字节压缩编码解析点，非法输入 fail closed
// Kyber 的 UnmarshalBinary 只验证点在曲线上，不验证子群归属；
// 带 cofactor-8 扭转分量的点会破坏标量运算 mod L 的一致性，必须在此拒绝
func (g *Ed25519Group) DecompressPoint(data []byte) (Point, error) {
	if len(data) != 32 {
		return Point{}, fmt.Errorf("%w: want 32 bytes, got %d", ErrInvalidEncoding, len(data))
	}
	if allZero(data) {
		return Point{}, fmt.Errorf("%w: all-zero encoding", ErrInvalidEncoding)
	}
	p := g.suite.Point()
	if err := p.UnmarshalBinary(data); err != nil {
		return Point{}, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if !g.inPrimeSubgroup(p) {
		return Point{}, fmt.Errorf("%w: point outside prime-order subgroup", ErrInvalidPoint)
	}
	return g.toPoint(p), nil
}

// inPrimeSubgroup 检查 L·P 是否为单位元
// Kyber 标量天然 mod L，无法直接表示 L，用 (L-1)·P + P 代替
func (g *Ed25519Group) inPrimeSubgroup(p kyber.Point) bool {
	lm1 := g.scalarFromBig(new(big.Int).Sub(g.Order(), big.NewInt(1)))
	q := g.suite.Point().Mul(lm1, p)
	q.Add(q, p)
	return q.Equal(g.suite.Point().Null())
}

func (g *Ed25519Group) ReduceScalar(b []byte) *big.Int {
	return new(big.Int).Mod(new(big.Int).SetBytes(b), g.Order())
}

// HashToScalar SHA-256(domain || 0x00 || part1 || part2 ...) 后 mod L 归约
func (g *Ed25519Group) HashToScalar(domain string, parts ...[]byte) *big.Int {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	for _, p := range parts {
		h.Write(p)
	}
	return g.ReduceScalar(h.Sum(nil))
}

// ScalarFromSeed RFC-8032 clamping：清低 3 位、置 bit254、清 bit255
// 种子按 little-endian 解释，clamp 后归约 mod L
// 注意：回收出的私钥标量必须直接使用（raw field scalar），
// 绝不能再过一遍标准的 seed→key 哈希展开，否则会得到一把无关且不可用的密钥
func (g *Ed25519Group) ScalarFromSeed(seed []byte) (*big.Int, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes", ErrInvalidScalar, SeedSize)
	}
	clamped := make([]byte, 32)
	copy(clamped, seed)
	clamped[0] &= 248
	clamped[31] &= 127
	clamped[31] |= 64
	k := new(big.Int).SetBytes(reverse(clamped))
	k.Mod(k, g.Order())
	if k.Sign() == 0 {
		return nil, fmt.Errorf("%w: zero scalar", ErrInvalidScalar)
	}
	return k, nil
}

// RandomScalar 从 Kyber 随机流取非零标量
func (g *Ed25519Group) RandomScalar() (*big.Int, error) {
	for {
		s := g.suite.Scalar().Pick(g.suite.RandomStream())
		b, err := s.MarshalBinary() // little-endian
		if err != nil {
			return nil, err
		}
		k := new(big.Int).SetBytes(reverse(b))
		if k.Sign() != 0 {
			return k, nil
		}
	}
}

// scalarFromBig big-endian big.Int -> Kyber scalar（little-endian）
func (g *Ed25519Group) scalarFromBig(k *big.Int) kyber.Scalar {
	kb := make([]byte, 32)
	new(big.Int).Mod(k, g.Order()).FillBytes(kb)
	return g.suite.Scalar().SetBytes(reverse(kb))
}

// 辅助方法：Kyber Point -> generic Point
// Ed25519 MarshalBinary 返回 32 字节压缩格式，这里将其存入 X 字段，Y 字段保留为 0
func (g *Ed25519Group) toPoint(p kyber.Point) Point {
	b, _ := p.MarshalBinary()
	return Point{
		X: new(big.Int).SetBytes(b),
		Y: big.NewInt(0),
	}
}

// 辅助方法：generic Point -> Kyber Point
func (g *Ed25519Group) fromPoint(p Point) kyber.Point {
	kp := g.suite.Point()
	b := make([]byte, 32)
	p.X.FillBytes(b)
	_ = kp.UnmarshalBinary(b)
	return kp
}

func reverse(s []byte) []byte {
	res := make([]byte, len(s))
	for i, j := 0, len(s)-1; i < len(s); i, j = i+1, j-1 {
		res[i] = s[j]
	}
	return res
}
