// curve/secp256k1.go
// Weierstrass 族后端：btcec 的 secp256k1 封装为 Group 接口
// 压缩编码：1 字节奇偶前缀 (0x02/0x03) + 32 字节 X 坐标

package curve

import (
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1Group 将 btcec.S256() 封装为 Group 接口
type Secp256k1Group struct {
	curve elliptic.Curve
}

// NewSecp256k1Group 返回一个新的 Secp256k1Group 实例
func NewSecp256k1Group() *Secp256k1Group {
	return &Secp256k1Group{curve: btcec.S256()}
}

func (g *Secp256k1Group) Name() string { return "secp256k1" }

func (g *Secp256k1Group) Order() *big.Int {
	return g.curve.Params().N
}

func (g *Secp256k1Group) Modulus() *big.Int {
	return g.curve.Params().P
}

func (g *Secp256k1Group) BitSize() int {
	return g.curve.Params().BitSize
}

func (g *Secp256k1Group) PointSize() int { return 33 }

func (g *Secp256k1Group) ScalarBaseMult(k *big.Int) Point {
	kb := new(big.Int).Mod(k, g.Order()).Bytes()
	x, y := g.curve.ScalarBaseMult(kb)
	return Point{X: x, Y: y}
}

func (g *Secp256k1Group) ScalarMult(P Point, k *big.Int) Point {
	kb := new(big.Int).Mod(k, g.Order()).Bytes()
	x, y := g.curve.ScalarMult(P.X, P.Y, kb)
	return Point{X: x, Y: y}
}

func (g *Secp256k1Group) Add(P, Q Point) Point {
	if g.IsIdentity(P) {
		return Q
	}
	if g.IsIdentity(Q) {
		return P
	}
	x, y := g.curve.Add(P.X, P.Y, Q.X, Q.Y)
	return Point{X: x, Y: y}
}

// Neg 点取反：(x, y) -> (x, p-y)
func (g *Secp256k1Group) Neg(P Point) Point {
	if g.IsIdentity(P) {
		return P
	}
	negY := new(big.Int).Sub(g.Modulus(), P.Y)
	negY.Mod(negY, g.Modulus())
	return Point{X: new(big.Int).Set(P.X), Y: negY}
}

// IsIdentity crypto/elliptic 用 (0,0) 表示无穷远点
func (g *Secp256k1Group) IsIdentity(P Point) bool {
	if !P.IsSet() {
		return true
	}
	return P.X.Sign() == 0 && P.Y.Sign() == 0
}

// SerializePoint 压缩序列化；单位元没有压缩表示，序列化为 33 字节全零哨兵
func (g *Secp256k1Group) SerializePoint(P Point) []byte {
	out := make([]byte, 33)
	if g.IsIdentity(P) {
		return out
	}
	out[0] = 0x02 | byte(P.Y.Bit(0))
	P.X.FillBytes(out[1:])
	return out
}

// DecompressPoint 从压缩格式解析点，非法输入 fail closed
func (g *Secp256k1Group) DecompressPoint(data []byte) (Point, error) {
	if len(data) != 33 {
		return Point{}, fmt.Errorf("%w: want 33 bytes, got %d", ErrInvalidEncoding, len(data))
	}
	if allZero(data) {
		return Point{}, fmt.Errorf("%w: all-zero encoding", ErrInvalidEncoding)
	}
	pubKey, err := btcec.ParsePubKey(data)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return Point{X: pubKey.X(), Y: pubKey.Y()}, nil
}

func (g *Secp256k1Group) ReduceScalar(b []byte) *big.Int {
	return new(big.Int).Mod(new(big.Int).SetBytes(b), g.Order())
}

// HashToScalar SHA-256(domain || 0x00 || part1 || part2 ...) 后经 ModNScalar 归约
func (g *Secp256k1Group) HashToScalar(domain string, parts ...[]byte) *big.Int {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	for _, p := range parts {
		h.Write(p)
	}
	digest := h.Sum(nil)

	var s secp.ModNScalar
	s.SetByteSlice(digest)
	var buf [32]byte
	s.PutBytes(&buf)
	return new(big.Int).SetBytes(buf[:])
}

// ScalarFromSeed 32 字节种子 mod N 归约为私钥标量，零标量拒绝
func (g *Secp256k1Group) ScalarFromSeed(seed []byte) (*big.Int, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes", ErrInvalidScalar, SeedSize)
	}
	var s secp.ModNScalar
	s.SetByteSlice(seed)
	if s.IsZero() {
		return nil, fmt.Errorf("%w: zero scalar", ErrInvalidScalar)
	}
	var buf [32]byte
	s.PutBytes(&buf)
	return new(big.Int).SetBytes(buf[:]), nil
}

// RandomScalar btcec 的私钥生成已保证非零且 < N
func (g *Secp256k1Group) RandomScalar() (*big.Int, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	defer priv.Zero()
	kb := priv.Serialize()
	k := new(big.Int).SetBytes(kb)
	for i := range kb {
		kb[i] = 0
	}
	return k, nil
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
