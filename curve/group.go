// curve/group.go
// 双曲线族后端的统一能力接口
// 一个 Weierstrass 族（secp256k1，33 字节压缩点）+ 一个 twisted-Edwards 族（ed25519，32 字节点）

package curve

import (
	"errors"
	"math/big"
)

// ========== 错误定义 ==========

var (
	// ErrInvalidEncoding 点编码格式错误（长度不对、保留值等）
	ErrInvalidEncoding = errors.New("invalid point encoding")
	// ErrInvalidPoint 解码后不在曲线上，或意外等于单位元/基点
	ErrInvalidPoint = errors.New("invalid curve point")
	// ErrInvalidScalar 标量非法（归约后为零、种子长度不对）
	ErrInvalidScalar = errors.New("invalid scalar")
)

// Point 通用点表示
// secp256k1：仿射坐标 (X, Y)
// ed25519：X 存 32 字节压缩编码（big-endian 解释），Y 恒为 0
type Point struct{ X, Y *big.Int }

// XY 返回坐标
func (p Point) XY() (*big.Int, *big.Int) { return p.X, p.Y }

// IsSet 点是否已赋值
func (p Point) IsSet() bool { return p.X != nil && p.Y != nil }

// Equal 比较两个通用点（按坐标比较，不比较序列化字节）
func (p Point) Equal(q Point) bool {
	if !p.IsSet() || !q.IsSet() {
		return p.IsSet() == q.IsSet()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// SeedSize 原始种子长度（两族统一 32 字节）
const SeedSize = 32

// Group 曲线族能力接口
// 标量统一用 *big.Int（big-endian 语义），由各实现负责族内的字节序转换
type Group interface {
	// Name 族名（"secp256k1" / "ed25519"）
	Name() string

	// 群阶
	Order() *big.Int

	// 底层素数域
	Modulus() *big.Int

	// 安全位大小
	BitSize() int

	// PointSize 压缩点编码长度（secp256k1=33，ed25519=32）
	PointSize() int

	// 基点乘
	ScalarBaseMult(k *big.Int) Point

	// 点乘
	ScalarMult(P Point, k *big.Int) Point

	// 点加
	Add(P, Q Point) Point

	// 点取反（用于承诺减法）
	Neg(P Point) Point

	// IsIdentity 是否为单位元
	IsIdentity(P Point) bool

	// SerializePoint 压缩序列化；单位元序列化为全零字节（见承诺引擎的零承诺哨兵）
	SerializePoint(P Point) []byte

	// DecompressPoint 从压缩编码解析点，非法输入必须返回错误（fail closed）
	// 全零编码（零承诺哨兵）同样视为非法点
	DecompressPoint(data []byte) (Point, error)

	// ReduceScalar 把任意字节串按 big-endian 归约到 [0, Order)
	ReduceScalar(b []byte) *big.Int

	// HashToScalar 对输入做域分离哈希并归约为标量
	HashToScalar(domain string, parts ...[]byte) *big.Int

	// ScalarFromSeed 把 32 字节原始种子转为私钥标量
	// secp256k1：mod N 归约，零标量拒绝
	// ed25519：RFC-8032 clamping（清低 3 位、置 bit254、清 bit255）后归约
	ScalarFromSeed(seed []byte) (*big.Int, error)

	// RandomScalar 从密码学安全随机源取非零标量
	RandomScalar() (*big.Int, error)
}
