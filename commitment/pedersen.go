// commitment/pedersen.go
// Pedersen 承诺引擎：C = v·G + r·H
// 隐藏金额，同态可加，计算绑定；G/H 与外部证明电路共享

package commitment

import (
	"errors"
	"fmt"
	"math/big"

	"sip/curve"
	"sip/secret"
)

// ========== 错误定义 ==========

var (
	// ErrInvalidScalar 盲因子归约后为零，或承诺值越界 [0, Order)
	ErrInvalidScalar = errors.New("invalid scalar")
	// ErrInvalidPoint 承诺点编码非法
	ErrInvalidPoint = errors.New("invalid commitment point")
)

var bigOne = big.NewInt(1)

// Commitment 承诺的公开部分
// zero 为显式的"零承诺"哨兵：两个同值承诺相减得到的无穷远点
// 压缩编码无法表示无穷远点，序列化时用全零字节表示
type Commitment struct {
	point curve.Point
	zero  bool
}

// Point 返回承诺点（零承诺返回未赋值 Point）
func (c Commitment) Point() curve.Point { return c.point }

// IsZero 是否为零承诺哨兵
func (c Commitment) IsZero() bool { return c.zero }

// Equal 按曲线点比较（绝不比较序列化字节，编码可能有歧义）
func (c Commitment) Equal(other Commitment) bool {
	if c.zero || other.zero {
		return c.zero == other.zero
	}
	return c.point.Equal(other.point)
}

// Engine 承诺引擎；H 在构造时显式注入，不做隐藏的可变全局
type Engine struct {
	grp curve.Group
	h   curve.Point
}

// NewEngine 为指定曲线族构造承诺引擎
func NewEngine(g curve.Group) (*Engine, error) {
	h, err := GeneratorH(g)
	if err != nil {
		return nil, err
	}
	return &Engine{grp: g, h: h}, nil
}

// Group 引擎绑定的曲线族
func (e *Engine) Group() curve.Group { return e.grp }

// H 第二生成元（证明电路固定常量，调用方只读）
func (e *Engine) H() curve.Point { return e.h }

// HBytes H 的压缩编码，用于电路常量核对
func (e *Engine) HBytes() []byte { return e.grp.SerializePoint(e.h) }

// Commit 计算 C = value·G + blinding·H
// value 必须满足 0 ≤ value < Order；blinding 归约后不得为零
// （零盲因子会让任何人都能平开承诺，hiding 性质尽失）
func (e *Engine) Commit(value, blinding *big.Int) (Commitment, error) {
	if err := e.checkValue(value); err != nil {
		return Commitment{}, err
	}
	if blinding == nil {
		return Commitment{}, fmt.Errorf("%w: nil blinding factor", ErrInvalidScalar)
	}
	r := new(big.Int).Mod(blinding, e.grp.Order())
	if r.Sign() == 0 {
		return Commitment{}, fmt.Errorf("%w: zero blinding factor", ErrInvalidScalar)
	}

	rH := e.grp.ScalarMult(e.h, r)
	secret.WipeBig(r)
	// value = 0 时直接 C = r·H，避免对单位元标量做乘法
	if value.Sign() == 0 {
		return Commitment{point: rH}, nil
	}
	vG := e.grp.ScalarBaseMult(value)
	return Commitment{point: e.grp.Add(vG, rH)}, nil
}

// CommitRandom 用密码学安全随机源抽取盲因子并承诺
// 返回的盲因子由调用方持有（之后打开或组合承诺都要用到），用完必须擦除
func (e *Engine) CommitRandom(value *big.Int) (Commitment, *big.Int, error) {
	if err := e.checkValue(value); err != nil {
		return Commitment{}, nil, err
	}
	r, err := e.grp.RandomScalar()
	if err != nil {
		return Commitment{}, nil, err
	}
	c, err := e.Commit(value, r)
	if err != nil {
		secret.WipeBig(r)
		return Commitment{}, nil, err
	}
	return c, r, nil
}

// VerifyOpening 重算期望点并按曲线点比较
// 零承诺只有一种打开方式：value = 0 且 blinding ≡ 0
func (e *Engine) VerifyOpening(c Commitment, value, blinding *big.Int) bool {
	if value == nil || blinding == nil || value.Sign() < 0 || value.Cmp(e.grp.Order()) >= 0 {
		return false
	}
	r := new(big.Int).Mod(blinding, e.grp.Order())
	defer secret.WipeBig(r)

	if c.zero {
		return value.Sign() == 0 && r.Sign() == 0
	}
	if r.Sign() == 0 {
		// 非零承诺对零盲因子要么 value·G 要么无效，照常重算比较
		if value.Sign() == 0 {
			return false
		}
		return c.point.Equal(e.grp.ScalarBaseMult(value))
	}

	rH := e.grp.ScalarMult(e.h, r)
	if value.Sign() == 0 {
		return c.point.Equal(rH)
	}
	expected := e.grp.Add(e.grp.ScalarBaseMult(value), rH)
	return c.point.Equal(expected)
}

// Add 同态加法：Commit(v1,r1) + Commit(v2,r2) = Commit(v1+v2, r1+r2)
func (e *Engine) Add(a, b Commitment) Commitment {
	if a.zero {
		return b
	}
	if b.zero {
		return a
	}
	sum := e.grp.Add(a.point, b.point)
	if e.grp.IsIdentity(sum) {
		return Commitment{zero: true}
	}
	return Commitment{point: sum}
}

// Sub 同态减法；两个同值同盲因子的承诺相减得到零承诺哨兵
func (e *Engine) Sub(a, b Commitment) Commitment {
	if b.zero {
		return a
	}
	negB := Commitment{point: e.grp.Neg(b.point)}
	if a.zero {
		return negB
	}
	return e.Add(a, negB)
}

// AddBlindings 盲因子模加：与 Add 配套
func (e *Engine) AddBlindings(r1, r2 *big.Int) *big.Int {
	sum := new(big.Int).Add(r1, r2)
	return sum.Mod(sum, e.grp.Order())
}

// SubBlindings 盲因子模减：与 Sub 配套
func (e *Engine) SubBlindings(r1, r2 *big.Int) *big.Int {
	diff := new(big.Int).Sub(r1, r2)
	return diff.Mod(diff, e.grp.Order())
}

// Sum 多个承诺求和
func (e *Engine) Sum(cs []Commitment) Commitment {
	acc := Commitment{zero: true}
	for _, c := range cs {
		acc = e.Add(acc, c)
	}
	return acc
}

// VerifyBalance 检查输入承诺之和等于输出承诺之和（金额守恒，不暴露金额）
func (e *Engine) VerifyBalance(inputs, outputs []Commitment) bool {
	if len(inputs) == 0 || len(outputs) == 0 {
		return false
	}
	return e.Sum(inputs).Equal(e.Sum(outputs))
}

// Serialize 压缩编码；零承诺编码为 PointSize 长度的全零字节
func (e *Engine) Serialize(c Commitment) []byte {
	if c.zero {
		return make([]byte, e.grp.PointSize())
	}
	return e.grp.SerializePoint(c.point)
}

// Deserialize 解析承诺编码；全零字节还原为零承诺哨兵
func (e *Engine) Deserialize(data []byte) (Commitment, error) {
	if len(data) != e.grp.PointSize() {
		return Commitment{}, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPoint, e.grp.PointSize(), len(data))
	}
	zero := true
	for _, b := range data {
		if b != 0 {
			zero = false
			break
		}
	}
	if zero {
		return Commitment{zero: true}, nil
	}
	p, err := e.grp.DecompressPoint(data)
	if err != nil {
		return Commitment{}, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return Commitment{point: p}, nil
}

func (e *Engine) checkValue(value *big.Int) error {
	if value == nil || value.Sign() < 0 || value.Cmp(e.grp.Order()) >= 0 {
		return fmt.Errorf("%w: value out of range [0, order)", ErrInvalidScalar)
	}
	return nil
}
