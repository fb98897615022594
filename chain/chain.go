// chain/chain.go
// 链注册表：链名 → 曲线族 + 地址编码规则的静态查找
// 业务逻辑不直接对链名分支，统一走 CurveFor / AddressFromPoint

package chain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"sip/curve"
)

// ========== 链名常量（统一使用小写）==========

const (
	ChainETH  = "eth"  // Ethereum
	ChainBNB  = "bnb"  // BNB Smart Chain
	ChainPOL  = "pol"  // Polygon
	ChainSOL  = "sol"  // Solana
	ChainNEAR = "near" // NEAR
)

// SupportedChains 支持的链列表
var SupportedChains = []string{ChainETH, ChainBNB, ChainPOL, ChainSOL, ChainNEAR}

// ========== 错误定义 ==========

var (
	// ErrUnsupportedChain 不支持的链
	ErrUnsupportedChain = errors.New("unsupported chain")
)

// 共享的曲线族实例（无可变状态，跨 goroutine 安全）
var (
	secpGroup = curve.NewSecp256k1Group()
	edGroup   = curve.NewEd25519Group()
)

// 链 → 曲线族静态表
var chainCurves = map[string]curve.Group{
	ChainETH:  secpGroup,
	ChainBNB:  secpGroup,
	ChainPOL:  secpGroup,
	ChainSOL:  edGroup,
	ChainNEAR: edGroup,
}

// NormalizeChain 规范化链名（统一转小写）
// 所有入口处应调用此函数确保链名一致性
func NormalizeChain(chain string) string {
	return strings.ToLower(strings.TrimSpace(chain))
}

// IsValidChain 检查是否为有效的链名
func IsValidChain(chain string) bool {
	_, ok := chainCurves[NormalizeChain(chain)]
	return ok
}

// IsEVM EVM 系链使用 secp256k1 + keccak 地址；其余链使用 ed25519 + base58
func IsEVM(chain string) bool {
	switch NormalizeChain(chain) {
	case ChainETH, ChainBNB, ChainPOL:
		return true
	}
	return false
}

// CurveFor 链名到曲线族后端的查找
func CurveFor(chain string) (curve.Group, error) {
	g, ok := chainCurves[NormalizeChain(chain)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChain, chain)
	}
	return g, nil
}

// AddressFromPoint 按链的编码规则把公钥点编码为地址字符串
// EVM：keccak256(未压缩公钥)[12:]，0x 前缀
// 其余：32 字节压缩点的 base58
func AddressFromPoint(chain string, p curve.Point) (string, error) {
	g, err := CurveFor(chain)
	if err != nil {
		return "", err
	}
	if g.IsIdentity(p) {
		return "", fmt.Errorf("%w: identity point has no address", curve.ErrInvalidPoint)
	}
	if IsEVM(chain) {
		pub := ecdsa.PublicKey{Curve: ethcrypto.S256(), X: p.X, Y: p.Y}
		return ethcrypto.PubkeyToAddress(pub).Hex(), nil
	}
	return base58.Encode(g.SerializePoint(p)), nil
}
