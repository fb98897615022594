// commitment/generators.go
// 第二生成元 H 的 NUMS（nothing-up-my-sleeve）派生
// 任何独立实现只要用相同的域字符串和搜索顺序，必然收敛到同一个 H

package commitment

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"sip/curve"
	"sip/logs"
)

// HGeneratorDomain NUMS 搜索的域分离字符串
// 必须与外部 ZK 电路硬编码的常量逐字节一致，否则证明永远不会通过
// 电路侧固定 H 时须按相同规则搜索：候选点除在曲线上之外还必须落在
// 素数阶子群内（ed25519 族要求 L·cand = 单位元，secp256k1 族天然满足）
const HGeneratorDomain = "sip/pedersen/generator/H/v1"

var (
	hMu    sync.Mutex
	hCache = map[string]curve.Point{}
)

// GeneratorH 返回曲线族的第二生成元 H（每族惰性计算一次，之后缓存不可变值）
func GeneratorH(g curve.Group) (curve.Point, error) {
	hMu.Lock()
	defer hMu.Unlock()
	if h, ok := hCache[g.Name()]; ok {
		return h, nil
	}
	h, err := deriveGeneratorH(g)
	if err != nil {
		return curve.Point{}, err
	}
	hCache[g.Name()] = h
	return h, nil
}

// deriveGeneratorH 公开可复现的搜索：
// counter 0..255，SHA-256(domain || counter) 作为候选 X 坐标
// secp256k1 族加固定的 0x02 奇偶前缀，ed25519 族直接当 32 字节编码
// 接受第一个能解码、且不等于单位元和基点 G 的候选
// DecompressPoint 只放行素数阶子群内的点，带扭转分量的候选在此被跳过
func deriveGeneratorH(g curve.Group) (curve.Point, error) {
	base := g.ScalarBaseMult(bigOne)
	for ctr := 0; ctr < 256; ctr++ {
		h := sha256.New()
		h.Write([]byte(HGeneratorDomain))
		h.Write([]byte{byte(ctr)})
		digest := h.Sum(nil)

		var cand []byte
		if g.PointSize() == 33 {
			cand = append([]byte{0x02}, digest...)
		} else {
			cand = digest
		}

		p, err := g.DecompressPoint(cand)
		if err != nil {
			continue
		}
		if g.IsIdentity(p) || p.Equal(base) {
			continue
		}
		logs.Debug("pedersen H derived for %s at counter %d", g.Name(), ctr)
		return p, nil
	}
	return curve.Point{}, fmt.Errorf("no valid H candidate for %s in 256 attempts", g.Name())
}
