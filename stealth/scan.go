// stealth/scan.go
// 接收方批量扫描：view tag 一字节预过滤，约 255/256 的非匹配项走廉价路径

package stealth

import (
	"math/big"

	"sip/chain"
	"sip/logs"
	"sip/secret"
)

// Match 扫描命中：候选下标 + 回收出的私钥
type Match struct {
	Index   int
	Priv    *big.Int
	Address *Address
}

// Scan 在候选列表中找出属于本接收方的一次性地址
// 编码非法或链不匹配的候选直接跳过（上游喂的是公开链上数据，噪声是常态）
// 返回的每个 Match.Priv 归调用方所有，用后必须擦除
func Scan(candidates []*Address, chainTag string, spendPriv, viewPriv *big.Int) ([]Match, error) {
	g, err := chain.CurveFor(chainTag)
	if err != nil {
		return nil, err
	}

	var matches []Match
	fullChecks := 0
	for i, cand := range candidates {
		if cand == nil || chain.NormalizeChain(cand.Chain) != chain.NormalizeChain(chainTag) {
			continue
		}
		ephemeral, err := g.DecompressPoint(cand.EphemeralPub)
		if err != nil {
			continue
		}

		// 廉价路径：只重算 view tag
		shared := g.ScalarMult(ephemeral, spendPriv)
		digest := sharedSecretDigest(g, shared)
		tag := digest[0]
		secret.Wipe(digest[:])
		wipePoint(shared)
		if tag != cand.ViewTag {
			continue
		}

		// tag 命中（1/256 会误报），做完整回收验证
		fullChecks++
		priv, err := RecoverPrivateKey(cand, spendPriv, viewPriv)
		if err != nil {
			// ErrRecoveryMismatch：view tag 碰撞的他人地址，正常跳过
			continue
		}
		matches = append(matches, Match{Index: i, Priv: priv, Address: cand})
	}
	logs.Debug("stealth scan: %d candidates, %d full checks, %d matches",
		len(candidates), fullChecks, len(matches))
	return matches, nil
}
