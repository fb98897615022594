// proof/provider.go
// 外部零知识证明的边界接口：本库只生产/消费电路的公开输入与私密 witness
// 电路实现、证明生成与验证都在边界之外

package proof

import (
	"math/big"

	"sip/secret"
)

// PublicInputs 电路公开输入
// Commitment / GeneratorH 必须与电路硬编码的编码逐字节一致
type PublicInputs struct {
	Chain      string // 链标识（决定曲线族）
	Commitment []byte // 承诺点压缩编码
	GeneratorH []byte // 第二生成元压缩编码（电路常量核对用）
}

// Witness 电路私密输入：承诺的打开值
// 用后调用 Wipe，不得越过调用方信任边界
type Witness struct {
	Value    *big.Int
	Blinding *big.Int
}

// Wipe 擦除 witness
func (w *Witness) Wipe() {
	if w == nil {
		return
	}
	secret.WipeBig(w.Value)
	secret.WipeBig(w.Blinding)
}

// Provider 外部证明方
type Provider interface {
	// Prove 以 witness 为私密输入生成证明
	Prove(pub PublicInputs, wit Witness) ([]byte, error)
	// Verify 验证证明；验证不通过是预期内的 (false, nil)，只有基础设施故障才返回 error
	Verify(pub PublicInputs, proofBytes []byte) (bool, error)
}
