// secret/wipe.go
// 敏感材料（私钥标量、盲因子、对称密钥）的擦除工具
// 约定：凡是函数内部物化过密钥字节的，所有退出路径（含错误路径）都必须擦除

package secret

import "math/big"

// Wipe 先用 0xFF 覆写再清零，避免编译器把单次清零优化掉
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0xFF
	}
	for i := range b {
		b[i] = 0
	}
}

// WipeBig 擦除 big.Int 的底层字（word）数组后归零
func WipeBig(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = ^big.Word(0)
	}
	for i := range words {
		words[i] = 0
	}
	x.SetInt64(0)
}

// Do 分配 n 字节的临时密钥缓冲区并保证退出时擦除
// fn panic 时同样擦除（defer 保证）
func Do(n int, fn func(buf []byte) error) error {
	buf := make([]byte, n)
	defer Wipe(buf)
	return fn(buf)
}
