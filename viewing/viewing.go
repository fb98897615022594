// viewing/viewing.go
// 分层 viewing key：主密钥 + HMAC 单向派生的子密钥
// 子密钥对父密钥/兄弟密钥零信息；路径只是标识，不参与任何逆向

package viewing

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ========== 错误定义 ==========

var (
	// ErrInvalidKey viewing key 材料非法
	ErrInvalidKey = errors.New("invalid viewing key")
	// ErrInvalidSegment 派生路径段非法（空或含 '/'）
	ErrInvalidSegment = errors.New("invalid derivation segment")
	// ErrKeyMismatch 记录所附 key hash 与 viewing key 不符（解密前快速失败）
	ErrKeyMismatch = errors.New("viewing key hash mismatch")
	// ErrDecryptionFailed 认证解密失败（密钥错误与密文篡改统一报告，不做区分）
	ErrDecryptionFailed = errors.New("decryption failed")
)

// KeySize viewing key 材料长度
const KeySize = 32

// MasterPath 主密钥的层级路径
const MasterPath = "m/0"

// childDerivationDomain HMAC 子密钥派生的域分离字符串
const childDerivationDomain = "sip/viewing/child/v1"

// Key 一把 viewing key：32 字节材料 + 层级路径
// 密钥材料归调用方所有；不再需要时调用 Wipe
type Key struct {
	material []byte
	path     string
}

// GenerateMasterKey 每个组织/账户生成一次的主 viewing key
func GenerateMasterKey() (*Key, error) {
	material := make([]byte, KeySize)
	if _, err := rand.Read(material); err != nil {
		return nil, err
	}
	return &Key{material: material, path: MasterPath}, nil
}

// KeyFromMaterial 从已有材料恢复一把 viewing key（如带外收到的审计密钥）
func KeyFromMaterial(material []byte, path string) (*Key, error) {
	if len(material) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, KeySize, len(material))
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidKey)
	}
	m := make([]byte, KeySize)
	copy(m, material)
	return &Key{material: m, path: path}, nil
}

// DeriveChild 按披露范围派生子密钥（如 "auditor" → "auditor/2024"）
// HMAC-SHA256(parent, domain || segment)：
// 子密钥对回推父密钥无计算优势，同父的兄弟密钥相互独立
func (k *Key) DeriveChild(segment string) (*Key, error) {
	if segment == "" || strings.Contains(segment, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSegment, segment)
	}
	mac := hmac.New(sha256.New, k.material)
	mac.Write([]byte(childDerivationDomain))
	mac.Write([]byte{0x00})
	mac.Write([]byte(segment))
	child := mac.Sum(nil)
	return &Key{material: child, path: k.path + "/" + segment}, nil
}

// Path 层级路径（"m/0/auditor/2024"）
func (k *Key) Path() string { return k.path }

// Material 原始密钥材料（调用方注意擦除责任）
func (k *Key) Material() []byte { return k.material }

// Hash 身份哈希：keccak256(原始密钥字节)——永远是裸字节，绝不是其文本编码
// 持有者用它匹配记录和密钥，无需尝试解密
func (k *Key) Hash() []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(k.material)
	return h.Sum(nil)
}

// Wipe 擦除密钥材料
func (k *Key) Wipe() {
	if k == nil {
		return
	}
	for i := range k.material {
		k.material[i] = 0xFF
	}
	for i := range k.material {
		k.material[i] = 0
	}
}
