// viewing/record.go
// 选择性披露：HKDF 派生专用对称密钥 + XChaCha20-Poly1305 认证加密
// 记录附 key hash，持有者不用试解密就能路由到正确的 viewing key

package viewing

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"sip/secret"
)

// aeadKeyDomain HKDF 的固定域分离字符串；key 路径作为上下文
const aeadKeyDomain = "sip/viewing/aead/v1"

// DisclosureRecord 合规披露的元数据载荷
// Blinding/Commitment 为裸字节（JSON 里 base64），Amount 为最小单位整数
type DisclosureRecord struct {
	Chain          string `json:"chain"`
	StealthAddress string `json:"stealth_address"`
	Amount         uint64 `json:"amount"`
	Commitment     []byte `json:"commitment"`
	Blinding       []byte `json:"blinding"`
	Memo           string `json:"memo,omitempty"`
}

// ToJSON 规范化序列化
func (r *DisclosureRecord) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// RecordFromJSON 从 JSON 反序列化
func RecordFromJSON(data []byte) (*DisclosureRecord, error) {
	var r DisclosureRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// EncryptedRecord 加密后的披露记录
type EncryptedRecord struct {
	Ciphertext []byte `json:"ciphertext"` // 含认证 tag
	Nonce      []byte `json:"nonce"`      // 24 字节，每条记录新抽
	KeyHash    []byte `json:"key_hash"`   // keccak256(viewing key 原始字节)
}

// EncryptForViewing 用 viewing key 加密披露记录
// 对称密钥经 HKDF(域分离 + key 路径) 派生，用后即擦
func EncryptForViewing(rec *DisclosureRecord, vk *Key) (*EncryptedRecord, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", ErrInvalidKey)
	}
	if vk == nil || len(vk.material) != KeySize {
		return nil, fmt.Errorf("%w: missing key material", ErrInvalidKey)
	}
	plaintext, err := rec.ToJSON()
	if err != nil {
		return nil, err
	}
	defer secret.Wipe(plaintext)

	var out *EncryptedRecord
	err = secret.Do(chacha20poly1305.KeySize, func(symKey []byte) error {
		if err := deriveAEADKey(vk, symKey); err != nil {
			return err
		}
		aead, err := chacha20poly1305.NewX(symKey)
		if err != nil {
			return err
		}
		nonce := make([]byte, chacha20poly1305.NonceSizeX)
		if _, err := rand.Read(nonce); err != nil {
			return err
		}
		out = &EncryptedRecord{
			Ciphertext: aead.Seal(nil, nonce, plaintext, vk.Hash()),
			Nonce:      nonce,
			KeyHash:    vk.Hash(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecryptWithViewing 解密披露记录
// 先比对 key hash 快速失败（避免用错误密钥跑认证解密）；
// 认证失败统一报 ErrDecryptionFailed，不区分错钥与篡改，防止探测预言机
func DecryptWithViewing(er *EncryptedRecord, vk *Key) (*DisclosureRecord, error) {
	if er == nil {
		return nil, fmt.Errorf("%w: nil record", ErrDecryptionFailed)
	}
	if vk == nil || len(vk.material) != KeySize {
		return nil, fmt.Errorf("%w: missing key material", ErrInvalidKey)
	}
	if len(er.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%w: bad nonce length %d", ErrDecryptionFailed, len(er.Nonce))
	}
	if subtle.ConstantTimeCompare(er.KeyHash, vk.Hash()) != 1 {
		return nil, ErrKeyMismatch
	}

	var rec *DisclosureRecord
	err := secret.Do(chacha20poly1305.KeySize, func(symKey []byte) error {
		if err := deriveAEADKey(vk, symKey); err != nil {
			return err
		}
		aead, err := chacha20poly1305.NewX(symKey)
		if err != nil {
			return err
		}
		plaintext, err := aead.Open(nil, er.Nonce, er.Ciphertext, er.KeyHash)
		if err != nil {
			return ErrDecryptionFailed
		}
		defer secret.Wipe(plaintext)
		rec, err = RecordFromJSON(plaintext)
		if err != nil {
			return ErrDecryptionFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// deriveAEADKey HKDF-SHA256(ikm=key 材料, info=domain || path) → out
func deriveAEADKey(vk *Key, out []byte) error {
	info := append([]byte(aeadKeyDomain+"\x00"), []byte(vk.path)...)
	kdf := hkdf.New(sha256.New, vk.material, nil, info)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return err
	}
	return nil
}
