// policy/policy.go
// 隐私级别 → 必选组件的映射；上层 intent/payment builder 按此装配输出

package policy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel 未知隐私级别
var ErrUnknownLevel = errors.New("unknown privacy level")

// Level 隐私级别
type Level int

const (
	// LevelTransparent 明文交易，不启用任何隐私组件
	LevelTransparent Level = iota
	// LevelShielded 一次性地址 + 金额承诺
	LevelShielded
	// LevelCompliance 在 Shielded 之上追加 viewing key 加密的披露记录
	LevelCompliance
)

// Requirements 某一级别下各组件是否必选
type Requirements struct {
	StealthAddress      bool // 一次性接收地址
	HiddenAmount        bool // Pedersen 承诺隐藏金额
	EncryptedDisclosure bool // viewing key 加密的元数据记录
}

// Requirements 返回级别对应的组件要求
func (l Level) Requirements() Requirements {
	switch l {
	case LevelShielded:
		return Requirements{StealthAddress: true, HiddenAmount: true}
	case LevelCompliance:
		return Requirements{StealthAddress: true, HiddenAmount: true, EncryptedDisclosure: true}
	default:
		return Requirements{}
	}
}

func (l Level) String() string {
	switch l {
	case LevelTransparent:
		return "transparent"
	case LevelShielded:
		return "shielded"
	case LevelCompliance:
		return "compliance"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel 解析级别名（大小写不敏感）
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "transparent":
		return LevelTransparent, nil
	case "shielded":
		return LevelShielded, nil
	case "compliance":
		return LevelCompliance, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}
