package secret

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Wipe(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
	Wipe(nil) // 不 panic
}

func TestWipeBig(t *testing.T) {
	x := new(big.Int).SetBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04, 0x05})
	words := x.Bits()
	WipeBig(x)
	assert.Equal(t, 0, x.Sign())
	for _, w := range words {
		assert.Equal(t, big.Word(0), w)
	}
	WipeBig(nil) // 不 panic
}

func TestDo_WipesOnSuccess(t *testing.T) {
	var captured []byte
	err := Do(8, func(buf []byte) error {
		for i := range buf {
			buf[i] = 0xAB
		}
		captured = buf
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 8), captured)
}

func TestDo_WipesOnError(t *testing.T) {
	boom := errors.New("boom")
	var captured []byte
	err := Do(8, func(buf []byte) error {
		for i := range buf {
			buf[i] = 0xCD
		}
		captured = buf
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, make([]byte, 8), captured)
}

func TestDo_WipesOnPanic(t *testing.T) {
	var captured []byte
	assert.Panics(t, func() {
		_ = Do(8, func(buf []byte) error {
			for i := range buf {
				buf[i] = 0xEF
			}
			captured = buf
			panic("boom")
		})
	})
	assert.Equal(t, make([]byte, 8), captured)
}
