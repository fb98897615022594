package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirements(t *testing.T) {
	assert.Equal(t, Requirements{}, LevelTransparent.Requirements())
	assert.Equal(t,
		Requirements{StealthAddress: true, HiddenAmount: true},
		LevelShielded.Requirements())
	assert.Equal(t,
		Requirements{StealthAddress: true, HiddenAmount: true, EncryptedDisclosure: true},
		LevelCompliance.Requirements())
}

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  Level
	}{
		{"transparent", LevelTransparent},
		{" Shielded ", LevelShielded},
		{"COMPLIANCE", LevelCompliance},
	} {
		got, err := ParseLevel(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseLevel("maximum")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestString(t *testing.T) {
	assert.Equal(t, "compliance", LevelCompliance.String())
	assert.Equal(t, "level(99)", Level(99).String())
}
