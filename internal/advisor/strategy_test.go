package advisor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStrategy(t *testing.T) {
	s := DefaultStrategy()

	assert.Equal(t, 0.15, s.EarlyBustMax)
	assert.Equal(t, 20, s.EarlyScoreMax)
	assert.Equal(t, 0.25, s.MidBustMax)
	assert.Equal(t, 35, s.MidScoreMax)
	assert.Equal(t, 0.15, s.MidLowBustMax)
	assert.Equal(t, 0.35, s.LateBustMax)
	assert.Equal(t, 40, s.LateScoreMax)
	assert.Equal(t, 0.20, s.LateLowBustMax)
	assert.Equal(t, 22.0, s.SevenBonusEV)
	assert.Equal(t, 5.0, s.SecondChanceSlack)
	assert.Equal(t, 5.0, s.AvgModifierValue)
}

func TestLoadStrategyMissingFile(t *testing.T) {
	s, err := LoadStrategy(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultStrategy(), s)
}

func TestLoadStrategyOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategy.hcl")
	content := `
strategy {
  early_bust_max    = 0.10
  early_score_max   = 25
  seven_bonus_ev    = 20
  avg_modifier_value = 6
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadStrategy(path)
	require.NoError(t, err)

	assert.Equal(t, 0.10, s.EarlyBustMax)
	assert.Equal(t, 25, s.EarlyScoreMax)
	assert.Equal(t, 20.0, s.SevenBonusEV)
	assert.Equal(t, 6.0, s.AvgModifierValue)

	// Unset fields keep their defaults
	assert.Equal(t, 0.25, s.MidBustMax)
	assert.Equal(t, 5.0, s.SecondChanceSlack)
}

func TestLoadStrategyInvalidHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte("strategy {"), 0644))

	_, err := LoadStrategy(path)
	assert.Error(t, err)
}
