package advisor

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Strategy holds the heuristic constants driving the hit/stay ladder.
// The defaults are tuned play-tested values, not derived ones; they can be
// overridden from an HCL file for experimentation.
type Strategy struct {
	// Early game (1-2 cards): hit below this bust risk, or below this score
	EarlyBustMax  float64 `hcl:"early_bust_max,optional"`
	EarlyScoreMax int     `hcl:"early_score_max,optional"`

	// Mid game (3-4 cards)
	MidBustMax    float64 `hcl:"mid_bust_max,optional"`
	MidScoreMax   int     `hcl:"mid_score_max,optional"`
	MidLowBustMax float64 `hcl:"mid_low_bust_max,optional"`

	// Late game (5 cards)
	LateBustMax    float64 `hcl:"late_bust_max,optional"`
	LateScoreMax   int     `hcl:"late_score_max,optional"`
	LateLowBustMax float64 `hcl:"late_low_bust_max,optional"`

	// SevenBonusEV approximates the value of completing a seven-card hand:
	// the +15 bonus plus an average seventh card (~7 points)
	SevenBonusEV float64 `hcl:"seven_bonus_ev,optional"`

	// SecondChanceSlack is added to the EV threshold when the player holds
	// a Second Chance, reflecting tolerance for one extra risk
	SecondChanceSlack float64 `hcl:"second_chance_slack,optional"`

	// AvgModifierValue stands in for the true weighted average of the
	// modifier pool in the one-ply EV model
	AvgModifierValue float64 `hcl:"avg_modifier_value,optional"`
}

// DefaultStrategy returns the built-in heuristic constants
func DefaultStrategy() Strategy {
	return Strategy{
		EarlyBustMax:      0.15,
		EarlyScoreMax:     20,
		MidBustMax:        0.25,
		MidScoreMax:       35,
		MidLowBustMax:     0.15,
		LateBustMax:       0.35,
		LateScoreMax:      40,
		LateLowBustMax:    0.20,
		SevenBonusEV:      22,
		SecondChanceSlack: 5,
		AvgModifierValue:  5,
	}
}

// strategyFile is the HCL wrapper for a strategy override file
type strategyFile struct {
	Strategy *Strategy `hcl:"strategy,block"`
}

// LoadStrategy loads strategy constants from an HCL file, falling back to
// DefaultStrategy for any field the file leaves unset. A missing file is not
// an error and yields the defaults.
func LoadStrategy(filename string) (Strategy, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultStrategy(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Strategy{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var wrapper strategyFile
	diags = gohcl.DecodeBody(file.Body, nil, &wrapper)
	if diags.HasErrors() {
		return Strategy{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	strategy := DefaultStrategy()
	if wrapper.Strategy != nil {
		applyOverrides(&strategy, wrapper.Strategy)
	}
	return strategy, nil
}

// applyOverrides copies non-zero fields from the file onto the defaults.
// Zero is not a meaningful value for any threshold, so it marks "unset".
func applyOverrides(strategy, overrides *Strategy) {
	if overrides.EarlyBustMax != 0 {
		strategy.EarlyBustMax = overrides.EarlyBustMax
	}
	if overrides.EarlyScoreMax != 0 {
		strategy.EarlyScoreMax = overrides.EarlyScoreMax
	}
	if overrides.MidBustMax != 0 {
		strategy.MidBustMax = overrides.MidBustMax
	}
	if overrides.MidScoreMax != 0 {
		strategy.MidScoreMax = overrides.MidScoreMax
	}
	if overrides.MidLowBustMax != 0 {
		strategy.MidLowBustMax = overrides.MidLowBustMax
	}
	if overrides.LateBustMax != 0 {
		strategy.LateBustMax = overrides.LateBustMax
	}
	if overrides.LateScoreMax != 0 {
		strategy.LateScoreMax = overrides.LateScoreMax
	}
	if overrides.LateLowBustMax != 0 {
		strategy.LateLowBustMax = overrides.LateLowBustMax
	}
	if overrides.SevenBonusEV != 0 {
		strategy.SevenBonusEV = overrides.SevenBonusEV
	}
	if overrides.SecondChanceSlack != 0 {
		strategy.SecondChanceSlack = overrides.SecondChanceSlack
	}
	if overrides.AvgModifierValue != 0 {
		strategy.AvgModifierValue = overrides.AvgModifierValue
	}
}
