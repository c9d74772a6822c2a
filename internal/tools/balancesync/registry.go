package balancesync

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRegistry indicates a mapping registry violates its invariants.
var ErrInvalidRegistry = errors.New("invalid mapping registry")

type transformOp int

const (
	opIdentity transformOp = iota
	opDivide
)

// Transform converts a web-side default into config units before comparison.
// The zero value is the identity transform.
type Transform struct {
	op      transformOp
	divisor float64
}

// Identity returns the transform that leaves values unchanged.
func Identity() Transform {
	return Transform{}
}

// DivideBy returns the transform dividing a web value by divisor.
func DivideBy(divisor float64) Transform {
	return Transform{op: opDivide, divisor: divisor}
}

// Apply converts a web-side value into config units.
func (t Transform) Apply(value float64) float64 {
	switch t.op {
	case opDivide:
		return value / t.divisor
	default:
		return value
	}
}

// String describes the transform for diagnostics.
func (t Transform) String() string {
	switch t.op {
	case opDivide:
		return fmt.Sprintf("divide by %g", t.divisor)
	default:
		return "identity"
	}
}

// DirectMapping ties a simulator control to the config path holding the same
// value in the same units.
type DirectMapping struct {
	ControlID string
	Path      string
}

// TransformedMapping ties a simulator control to a config path whose value
// the simulator stores in different units.
type TransformedMapping struct {
	ControlID string
	Path      string
	Transform Transform
}

// Registry is the hand-maintained table of simulator controls checked
// against the balance export. Only values present in both documents belong
// here.
type Registry struct {
	Direct      []DirectMapping
	Transformed []TransformedMapping
}

// DefaultRegistry returns the registry for the shipped simulator.
func DefaultRegistry() Registry {
	return Registry{
		Direct: []DirectMapping{
			// Power grid
			{ControlID: "power-base", Path: "powerGrid.basePowerBudget"},
			{ControlID: "tower-power-common", Path: "powerGrid.towerPower.common"},
			{ControlID: "tower-power-rare", Path: "powerGrid.towerPower.rare"},
			{ControlID: "tower-power-epic", Path: "powerGrid.towerPower.epic"},
			{ControlID: "tower-power-legendary", Path: "powerGrid.towerPower.legendary"},

			// Threat level
			{ControlID: "threat-hp-scale", Path: "threatLevel.healthScaling"},
			{ControlID: "threat-speed-scale", Path: "threatLevel.speedScaling"},
			{ControlID: "threat-dmg-scale", Path: "threatLevel.damageScaling"},

			// Cyberboss
			{ControlID: "cyber-hp", Path: "bosses.cyberboss.baseHealth"},

			// Zero-day
			{ControlID: "zeroday-hp", Path: "zeroDay.baseHealth"},
			{ControlID: "zeroday-speed", Path: "zeroDay.speed"},
			{ControlID: "zeroday-drain", Path: "zeroDay.efficiencyDrainRate"},
			{ControlID: "zeroday-min-waves", Path: "zeroDay.minWavesBeforeSpawn"},
			{ControlID: "zeroday-hash", Path: "zeroDay.defeatHashBonus"},
			{ControlID: "zeroday-restore", Path: "zeroDay.defeatEfficiencyRestore"},

			// Hash economy
			{ControlID: "hash-base", Path: "hashEconomy.baseHashPerSecond"},
			{ControlID: "hash-cpu-mult", Path: "hashEconomy.cpuLevelScaling"},
			{ControlID: "offline-max-hours", Path: "hashEconomy.maxOfflineHours"},

			// Protocol scaling
			{ControlID: "proto-range-mult", Path: "protocolScaling.rangePerLevel"},
			{ControlID: "proto-fire-mult", Path: "protocolScaling.fireRatePerLevel"},

			// Components
			{ControlID: "comp-max-level", Path: "components.maxLevel"},
			{ControlID: "comp-cost-psu", Path: "components.baseCosts.psu"},
			{ControlID: "comp-cost-ram", Path: "components.baseCosts.ram"},
			{ControlID: "comp-cost-gpu", Path: "components.baseCosts.gpu"},
			{ControlID: "comp-cost-cache", Path: "components.baseCosts.cache"},
			{ControlID: "comp-cost-storage", Path: "components.baseCosts.storage"},
			{ControlID: "comp-cost-expansion", Path: "components.baseCosts.expansion"},
			{ControlID: "comp-cost-network", Path: "components.baseCosts.network"},
			{ControlID: "comp-cost-io", Path: "components.baseCosts.io"},
			{ControlID: "comp-cost-cpu", Path: "components.baseCosts.cpu"},

			// Efficiency
			{ControlID: "eff-leak-interval", Path: "efficiency.leakDecayInterval"},
			{ControlID: "eff-warning", Path: "efficiency.warningThreshold"},
		},
		Transformed: []TransformedMapping{
			// The simulator edits these as percentages; the export stores
			// fractions.
			{ControlID: "offline-rate", Path: "hashEconomy.offlineEarningsRate", Transform: DivideBy(100)},
			{ControlID: "cyber-phase2", Path: "bosses.cyberboss.phase2Threshold", Transform: DivideBy(100)},
			{ControlID: "cyber-phase3", Path: "bosses.cyberboss.phase3Threshold", Transform: DivideBy(100)},
			{ControlID: "cyber-phase4", Path: "bosses.cyberboss.phase4Threshold", Transform: DivideBy(100)},
		},
	}
}

// Validate checks registry invariants: control ids unique across both
// tables, paths made of non-empty dot-separated segments, and transforms
// that cannot divide by zero.
func (r Registry) Validate() error {
	seen := make(map[string]struct{}, len(r.Direct)+len(r.Transformed))
	check := func(id, path string) error {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: empty control id", ErrInvalidRegistry)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate control id %q", ErrInvalidRegistry, id)
		}
		seen[id] = struct{}{}
		if path == "" {
			return fmt.Errorf("%w: control %q has an empty path", ErrInvalidRegistry, id)
		}
		for _, segment := range strings.Split(path, ".") {
			if segment == "" {
				return fmt.Errorf("%w: control %q has malformed path %q", ErrInvalidRegistry, id, path)
			}
		}
		return nil
	}
	for _, mapping := range r.Direct {
		if err := check(mapping.ControlID, mapping.Path); err != nil {
			return err
		}
	}
	for _, mapping := range r.Transformed {
		if err := check(mapping.ControlID, mapping.Path); err != nil {
			return err
		}
		if mapping.Transform.op == opDivide && mapping.Transform.divisor == 0 {
			return fmt.Errorf("%w: control %q divides by zero", ErrInvalidRegistry, mapping.ControlID)
		}
	}
	return nil
}
