// Package balance defines the authoritative tuning values for the game.
//
// The web simulator under tools/ mirrors these values in its input defaults;
// the balance-sync command verifies the two stay aligned.
package balance

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPowerBudget indicates the base power budget is not positive.
	ErrInvalidPowerBudget = errors.New("base power budget must be positive")
	// ErrInvalidTowerPower indicates a tower power draw is not positive.
	ErrInvalidTowerPower = errors.New("tower power draw must be positive")
	// ErrInvalidScaling indicates a per-level scaling factor is below 1.
	ErrInvalidScaling = errors.New("scaling factor must be at least 1")
	// ErrInvalidHealth indicates an enemy base health is not positive.
	ErrInvalidHealth = errors.New("base health must be positive")
	// ErrInvalidPhaseOrder indicates cyberboss phase thresholds are out of order.
	ErrInvalidPhaseOrder = errors.New("cyberboss phase thresholds must descend within (0, 1)")
	// ErrInvalidRate indicates a rate, interval, or threshold is out of range.
	ErrInvalidRate = errors.New("rate is out of range")
	// ErrInvalidCost indicates a component cost or level bound is not positive.
	ErrInvalidCost = errors.New("component costs and levels must be positive")
)

// Config is the authoritative balance tuning for a run. JSON field names
// are the key paths the sync registry and the web simulator address.
type Config struct {
	PowerGrid       PowerGrid       `json:"powerGrid"`
	ThreatLevel     ThreatLevel     `json:"threatLevel"`
	Bosses          Bosses          `json:"bosses"`
	ZeroDay         ZeroDay         `json:"zeroDay"`
	HashEconomy     HashEconomy     `json:"hashEconomy"`
	ProtocolScaling ProtocolScaling `json:"protocolScaling"`
	Components      Components      `json:"components"`
	Efficiency      Efficiency      `json:"efficiency"`
}

// PowerGrid caps how many towers a layout can power.
type PowerGrid struct {
	BasePowerBudget float64    `json:"basePowerBudget"`
	TowerPower      TowerPower `json:"towerPower"`
}

// TowerPower is the grid draw per tower rarity.
type TowerPower struct {
	Common    float64 `json:"common"`
	Rare      float64 `json:"rare"`
	Epic      float64 `json:"epic"`
	Legendary float64 `json:"legendary"`
}

// ThreatLevel compounds enemy stats per threat tier.
type ThreatLevel struct {
	HealthScaling float64 `json:"healthScaling"`
	SpeedScaling  float64 `json:"speedScaling"`
	DamageScaling float64 `json:"damageScaling"`
}

// Bosses holds per-boss tuning.
type Bosses struct {
	Cyberboss Cyberboss `json:"cyberboss"`
}

// Cyberboss tuning. Phase thresholds are fractions of base health and must
// descend from phase2 to phase4.
type Cyberboss struct {
	BaseHealth      float64 `json:"baseHealth"`
	Phase2Threshold float64 `json:"phase2Threshold"`
	Phase3Threshold float64 `json:"phase3Threshold"`
	Phase4Threshold float64 `json:"phase4Threshold"`
}

// ZeroDay tunes the roaming zero-day exploit enemy.
type ZeroDay struct {
	BaseHealth              float64 `json:"baseHealth"`
	Speed                   float64 `json:"speed"`
	EfficiencyDrainRate     float64 `json:"efficiencyDrainRate"`
	MinWavesBeforeSpawn     int     `json:"minWavesBeforeSpawn"`
	DefeatHashBonus         int     `json:"defeatHashBonus"`
	DefeatEfficiencyRestore float64 `json:"defeatEfficiencyRestore"`
}

// HashEconomy drives hash income and offline accrual. OfflineEarningsRate is
// a fraction of the online rate; the simulator edits it as a percentage.
type HashEconomy struct {
	BaseHashPerSecond   float64 `json:"baseHashPerSecond"`
	CPULevelScaling     float64 `json:"cpuLevelScaling"`
	OfflineEarningsRate float64 `json:"offlineEarningsRate"`
	MaxOfflineHours     float64 `json:"maxOfflineHours"`
}

// ProtocolScaling compounds tower stats per protocol level.
type ProtocolScaling struct {
	RangePerLevel    float64 `json:"rangePerLevel"`
	FireRatePerLevel float64 `json:"fireRatePerLevel"`
}

// Components tunes the component upgrade shop.
type Components struct {
	MaxLevel  int       `json:"maxLevel"`
	BaseCosts BaseCosts `json:"baseCosts"`
}

// BaseCosts is the level-one hash cost per component.
type BaseCosts struct {
	PSU       int `json:"psu"`
	RAM       int `json:"ram"`
	GPU       int `json:"gpu"`
	Cache     int `json:"cache"`
	Storage   int `json:"storage"`
	Expansion int `json:"expansion"`
	Network   int `json:"network"`
	IO        int `json:"io"`
	CPU       int `json:"cpu"`
}

// Efficiency tunes the grid efficiency resource.
type Efficiency struct {
	LeakDecayInterval float64 `json:"leakDecayInterval"`
	WarningThreshold  float64 `json:"warningThreshold"`
}

// Default returns the shipped balance tuning.
func Default() Config {
	return Config{
		PowerGrid: PowerGrid{
			BasePowerBudget: 100,
			TowerPower: TowerPower{
				Common:    10,
				Rare:      15,
				Epic:      25,
				Legendary: 40,
			},
		},
		ThreatLevel: ThreatLevel{
			HealthScaling: 1.15,
			SpeedScaling:  1.05,
			DamageScaling: 1.1,
		},
		Bosses: Bosses{
			Cyberboss: Cyberboss{
				BaseHealth:      5000,
				Phase2Threshold: 0.75,
				Phase3Threshold: 0.5,
				Phase4Threshold: 0.25,
			},
		},
		ZeroDay: ZeroDay{
			BaseHealth:              800,
			Speed:                   1.4,
			EfficiencyDrainRate:     2.5,
			MinWavesBeforeSpawn:     10,
			DefeatHashBonus:         500,
			DefeatEfficiencyRestore: 25,
		},
		HashEconomy: HashEconomy{
			BaseHashPerSecond:   1.5,
			CPULevelScaling:     1.25,
			OfflineEarningsRate: 0.2,
			MaxOfflineHours:     8,
		},
		ProtocolScaling: ProtocolScaling{
			RangePerLevel:    1.1,
			FireRatePerLevel: 1.08,
		},
		Components: Components{
			MaxLevel: 10,
			BaseCosts: BaseCosts{
				PSU:       100,
				RAM:       150,
				GPU:       400,
				Cache:     250,
				Storage:   200,
				Expansion: 300,
				Network:   180,
				IO:        120,
				CPU:       500,
			},
		},
		Efficiency: Efficiency{
			LeakDecayInterval: 5,
			WarningThreshold:  50,
		},
	}
}

// Validate checks the tuning invariants the game assumes at load time.
func (c Config) Validate() error {
	if c.PowerGrid.BasePowerBudget <= 0 {
		return ErrInvalidPowerBudget
	}
	towerDraws := map[string]float64{
		"common":    c.PowerGrid.TowerPower.Common,
		"rare":      c.PowerGrid.TowerPower.Rare,
		"epic":      c.PowerGrid.TowerPower.Epic,
		"legendary": c.PowerGrid.TowerPower.Legendary,
	}
	for rarity, draw := range towerDraws {
		if draw <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidTowerPower, rarity)
		}
	}

	scalings := map[string]float64{
		"threat health":      c.ThreatLevel.HealthScaling,
		"threat speed":       c.ThreatLevel.SpeedScaling,
		"threat damage":      c.ThreatLevel.DamageScaling,
		"cpu level":          c.HashEconomy.CPULevelScaling,
		"protocol range":     c.ProtocolScaling.RangePerLevel,
		"protocol fire rate": c.ProtocolScaling.FireRatePerLevel,
	}
	for name, factor := range scalings {
		if factor < 1 {
			return fmt.Errorf("%w: %s", ErrInvalidScaling, name)
		}
	}

	boss := c.Bosses.Cyberboss
	if boss.BaseHealth <= 0 {
		return fmt.Errorf("%w: cyberboss", ErrInvalidHealth)
	}
	if boss.Phase4Threshold <= 0 || boss.Phase4Threshold >= boss.Phase3Threshold ||
		boss.Phase3Threshold >= boss.Phase2Threshold || boss.Phase2Threshold >= 1 {
		return ErrInvalidPhaseOrder
	}

	if c.ZeroDay.BaseHealth <= 0 {
		return fmt.Errorf("%w: zero-day", ErrInvalidHealth)
	}
	if c.ZeroDay.Speed <= 0 || c.ZeroDay.EfficiencyDrainRate < 0 || c.ZeroDay.MinWavesBeforeSpawn < 0 {
		return fmt.Errorf("%w: zero-day tuning", ErrInvalidRate)
	}

	if c.HashEconomy.BaseHashPerSecond <= 0 || c.HashEconomy.MaxOfflineHours <= 0 {
		return fmt.Errorf("%w: hash economy", ErrInvalidRate)
	}
	if c.HashEconomy.OfflineEarningsRate <= 0 || c.HashEconomy.OfflineEarningsRate > 1 {
		return fmt.Errorf("%w: offline earnings rate must be within (0, 1]", ErrInvalidRate)
	}

	if c.Components.MaxLevel < 1 {
		return fmt.Errorf("%w: max level", ErrInvalidCost)
	}
	costs := map[string]int{
		"psu":       c.Components.BaseCosts.PSU,
		"ram":       c.Components.BaseCosts.RAM,
		"gpu":       c.Components.BaseCosts.GPU,
		"cache":     c.Components.BaseCosts.Cache,
		"storage":   c.Components.BaseCosts.Storage,
		"expansion": c.Components.BaseCosts.Expansion,
		"network":   c.Components.BaseCosts.Network,
		"io":        c.Components.BaseCosts.IO,
		"cpu":       c.Components.BaseCosts.CPU,
	}
	for component, cost := range costs {
		if cost <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidCost, component)
		}
	}

	if c.Efficiency.LeakDecayInterval <= 0 {
		return fmt.Errorf("%w: leak decay interval", ErrInvalidRate)
	}
	if c.Efficiency.WarningThreshold < 0 || c.Efficiency.WarningThreshold > 100 {
		return fmt.Errorf("%w: warning threshold must be within [0, 100]", ErrInvalidRate)
	}
	return nil
}
