package combat

import (
	"github.com/KirkDiggler/dnd-combat-sim/internal/dice"
)

// DamageRoll is one source's contribution to an attack or spell. Dice are
// resolved once at construction and stay fixed until Reroll or DoubleDice is
// called explicitly.
type DamageRoll struct {
	Source string
	Dice   []int
	Flat   int
	Type   string
	Rolls  []int

	roller dice.Roller
}

// NewDamageRoll rolls each die immediately and returns the resolved roll
func NewDamageRoll(roller dice.Roller, source string, diceSizes []int, flat int, damageType string) (*DamageRoll, error) {
	d := &DamageRoll{
		Source: source,
		Dice:   append([]int(nil), diceSizes...),
		Flat:   flat,
		Type:   damageType,
		roller: roller,
	}

	rolls, err := rollEach(roller, d.Dice)
	if err != nil {
		return nil, err
	}
	d.Rolls = rolls

	return d, nil
}

// Total returns flat damage plus the sum of the resolved dice
func (d *DamageRoll) Total() int {
	total := d.Flat
	for _, r := range d.Rolls {
		total += r
	}
	return total
}

// Reroll replaces every resolved die with a fresh roll
func (d *DamageRoll) Reroll() error {
	rolls, err := rollEach(d.roller, d.Dice)
	if err != nil {
		return err
	}
	d.Rolls = rolls
	return nil
}

// DoubleDice doubles the dice count for a critical hit. The original rolls
// stay fixed; only the added dice are rolled. Flat damage is unchanged.
func (d *DamageRoll) DoubleDice() error {
	added, err := rollEach(d.roller, d.Dice)
	if err != nil {
		return err
	}

	d.Dice = append(d.Dice, d.Dice...)
	d.Rolls = append(d.Rolls, added...)

	return nil
}

func rollEach(roller dice.Roller, sizes []int) ([]int, error) {
	rolls := make([]int, 0, len(sizes))
	for _, sides := range sizes {
		result, err := roller.Roll(1, sides, 0)
		if err != nil {
			return nil, err
		}
		rolls = append(rolls, result.Total)
	}
	return rolls, nil
}
