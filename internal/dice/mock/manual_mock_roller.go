package mockdice

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/dnd-combat-sim/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetNextRoll sets the next roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls sets multiple roll results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Reset clears all rolls and resets the index
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
}

// getNextRoll returns the next predetermined roll
func (m *ManualMockRoller) getNextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// Roll implements dice.Roller.Roll with predetermined results
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	if count < 1 {
		return nil, fmt.Errorf("invalid dice count: %d", count)
	}
	if sides < 1 {
		return nil, fmt.Errorf("invalid dice size: %d", sides)
	}

	rolls := make([]int, count)
	total := 0
	highest, lowest := 0, 0
	for i := 0; i < count; i++ {
		roll, err := m.getNextRoll()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("predetermined roll %d out of range for d%d", roll, sides)
		}
		rolls[i] = roll
		total += roll
		if i == 0 {
			highest, lowest = roll, roll
		}
		if roll > highest {
			highest = roll
		}
		if roll < lowest {
			lowest = roll
		}
	}

	result := &dice.RollResult{
		Total:    total + bonus,
		RawTotal: total,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		Highest:  highest,
		Lowest:   lowest,
	}

	if count == 1 && sides == 20 {
		result.IsCrit = rolls[0] == 20
		result.IsFumble = rolls[0] == 1
	}

	return result, nil
}

// RollWithAdvantage implements dice.Roller.RollWithAdvantage with predetermined results
func (m *ManualMockRoller) RollWithAdvantage(sides, bonus int) (*dice.RollResult, error) {
	return m.rollPair(sides, bonus, true)
}

// RollWithDisadvantage implements dice.Roller.RollWithDisadvantage with predetermined results
func (m *ManualMockRoller) RollWithDisadvantage(sides, bonus int) (*dice.RollResult, error) {
	return m.rollPair(sides, bonus, false)
}

func (m *ManualMockRoller) rollPair(sides, bonus int, takeHigher bool) (*dice.RollResult, error) {
	roll1, err := m.getNextRoll()
	if err != nil {
		return nil, err
	}
	roll2, err := m.getNextRoll()
	if err != nil {
		return nil, err
	}

	used := roll1
	if takeHigher && roll2 > roll1 {
		used = roll2
	}
	if !takeHigher && roll2 < roll1 {
		used = roll2
	}

	result := &dice.RollResult{
		Total:    used + bonus,
		RawTotal: used,
		Rolls:    []int{roll1, roll2},
		Bonus:    bonus,
		Count:    1,
		Sides:    sides,
	}

	if sides == 20 {
		result.IsCrit = used == 20
		result.IsFumble = used == 1
	}

	return result, nil
}
