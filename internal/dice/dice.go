package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// RollResult holds the outcome of a single dice roll
type RollResult struct {
	Total    int
	RawTotal int // Total without the bonus
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	Highest  int
	Lowest   int
	IsCrit   bool // Natural 20 on a d20
	IsFumble bool // Natural 1 on a d20
}

// Roll rolls count dice with the given number of sides and adds a bonus
func Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	maxValue, minValue, total := 0, 0, 0

	out := make([]int, count)
	for i := 0; i < count; i++ {
		roll := rand.Intn(sides) + 1
		total += roll
		if i == 0 {
			minValue = roll
			maxValue = roll
		}

		if minValue > roll {
			minValue = roll
		}

		if maxValue < roll {
			maxValue = roll
		}

		out[i] = roll
	}

	result := &RollResult{
		Total:    total + bonus,
		RawTotal: total,
		Rolls:    out,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		Highest:  maxValue,
		Lowest:   minValue,
	}

	if count == 1 && sides == 20 {
		result.IsCrit = out[0] == 20
		result.IsFumble = out[0] == 1
	}

	return result, nil
}

// RollString rolls dice described in standard notation, e.g. "2d6+3"
func RollString(diceString string) (*RollResult, error) {
	a := strings.Split(diceString, "+")
	var dice = diceString
	var bonus, diceSize, diceCount int
	var err error
	if len(a) == 2 {
		bonus, err = strconv.Atoi(a[1])
		if err != nil {
			return nil, errors.New("invalid dice string")
		}
		dice = a[0]
	}

	diceParts := strings.Split(dice, "d")
	if len(diceParts) != 2 {
		return nil, errors.New("invalid dice string")
	}

	diceCount, err = strconv.Atoi(diceParts[0])
	if err != nil {
		return nil, errors.New("invalid dice string")
	}
	diceSize, err = strconv.Atoi(diceParts[1])
	if err != nil {
		return nil, errors.New("invalid dice string")
	}

	return Roll(diceCount, diceSize, bonus)
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	if r.Bonus != 0 {
		return fmt.Sprintf("%d : %s+%d", r.Total, compact, r.Bonus)
	}
	return fmt.Sprintf("%d : %s", r.Total, compact)
}
