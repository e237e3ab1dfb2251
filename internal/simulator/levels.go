package simulator

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/dnd-combat-sim/internal/errors"
)

// ParseLevels parses a level selector: a single level like "5" or an
// inclusive range like "1-20".
func ParseLevels(s string) ([]int, error) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		level, err := parseLevel(lo)
		if err != nil {
			return nil, err
		}
		return []int{level}, nil
	}

	start, err := parseLevel(lo)
	if err != nil {
		return nil, err
	}
	end, err := parseLevel(hi)
	if err != nil {
		return nil, err
	}
	if start > end {
		return nil, errors.InvalidArgumentf("level range %q runs backwards", s)
	}

	levels := make([]int, 0, end-start+1)
	for level := start; level <= end; level++ {
		levels = append(levels, level)
	}
	return levels, nil
}

func parseLevel(s string) (int, error) {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.InvalidArgumentf("invalid level %q", s)
	}
	if level < 1 || level > 20 {
		return 0, errors.InvalidArgumentf("level must be 1-20, got %d", level)
	}
	return level, nil
}
