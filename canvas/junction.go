package canvas

import "wireroute/core"

// dirMask is a set of directions a cell connects to.
type dirMask uint8

const (
	maskNorth dirMask = 1 << iota
	maskEast
	maskSouth
	maskWest
)

func maskOf(d core.Direction) dirMask {
	switch d {
	case core.North:
		return maskNorth
	case core.East:
		return maskEast
	case core.South:
		return maskSouth
	case core.West:
		return maskWest
	}
	return 0
}

// junctionGlyph returns the box-drawing character joining the given directions.
func junctionGlyph(m dirMask) rune {
	switch m {
	case maskNorth, maskSouth, maskNorth | maskSouth:
		return '│'
	case maskEast, maskWest, maskEast | maskWest:
		return '─'
	case maskEast | maskSouth:
		return '┌'
	case maskWest | maskSouth:
		return '┐'
	case maskNorth | maskEast:
		return '└'
	case maskNorth | maskWest:
		return '┘'
	case maskEast | maskWest | maskSouth:
		return '┬'
	case maskEast | maskWest | maskNorth:
		return '┴'
	case maskNorth | maskSouth | maskEast:
		return '├'
	case maskNorth | maskSouth | maskWest:
		return '┤'
	case maskNorth | maskEast | maskSouth | maskWest:
		return '┼'
	}
	return ' '
}

// glyphMask is the inverse of junctionGlyph. Plain lines connect both ways.
func glyphMask(r rune) (dirMask, bool) {
	for _, m := range []dirMask{
		maskNorth | maskSouth, maskEast | maskWest,
		maskEast | maskSouth, maskWest | maskSouth, maskNorth | maskEast, maskNorth | maskWest,
		maskEast | maskWest | maskSouth, maskEast | maskWest | maskNorth,
		maskNorth | maskSouth | maskEast, maskNorth | maskSouth | maskWest,
		maskNorth | maskEast | maskSouth | maskWest,
	} {
		if junctionGlyph(m) == r {
			return m, true
		}
	}
	return 0, false
}

// CharacterMerger handles the merging of two characters at the same position
type CharacterMerger struct {
	masks map[rune]dirMask
}

// NewCharacterMerger creates a merger with standard box-drawing merge rules
func NewCharacterMerger() *CharacterMerger {
	m := &CharacterMerger{masks: make(map[rune]dirMask)}
	for _, r := range "│─┌┐└┘┬┴├┤┼" {
		m.masks[r], _ = glyphMask(r)
	}
	return m
}

// Merge combines two characters. Two box-drawing characters join into the glyph
// connecting every direction either connects; anything else keeps the new character.
func (m *CharacterMerger) Merge(existing, new rune) rune {
	a, okA := m.masks[existing]
	b, okB := m.masks[new]
	if !okA || !okB {
		return new
	}
	return junctionGlyph(a | b)
}
