package ui

import (
	"strconv"

	"minesweeper/internal/mines"
)

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// clampParams coerces raw form values into a playable board: dimensions
// stay within bounds and at least one safe cell remains.
func clampParams(width, height, mineCount int) mines.GameParams {
	clamp := func(v, lo, hi int) int {
		return min(max(v, lo), hi)
	}
	width = clamp(width, 1, mines.MaxDimension)
	height = clamp(height, 1, mines.MaxDimension)
	mineCount = clamp(mineCount, 1, width*height-1)
	return mines.GameParams{Width: width, Height: height, MineCount: mineCount}
}

func isNameRune(c rune) bool {
	return c == '-' || c == '_' ||
		'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9'
}
