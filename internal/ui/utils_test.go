package ui

import (
	"testing"

	"minesweeper/internal/mines"
)

func TestClampParams(t *testing.T) {
	testCases := []struct {
		w, h, m int
		want    mines.GameParams
	}{
		{10, 10, 10, mines.GameParams{Width: 10, Height: 10, MineCount: 10}},
		{0, 0, 0, mines.GameParams{Width: 1, Height: 1, MineCount: 1}},
		{99, 99, 9999, mines.GameParams{Width: 50, Height: 50, MineCount: 2499}},
		{3, 3, 9, mines.GameParams{Width: 3, Height: 3, MineCount: 8}},
		{-5, 8, 3, mines.GameParams{Width: 1, Height: 8, MineCount: 3}},
	}
	for _, test := range testCases {
		have := clampParams(test.w, test.h, test.m)
		if have != test.want {
			t.Errorf("clampParams(%d, %d, %d) = %+v, want %+v",
				test.w, test.h, test.m, have, test.want)
		}
		if err := have.Validate(); err != nil {
			t.Errorf("clamped params must be playable: %v", err)
		}
	}
}

func TestIsNameRune(t *testing.T) {
	for _, c := range "ab-Z_09" {
		if !isNameRune(c) {
			t.Errorf("%q must be allowed in names", c)
		}
	}
	for _, c := range " !@.露\t" {
		if isNameRune(c) {
			t.Errorf("%q must not be allowed in names", c)
		}
	}
}
