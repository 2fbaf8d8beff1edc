package rating

import (
	"math"
	"testing"
)

func TestUpdate_WinRaisesRating(t *testing.T) {
	cases := []struct {
		current, opponent float64
	}{
		{1200, 1200},
		{1200, 1800},
		{1800, 1100},
		{-50, 1400},
	}
	for _, c := range cases {
		got := Update(c.current, true, c.opponent)
		if got <= c.current {
			t.Errorf("Update(%v, true, %v) = %v, want > current", c.current, c.opponent, got)
		}
	}
}

func TestUpdate_LossLowersRating(t *testing.T) {
	cases := []struct {
		current, opponent float64
	}{
		{1200, 1200},
		{1200, 1800},
		{1800, 1100},
	}
	for _, c := range cases {
		got := Update(c.current, false, c.opponent)
		if got >= c.current {
			t.Errorf("Update(%v, false, %v) = %v, want < current", c.current, c.opponent, got)
		}
	}
}

func TestUpdate_EqualOpponent(t *testing.T) {
	// Expected score against an equal opponent is exactly 0.5,
	// so a win gains K/2 and a loss costs K/2.
	if got := Update(1200, true, 1200); got != 1216 {
		t.Errorf("win vs equal = %v, want 1216", got)
	}
	if got := Update(1200, false, 1200); got != 1184 {
		t.Errorf("loss vs equal = %v, want 1184", got)
	}
}

func TestUpdate_ReturnsWholeNumbers(t *testing.T) {
	for _, won := range []bool{true, false} {
		got := Update(1234, won, 1567)
		if got != math.Trunc(got) {
			t.Errorf("Update(1234, %v, 1567) = %v, want integer value", won, got)
		}
	}
}

func TestUpdate_CanGoNegative(t *testing.T) {
	// No clamping: ratings may drop below zero over repeated losses.
	r := 10.0
	for i := 0; i < 5; i++ {
		r = Update(r, false, 1800)
	}
	if r >= 0 {
		t.Errorf("rating after repeated extreme losses = %v, want negative", r)
	}
}

func TestUpdate_UpsetGainsMore(t *testing.T) {
	// Beating a harder question should move the rating more than
	// beating an easier one.
	upset := Update(1200, true, 1800) - 1200
	routine := Update(1200, true, 1100) - 1200
	if upset <= routine {
		t.Errorf("upset gain %v <= routine gain %v", upset, routine)
	}
}
