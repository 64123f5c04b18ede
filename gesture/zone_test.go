package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_RepresentativePoints(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		expected Zone
	}{
		{"top center", 50, 10, ZoneUp},
		{"bottom center", 50, 90, ZoneDown},
		{"left edge", 5, 50, ZoneLeft},
		{"right edge", 95, 50, ZoneRight},
		{"near top left corner inside upper triangle", 49, 1, ZoneUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.x, tt.y))
		})
	}
}

func TestClassify_CornerRegressions(t *testing.T) {
	// literal regression points: ties on a diagonal resolve to the
	// branch where < holds, with no epsilon
	assert.Equal(t, ZoneLeft, Classify(0, 0))
	assert.Equal(t, ZoneDown, Classify(99, 99))
	// (0,99): d1 = (99 < 100) true, d2 = (99 < 0) false
	assert.Equal(t, ZoneLeft, Classify(0, 99))
	// (99,0): d1 = (0 < 1) true, d2 = (0 < 99) true
	assert.Equal(t, ZoneUp, Classify(99, 0))
}

func TestClassify_CenterAndDiagonals(t *testing.T) {
	// dead center: d1 = (50 < 50) false, d2 = (50 < 50) false
	assert.Equal(t, ZoneDown, Classify(50, 50))
	// on the main diagonal above center: d1 true, d2 false
	assert.Equal(t, ZoneLeft, Classify(20, 20))
	// on the anti-diagonal above center: d1 false, d2 true
	assert.Equal(t, ZoneRight, Classify(80, 20))
}

func TestClassify_PartitionsTheSquare(t *testing.T) {
	// every grid point must classify to the zone the two comparisons
	// predict; no gaps, no overlaps
	for x := 0.0; x < ScreenSize; x += 0.5 {
		for y := 0.0; y < ScreenSize; y += 0.5 {
			d1 := y < ScreenSize-x
			d2 := y < x

			var expected Zone
			switch {
			case d1 && d2:
				expected = ZoneUp
			case d1 && !d2:
				expected = ZoneLeft
			case !d1 && d2:
				expected = ZoneRight
			default:
				expected = ZoneDown
			}

			require.Equal(t, expected, Classify(x, y), "at (%v,%v)", x, y)
		}
	}
}

func TestZoneLetters(t *testing.T) {
	assert.Equal(t, byte('h'), ZoneUp.Letter())
	assert.Equal(t, byte('b'), ZoneDown.Letter())
	assert.Equal(t, byte('g'), ZoneLeft.Letter())
	assert.Equal(t, byte('d'), ZoneRight.Letter())

	for _, z := range []Zone{ZoneUp, ZoneDown, ZoneLeft, ZoneRight} {
		back, ok := ZoneForLetter(z.Letter())
		require.True(t, ok)
		assert.Equal(t, z, back)
	}

	_, ok := ZoneForLetter('a')
	assert.False(t, ok)
}

func TestZoneString(t *testing.T) {
	assert.Equal(t, "up", ZoneUp.String())
	assert.Equal(t, "down", ZoneDown.String())
	assert.Equal(t, "left", ZoneLeft.String())
	assert.Equal(t, "right", ZoneRight.String())
	assert.Equal(t, "unknown", Zone(9).String())
}

func TestLetters(t *testing.T) {
	assert.Equal(t, "gd", Letters([]Zone{ZoneLeft, ZoneRight}))
	assert.Equal(t, "", Letters(nil))
}
