package gesture

// ScreenSize is the side length of the square region every touch position
// is normalized into before classification.
const ScreenSize = 100.0

// Zone is the directional classification of a touch position within the
// normalized screen square.
type Zone int

const (
	ZoneUp Zone = iota
	ZoneDown
	ZoneLeft
	ZoneRight
)

// zoneLetters maps each zone to its single-letter spelling in binding
// patterns: h(aut), b(as), g(auche), d(roite).
var zoneLetters = map[Zone]byte{
	ZoneUp:    'h',
	ZoneDown:  'b',
	ZoneLeft:  'g',
	ZoneRight: 'd',
}

func (z Zone) String() string {
	switch z {
	case ZoneUp:
		return "up"
	case ZoneDown:
		return "down"
	case ZoneLeft:
		return "left"
	case ZoneRight:
		return "right"
	}
	return "unknown"
}

// Letter returns the pattern letter for the zone.
func (z Zone) Letter() byte {
	return zoneLetters[z]
}

// ZoneForLetter returns the zone spelled by a pattern letter.
func ZoneForLetter(c byte) (Zone, bool) {
	for z, l := range zoneLetters {
		if l == c {
			return z, true
		}
	}
	return 0, false
}

// Letters spells a gesture as its pattern-letter string.
func Letters(gesture []Zone) string {
	buf := make([]byte, len(gesture))
	for i, z := range gesture {
		buf[i] = z.Letter()
	}
	return string(buf)
}

// Classify maps a position inside the normalized square to a zone. The
// square is cut by its two diagonals into four triangles; both comparisons
// are strict, so points lying exactly on a diagonal always resolve to the
// branch where < holds. No epsilon is applied.
func Classify(x, y float64) Zone {
	d1 := y < ScreenSize-x // above the anti-diagonal (0,L)-(L,0)
	d2 := y < x            // above the main diagonal (0,0)-(L,L)

	switch {
	case d1 && d2:
		return ZoneUp
	case d1:
		return ZoneLeft
	case d2:
		return ZoneRight
	default:
		return ZoneDown
	}
}
