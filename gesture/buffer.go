package gesture

// MaxSlots is the number of concurrently tracked touch contacts.
const MaxSlots = 5

// Buffer holds the most recent zone recorded for each contact slot. There
// is no reset operation: a new touch on slot 0 overwrites entry 0, and
// because gestures are read as a prefix starting at slot 0 that restarts
// accumulation on its own.
type Buffer struct {
	zones [MaxSlots]Zone
}

// Record stores zone at slot, overwriting any prior value. Slots outside
// [0, MaxSlots) are dropped silently.
func (b *Buffer) Record(slot int, zone Zone) {
	if slot < 0 || slot >= MaxSlots {
		return
	}
	b.zones[slot] = zone
}

// Gesture returns the zones recorded for slots 0..upto inclusive. Every
// slot in that range must have been recorded; dispatch order guarantees
// this because slot 0 always touches down before higher slots are matched.
func (b *Buffer) Gesture(upto int) []Zone {
	if upto < 0 {
		return nil
	}
	if upto >= MaxSlots {
		upto = MaxSlots - 1
	}
	gesture := make([]Zone, upto+1)
	copy(gesture, b.zones[:upto+1])
	return gesture
}
