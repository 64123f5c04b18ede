package input

import (
	"encoding/binary"

	"github.com/touchbind/touchbind/gesture"
)

// Linux input event types and codes we care about (multitouch protocol B).
const (
	evSyn = 0x00
	evAbs = 0x03

	synReport = 0x00

	absMTSlot       = 0x2f
	absMTPositionX  = 0x35
	absMTPositionY  = 0x36
	absMTTrackingID = 0x39
)

// decoderSlots is how many hardware slots the decoder tracks. Devices may
// report more slots than the gesture buffer supports; the dispatcher drops
// those, the decoder just has to not lose track of the ones below.
const decoderSlots = 16

// axisRange holds the device-reported min/max for one ABS axis.
type axisRange struct {
	min, max int32
}

// normalize maps a raw axis value into [0, ScreenSize].
func (r axisRange) normalize(v int32) float64 {
	if r.max <= r.min {
		return 0
	}
	return float64(v-r.min) * gesture.ScreenSize / float64(r.max-r.min)
}

// frameDecoder turns a protocol-B event sequence into contact-down events.
// ABS_MT_SLOT selects the slot subsequent codes apply to; a non-negative
// ABS_MT_TRACKING_ID marks the down edge; SYN_REPORT closes the frame and
// commits every pending down with the slot's latest position.
type frameDecoder struct {
	xRange, yRange axisRange

	slot int
	x, y [decoderSlots]int32
	down [decoderSlots]bool
}

func newFrameDecoder(xRange, yRange axisRange) *frameDecoder {
	return &frameDecoder{xRange: xRange, yRange: yRange}
}

// feed consumes one input event and returns the contact-down events
// committed when the event closes a report, or nil.
func (d *frameDecoder) feed(typ, code uint16, value int32) []gesture.Event {
	switch typ {
	case evAbs:
		switch code {
		case absMTSlot:
			if value >= 0 && value < decoderSlots {
				d.slot = int(value)
			} else {
				d.slot = -1
			}
		case absMTTrackingID:
			if d.slot >= 0 && value >= 0 {
				d.down[d.slot] = true
			}
		case absMTPositionX:
			if d.slot >= 0 {
				d.x[d.slot] = value
			}
		case absMTPositionY:
			if d.slot >= 0 {
				d.y[d.slot] = value
			}
		}

	case evSyn:
		if code != synReport {
			return nil
		}
		var out []gesture.Event
		for s := 0; s < decoderSlots; s++ {
			if !d.down[s] {
				continue
			}
			d.down[s] = false
			out = append(out, gesture.Event{
				Slot: s,
				X:    d.xRange.normalize(d.x[s]),
				Y:    d.yRange.normalize(d.y[s]),
			})
		}
		return out
	}

	return nil
}

// eventStream splits a raw byte stream into input_event structs. The
// kernel struct is 24 bytes with a 64-bit timeval and 16 bytes with a
// 32-bit one; the size is inferred from the stream once enough bytes have
// arrived.
type eventStream struct {
	buf []byte
	sz  int // 0 unknown, else 16 or 24
}

func (p *eventStream) feed(chunk []byte, cb func(typ, code uint16, value int32)) {
	p.buf = append(p.buf, chunk...)
	if p.sz == 0 {
		switch {
		case len(p.buf) >= 48 && len(p.buf)%24 == 0:
			p.sz = 24
		case len(p.buf) >= 32 && len(p.buf)%16 == 0:
			p.sz = 16
		case len(p.buf) >= 24:
			// assume a 64-bit kernel when the length is ambiguous
			p.sz = 24
		}
	}
	for p.sz != 0 && len(p.buf) >= p.sz {
		ev := p.buf[:p.sz]
		p.buf = p.buf[p.sz:]
		var typ, code uint16
		var value int32
		if p.sz == 24 {
			typ = binary.LittleEndian.Uint16(ev[16:18])
			code = binary.LittleEndian.Uint16(ev[18:20])
			value = int32(binary.LittleEndian.Uint32(ev[20:24]))
		} else {
			typ = binary.LittleEndian.Uint16(ev[8:10])
			code = binary.LittleEndian.Uint16(ev[10:12])
			value = int32(binary.LittleEndian.Uint32(ev[12:16]))
		}
		cb(typ, code, value)
	}
}
