package input

import (
	"fmt"
	"path/filepath"
	"sort"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/touchbind/touchbind/gesture"
	"github.com/touchbind/touchbind/utils"
)

// ioctl request encoding (Linux _IOC macro).
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocRead = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr((dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift))
}

// absInfo mirrors struct input_absinfo.
type absInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

func eviocgAbs(absCode int) uintptr {
	// EVIOCGABS(abs) = _IOR('E', 0x40 + abs, struct input_absinfo)
	return ioc(iocRead, uint32('E'), uint32(0x40+absCode), uint32(unsafe.Sizeof(absInfo{})))
}

func eviocgBit(evType, length int) uintptr {
	// EVIOCGBIT(ev, len) = _IOC(_IOC_READ, 'E', 0x20 + ev, len)
	return ioc(iocRead, uint32('E'), uint32(0x20+evType), uint32(length))
}

func getAbsInfo(fd, absCode int) (absInfo, error) {
	var info absInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), eviocgAbs(absCode), uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return absInfo{}, errno
	}
	return info, nil
}

// hasMultitouch reports whether fd advertises the ABS_MT_POSITION_X axis.
func hasMultitouch(fd int) bool {
	var bits [(absMTTrackingID / 8) + 1]byte
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), eviocgBit(evAbs, len(bits)), uintptr(unsafe.Pointer(&bits[0])))
	if errno != 0 {
		return false
	}
	return bits[absMTPositionX/8]&(1<<(absMTPositionX%8)) != 0
}

// device is one open evdev node.
type device struct {
	fd      int
	path    string
	stream  eventStream
	decoder *frameDecoder
}

// Evdev reads multitouch contact-down events from one or more
// /dev/input/event* nodes. It implements gesture.Source.
type Evdev struct {
	devices []*device
	wakeR   int
	wakeW   int
}

// Open opens the given device paths. Every path must be a readable evdev
// node with multitouch axes.
func Open(paths []string) (*Evdev, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input devices given")
	}

	wake := make([]int, 2)
	if err := unix.Pipe2(wake, unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, fmt.Errorf("failed to create wake pipe: %w", err)
	}

	src := &Evdev{wakeR: wake[0], wakeW: wake[1]}
	for _, path := range paths {
		dev, err := openDevice(path)
		if err != nil {
			_ = src.Close()
			return nil, err
		}
		src.devices = append(src.devices, dev)
	}

	return src, nil
}

func openDevice(path string) (*device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	if !hasMultitouch(fd) {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%s is not a multitouch device", path)
	}

	xInfo, err := getAbsInfo(fd, absMTPositionX)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("failed to read x axis range of %s: %w", path, err)
	}
	yInfo, err := getAbsInfo(fd, absMTPositionY)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("failed to read y axis range of %s: %w", path, err)
	}

	utils.Verbose("opened %s, x axis [%d,%d], y axis [%d,%d]", path, xInfo.Min, xInfo.Max, yInfo.Min, yInfo.Max)

	return &device{
		fd:   fd,
		path: path,
		decoder: newFrameDecoder(
			axisRange{min: xInfo.Min, max: xInfo.Max},
			axisRange{min: yInfo.Min, max: yInfo.Max},
		),
	}, nil
}

// Discover returns the paths of all multitouch-capable event nodes.
func Discover() ([]string, error) {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var found []string
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err != nil {
			continue
		}
		if hasMultitouch(fd) {
			found = append(found, path)
		}
		_ = unix.Close(fd)
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("no multitouch devices found under /dev/input")
	}
	return found, nil
}

// Wait blocks until a device becomes readable or Wake is called. A signal
// interrupting the poll returns nil as well, so the caller can recheck its
// cancellation state.
func (e *Evdev) Wait() error {
	fds := make([]unix.PollFd, 0, len(e.devices)+1)
	for _, dev := range e.devices {
		fds = append(fds, unix.PollFd{Fd: int32(dev.fd), Events: unix.POLLIN})
	}
	fds = append(fds, unix.PollFd{Fd: int32(e.wakeR), Events: unix.POLLIN})

	_, err := unix.Poll(fds, -1)
	if err == unix.EINTR {
		return nil
	}
	if err != nil {
		return fmt.Errorf("poll failed: %w", err)
	}

	// swallow wake bytes so the next Wait blocks again
	if fds[len(fds)-1].Revents&unix.POLLIN != 0 {
		var buf [16]byte
		for {
			if _, err := unix.Read(e.wakeR, buf[:]); err != nil {
				break
			}
		}
	}

	return nil
}

// Drain reads every queued event from every device without blocking and
// returns the decoded contact-down events. A device that disappears is
// dropped; Drain only fails once no devices are left.
func (e *Evdev) Drain() ([]gesture.Event, error) {
	var events []gesture.Event
	var alive []*device

	for _, dev := range e.devices {
		err := dev.drain(&events)
		if err != nil {
			utils.Warn("dropping %s: %v", dev.path, err)
			_ = unix.Close(dev.fd)
			continue
		}
		alive = append(alive, dev)
	}
	e.devices = alive

	if len(e.devices) == 0 {
		return events, fmt.Errorf("all input devices are gone")
	}
	return events, nil
}

func (d *device) drain(events *[]gesture.Event) error {
	buf := make([]byte, 4096)
	for {
		n, err := unix.Read(d.fd, buf)
		if err == unix.EAGAIN {
			return nil
		}
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		d.stream.feed(buf[:n], func(typ, code uint16, value int32) {
			*events = append(*events, d.decoder.feed(typ, code, value)...)
		})
	}
}

// Wake unblocks a concurrent Wait. Safe to call from another goroutine.
func (e *Evdev) Wake() {
	var one = [1]byte{1}
	_, _ = unix.Write(e.wakeW, one[:])
}

// Close releases all device and pipe descriptors.
func (e *Evdev) Close() error {
	for _, dev := range e.devices {
		_ = unix.Close(dev.fd)
	}
	e.devices = nil
	_ = unix.Close(e.wakeR)
	_ = unix.Close(e.wakeW)
	return nil
}
