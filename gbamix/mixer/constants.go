package mixer

// Console timing constants.
const (
	// ClockFrequency is the system clock of the target console in Hz.
	ClockFrequency = 16777216
	// CyclesPerDisplayFrame is the number of clock cycles per display
	// refresh: ClockFrequency / CyclesPerDisplayFrame ~= 59.73 fps.
	CyclesPerDisplayFrame = 280896
)

// NumChannels is the number of playback slots a Mixer owns. The pool is a
// plain fixed array and is never resized.
const NumChannels = 8

// Output sample bounds applied by the collapse stage. The hardware plays
// signed 8-bit PCM, so the range is the asymmetric two's complement one.
const (
	outputMax = 127
	outputMin = -128
)

// Frequency selects the mixer output rate, fixed for the lifetime of a
// Mixer. Assets are expected to already be converted for the rate they
// will be played at.
type Frequency int

const (
	Freq10512 Frequency = iota
	Freq18157
	Freq32768
)

// Hz returns the output rate in samples per second.
func (f Frequency) Hz() int {
	switch f {
	case Freq10512:
		return 10512
	case Freq18157:
		return 18157
	case Freq32768:
		return 32768
	}
	panic("mixer: unsupported frequency")
}

// BufferSize returns the number of samples per side produced by one Frame
// call. The two lower rates line up exactly with the display refresh;
// Freq32768 uses a slightly longer buffer and is serviced from a timer
// at 32768/560 ~= 58.51 Hz instead.
func (f Frequency) BufferSize() int {
	switch f {
	case Freq10512:
		return 176
	case Freq18157:
		return 304
	case Freq32768:
		return 560
	}
	panic("mixer: unsupported frequency")
}

func (f Frequency) String() string {
	switch f {
	case Freq10512:
		return "10512 Hz"
	case Freq18157:
		return "18157 Hz"
	case Freq32768:
		return "32768 Hz"
	}
	return "unknown"
}
