// SPDX-License-Identifier: EPL-2.0

package al

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/ik5/alemu/audio"
)

// OutputFormat is the layout Render writes.
type OutputFormat struct {
	SampleRate int
	Channels   int
	Encoding   audio.Kind
}

func (o OutputFormat) Validate() error {
	if o.SampleRate <= 0 {
		return audio.ErrInvalidSampleRate
	}
	if o.Channels != 1 && o.Channels != 2 {
		return audio.ErrInvalidChannels
	}
	if !o.Encoding.PCM() {
		return audio.ErrUnsupportedEncoding
	}

	return nil
}

// FrameBytes is the size of one rendered frame.
func (o OutputFormat) FrameBytes() int {
	return o.Channels * o.Encoding.BytesPerSample()
}

// Options configures a Context.
type Options struct {
	Output     OutputFormat
	MaxBuffers int
	MaxSources int
	// Logger receives lifecycle and error events at debug level.
	// nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultOptions is 44.1kHz stereo 16 bit output.
func DefaultOptions() Options {
	return Options{
		Output: OutputFormat{
			SampleRate: 44100,
			Channels:   2,
			Encoding:   audio.S16,
		},
		MaxBuffers: 4096,
		MaxSources: 256,
	}
}

type listener struct {
	gain        float32
	position    [3]float32
	velocity    [3]float32
	orientation [6]float32
}

// Context owns every buffer and source and renders their mix. All methods
// are safe for concurrent use; each call is atomic with respect to Render.
type Context struct {
	mtx *sync.Mutex
	log *slog.Logger

	buffers slotMap[buffer]
	sources slotMap[source]

	listener  listener
	output    OutputFormat
	suspended bool
	pending   ErrorKind

	mix   []float32
	voice []float32
}

// NewContext creates an independent context.
func NewContext(opts Options) (*Context, error) {
	if err := opts.Output.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if opts.MaxBuffers <= 0 || opts.MaxSources <= 0 {
		return nil, fmt.Errorf("%w: object limits must be positive", ErrInvalidOptions)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	c := &Context{
		mtx:     &sync.Mutex{},
		log:     log,
		buffers: newSlotMap[buffer](opts.MaxBuffers),
		sources: newSlotMap[source](opts.MaxSources),
		listener: listener{
			gain:        1,
			orientation: [6]float32{0, 0, -1, 0, 1, 0},
		},
		output: opts.Output,
	}
	log.Debug("context created",
		"rate", opts.Output.SampleRate,
		"channels", opts.Output.Channels,
		"encoding", opts.Output.Encoding)

	return c, nil
}

// fail records kind as the pending error unless one is already pending,
// and returns it wrapped with the operation.
func (c *Context) fail(op string, id ID, kind ErrorKind) error {
	if c.pending == NoError {
		c.pending = kind
	}
	c.log.Debug("al error", "op", op, "id", id, "error", kind)

	return &Error{Op: op, ID: id, Kind: kind}
}

// GetError returns the first error recorded since the previous call and
// clears it.
func (c *Context) GetError() ErrorKind {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	k := c.pending
	c.pending = NoError

	return k
}

func (c *Context) OutputFormat() OutputFormat {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.output
}

// SetOutputFormat changes the layout of subsequent renders. Sources keep
// their positions.
func (c *Context) SetOutputFormat(o OutputFormat) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if err := o.Validate(); err != nil {
		return fmt.Errorf("%w: %w", c.fail("SetOutputFormat", 0, InvalidValue), err)
	}
	c.output = o

	return nil
}

// Suspend freezes the context: renders produce silence and sources keep
// their positions until Process.
func (c *Context) Suspend() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.suspended = true
	c.log.Debug("context suspended")
}

func (c *Context) Process() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.suspended = false
	c.log.Debug("context processing")
}

func (c *Context) Suspended() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.suspended
}

// Close stops every source and drops all objects. The context stays
// usable but empty.
func (c *Context) Close() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.sources.each(func(id ID, s *source) {
		s.release()
		c.sources.remove(id)
	})
	c.buffers.each(func(id ID, _ *buffer) {
		c.buffers.remove(id)
	})
	c.log.Debug("context closed")

	return nil
}

// SetListenerf sets a scalar listener property. Gain must be >= 0.
func (c *Context) SetListenerf(param Param, value float32) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if param != Gain {
		return c.fail("SetListenerf", 0, InvalidEnum)
	}
	if !nonNegative(value) {
		return c.fail("SetListenerf", 0, InvalidValue)
	}
	c.listener.gain = value

	return nil
}

func (c *Context) GetListenerf(param Param) (float32, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if param != Gain {
		return 0, c.fail("GetListenerf", 0, InvalidEnum)
	}

	return c.listener.gain, nil
}

func (c *Context) SetListenerGain(gain float32) error {
	return c.SetListenerf(Gain, gain)
}

func (c *Context) ListenerGain() float32 {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.listener.gain
}

// SetListener3f stores Position or Velocity.
func (c *Context) SetListener3f(param Param, x, y, z float32) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if !finite(x, y, z) {
		return c.fail("SetListener3f", 0, InvalidValue)
	}

	switch param {
	case Position:
		c.listener.position = [3]float32{x, y, z}
	case Velocity:
		c.listener.velocity = [3]float32{x, y, z}
	default:
		return c.fail("SetListener3f", 0, InvalidEnum)
	}

	return nil
}

func (c *Context) GetListener3f(param Param) (x, y, z float32, err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	var v [3]float32
	switch param {
	case Position:
		v = c.listener.position
	case Velocity:
		v = c.listener.velocity
	default:
		return 0, 0, 0, c.fail("GetListener3f", 0, InvalidEnum)
	}

	return v[0], v[1], v[2], nil
}

// SetListenerfv accepts Orientation as at and up vectors, or any 3f
// property as three values.
func (c *Context) SetListenerfv(param Param, values ...float32) error {
	switch {
	case param == Orientation && len(values) == 6:
	case param == Gain && len(values) == 1:
		return c.SetListenerf(param, values[0])
	case len(values) == 3:
		return c.SetListener3f(param, values[0], values[1], values[2])
	default:
		c.mtx.Lock()
		defer c.mtx.Unlock()

		return c.fail("SetListenerfv", 0, InvalidValue)
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	if !finite(values...) {
		return c.fail("SetListenerfv", 0, InvalidValue)
	}
	copy(c.listener.orientation[:], values)

	return nil
}

func (c *Context) GetListenerfv(param Param) ([]float32, error) {
	switch param {
	case Orientation:
		c.mtx.Lock()
		defer c.mtx.Unlock()

		return append([]float32(nil), c.listener.orientation[:]...), nil
	case Gain:
		v, err := c.GetListenerf(param)
		if err != nil {
			return nil, err
		}

		return []float32{v}, nil
	default:
		x, y, z, err := c.GetListener3f(param)
		if err != nil {
			return nil, err
		}

		return []float32{x, y, z}, nil
	}
}

func nonNegative(v float32) bool {
	return v >= 0 && !math.IsInf(float64(v), 1)
}

func finite(values ...float32) bool {
	for _, v := range values {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}

	return true
}

var (
	current    *Context
	currentMtx = &sync.Mutex{}
)

// Init creates the process-wide context returned by Current.
func Init(opts Options) (*Context, error) {
	currentMtx.Lock()
	defer currentMtx.Unlock()

	if current != nil {
		return nil, ErrContextExists
	}

	c, err := NewContext(opts)
	if err != nil {
		return nil, err
	}
	current = c

	return c, nil
}

func Current() (*Context, error) {
	currentMtx.Lock()
	defer currentMtx.Unlock()

	if current == nil {
		return nil, ErrContextNotCreated
	}

	return current, nil
}

// Shutdown closes the process-wide context so Init can run again.
func Shutdown() error {
	currentMtx.Lock()
	defer currentMtx.Unlock()

	if current == nil {
		return ErrContextNotCreated
	}

	err := current.Close()
	current = nil

	return err
}
