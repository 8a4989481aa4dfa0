// SPDX-License-Identifier: EPL-2.0

package al

import (
	"github.com/ik5/alemu/audio"
)

// buffer is an immutable-between-uploads block of sample data. Sources
// hold plain pointers to it, so deleting the handle never pulls data out
// from under a queue that still plays it.
type buffer struct {
	id     ID
	format audio.Format
	rate   int
	data   []byte

	// pcm is data decoded to interleaved float32. It is rebuilt by every
	// upload so the mixer never decodes inside the render loop.
	pcm []float32

	// nframes and nch are derived from format and data on upload.
	nframes int
	nch     int

	// blockAlign is the ADPCM alignment data was uploaded with.
	blockAlign  int
	unpackAlign int
	packAlign   int
	loopBegin   int
	loopEnd     int

	// refs counts the source queue slots holding this buffer.
	refs int
}

func (b *buffer) sampleFormat() audio.SampleFormat {
	return audio.NewSampleFormat(b.format, b.blockAlign)
}

func (b *buffer) channels() int { return b.nch }

func (b *buffer) frames() int { return b.nframes }

// frame returns the decoded samples of frame i, or nil when out of range.
func (b *buffer) frame(i int) []float32 {
	ch := b.nch
	if i < 0 || ch == 0 || (i+1)*ch > len(b.pcm) {
		return nil
	}

	return b.pcm[i*ch : (i+1)*ch]
}

func (b *buffer) decode() {
	sf := b.sampleFormat()
	b.nframes = sf.Frames(len(b.data))
	b.nch = sf.Channels
	n := b.nframes * b.nch
	if cap(b.pcm) < n {
		b.pcm = make([]float32, n)
	}
	b.pcm = b.pcm[:n]
	audio.Decode(b.pcm, b.data, sf)
}

// sameLayout reports whether two buffers can share a streaming queue.
func (b *buffer) sameLayout(o *buffer) bool {
	if !b.format.Valid() || !o.format.Valid() {
		return true
	}

	return b.format == o.format &&
		b.rate == o.rate &&
		b.sampleFormat().FramesPerBlock() == o.sampleFormat().FramesPerBlock()
}

// GenBuffers allocates n empty buffers.
func (c *Context) GenBuffers(n int) ([]ID, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if n < 0 {
		return nil, c.fail("GenBuffers", 0, InvalidValue)
	}
	if !c.buffers.room(n) {
		return nil, c.fail("GenBuffers", 0, OutOfMemory)
	}

	ids := make([]ID, n)
	for i := range ids {
		b := &buffer{}
		id, _ := c.buffers.insert(b)
		b.id = id
		ids[i] = id
		c.log.Debug("buffer created", "id", id)
	}

	return ids, nil
}

// CreateBuffer allocates one empty buffer.
func (c *Context) CreateBuffer() (ID, error) {
	ids, err := c.GenBuffers(1)
	if err != nil {
		return 0, err
	}

	return ids[0], nil
}

// DeleteBuffers removes the handles. Sources that still queue one of the
// buffers keep playing it; the data is released once nothing refers to it.
func (c *Context) DeleteBuffers(ids ...ID) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	for _, id := range ids {
		if _, ok := c.buffers.get(id); !ok && id != 0 {
			return c.fail("DeleteBuffers", id, InvalidName)
		}
	}

	for _, id := range ids {
		if c.buffers.remove(id) {
			c.log.Debug("buffer deleted", "id", id)
		}
	}

	return nil
}

func (c *Context) DeleteBuffer(id ID) error {
	return c.DeleteBuffers(id)
}

// IsBuffer reports whether id names a live buffer. The null id is a valid
// buffer name.
func (c *Context) IsBuffer(id ID) bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if id == 0 {
		return true
	}
	_, ok := c.buffers.get(id)

	return ok
}

func (c *Context) lookupBuffer(op string, id ID) (*buffer, error) {
	b, ok := c.buffers.get(id)
	if !ok {
		return nil, c.fail(op, id, InvalidName)
	}

	return b, nil
}

// BufferData replaces the contents of a buffer. The bytes are copied.
func (c *Context) BufferData(id ID, format audio.Format, data []byte, freq int) error {
	const op = "BufferData"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	b, err := c.lookupBuffer(op, id)
	if err != nil {
		return err
	}
	if !format.Valid() {
		return c.fail(op, id, InvalidEnum)
	}
	if freq <= 0 {
		return c.fail(op, id, InvalidValue)
	}

	sf := audio.NewSampleFormat(format, b.unpackAlign)
	if sf.Validate() != nil || len(data)%sf.FrameAlign() != 0 {
		return c.fail(op, id, InvalidValue)
	}
	if b.refs > 0 {
		return c.fail(op, id, InvalidOperation)
	}

	b.format = format
	b.rate = freq
	b.blockAlign = b.unpackAlign
	b.data = append(b.data[:0], data...)
	b.loopBegin, b.loopEnd = 0, 0
	b.decode()

	c.log.Debug("buffer data", "id", id, "format", format, "rate", freq, "bytes", len(data))

	return nil
}

// BufferSubData overwrites part of a buffer in place. The buffer may be
// queued; the next render picks up the new samples.
func (c *Context) BufferSubData(id ID, format audio.Format, offset int, data []byte) error {
	const op = "BufferSubData"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	b, err := c.lookupBuffer(op, id)
	if err != nil {
		return err
	}
	if !format.Valid() || format != b.format {
		return c.fail(op, id, InvalidEnum)
	}

	align := b.sampleFormat().FrameAlign()
	if offset < 0 || offset > len(b.data) || len(data) > len(b.data)-offset ||
		offset%align != 0 || len(data)%align != 0 {
		return c.fail(op, id, InvalidValue)
	}

	copy(b.data[offset:], data)
	b.decode()

	return nil
}

// SetBufferi sets an integer buffer property.
func (c *Context) SetBufferi(id ID, param Param, value int32) error {
	const op = "SetBufferi"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	b, err := c.lookupBuffer(op, id)
	if err != nil {
		return err
	}

	switch param {
	case UnpackBlockAlignment:
		if value < 0 {
			return c.fail(op, id, InvalidValue)
		}
		b.unpackAlign = int(value)
	case PackBlockAlignment:
		if value < 0 {
			return c.fail(op, id, InvalidValue)
		}
		b.packAlign = int(value)
	default:
		return c.fail(op, id, InvalidEnum)
	}

	return nil
}

// SetBufferiv sets a vector buffer property. LoopPoints takes begin and
// end frames with 0 <= begin < end <= frames.
func (c *Context) SetBufferiv(id ID, param Param, values ...int32) error {
	const op = "SetBufferiv"

	if param != LoopPoints {
		if len(values) != 1 {
			c.mtx.Lock()
			defer c.mtx.Unlock()

			return c.fail(op, id, InvalidValue)
		}

		return c.SetBufferi(id, param, values[0])
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	b, err := c.lookupBuffer(op, id)
	if err != nil {
		return err
	}
	if len(values) != 2 {
		return c.fail(op, id, InvalidValue)
	}
	if b.refs > 0 {
		return c.fail(op, id, InvalidOperation)
	}

	begin, end := int(values[0]), int(values[1])
	if begin < 0 || begin >= end || end > b.frames() {
		return c.fail(op, id, InvalidValue)
	}
	b.loopBegin, b.loopEnd = begin, end

	return nil
}

// GetBufferi reads an integer buffer property.
func (c *Context) GetBufferi(id ID, param Param) (int32, error) {
	const op = "GetBufferi"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	b, err := c.lookupBuffer(op, id)
	if err != nil {
		return 0, err
	}

	switch param {
	case Frequency:
		return int32(b.rate), nil
	case Bits:
		return int32(b.format.Kind().Bits()), nil
	case Channels:
		return int32(b.channels()), nil
	case Size, ByteLength:
		return int32(len(b.data)), nil
	case SampleLength:
		return int32(b.frames()), nil
	case UnpackBlockAlignment:
		return int32(b.unpackAlign), nil
	case PackBlockAlignment:
		return int32(b.packAlign), nil
	default:
		return 0, c.fail(op, id, InvalidValue)
	}
}

// GetBufferf reads a float buffer property. Only SecLength is float valued.
func (c *Context) GetBufferf(id ID, param Param) (float32, error) {
	const op = "GetBufferf"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	b, err := c.lookupBuffer(op, id)
	if err != nil {
		return 0, err
	}
	if param != SecLength {
		return 0, c.fail(op, id, InvalidValue)
	}
	if b.rate == 0 {
		return 0, nil
	}

	return float32(b.frames()) / float32(b.rate), nil
}

// GetBufferiv reads a vector buffer property. Scalar properties come back
// as a single element.
func (c *Context) GetBufferiv(id ID, param Param) ([]int32, error) {
	if param != LoopPoints {
		v, err := c.GetBufferi(id, param)
		if err != nil {
			return nil, err
		}

		return []int32{v}, nil
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	b, err := c.lookupBuffer("GetBufferiv", id)
	if err != nil {
		return nil, err
	}

	return []int32{int32(b.loopBegin), int32(b.loopEnd)}, nil
}
