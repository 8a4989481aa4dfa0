// SPDX-License-Identifier: EPL-2.0

package al

import (
	"math"
)

// GenSources allocates n sources in the INITIAL state.
func (c *Context) GenSources(n int) ([]ID, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if n < 0 {
		return nil, c.fail("GenSources", 0, InvalidValue)
	}
	if !c.sources.room(n) {
		return nil, c.fail("GenSources", 0, OutOfMemory)
	}

	ids := make([]ID, n)
	for i := range ids {
		s := newSource()
		id, _ := c.sources.insert(s)
		s.id = id
		ids[i] = id
		c.log.Debug("source created", "id", id)
	}

	return ids, nil
}

func (c *Context) CreateSource() (ID, error) {
	ids, err := c.GenSources(1)
	if err != nil {
		return 0, err
	}

	return ids[0], nil
}

// DeleteSources stops and removes the sources, releasing their queues.
func (c *Context) DeleteSources(ids ...ID) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if _, err := c.lookupSources("DeleteSources", ids); err != nil {
		return err
	}

	for _, id := range ids {
		if s, ok := c.sources.get(id); ok {
			s.state = Stopped
			s.release()
			c.sources.remove(id)
			c.log.Debug("source deleted", "id", id)
		}
	}

	return nil
}

func (c *Context) DeleteSource(id ID) error {
	return c.DeleteSources(id)
}

func (c *Context) IsSource(id ID) bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	_, ok := c.sources.get(id)

	return ok
}

func (c *Context) lookupSource(op string, id ID) (*source, error) {
	s, ok := c.sources.get(id)
	if !ok {
		return nil, c.fail(op, id, InvalidName)
	}

	return s, nil
}

// lookupSources resolves every id before the caller changes anything.
func (c *Context) lookupSources(op string, ids []ID) ([]*source, error) {
	out := make([]*source, len(ids))
	for i, id := range ids {
		s, err := c.lookupSource(op, id)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}

	return out, nil
}

func (c *Context) transition(op string, ids []ID, fn func(*source)) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	srcs, err := c.lookupSources(op, ids)
	if err != nil {
		return err
	}

	for _, s := range srcs {
		before := s.state
		fn(s)
		if s.state != before {
			c.log.Debug("source state", "id", s.id, "from", before, "to", s.state)
		}
	}

	return nil
}

// SourcePlayv starts or restarts every source. A source with an empty
// queue goes straight to STOPPED.
func (c *Context) SourcePlayv(ids ...ID) error {
	return c.transition("SourcePlay", ids, (*source).play)
}

// SourcePausev pauses playing sources. Other states are left alone.
func (c *Context) SourcePausev(ids ...ID) error {
	return c.transition("SourcePause", ids, (*source).pause)
}

// SourceStopv stops playing or paused sources and rewinds them.
func (c *Context) SourceStopv(ids ...ID) error {
	return c.transition("SourceStop", ids, (*source).stop)
}

// SourceRewindv returns sources to INITIAL at offset 0.
func (c *Context) SourceRewindv(ids ...ID) error {
	return c.transition("SourceRewind", ids, (*source).rewind)
}

func (c *Context) SourcePlay(id ID) error   { return c.SourcePlayv(id) }
func (c *Context) SourcePause(id ID) error  { return c.SourcePausev(id) }
func (c *Context) SourceStop(id ID) error   { return c.SourceStopv(id) }
func (c *Context) SourceRewind(id ID) error { return c.SourceRewindv(id) }

// SourceQueueBuffers appends buffers to a streaming queue. Every buffer
// with data must match the layout of the buffers already queued.
func (c *Context) SourceQueueBuffers(id ID, bufs ...ID) error {
	const op = "SourceQueueBuffers"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, err := c.lookupSource(op, id)
	if err != nil {
		return err
	}
	if s.typ == Static {
		return c.fail(op, id, InvalidOperation)
	}

	if len(bufs) == 0 {
		return nil
	}

	add := make([]*buffer, len(bufs))
	for i, bid := range bufs {
		if bid == 0 {
			return c.fail(op, bid, InvalidName)
		}
		b, err := c.lookupBuffer(op, bid)
		if err != nil {
			return err
		}
		add[i] = b
	}

	ref, ok := s.offsetFormat()
	for _, b := range add {
		if !ok && b.format.Valid() {
			ref, ok = b, true
		}
		if ok && !ref.sameLayout(b) {
			return c.fail(op, b.id, InvalidOperation)
		}
	}

	s.enqueue(add)

	return nil
}

// SourceUnqueueBuffers removes the n oldest processed buffers and returns
// their ids.
func (c *Context) SourceUnqueueBuffers(id ID, n int) ([]ID, error) {
	const op = "SourceUnqueueBuffers"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, err := c.lookupSource(op, id)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > s.processed() || (n > 0 && s.typ != Streaming) {
		return nil, c.fail(op, id, InvalidValue)
	}

	out := s.unqueue(n)
	ids := make([]ID, len(out))
	for i, b := range out {
		ids[i] = b.id
	}

	return ids, nil
}

// SetSourcef sets a float source parameter.
func (c *Context) SetSourcef(id ID, param Param, value float32) error {
	const op = "SetSourcef"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, err := c.lookupSource(op, id)
	if err != nil {
		return err
	}

	switch param {
	case SecOffset, SampleOffset, ByteOffset:
		return c.setOffset(op, s, param, float64(value))
	case Gain, Pitch, ReferenceDistance, RolloffFactor, MaxDistance:
	case ConeInnerAngle, ConeOuterAngle:
		if value > 360 {
			return c.fail(op, id, InvalidValue)
		}
	case ConeOuterGain, MinGain, MaxGain:
		if value > 1 {
			return c.fail(op, id, InvalidValue)
		}
	default:
		return c.fail(op, id, InvalidEnum)
	}

	if !nonNegative(value) {
		return c.fail(op, id, InvalidValue)
	}

	switch param {
	case Gain:
		s.gain = value
	case Pitch:
		s.pitch = value
	default:
		s.scalars[param] = value
	}

	return nil
}

// GetSourcef reads a float source parameter. Offsets include the
// fractional resampler position.
func (c *Context) GetSourcef(id ID, param Param) (float32, error) {
	const op = "GetSourcef"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, err := c.lookupSource(op, id)
	if err != nil {
		return 0, err
	}

	switch param {
	case Gain:
		return s.gain, nil
	case Pitch:
		return s.pitch, nil
	case SecOffset, SampleOffset, ByteOffset:
		return float32(s.offset(param, true)), nil
	}
	if v, ok := s.scalars[param]; ok {
		return v, nil
	}

	return 0, c.fail(op, id, InvalidEnum)
}

// SetSourcei sets an integer source parameter. Float parameters accept
// integer values too.
func (c *Context) SetSourcei(id ID, param Param, value int32) error {
	const op = "SetSourcei"

	switch param {
	case Looping, Buffer, SourceRelative, SecOffset, SampleOffset, ByteOffset:
	default:
		return c.SetSourcef(id, param, float32(value))
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, err := c.lookupSource(op, id)
	if err != nil {
		return err
	}

	switch param {
	case Looping, SourceRelative:
		if value != 0 && value != 1 {
			return c.fail(op, id, InvalidValue)
		}
		if param == Looping {
			s.looping = value == 1
		} else {
			s.relative = value == 1
		}
	case Buffer:
		return c.attachBuffer(op, s, ID(uint32(value)))
	default:
		return c.setOffset(op, s, param, float64(value))
	}

	return nil
}

// GetSourcei reads an integer source parameter.
func (c *Context) GetSourcei(id ID, param Param) (int32, error) {
	const op = "GetSourcei"

	switch param {
	case Looping, Buffer, SourceRelative, SourceState, SourceType,
		BuffersQueued, BuffersProcessed, SecOffset, SampleOffset, ByteOffset:
	default:
		v, err := c.GetSourcef(id, param)
		return int32(v), err
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, err := c.lookupSource(op, id)
	if err != nil {
		return 0, err
	}

	switch param {
	case Looping:
		return boolInt(s.looping), nil
	case SourceRelative:
		return boolInt(s.relative), nil
	case Buffer:
		if len(s.queue) == 0 {
			return 0, nil
		}
		return int32(s.queue[min(s.queueIndex, len(s.queue)-1)].id), nil
	case SourceState:
		return int32(s.state), nil
	case SourceType:
		return int32(s.typ), nil
	case BuffersQueued:
		return int32(len(s.queue)), nil
	case BuffersProcessed:
		return int32(s.processed()), nil
	default:
		return int32(s.offset(param, false)), nil
	}
}

// SetSource3f stores Position, Velocity or Direction.
func (c *Context) SetSource3f(id ID, param Param, x, y, z float32) error {
	const op = "SetSource3f"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, err := c.lookupSource(op, id)
	if err != nil {
		return err
	}
	if _, ok := s.vectors[param]; !ok {
		return c.fail(op, id, InvalidEnum)
	}
	if !finite(x, y, z) {
		return c.fail(op, id, InvalidValue)
	}
	s.vectors[param] = [3]float32{x, y, z}

	return nil
}

func (c *Context) GetSource3f(id ID, param Param) (x, y, z float32, err error) {
	const op = "GetSource3f"

	c.mtx.Lock()
	defer c.mtx.Unlock()

	s, err := c.lookupSource(op, id)
	if err != nil {
		return 0, 0, 0, err
	}
	v, ok := s.vectors[param]
	if !ok {
		return 0, 0, 0, c.fail(op, id, InvalidEnum)
	}

	return v[0], v[1], v[2], nil
}

// SourceState is a shortcut for GetSourcei(id, SourceState).
func (c *Context) SourceState(id ID) (State, error) {
	v, err := c.GetSourcei(id, SourceState)
	return State(v), err
}

func (c *Context) attachBuffer(op string, s *source, bid ID) error {
	if s.state == Playing || s.state == Paused {
		return c.fail(op, s.id, InvalidOperation)
	}
	if bid == 0 {
		s.attach(nil)
		return nil
	}

	b, err := c.lookupBuffer(op, bid)
	if err != nil {
		return err
	}
	s.attach(b)
	c.log.Debug("buffer attached", "source", s.id, "buffer", bid)

	return nil
}

func (c *Context) setOffset(op string, s *source, unit Param, value float64) error {
	if math.IsNaN(value) || value < 0 {
		return c.fail(op, s.id, InvalidValue)
	}

	ref, ok := s.offsetFormat()
	if !ok {
		return c.fail(op, s.id, InvalidValue)
	}

	var frames float64
	switch unit {
	case SecOffset:
		frames = math.Floor(value * float64(ref.rate))
	case SampleOffset:
		frames = math.Floor(value)
	default:
		sf := ref.sampleFormat()
		frames = math.Floor(value/float64(sf.FrameAlign())) * float64(sf.FramesPerBlock())
	}

	if frames >= float64(s.totalFrames()) {
		return c.fail(op, s.id, InvalidValue)
	}
	s.seek(int(frames))

	return nil
}

// offset converts the play position to the unit named by param.
func (s *source) offset(unit Param, fractional bool) float64 {
	ref, ok := s.offsetFormat()
	if !ok {
		return 0
	}

	frames := s.offsetFrames()
	pos := float64(frames)
	if fractional {
		pos += s.rs.Phase()
	}

	switch unit {
	case SecOffset:
		return pos / float64(ref.rate)
	case SampleOffset:
		return pos
	default:
		return float64(ref.sampleFormat().Bytes(frames))
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}

	return 0
}
