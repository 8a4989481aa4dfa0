// SPDX-License-Identifier: EPL-2.0

package al

import (
	"math"

	"github.com/ik5/alemu/audio"
)

// source is one voice. Position is the pair (queueIndex, cursor) plus the
// resampler phase; everything else is parameters.
type source struct {
	id    ID
	state State
	typ   Type

	queue      []*buffer
	queueIndex int
	cursor     int
	rs         audio.Resampler
	frame      [2]float32

	looping  bool
	relative bool
	gain     float32
	pitch    float32

	// Stored for callers, never read by the mixer.
	scalars map[Param]float32
	vectors map[Param][3]float32
}

func newSource() *source {
	return &source{
		state: Initial,
		typ:   Undetermined,
		gain:  1,
		pitch: 1,
		scalars: map[Param]float32{
			MinGain:           0,
			MaxGain:           1,
			ReferenceDistance: 1,
			RolloffFactor:     1,
			MaxDistance:       math.MaxFloat32,
			ConeInnerAngle:    360,
			ConeOuterAngle:    360,
			ConeOuterGain:     0,
		},
		vectors: map[Param][3]float32{
			Position:  {},
			Velocity:  {},
			Direction: {},
		},
	}
}

func (s *source) rewindPosition() {
	s.queueIndex = 0
	s.cursor = 0
	s.rs.Reset()
}

// release drops the queue and the buffer references it holds.
func (s *source) release() {
	for _, b := range s.queue {
		b.refs--
	}
	s.queue = nil
	s.typ = Undetermined
	s.rewindPosition()
}

func (s *source) attach(b *buffer) {
	s.release()
	if b == nil {
		return
	}

	b.refs++
	s.queue = []*buffer{b}
	s.typ = Static
}

func (s *source) enqueue(bufs []*buffer) {
	for _, b := range bufs {
		b.refs++
	}
	s.queue = append(s.queue, bufs...)
	s.typ = Streaming
}

func (s *source) processed() int {
	switch s.state {
	case Stopped:
		return len(s.queue)
	case Playing, Paused:
		return s.queueIndex
	default:
		return 0
	}
}

// unqueue pops the n oldest buffers. The caller checks n <= processed.
func (s *source) unqueue(n int) []*buffer {
	out := make([]*buffer, n)
	copy(out, s.queue[:n])
	for _, b := range out {
		b.refs--
	}

	s.queue = append(s.queue[:0:0], s.queue[n:]...)
	if s.state != Stopped {
		s.queueIndex -= n
	}
	if len(s.queue) == 0 {
		s.typ = Undetermined
		s.rewindPosition()
	}

	return out
}

func (s *source) play() {
	if len(s.queue) == 0 {
		s.state = Stopped
		s.rewindPosition()

		return
	}

	// Paused resumes. Initial and Stopped keep any offset set while the
	// source was not playing.
	if s.state == Playing {
		s.rewindPosition()
	}
	s.state = Playing
}

func (s *source) pause() {
	if s.state == Playing {
		s.state = Paused
	}
}

func (s *source) stop() {
	if s.state == Playing || s.state == Paused {
		s.state = Stopped
		s.rewindPosition()
	}
}

func (s *source) rewind() {
	if s.state != Initial {
		s.state = Initial
		s.rewindPosition()
	}
}

// finish is natural exhaustion.
func (s *source) finish() {
	s.state = Stopped
	s.rewindPosition()
}

func (s *source) totalFrames() int {
	total := 0
	for _, b := range s.queue {
		total += b.frames()
	}

	return total
}

// offsetFrames is the play position in frames from the start of the queue.
func (s *source) offsetFrames() int {
	pos := s.cursor
	for _, b := range s.queue[:min(s.queueIndex, len(s.queue))] {
		pos += b.frames()
	}

	return pos
}

// seek moves to frame f of the queue. The caller checks the range.
func (s *source) seek(f int) {
	s.rs.Reset()
	s.queueIndex = 0
	for i, b := range s.queue {
		n := b.frames()
		if f < n || i == len(s.queue)-1 {
			s.queueIndex = i
			s.cursor = f

			return
		}
		f -= n
	}
	s.cursor = 0
}

// offsetFormat is the layout used to convert byte and second offsets.
func (s *source) offsetFormat() (*buffer, bool) {
	for _, b := range s.queue {
		if b.format.Valid() {
			return b, true
		}
	}

	return nil, false
}

// successor returns the position of the frame after (qi, pos), following
// loop points and queue wrap. ok is false when playback ends there.
func (s *source) successor(qi, pos int) (int, int, bool) {
	b := s.queue[qi]
	next := pos + 1

	if s.typ == Static {
		if !s.looping {
			return qi, next, next < b.frames()
		}
		end := b.frames()
		if b.loopEnd > 0 && pos < b.loopEnd {
			end = b.loopEnd
		}
		if next >= end {
			return qi, b.loopBegin, true
		}

		return qi, next, true
	}

	if next < b.frames() {
		return qi, next, true
	}
	for range s.queue {
		qi++
		if qi >= len(s.queue) {
			if !s.looping {
				return 0, 0, false
			}
			qi = 0
		}
		if s.queue[qi].frames() > 0 {
			return qi, 0, true
		}
	}

	return 0, 0, false
}

// settle moves the position off empty buffers and past-the-end cursors.
// It reports false when nothing is left to play.
func (s *source) settle() bool {
	if len(s.queue) == 0 {
		return false
	}
	if s.queueIndex >= len(s.queue) {
		s.queueIndex, s.cursor = 0, 0
	}

	for range len(s.queue) + 1 {
		b := s.queue[s.queueIndex]
		if s.cursor < b.frames() {
			return true
		}
		if s.typ == Static {
			if s.looping && b.loopBegin < b.frames() {
				s.cursor = b.loopBegin
				continue
			}

			return false
		}

		s.cursor = 0
		s.queueIndex++
		if s.queueIndex >= len(s.queue) {
			if !s.looping {
				return false
			}
			s.queueIndex = 0
		}
	}

	return false
}

// pullFrames writes up to frames output frames of outCh channels at
// outRate into dst, which must hold frames*outCh samples. Frames after
// the source runs out are silence. exhausted reports that the source
// stopped during this call.
func (s *source) pullFrames(dst []float32, frames, outCh, outRate int) (produced int, exhausted bool) {
	clear(dst[:frames*outCh])

	if !s.settle() {
		s.finish()
		return 0, true
	}

	for i := range frames {
		b := s.queue[s.queueIndex]
		cur := b.frame(s.cursor)
		if cur == nil {
			s.finish()
			return i, true
		}

		var next []float32
		if s.rs.Phase() != 0 {
			if qi, pos, ok := s.successor(s.queueIndex, s.cursor); ok {
				next = s.queue[qi].frame(pos)
			}
		}

		srcCh := b.channels()
		s.rs.Interpolate(s.frame[:srcCh], cur, next)
		audio.MapFrame(dst[i*outCh:(i+1)*outCh], outCh, s.frame[:srcCh], srcCh)

		for adv := s.rs.Advance(audio.Step(b.rate, outRate, s.pitch)); adv > 0; adv-- {
			qi, pos, ok := s.successor(s.queueIndex, s.cursor)
			if !ok {
				s.finish()
				return i + 1, true
			}
			s.queueIndex, s.cursor = qi, pos
		}
	}

	return frames, false
}
