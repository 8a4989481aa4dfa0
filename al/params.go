// SPDX-License-Identifier: EPL-2.0

package al

import "fmt"

// Param names a buffer, source or listener property. Values match the
// native enums so intercepted calls pass them through untouched.
type Param int32

// Source and listener parameters.
const (
	SourceRelative    Param = 0x202
	ConeInnerAngle    Param = 0x1001
	ConeOuterAngle    Param = 0x1002
	Pitch             Param = 0x1003
	Position          Param = 0x1004
	Direction         Param = 0x1005
	Velocity          Param = 0x1006
	Looping           Param = 0x1007
	Buffer            Param = 0x1009
	Gain              Param = 0x100A
	MinGain           Param = 0x100D
	MaxGain           Param = 0x100E
	Orientation       Param = 0x100F
	SourceState       Param = 0x1010
	BuffersQueued     Param = 0x1015
	BuffersProcessed  Param = 0x1016
	ReferenceDistance Param = 0x1020
	RolloffFactor     Param = 0x1021
	ConeOuterGain     Param = 0x1022
	MaxDistance       Param = 0x1023
	SecOffset         Param = 0x1024
	SampleOffset      Param = 0x1025
	ByteOffset        Param = 0x1026
	SourceType        Param = 0x1027
)

// Buffer parameters.
const (
	Frequency            Param = 0x2001
	Bits                 Param = 0x2002
	Channels             Param = 0x2003
	Size                 Param = 0x2004
	ByteLength           Param = 0x2009
	SampleLength         Param = 0x200A
	SecLength            Param = 0x200B
	UnpackBlockAlignment Param = 0x200C
	PackBlockAlignment   Param = 0x200D
	LoopPoints           Param = 0x2015
)

var paramNames = map[Param]string{
	SourceRelative:       "SOURCE_RELATIVE",
	ConeInnerAngle:       "CONE_INNER_ANGLE",
	ConeOuterAngle:       "CONE_OUTER_ANGLE",
	Pitch:                "PITCH",
	Position:             "POSITION",
	Direction:            "DIRECTION",
	Velocity:             "VELOCITY",
	Looping:              "LOOPING",
	Buffer:               "BUFFER",
	Gain:                 "GAIN",
	MinGain:              "MIN_GAIN",
	MaxGain:              "MAX_GAIN",
	Orientation:          "ORIENTATION",
	SourceState:          "SOURCE_STATE",
	BuffersQueued:        "BUFFERS_QUEUED",
	BuffersProcessed:     "BUFFERS_PROCESSED",
	ReferenceDistance:    "REFERENCE_DISTANCE",
	RolloffFactor:        "ROLLOFF_FACTOR",
	ConeOuterGain:        "CONE_OUTER_GAIN",
	MaxDistance:          "MAX_DISTANCE",
	SecOffset:            "SEC_OFFSET",
	SampleOffset:         "SAMPLE_OFFSET",
	ByteOffset:           "BYTE_OFFSET",
	SourceType:           "SOURCE_TYPE",
	Frequency:            "FREQUENCY",
	Bits:                 "BITS",
	Channels:             "CHANNELS",
	Size:                 "SIZE",
	ByteLength:           "BYTE_LENGTH",
	SampleLength:         "SAMPLE_LENGTH",
	SecLength:            "SEC_LENGTH",
	UnpackBlockAlignment: "UNPACK_BLOCK_ALIGNMENT",
	PackBlockAlignment:   "PACK_BLOCK_ALIGNMENT",
	LoopPoints:           "LOOP_POINTS",
}

func (p Param) String() string {
	if name, ok := paramNames[p]; ok {
		return name
	}

	return fmt.Sprintf("param(0x%x)", int32(p))
}

// State is the playback state of a source.
type State int32

const (
	Initial State = 0x1011
	Playing State = 0x1012
	Paused  State = 0x1013
	Stopped State = 0x1014
)

func (s State) String() string {
	switch s {
	case Initial:
		return "INITIAL"
	case Playing:
		return "PLAYING"
	case Paused:
		return "PAUSED"
	case Stopped:
		return "STOPPED"
	default:
		return fmt.Sprintf("state(0x%x)", int32(s))
	}
}

// Type tells how a source's queue was filled.
type Type int32

const (
	Static       Type = 0x1028
	Streaming    Type = 0x1029
	Undetermined Type = 0x1030
)

func (t Type) String() string {
	switch t {
	case Static:
		return "STATIC"
	case Streaming:
		return "STREAMING"
	case Undetermined:
		return "UNDETERMINED"
	default:
		return fmt.Sprintf("type(0x%x)", int32(t))
	}
}
