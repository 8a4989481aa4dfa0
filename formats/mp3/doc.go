// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files
// into an audio.Source, which is what the alrender loader and
// alemu.LoadClip consume.
//
// # Supported Formats
//
// The decoder supports:
//   - MPEG-1 and MPEG-2 Audio Layer III
//   - Constant and variable bitrates
//   - Mono and stereo files
//
// # Decoding MP3 Files
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer source.Close()
//
//	// Read interleaved float32 samples in range [-1.0, 1.0)
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// ReadSamples only returns whole stereo frames. A dst with an odd length
// leaves its last element untouched.
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: float32, decoded from go-mp3's 16-bit PCM through
//     audio.Decode, so the values are exact multiples of 1/32768
//   - Channels: always 2; go-mp3 duplicates mono files into both channels
//   - Sample rate: the rate of the file (typically 44.1kHz or 48kHz)
//
// # Uploading to a Buffer
//
// An MP3 file becomes a stereo buffer at the file's rate. The context
// resamples it to the output rate while rendering:
//
//	clip, _ := audio.ReadClip(source, audio.S16)
//	buf, _ := alemu.UploadClip(ctx, clip)
//
// Or in one step through the registry:
//
//	clip, _ := alemu.LoadClip(alemu.NewRegistry(), "audio.mp3", audio.S16)
//
// # Limitations
//
// Note:
//   - MP3 writing is not supported (decoding only)
//   - Output is always stereo; mono files take twice the buffer memory
//   - go-mp3 decodes whole frames, so the decoder delay and padding of
//     the encoder show up as leading and trailing silence
//   - ID3 tags are skipped by go-mp3 and not exposed
package mp3
