package exporters

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"

	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/math"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
)

// pcm is decoded audio, interleaved float32 in [-1, 1].
type pcm struct {
	SampleRate int
	Channels   int
	Samples    []float32
}

type decoder func(f *os.File) (*pcm, error)

var decoders = map[string]decoder{
	".wav":  decodeWAV,
	".ogg":  decodeOgg,
	".mp3":  decodeMP3,
	".flac": decodeFLAC,
}

type SoundExporter struct {
	base
}

func NewSoundExporter(log *core.Logger) *SoundExporter {
	return &SoundExporter{newBase(log, "sound",
		[]resources.TypeName{resources.TypeSound},
		nil,
		assets.SoundPatterns)}
}

func (x *SoundExporter) BuildOne(e *resources.Entry, _ string, outDir string, _ *resources.Index) error {
	audio, err := decodeSound(e.SrcPath)
	if err != nil {
		return fmt.Errorf("failed to decode sound file %s: %w", e.SrcPath, err)
	}
	if audio.SampleRate <= 0 || audio.Channels <= 0 {
		return fmt.Errorf("invalid decoded sound format from %s (sample_rate=%d, channels=%d)",
			e.SrcPath, audio.SampleRate, audio.Channels)
	}
	x.log.Debug("%s: %s decoded %d samples at %d Hz, %d channels", x.name, e.NID, len(audio.Samples), audio.SampleRate, audio.Channels)

	return x.write(outDir, e, &metadata.Sound{
		RID:        e.RID,
		SampleRate: uint32(audio.SampleRate),
		Channels:   uint32(audio.Channels),
		Samples:    audio.Samples,
	})
}

func decodeSound(path string) (*pcm, error) {
	dec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedMedia, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dec(f)
}

func decodeWAV(f *os.File) (*pcm, error) {
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid WAV file", core.ErrUnsupportedMedia)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	depth := int(d.BitDepth)
	if depth <= 0 || depth > 32 {
		return nil, fmt.Errorf("%w: WAV bit depth %d", core.ErrUnsupportedMedia, depth)
	}
	scale := float32(int64(1) << (depth - 1))
	out := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		if depth == 8 {
			// 8-bit PCM is unsigned.
			v -= 128
		}
		out[i] = math.Clamp(float32(v)/scale, -1, 1)
	}
	return &pcm{SampleRate: int(d.SampleRate), Channels: int(d.NumChans), Samples: out}, nil
}

func decodeOgg(f *os.File) (*pcm, error) {
	samples, format, err := oggvorbis.ReadAll(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	return &pcm{SampleRate: format.SampleRate, Channels: format.Channels, Samples: samples}, nil
}

// decodeMP3 always yields 16-bit stereo.
func decodeMP3(f *os.File) (*pcm, error) {
	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(raw)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		out[i] = float32(v) / 32768
	}
	return &pcm{SampleRate: d.SampleRate(), Channels: 2, Samples: out}, nil
}

func decodeFLAC(f *os.File) (*pcm, error) {
	stream, err := flac.New(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	depth := int(stream.Info.BitsPerSample)
	if depth <= 0 || depth > 32 {
		return nil, fmt.Errorf("%w: FLAC bit depth %d", core.ErrUnsupportedMedia, depth)
	}
	scale := float32(int64(1) << (depth - 1))

	var out []float32
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(frame.Subframes) != channels {
			return nil, fmt.Errorf("flac frame has %d subframes, want %d", len(frame.Subframes), channels)
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				out = append(out, math.Clamp(float32(frame.Subframes[ch].Samples[i])/scale, -1, 1))
			}
		}
	}
	return &pcm{SampleRate: int(stream.Info.SampleRate), Channels: channels, Samples: out}, nil
}
