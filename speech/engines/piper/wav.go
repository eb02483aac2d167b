package piper

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lectorhq/lector/speech/audio"
)

const wavPCM = 1

// decodeWAV extracts the 16-bit PCM payload and format from a RIFF/WAVE
// stream as written by piper.
func decodeWAV(data []byte) ([]byte, audio.Format, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, audio.Format{}, errors.New("not a WAVE stream")
	}

	var (
		format  audio.Format
		haveFmt bool
		pcm     []byte
	)

	// Walk the chunk list. Chunks are word aligned.
	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if body+size > len(data) {
			// Piper streams the data chunk with a placeholder size when
			// writing to a pipe. Truncate to what actually arrived.
			size = len(data) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, audio.Format{}, errors.New("short fmt chunk")
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			channels := int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate := int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits := binary.LittleEndian.Uint16(data[body+14 : body+16])
			if audioFormat != wavPCM || bits != 16 {
				return nil, audio.Format{}, fmt.Errorf("unsupported encoding: format %d, %d bits", audioFormat, bits)
			}
			format = audio.Format{SampleRate: sampleRate, Channels: channels}
			haveFmt = true
		case "data":
			pcm = data[body : body+size]
		}

		off = body + size
		if size%2 == 1 {
			off++
		}
	}

	if !haveFmt {
		return nil, audio.Format{}, errors.New("missing fmt chunk")
	}
	if len(pcm) == 0 {
		return nil, audio.Format{}, errors.New("missing audio data")
	}
	return pcm, format, nil
}
