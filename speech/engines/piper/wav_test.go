package piper

import (
	"encoding/binary"
	"testing"
)

func buildWAV(sampleRate int, channels int, payload []byte) []byte {
	var b []byte
	b = append(b, "RIFF"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(36+len(payload)))
	b = append(b, "WAVE"...)

	b = append(b, "fmt "...)
	b = binary.LittleEndian.AppendUint32(b, 16)
	b = binary.LittleEndian.AppendUint16(b, wavPCM)
	b = binary.LittleEndian.AppendUint16(b, uint16(channels))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate))
	b = binary.LittleEndian.AppendUint32(b, uint32(sampleRate*channels*2))
	b = binary.LittleEndian.AppendUint16(b, uint16(channels*2))
	b = binary.LittleEndian.AppendUint16(b, 16)

	b = append(b, "data"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(payload)))
	b = append(b, payload...)
	return b
}

func TestDecodeWAV(t *testing.T) {
	payload := []byte{1, 0, 2, 0, 3, 0, 4, 0}
	pcm, format, err := decodeWAV(buildWAV(22050, 1, payload))
	if err != nil {
		t.Fatalf("decodeWAV: %v", err)
	}
	if format.SampleRate != 22050 || format.Channels != 1 {
		t.Errorf("format = %+v, want 22050 Hz mono", format)
	}
	if string(pcm) != string(payload) {
		t.Errorf("pcm = %v, want %v", pcm, payload)
	}
}

func TestDecodeWAVStreamedSize(t *testing.T) {
	// A piped data chunk can claim more bytes than arrived.
	data := buildWAV(22050, 2, []byte{9, 0, 9, 0})
	binary.LittleEndian.PutUint32(data[40:44], 0xFFFFFFFF)

	pcm, format, err := decodeWAV(data)
	if err != nil {
		t.Fatalf("decodeWAV: %v", err)
	}
	if format.Channels != 2 {
		t.Errorf("channels = %d, want 2", format.Channels)
	}
	if len(pcm) != 4 {
		t.Errorf("len(pcm) = %d, want 4", len(pcm))
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("RIFF"),
		[]byte("RIFFxxxxJUNK"),
	}
	for _, data := range cases {
		if _, _, err := decodeWAV(data); err == nil {
			t.Errorf("decodeWAV(%q) succeeded, want error", data)
		}
	}
}

func TestModelVoice(t *testing.T) {
	v := modelVoice("en_US-lessac-medium")
	if v.Language != "en-US" {
		t.Errorf("language = %q, want en-US", v.Language)
	}
	if !v.Local {
		t.Error("piper voices should be local")
	}
	if v.ID != "en_US-lessac-medium" {
		t.Errorf("id = %q", v.ID)
	}
}
