package media

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func f32le(samples ...float32) []byte {
	out := make([]byte, 0, len(samples)*4)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(s))
	}
	return out
}

func TestDeinterleaveF32LE_Stereo(t *testing.T) {
	// frames entrelacées : L0 R0 L1 R1 L2 R2
	raw := f32le(0.1, -0.1, 0.2, -0.2, 0.3, -0.3)

	channels, err := DeinterleaveF32LE(raw, 2)
	if err != nil {
		t.Fatalf("DeinterleaveF32LE: %v", err)
	}
	if len(channels) != 2 {
		t.Fatalf("channels = %d; want 2", len(channels))
	}
	wantL := []float32{0.1, 0.2, 0.3}
	wantR := []float32{-0.1, -0.2, -0.3}
	for i := range wantL {
		if channels[0][i] != wantL[i] {
			t.Errorf("L[%d] = %v; want %v", i, channels[0][i], wantL[i])
		}
		if channels[1][i] != wantR[i] {
			t.Errorf("R[%d] = %v; want %v", i, channels[1][i], wantR[i])
		}
	}
}

func TestDeinterleaveF32LE_Mono(t *testing.T) {
	raw := f32le(0.5, -0.5)
	channels, err := DeinterleaveF32LE(raw, 1)
	if err != nil {
		t.Fatalf("DeinterleaveF32LE: %v", err)
	}
	if len(channels) != 1 || len(channels[0]) != 2 {
		t.Fatalf("shape = %dx%d; want 1x2", len(channels), len(channels[0]))
	}
}

func TestDeinterleaveF32LE_TrailingPartialFrameIgnored(t *testing.T) {
	// 3 échantillons pour 2 canaux : une frame complète + un demi-frame
	raw := f32le(0.1, -0.1, 0.2)
	channels, err := DeinterleaveF32LE(raw, 2)
	if err != nil {
		t.Fatalf("DeinterleaveF32LE: %v", err)
	}
	if len(channels[0]) != 1 || len(channels[1]) != 1 {
		t.Errorf("frames = %d/%d; want 1/1", len(channels[0]), len(channels[1]))
	}
}

func TestDeinterleaveF32LE_Invalid(t *testing.T) {
	// pas même une frame complète
	if _, err := DeinterleaveF32LE(f32le(0.1), 2); err == nil {
		t.Error("stream without a complete frame accepted")
	}
	if _, err := DeinterleaveF32LE(f32le(0.1), 0); err == nil {
		t.Error("zero channels accepted")
	}
}

func TestStreamInfoFromProbe(t *testing.T) {
	t.Run("first audio stream wins", func(t *testing.T) {
		p := probeOutput{
			Streams: []probeStream{
				{CodecType: "video"},
				{CodecType: "audio", SampleRate: "48000", Channels: 2},
				{CodecType: "audio", SampleRate: "22050", Channels: 1},
			},
			Format: probeFormat{Duration: "12.5"},
		}
		info, err := streamInfoFromProbe(p)
		if err != nil {
			t.Fatalf("streamInfoFromProbe: %v", err)
		}
		if info.SampleRate != 48000 || info.ChannelCount != 2 {
			t.Errorf("info = %+v", info)
		}
		if info.DurationSeconds != 12.5 {
			t.Errorf("duration = %v; want 12.5", info.DurationSeconds)
		}
	})

	t.Run("no audio stream", func(t *testing.T) {
		p := probeOutput{Streams: []probeStream{{CodecType: "video"}}}
		if _, err := streamInfoFromProbe(p); !errors.Is(err, ErrDecode) {
			t.Errorf("err = %v; want wrapped ErrDecode", err)
		}
	})

	t.Run("invalid sample rate", func(t *testing.T) {
		p := probeOutput{Streams: []probeStream{
			{CodecType: "audio", SampleRate: "abc", Channels: 2},
		}}
		if _, err := streamInfoFromProbe(p); !errors.Is(err, ErrDecode) {
			t.Errorf("err = %v; want wrapped ErrDecode", err)
		}
	})

	t.Run("missing container duration is tolerated", func(t *testing.T) {
		p := probeOutput{Streams: []probeStream{
			{CodecType: "audio", SampleRate: "44100", Channels: 1},
		}}
		info, err := streamInfoFromProbe(p)
		if err != nil {
			t.Fatalf("streamInfoFromProbe: %v", err)
		}
		if info.DurationSeconds != 0 {
			t.Errorf("duration = %v; want 0", info.DurationSeconds)
		}
	})
}

func TestSampleBufferValidate(t *testing.T) {
	valid := &SampleBuffer{
		SampleRate:      44100,
		ChannelCount:    2,
		Channels:        [][]float32{make([]float32, 10), make([]float32, 10)},
		DurationSeconds: 10.0 / 44100.0,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid buffer rejected: %v", err)
	}

	uneven := &SampleBuffer{
		SampleRate:   44100,
		ChannelCount: 2,
		Channels:     [][]float32{make([]float32, 10), make([]float32, 9)},
	}
	if err := uneven.Validate(); err == nil {
		t.Error("uneven channel lengths accepted")
	}
}
