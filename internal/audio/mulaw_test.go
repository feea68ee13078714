package audio

import "testing"

func TestDecodeMuLawKnownValues(t *testing.T) {
	// 0xFF is the mu-law code for digital silence, 0x7F for negative zero.
	tests := []struct {
		name string
		code byte
		want int16
	}{
		{"positive zero", 0xFF, 0},
		{"negative zero", 0x7F, 0},
		{"max positive", 0x80, 32124},
		{"max negative", 0x00, -32124},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeMuLaw([]byte{tt.code})
			if len(got) != 1 {
				t.Fatalf("DecodeMuLaw returned %d samples, want 1", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("DecodeMuLaw(%#x) = %d, want %d", tt.code, got[0], tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// Mu-law is lossy; a decoded code must encode back to the same code.
	for i := 0; i < 256; i++ {
		code := byte(i)
		sample := DecodeMuLaw([]byte{code})[0]
		back := EncodeMuLaw([]int16{sample})[0]
		// 0x7F and 0xFF both decode to 0; the encoder picks the positive code.
		if sample == 0 {
			if back != 0xFF {
				t.Errorf("EncodeMuLaw(0) = %#x, want 0xff", back)
			}
			continue
		}
		if back != code {
			t.Errorf("round trip of code %#x: got %#x (sample %d)", code, back, sample)
		}
	}
}

func TestDecodeMuLawFrameLength(t *testing.T) {
	frame := make([]byte, 160) // one 20ms frame at 8kHz
	got := DecodeMuLaw(frame)
	if len(got) != 160 {
		t.Errorf("decoded %d samples, want 160", len(got))
	}
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name    string
		samples []int16
		want    int
	}{
		{"empty", nil, 0},
		{"silence", make([]int16, 160), 0},
		{"constant", []int16{1000, 1000, 1000, 1000}, 1000},
		{"alternating", []int16{2000, -2000, 2000, -2000}, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.samples); got != tt.want {
				t.Errorf("RMS() = %d, want %d", got, tt.want)
			}
		})
	}
}
