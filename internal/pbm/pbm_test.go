package pbm

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ivlev/bookseam/internal/bitmap"
)

func TestRoundTrip(t *testing.T) {
	for _, width := range []int{1, 7, 8, 9, 16, 21} {
		b, err := bitmap.New(width, 5)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				if (x*x+y)%3 == 1 {
					b.Set(x, y, 1)
				}
			}
		}

		var buf bytes.Buffer
		if err := Encode(&buf, b); err != nil {
			t.Fatalf("width %d: Encode failed: %v", width, err)
		}

		back, err := Decode(&buf)
		if err != nil {
			t.Fatalf("width %d: Decode failed: %v", width, err)
		}
		if !back.Equal(b) {
			t.Errorf("width %d: bitmap changed after round trip:\n%s\nvs\n%s", width, back, b)
		}
	}
}

func TestEncodeLayout(t *testing.T) {
	b, _ := bitmap.New(10, 2)
	b.Set(0, 0, 1)
	b.Set(9, 0, 1)
	b.Set(1, 1, 1)

	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := append([]byte("P4\n10 2\n"), 0x80, 0x40, 0x40, 0x00)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Expected % x, got % x", want, buf.Bytes())
	}
}

func TestDecodeHeaderVariants(t *testing.T) {
	body := string([]byte{0xA0, 0x20})
	inputs := []string{
		"P4 3 2\n" + body,
		"P4\n3\n2\t" + body,
		"  P4\n# scanner output\n3 2\n" + body,
	}

	for _, in := range inputs {
		b, err := Decode(strings.NewReader(in))
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", in, err)
		}
		if b.Width != 3 || b.Height != 2 {
			t.Fatalf("Expected 3x2, got %dx%d", b.Width, b.Height)
		}
		if b.Get(0, 0) != 1 || b.Get(1, 0) != 0 || b.Get(2, 0) != 1 || b.Get(2, 1) != 1 {
			t.Errorf("Unexpected pixels:\n%s", b)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"ascii pbm", "P1\n3 2\n1 0 1\n0 0 1\n", ErrMalformedHeader},
		{"bad width", "P4\nx 2\n", ErrMalformedHeader},
		{"zero height", "P4\n3 0\n", ErrMalformedHeader},
		{"empty", "", ErrMalformedHeader},
		{"short body", "P4\n16 2\n\x00\x00\x00", io.ErrUnexpectedEOF},
		{"size overflows", "P4\n3037000500 3037000500\n", ErrMalformedHeader},
		{"huge width", "P4\n4611686018427387904 4\n", ErrMalformedHeader},
		{"width beyond int", "P4\n99999999999999999999 1\n", ErrMalformedHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}
