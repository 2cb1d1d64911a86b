package directory

import "testing"

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		fallback string
		want     string
	}{
		{"plain ascii", []byte("Gold"), "", "Gold"},
		{"utf8", []byte("münze"), "", "münze"},
		{"empty falls back", nil, "Silver", "Silver"},
		{"invalid bytes replaced per byte", []byte{0xff, 0xfe, 'o', 'k'}, "", "��ok"},
		{"truncated sequence at end", []byte{'o', 'k', 0xc3}, "", "ok�"},
		{"invalid run between valid text", []byte{'a', 0x80, 0x80, 0x80, 'b'}, "", "a���b"},
	}
	for _, tt := range tests {
		if got := decodeText(tt.raw, tt.fallback); got != tt.want {
			t.Errorf("%s: decodeText = %q, want %q", tt.name, got, tt.want)
		}
	}
}
