package clip

import (
	"strings"
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    Timestamp
		wantErr bool
	}{
		{in: "00:00:00", want: 0},
		{in: "01:02:03", want: NewTimestamp(1, 2, 3)},
		{in: " 00:21:45 ", want: NewTimestamp(0, 21, 45)},
		{in: "23:59:59", want: maxTimestamp},
		{in: "24:00:00", wantErr: true},
		{in: "00:60:00", wantErr: true},
		{in: "00:00", wantErr: true},
		{in: "aa:bb:cc", wantErr: true},
		{in: "000:01:00", wantErr: true},
		{in: "0:1:5", wantErr: true},
		{in: "00:01:+5", wantErr: true},
		{in: "00:-1:05", wantErr: true},
		{in: "00:01: 5", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimestamp(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimestamp(%q) = %d, want %d", tt.in, got, tt.want)
		}
		if got.String() != strings.TrimSpace(tt.in) {
			t.Errorf("ParseTimestamp(%q) formats back as %q", tt.in, got.String())
		}
	}
}

func TestTimeBoundRoundTripsThroughString(t *testing.T) {
	b, err := ParseTimeBound("00:01:30-00:02:05")
	if err != nil {
		t.Fatalf("ParseTimeBound: %v", err)
	}
	if b.String() != "00:01:30-00:02:05" {
		t.Fatalf("unexpected string %q", b.String())
	}
	if b.Duration() != 35 {
		t.Fatalf("unexpected duration %d", b.Duration())
	}
	if !b.Valid() {
		t.Fatal("expected valid bound")
	}
	if (TimeBound{Start: 10, End: 5}).Valid() {
		t.Fatal("expected reversed bound to be invalid")
	}
	if _, err := ParseTimeBound("00:01:30"); err == nil {
		t.Fatal("expected error for missing end")
	}
}

func TestParseSeason(t *testing.T) {
	tests := map[string]Season{
		"Spring":   Spring,
		"summer":   Summer,
		"FALL":     Fall,
		" winter ": Winter,
		"autumn":   Spring,
		"":         Spring,
	}
	for in, want := range tests {
		if got := ParseSeason(in); got != want {
			t.Errorf("ParseSeason(%q) = %q, want %q", in, got, want)
		}
	}
}
