package core

import (
	"testing"
)

func TestColorDefault(t *testing.T) {
	if !ColorDefault.IsDefault() {
		t.Error("ColorDefault should be default")
	}
	if ColorFromRGB(1, 2, 3).IsDefault() {
		t.Error("RGB color should not be default")
	}
}

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#eaf5fd", 0xea, 0xf5, 0xfd, false},
		{"#D2E9FB", 0xd2, 0xe9, 0xfb, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false}, // Short form
		{"#000", 0, 0, 0, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
	}

	for _, tt := range tests {
		c, err := ColorFromHex(tt.hex)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ColorFromHex(%q) expected error, got nil", tt.hex)
			}
			continue
		}
		if err != nil {
			t.Errorf("ColorFromHex(%q) unexpected error: %v", tt.hex, err)
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b {
			t.Errorf("ColorFromHex(%q) = (%d,%d,%d), want (%d,%d,%d)",
				tt.hex, c.R, c.G, c.B, tt.r, tt.g, tt.b)
		}
	}
}

func TestColorString(t *testing.T) {
	if got := ColorFromRGB(0xea, 0xf5, 0xfd).String(); got != "#EAF5FD" {
		t.Errorf("String() = %q", got)
	}
	if got := ColorDefault.String(); got != "default" {
		t.Errorf("String() = %q", got)
	}
}

func TestColorBlend(t *testing.T) {
	black, white := ColorBlack, ColorWhite

	if got := black.Blend(white, 0); got != black {
		t.Errorf("Blend(0) = %v, want black", got)
	}
	if got := black.Blend(white, 1); got != white {
		t.Errorf("Blend(1) = %v, want white", got)
	}

	mid := black.Blend(white, 0.5)
	if mid.R < 64 || mid.R > 192 {
		t.Errorf("Blend(0.5) = %v, want a mid gray", mid)
	}

	if got := ColorDefault.Blend(white, 0.2); !got.IsDefault() {
		t.Errorf("default Blend(0.2) = %v, want default", got)
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().WithForeground(ColorBlack).WithBackground(ColorWhite).Bold().Underline()
	if s.Foreground != ColorBlack || s.Background != ColorWhite {
		t.Errorf("colors = %v/%v", s.Foreground, s.Background)
	}
	if !s.Attributes.Has(AttrBold) || !s.Attributes.Has(AttrUnderline) || s.Attributes.Has(AttrReverse) {
		t.Errorf("attributes = %b", s.Attributes)
	}
	if !s.Reverse().Attributes.Has(AttrReverse) {
		t.Error("Reverse() should add AttrReverse")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'\t', 0},
		{'中', 2},
		{'✓', 1},
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"JavaScript", 20, "JavaScript"},
		{"JavaScript", 10, "JavaScript"},
		{"JavaScript", 5, "Java…"},
		{"中文字符", 5, "中文…"},
		{"abc", 0, ""},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if StringWidth(got) > tt.width {
			t.Errorf("Truncate(%q, %d) width %d exceeds limit", tt.in, tt.width, StringWidth(got))
		}
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(2, 3, 4, 5)
	if r.Width() != 5 || r.Height() != 4 {
		t.Errorf("size = %dx%d, want 5x4", r.Width(), r.Height())
	}
	if !r.Contains(ScreenPos{Row: 2, Col: 3}) {
		t.Error("top-left should be inside")
	}
	if r.Contains(ScreenPos{Row: 6, Col: 3}) || r.Contains(ScreenPos{Row: 2, Col: 8}) {
		t.Error("bottom/right edges are exclusive")
	}
	if r.IsEmpty() || !(ScreenRect{}).IsEmpty() {
		t.Error("IsEmpty() returned unexpected result")
	}
}
