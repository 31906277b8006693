package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestDefault_Monospace(t *testing.T) {
	m := Default()
	got := m.Layout("1234", 1)
	if got.Size.Width != 28 {
		t.Errorf("width = %v, want 28", got.Size.Width)
	}
	if got.Size.Height != 13 {
		t.Errorf("height = %v, want 13", got.Size.Height)
	}
	if len(got.Glyphs) != 4 {
		t.Fatalf("glyphs = %d, want 4", len(got.Glyphs))
	}
	if got.Glyphs[3].X != 21 {
		t.Errorf("last glyph x = %v, want 21", got.Glyphs[3].X)
	}
}

func TestDefault_Scale(t *testing.T) {
	m := Default()
	one := m.Layout("abc", 1)
	two := m.Layout("abc", 2)
	if two.Size.Width != 2*one.Size.Width {
		t.Errorf("scaled width = %v, want %v", two.Size.Width, 2*one.Size.Width)
	}
	if zero := m.Layout("abc", 0); zero.Size != one.Size {
		t.Errorf("scale 0 should measure like scale 1, got %v", zero.Size)
	}
}

func TestDefault_Empty(t *testing.T) {
	got := Default().Layout("", 1)
	if got.Size.Width != 0 {
		t.Errorf("empty width = %v, want 0", got.Size.Width)
	}
	if got.Width() != 0 {
		t.Errorf("Width() = %v", got.Width())
	}
}

func TestParse_OpenType(t *testing.T) {
	m, err := Parse(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	short := m.Layout("i", 1)
	long := m.Layout("iiii", 1)
	if long.Size.Width <= short.Size.Width {
		t.Errorf("longer text should be wider: %v vs %v", long.Size.Width, short.Size.Width)
	}
	big := m.Layout("iiii", 2)
	if big.Size.Width <= long.Size.Width {
		t.Errorf("scaled text should be wider: %v vs %v", big.Size.Width, long.Size.Width)
	}
	if big.Face == long.Face {
		t.Error("scaled layout should use a dedicated face")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("not a font"), 12); err == nil {
		t.Fatal("expected an error for invalid font data")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/font.ttf", 12); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
