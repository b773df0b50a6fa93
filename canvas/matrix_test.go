package canvas

import (
	"errors"
	"strings"
	"testing"
)

func TestMatrixCanvas_Creation(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"Small", 10, 5},
		{"Wide", 100, 10},
		{"Tall", 10, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMatrixCanvas(tt.width, tt.height)
			if w, h := c.Size(); w != tt.width || h != tt.height {
				t.Errorf("Size() = (%d, %d), want (%d, %d)", w, h, tt.width, tt.height)
			}
			for y := 0; y < tt.height; y++ {
				for x := 0; x < tt.width; x++ {
					if c.Get(x, y) != ' ' || c.LayerAt(x, y) != LayerNone {
						t.Fatalf("Cell (%d,%d) not blank", x, y)
					}
				}
			}
		})
	}
	if NewMatrixCanvas(0, 5) != nil {
		t.Error("Expected nil canvas for zero width")
	}
}

func TestMatrixCanvas_Bounds(t *testing.T) {
	c := NewMatrixCanvas(4, 3)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		if err := c.Set(p[0], p[1], 'x', LayerWire); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Set(%d,%d) error = %v", p[0], p[1], err)
		}
		if c.Get(p[0], p[1]) != ' ' {
			t.Errorf("Get(%d,%d) outside should be space", p[0], p[1])
		}
	}
}

func TestCharacterMerger(t *testing.T) {
	m := NewCharacterMerger()
	tests := []struct {
		existing, new, want rune
	}{
		{' ', '─', '─'},
		{'─', '│', '┼'},
		{'│', '─', '┼'},
		{'┌', '─', '┬'},
		{'┌', '│', '├'},
		{'┘', '┌', '┼'},
		{'┐', '┘', '┤'},
		{'─', '─', '─'},
		{'o', '─', '─'},
		{'─', 'x', 'x'},
	}
	for _, tt := range tests {
		if got := m.Merge(tt.existing, tt.new); got != tt.want {
			t.Errorf("Merge(%q, %q) = %q, want %q", tt.existing, tt.new, got, tt.want)
		}
	}
}

func TestMatrixCanvas_SetMergesAndPutOverwrites(t *testing.T) {
	c := NewMatrixCanvas(3, 1)
	c.Set(1, 0, '─', LayerWire)
	c.Set(1, 0, '│', LayerPreview)
	if got := c.Get(1, 0); got != '┼' {
		t.Errorf("Set merge = %q, want ┼", got)
	}
	if got := c.LayerAt(1, 0); got != LayerPreview {
		t.Errorf("Set layer = %v, want the higher layer", got)
	}
	c.Put(1, 0, 'o', LayerComponent)
	if c.Get(1, 0) != 'o' || c.LayerAt(1, 0) != LayerComponent {
		t.Errorf("Put did not overwrite: %q %v", c.Get(1, 0), c.LayerAt(1, 0))
	}
	c.Clear()
	if c.String() != "\n" {
		t.Errorf("Cleared canvas = %q", c.String())
	}
}

func TestMatrixCanvas_ColoredString(t *testing.T) {
	c := NewMatrixCanvas(3, 1)
	c.Put(0, 0, 'a', LayerWire)
	c.Put(1, 0, 'b', LayerWire)
	c.Put(2, 0, 'c', LayerUnconnected)
	want := ColorGreen + "ab" + ColorReset + ColorRed + "c" + ColorReset + "\n"
	if got := c.ColoredString(); got != want {
		t.Errorf("ColoredString() = %q, want %q", got, want)
	}
	if strings.Contains(c.String(), "\033") {
		t.Error("String() should carry no colour codes")
	}
}
