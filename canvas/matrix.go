// Package canvas draws schematics onto a grid of terminal cells.
package canvas

import (
	"errors"
	"strings"
)

// ErrOutOfBounds is returned when drawing outside the canvas.
var ErrOutOfBounds = errors.New("position out of bounds")

// Layer says what a cell shows. Front ends map layers to colours.
type Layer int

const (
	LayerNone Layer = iota
	LayerWire
	LayerPreview // wires a pending move adds
	LayerComponent
	LayerSelected
	LayerUnconnected // connection ends a move could not route
)

// MatrixCanvas is a rune matrix with a layer per cell. It is not safe for concurrent
// writes.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
//   - All coordinates are in character cells
type MatrixCanvas struct {
	matrix [][]rune
	layers [][]Layer
	width  int
	height int
	merger *CharacterMerger
}

// NewMatrixCanvas creates a blank canvas. It returns nil for a non-positive size.
func NewMatrixCanvas(width, height int) *MatrixCanvas {
	if width <= 0 || height <= 0 {
		return nil
	}
	c := &MatrixCanvas{
		matrix: make([][]rune, height),
		layers: make([][]Layer, height),
		width:  width,
		height: height,
		merger: NewCharacterMerger(),
	}
	for y := range c.matrix {
		c.matrix[y] = make([]rune, width)
		c.layers[y] = make([]Layer, width)
	}
	c.Clear()
	return c
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

func (c *MatrixCanvas) inside(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the character at the given position.
// Returns ' ' (space) if position is out of bounds.
func (c *MatrixCanvas) Get(x, y int) rune {
	if !c.inside(x, y) {
		return ' '
	}
	return c.matrix[y][x]
}

// LayerAt returns the layer of the given cell.
func (c *MatrixCanvas) LayerAt(x, y int) Layer {
	if !c.inside(x, y) {
		return LayerNone
	}
	return c.layers[y][x]
}

// Set merges char into the cell, turning crossing lines into junction glyphs.
func (c *MatrixCanvas) Set(x, y int, char rune, layer Layer) error {
	if !c.inside(x, y) {
		return ErrOutOfBounds
	}
	c.matrix[y][x] = c.merger.Merge(c.matrix[y][x], char)
	c.layers[y][x] = max(c.layers[y][x], layer)
	return nil
}

// Put overwrites the cell.
func (c *MatrixCanvas) Put(x, y int, char rune, layer Layer) error {
	if !c.inside(x, y) {
		return ErrOutOfBounds
	}
	c.matrix[y][x] = char
	c.layers[y][x] = layer
	return nil
}

// Clear resets the canvas to all spaces.
func (c *MatrixCanvas) Clear() {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.matrix[y][x] = ' '
			c.layers[y][x] = LayerNone
		}
	}
}

// String returns the canvas as a string with newlines and trailing spaces trimmed.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))
	for y := 0; y < c.height; y++ {
		sb.WriteString(strings.TrimRight(string(c.matrix[y]), " "))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
)

// LayerColor is the ANSI colour of a layer, or "" for none.
func LayerColor(l Layer) string {
	switch l {
	case LayerWire:
		return ColorGreen
	case LayerPreview:
		return ColorYellow
	case LayerComponent:
		return ColorWhite
	case LayerSelected:
		return ColorCyan
	case LayerUnconnected:
		return ColorRed
	default:
		return ""
	}
}

// ColoredString returns the canvas as a string with ANSI color codes
func (c *MatrixCanvas) ColoredString() string {
	var sb strings.Builder
	for y := 0; y < c.height; y++ {
		currentColor := ""
		for x := 0; x < c.width; x++ {
			color := LayerColor(c.layers[y][x])
			if color != currentColor {
				if currentColor != "" {
					sb.WriteString(ColorReset)
				}
				sb.WriteString(color)
				currentColor = color
			}
			sb.WriteRune(c.matrix[y][x])
		}
		if currentColor != "" {
			sb.WriteString(ColorReset)
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
