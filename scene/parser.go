// Package scene reads and writes the text form of a diagram.
package scene

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"

	"wireroute/core"
	"wireroute/diagram"
)

// Parser represents a scene file parser
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new scene parser instance
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(SceneLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse reads a scene and builds its diagram.
func (p *Parser) Parse(r io.Reader) (*diagram.Diagram, error) {
	file, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return Build(file)
}

// ParseString parses a scene held in a string.
func (p *Parser) ParseString(input string) (*diagram.Diagram, error) {
	file, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return Build(file)
}

// ParseFile parses a scene file from a file path
func (p *Parser) ParseFile(filename string) (*diagram.Diagram, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads a scene with a freshly built parser.
func Parse(r io.Reader) (*diagram.Diagram, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	return p.Parse(r)
}

// ParseFile reads a scene file with a freshly built parser.
func ParseFile(filename string) (*diagram.Diagram, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	return p.ParseFile(filename)
}

// Build converts a parsed file into a diagram. Errors carry the declaration position.
func Build(file *File) (*diagram.Diagram, error) {
	d := diagram.New()
	for _, item := range file.Items {
		switch {
		case item.Component != nil:
			c, err := item.Component.component()
			if err != nil {
				return nil, err
			}
			if err := d.AddComponent(c); err != nil {
				return nil, fmt.Errorf("%s: %w", item.Component.Pos, err)
			}
		case item.Wire != nil:
			w := item.Wire
			if err := d.AddWire(core.NewWire(w.From.loc(), w.To.loc())); err != nil {
				return nil, fmt.Errorf("%s: %w", w.Pos, err)
			}
		}
	}
	return d, nil
}

func (c *ComponentDecl) component() (diagram.Component, error) {
	comp := diagram.Component{
		ID:     c.ID,
		Loc:    c.At.loc(),
		Width:  c.Size.X,
		Height: c.Size.Y,
	}
	if comp.Width <= 0 || comp.Height <= 0 {
		return comp, fmt.Errorf("%s: component %s has empty size %dx%d", c.Pos, c.ID, comp.Width, comp.Height)
	}
	for _, p := range c.Pins {
		dir, err := core.ParseDirection(p.Dir)
		if err == nil && dir == core.None {
			err = fmt.Errorf("pin needs a direction, got %q", p.Dir)
		}
		if err != nil {
			return comp, fmt.Errorf("%s: %w", p.Pos, err)
		}
		comp.Pins = append(comp.Pins, diagram.Pin{Offset: p.Offset.loc(), Dir: dir})
	}
	return comp, nil
}

func (p *Point) loc() core.Location {
	return core.Loc(p.X, p.Y)
}
