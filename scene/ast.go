package scene

import "github.com/alecthomas/participle/v2/lexer"

// File is a parsed scene: components with their pins, and wires.
type File struct {
	Items []*Item `parser:"@@*"`
}

// Item is one top-level declaration.
type Item struct {
	Component *ComponentDecl `parser:"  @@"`
	Wire      *WireDecl      `parser:"| @@"`
}

// ComponentDecl declares a component.
// Example: component U1 at (100,100) size (30,20)
type ComponentDecl struct {
	Pos lexer.Position

	ID   string     `parser:"KwComponent @Ident"`
	At   *Point     `parser:"KwAt @@"`
	Size *Point     `parser:"KwSize @@"`
	Pins []*PinDecl `parser:"@@*"`
}

// PinDecl places a pin relative to its component.
// Example: pin (0,10) west
type PinDecl struct {
	Pos lexer.Position

	Offset *Point `parser:"KwPin @@"`
	Dir    string `parser:"@Ident"`
}

// WireDecl declares a wire between two points.
// Example: wire (0,110) (100,110)
type WireDecl struct {
	Pos lexer.Position

	From *Point `parser:"KwWire @@"`
	To   *Point `parser:"@@"`
}

// Point is a coordinate pair.
type Point struct {
	X int `parser:"LParen @Integer Comma"`
	Y int `parser:"@Integer RParen"`
}
