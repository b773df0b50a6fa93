package scene

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// SceneLexer tokenises scene files. Keywords are matched before identifiers; pin
// directions are plain identifiers so components may be named north or west.
var SceneLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},

	{Name: "KwComponent", Pattern: `\bcomponent\b`},
	{Name: "KwWire", Pattern: `\bwire\b`},
	{Name: "KwPin", Pattern: `\bpin\b`},
	{Name: "KwAt", Pattern: `\bat\b`},
	{Name: "KwSize", Pattern: `\bsize\b`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},

	{Name: "Integer", Pattern: `[-+]?[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
})
