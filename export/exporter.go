// Package export writes diagrams in text formats.
package export

import (
	"fmt"

	"wireroute/diagram"
)

// Format represents an export format
type Format string

const (
	// FormatScene is the native scene language
	FormatScene Format = "scene"
	// FormatASCII draws the diagram with box-drawing characters
	FormatASCII Format = "ascii"
	// FormatJSON is a JSON document of components and wires
	FormatJSON Format = "json"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a diagram to the target format
	Export(d *diagram.Diagram) (string, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatScene:
		return NewSceneExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "scene", "wr":
		return FormatScene, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{FormatScene, FormatASCII, FormatJSON}
}
