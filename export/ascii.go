package export

import (
	"wireroute/canvas"
	"wireroute/diagram"
)

// ASCIIExporter draws diagrams as box-drawing text
type ASCIIExporter struct {
	Color bool
}

// NewASCIIExporter creates a new ASCII exporter
func NewASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{}
}

// Export renders the diagram
func (e *ASCIIExporter) Export(d *diagram.Diagram) (string, error) {
	c := canvas.Render(d, canvas.Overlay{})
	if e.Color {
		return c.ColoredString(), nil
	}
	return c.String(), nil
}

func (e *ASCIIExporter) GetFileExtension() string { return ".txt" }
func (e *ASCIIExporter) GetFormatName() string    { return "ASCII" }
