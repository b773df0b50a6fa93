package export

import (
	"encoding/json"

	"wireroute/diagram"
)

type jsonPin struct {
	Offset [2]int `json:"offset"`
	Dir    string `json:"dir"`
}

type jsonComponent struct {
	ID   string    `json:"id"`
	At   [2]int    `json:"at"`
	Size [2]int    `json:"size"`
	Pins []jsonPin `json:"pins,omitempty"`
}

type jsonDiagram struct {
	Components []jsonComponent `json:"components"`
	Wires      [][4]int        `json:"wires"`
}

// JSONExporter exports diagrams to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a diagram to JSON. Components are sorted by ID and wires by location.
func (e *JSONExporter) Export(d *diagram.Diagram) (string, error) {
	doc := jsonDiagram{
		Components: []jsonComponent{},
		Wires:      [][4]int{},
	}
	for _, c := range d.Components() {
		jc := jsonComponent{
			ID:   c.ID,
			At:   [2]int{c.Loc.X, c.Loc.Y},
			Size: [2]int{c.Width, c.Height},
		}
		for _, p := range c.Pins {
			jc.Pins = append(jc.Pins, jsonPin{Offset: [2]int{p.Offset.X, p.Offset.Y}, Dir: p.Dir.String()})
		}
		doc.Components = append(doc.Components, jc)
	}
	for _, w := range d.Wires() {
		doc.Wires = append(doc.Wires, [4]int{w.E0.X, w.E0.Y, w.E1.X, w.E1.Y})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (e *JSONExporter) GetFileExtension() string { return ".json" }
func (e *JSONExporter) GetFormatName() string    { return "JSON" }
