package export

import (
	"strings"

	"wireroute/diagram"
	"wireroute/scene"
)

// SceneExporter writes the canonical scene language
type SceneExporter struct{}

// NewSceneExporter creates a new scene exporter
func NewSceneExporter() *SceneExporter {
	return &SceneExporter{}
}

// Export formats the diagram as a scene file
func (e *SceneExporter) Export(d *diagram.Diagram) (string, error) {
	var sb strings.Builder
	if err := scene.Format(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *SceneExporter) GetFileExtension() string { return ".wr" }
func (e *SceneExporter) GetFormatName() string    { return "Scene" }
