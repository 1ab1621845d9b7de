package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// SceneDescription is the JSON scene file format. Vectors are [x, y, z]
// arrays. Optional sections are pointers so that an absent section can be
// told apart from a zero one.
type SceneDescription struct {
	Metadata   *SceneMetadata         `json:"metadata"`
	Materials  []MaterialDescription  `json:"materials"`
	Models     []ModelDescription     `json:"models"`
	Lights     []LightDescription     `json:"lights"`
	Camera     *CameraDescription     `json:"camera"`
	Ambient    *[3]float64            `json:"ambient"`
	Background *BackgroundDescription `json:"background"`
	Render     *RenderDescription     `json:"render"`
	TracePoint *[2]int                `json:"tracePoint"`
}

// SceneMetadata describes a scene file for listings
type SceneMetadata struct {
	Name        string `json:"name"`
	Variant     string `json:"variant,omitempty"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`
}

// MaterialDescription is a named Phong material
type MaterialDescription struct {
	Name            string     `json:"name"`
	Ka              [3]float64 `json:"Ka"`
	Kd              [3]float64 `json:"Kd"`
	Ks              [3]float64 `json:"Ks"`
	Krg             [3]float64 `json:"Krg"`
	Ktg             [3]float64 `json:"Ktg"`
	RefractiveIndex *float64   `json:"ri"` // absent means opaque
	SpecularCoeff   *float64   `json:"sc"` // absent means 1
}

// ModelDescription describes one model. Which fields apply depends on Type.
type ModelDescription struct {
	Type      string                `json:"type"`
	Name      string                `json:"name,omitempty"`
	Material  string                `json:"material"`
	Transform *TransformDescription `json:"transform,omitempty"`

	// sphere, box
	Center *[3]float64 `json:"center,omitempty"`
	Radius float64     `json:"radius,omitempty"`

	// plane
	RaySrc    *[3]float64 `json:"ray_src,omitempty"`
	RayNormal *[3]float64 `json:"ray_normal,omitempty"`

	// quadric: A..J
	QP []float64 `json:"qp,omitempty"`

	// triangle
	P1 *[3]float64 `json:"p1,omitempty"`
	P2 *[3]float64 `json:"p2,omitempty"`
	P3 *[3]float64 `json:"p3,omitempty"`

	// polygon
	Points [][3]float64 `json:"points,omitempty"`

	// collection; elements share the collection's material and transform
	Elements []ModelDescription `json:"elements,omitempty"`

	// box
	XAxis   *[3]float64 `json:"x_axis,omitempty"`
	YAxis   *[3]float64 `json:"y_axis,omitempty"`
	Length  float64     `json:"length,omitempty"`
	Breadth float64     `json:"breadth,omitempty"`
	Height  float64     `json:"height,omitempty"`

	// mesh (.ply, .glb, .gltf), relative to the scene file
	File string `json:"file,omitempty"`
}

// TransformDescription is a model-to-world affine map. Matrix is the
// row-major 3x3 linear part in row-vector form.
type TransformDescription struct {
	Matrix      *[9]float64 `json:"matrix"`
	Translation [3]float64  `json:"translation"`
}

// LightDescription is a point light
type LightDescription struct {
	Location  [3]float64 `json:"loc"`
	Intensity [3]float64 `json:"intensity"`
}

// CameraDescription gives either a 4x4 camera-to-world matrix in Trans
// (row-major, translation in the last column) or a look-at triple
type CameraDescription struct {
	AspectRatio float64     `json:"ar"`
	FOV         float64     `json:"fov"`
	Trans       []float64   `json:"trans,omitempty"`
	From        *[3]float64 `json:"from,omitempty"`
	To          *[3]float64 `json:"to,omitempty"`
	Up          *[3]float64 `json:"up,omitempty"`
}

// BackgroundDescription selects the colour returned for rays that miss
type BackgroundDescription struct {
	Type   string      `json:"type"`           // solid, gradient or texture
	Color  *[3]float64 `json:"color,omitempty"`
	Top    *[3]float64 `json:"top,omitempty"`
	Bottom *[3]float64 `json:"bottom,omitempty"`
	File   string      `json:"file,omitempty"` // texture, relative to the scene file
}

// RenderDescription overrides render settings
type RenderDescription struct {
	Width    int  `json:"width"`
	Height   int  `json:"height"`
	Samples  int  `json:"samples"`
	MaxDepth *int `json:"maxDepth"` // zero is meaningful
}

// LoadSceneDescription reads a JSON scene file
func LoadSceneDescription(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseSceneDescription(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return desc, nil
}

// ParseSceneDescription decodes a JSON scene. Unknown keys are rejected so
// that typos do not silently drop parts of a scene.
func ParseSceneDescription(r io.Reader) (*SceneDescription, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var desc SceneDescription
	if err := dec.Decode(&desc); err != nil {
		return nil, err
	}
	if err := desc.validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// validate checks the parts of the description that do not need the
// geometry types
func (d *SceneDescription) validate() error {
	names := make(map[string]bool, len(d.Materials))
	for i, m := range d.Materials {
		if m.Name == "" {
			return fmt.Errorf("material %d has no name", i)
		}
		if names[m.Name] {
			return fmt.Errorf("duplicate material %q", m.Name)
		}
		names[m.Name] = true
	}
	if d.Camera != nil && d.Camera.Trans != nil && len(d.Camera.Trans) != 16 {
		return fmt.Errorf("camera trans must have 16 entries, got %d", len(d.Camera.Trans))
	}
	if d.Camera != nil && d.Camera.Trans == nil && (d.Camera.From == nil || d.Camera.To == nil) {
		return fmt.Errorf("camera needs either trans or from/to")
	}
	return nil
}
