package loaders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MeshData is an indexed triangle mesh as read from disk
type MeshData struct {
	Vertices []core.Vec3
	Faces    []int // Triangle indices (3 per triangle), counter-clockwise
}

// TriangleCount returns the number of triangles in the mesh
func (m *MeshData) TriangleCount() int {
	return len(m.Faces) / 3
}

// Triangle returns the corners of triangle i
func (m *MeshData) Triangle(i int) (core.Vec3, core.Vec3, core.Vec3) {
	return m.Vertices[m.Faces[3*i]], m.Vertices[m.Faces[3*i+1]], m.Vertices[m.Faces[3*i+2]]
}

// validate checks that every face index refers to a vertex
func (m *MeshData) validate() error {
	if len(m.Faces)%3 != 0 {
		return fmt.Errorf("face index count %d is not a multiple of 3", len(m.Faces))
	}
	for i, idx := range m.Faces {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("face index %d at position %d out of range (%d vertices)", idx, i, len(m.Vertices))
		}
	}
	return nil
}

// LoadMesh loads a triangle mesh, picking the format from the file extension:
// .ply, or .glb/.gltf
func LoadMesh(filename string) (*MeshData, error) {
	var (
		mesh *MeshData
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".ply":
		mesh, err = LoadPLY(filename)
	case ".glb", ".gltf":
		mesh, err = LoadGLTF(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	if err := mesh.validate(); err != nil {
		return nil, fmt.Errorf("invalid mesh %s: %w", filename, err)
	}
	return mesh, nil
}
