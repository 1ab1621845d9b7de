package loaders

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// createTestPLY writes a unit square as two triangles in binary little-endian
// PLY. includeNormals and includeColors add properties the loader must skip.
func createTestPLY(t *testing.T, filename string, includeNormals bool, includeColors bool) {
	t.Helper()
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	buf.WriteString("format binary_little_endian 1.0\n")
	buf.WriteString("comment test square\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}
	if includeColors {
		buf.WriteString("property uchar red\n")
		buf.WriteString("property uchar green\n")
		buf.WriteString("property uchar blue\n")
	}
	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for _, v := range vertices {
		binary.Write(&buf, binary.LittleEndian, v)
		if includeNormals {
			binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1})
		}
		if includeColors {
			buf.Write([]byte{255, 0, 0})
		}
	}

	for _, face := range [][3]int32{{0, 1, 2}, {0, 2, 3}} {
		buf.WriteByte(3)
		binary.Write(&buf, binary.LittleEndian, face)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write test PLY: %v", err)
	}
}

func checkSquare(t *testing.T, mesh *MeshData) {
	t.Helper()
	if len(mesh.Vertices) != 4 {
		t.Fatalf("Expected 4 vertices, got %d", len(mesh.Vertices))
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}
	if mesh.Vertices[2] != core.NewVec3(1, 1, 0) {
		t.Errorf("Expected vertex 2 at (1,1,0), got %v", mesh.Vertices[2])
	}
	_, b, c := mesh.Triangle(1)
	if b != core.NewVec3(1, 1, 0) || c != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected second triangle to end at (1,1,0),(0,1,0), got %v,%v", b, c)
	}
}

func TestLoadPLY_Binary(t *testing.T) {
	tests := []struct {
		name           string
		includeNormals bool
		includeColors  bool
	}{
		{"positions only", false, false},
		{"with normals", true, false},
		{"with normals and colors", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := filepath.Join(t.TempDir(), "square.ply")
			createTestPLY(t, filename, tt.includeNormals, tt.includeColors)

			mesh, err := LoadPLY(filename)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			checkSquare(t, mesh)
		})
	}
}

func TestReadPLY_ASCIIQuadIsFanned(t *testing.T) {
	src := `ply
format ascii 1.0
element vertex 4
property double x
property double y
property double z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`
	mesh, err := ReadPLY(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	checkSquare(t, mesh)
}

func TestReadPLY_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no magic", "format ascii 1.0\nend_header\n"},
		{"no end_header", "ply\nformat ascii 1.0\n"},
		{"unknown format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"truncated data", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nend_header\n1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadPLY(bufio.NewReader(strings.NewReader(tt.src))); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadPLY_NotFound(t *testing.T) {
	if _, err := LoadPLY("nonexistent.ply"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
