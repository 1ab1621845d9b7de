package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
}

// LoadPLY loads the vertex positions and faces of a PLY file. Polygonal
// faces are split into triangle fans; every other property is skipped.
func LoadPLY(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return mesh, nil
}

// ReadPLY reads a PLY stream. The reader is left positioned after the face
// element.
func ReadPLY(r *bufio.Reader) (*MeshData, error) {
	header, err := parsePLYHeader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var src plySource
	switch header.Format {
	case "ascii":
		src = &plyASCII{r: r}
	case "binary_little_endian":
		src = &plyBinary{r: r, order: binary.LittleEndian}
	case "binary_big_endian":
		src = &plyBinary{r: r, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh := &MeshData{}
	if err := readPLYVertices(src, header, mesh); err != nil {
		return nil, err
	}
	if err := readPLYFaces(src, header, mesh); err != nil {
		return nil, err
	}
	return mesh, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string

	magic, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic number")
	}

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended before end_header: %w", err)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("unsupported element %q", currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}
	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func readPLYVertices(src plySource, header *PLYHeader, mesh *MeshData) error {
	axis := map[string]int{"x": 0, "y": 1, "z": 2}
	mesh.Vertices = make([]core.Vec3, 0, header.VertexCount)

	for i := 0; i < header.VertexCount; i++ {
		var xyz [3]float64
		for _, prop := range header.VertexProps {
			if prop.IsList {
				n, err := src.scalar(prop.ListType)
				if err != nil {
					return fmt.Errorf("vertex %d: %w", i, err)
				}
				for k := 0; k < int(n); k++ {
					if _, err := src.scalar(prop.Type); err != nil {
						return fmt.Errorf("vertex %d: %w", i, err)
					}
				}
				continue
			}
			v, err := src.scalar(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d property %s: %w", i, prop.Name, err)
			}
			if a, ok := axis[prop.Name]; ok {
				xyz[a] = v
			}
		}
		mesh.Vertices = append(mesh.Vertices, core.NewVec3(xyz[0], xyz[1], xyz[2]))
	}
	return src.endElement()
}

func readPLYFaces(src plySource, header *PLYHeader, mesh *MeshData) error {
	mesh.Faces = make([]int, 0, header.FaceCount*3)

	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				if _, err := src.scalar(prop.Type); err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			n, err := src.scalar(prop.ListType)
			if err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
			indices := make([]int, int(n))
			for k := range indices {
				v, err := src.scalar(prop.Type)
				if err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				indices[k] = int(v)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			if len(indices) < 3 {
				return fmt.Errorf("face %d has %d vertices", i, len(indices))
			}
			// Fan triangulation around the first corner
			for k := 1; k+1 < len(indices); k++ {
				mesh.Faces = append(mesh.Faces, indices[0], indices[k], indices[k+1])
			}
		}
	}
	return src.endElement()
}

// plySource reads scalar values in either encoding
type plySource interface {
	scalar(dataType string) (float64, error)
	endElement() error
}

type plyBinary struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (p *plyBinary) scalar(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported property type %q", dataType)
	}
	b := p.buf[:size]
	if _, err := io.ReadFull(p.r, b); err != nil {
		return 0, err
	}
	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(p.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(p.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(p.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(p.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(p.order.Uint32(b))), nil
	default:
		return math.Float64frombits(p.order.Uint64(b)), nil
	}
}

func (p *plyBinary) endElement() error { return nil }

// plyASCII reads whitespace separated values; each element instance sits
// on its own line but values are consumed as a flat stream
type plyASCII struct {
	r      *bufio.Reader
	fields []string
}

func (p *plyASCII) scalar(dataType string) (float64, error) {
	if getTypeSize(dataType) == 0 {
		return 0, fmt.Errorf("unsupported property type %q", dataType)
	}
	for len(p.fields) == 0 {
		line, err := p.r.ReadString('\n')
		p.fields = strings.Fields(line)
		if err != nil && len(p.fields) == 0 {
			return 0, err
		}
	}
	v, err := strconv.ParseFloat(p.fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", p.fields[0])
	}
	p.fields = p.fields[1:]
	return v, nil
}

func (p *plyASCII) endElement() error {
	p.fields = nil
	return nil
}

// getTypeSize returns the size in bytes of a PLY scalar type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}
