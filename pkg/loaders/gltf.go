package loaders

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// LoadGLTF loads every triangle primitive of a glTF or GLB file into one
// mesh. Node transforms are ignored; placement comes from the scene.
func LoadGLTF(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := &MeshData{}
	for _, m := range doc.Meshes {
		if err := processGLTFMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	return mesh, nil
}

// processGLTFMesh appends the triangles of one glTF mesh
func processGLTFMesh(doc *gltf.Document, m *gltf.Mesh, mesh *MeshData) error {
	for _, prim := range m.Primitives {
		// Skip lines, points and strips
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		if prim.Indices == nil {
			// Unindexed: consecutive vertex triples
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, base+i, base+i+1, base+i+2)
			}
			continue
		}

		indices, err := readIndices(doc, *prim.Indices)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, base+indices[i], base+indices[i+1], base+indices[i+2])
		}
	}
	return nil
}

// accessorBytes returns the buffer bytes behind an accessor and its stride
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + accessor.ByteOffset
	end := start
	if accessor.Count > 0 {
		end = start + (accessor.Count-1)*stride + elemSize
	}
	if end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor reads past end of buffer (%d > %d)", end, len(buffer.Data))
	}
	return buffer.Data[start:end], stride, nil
}

// readVec3Accessor reads float VEC3 data
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec3, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		result[i] = core.NewVec3(readFloat32(b), readFloat32(b[4:]), readFloat32(b[8:]))
	}
	return result, nil
}

// readIndices reads unsigned SCALAR index data of any width
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		default:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// readFloat32 reads a little-endian float32 as float64
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
