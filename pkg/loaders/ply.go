package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/log"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
}

// PLYElement is one element block (vertex, face or anything else) of a PLY header
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Elements []PLYElement
}

// plyValueReader yields successive scalar values from the body
type plyValueReader func(dataType string) (float64, error)

// LoadPLY loads a PLY mesh as a single object named after the file. Vertex
// colours, when present, are averaged per face into the face material;
// otherwise every face uses material.
func LoadPLY(filename string, material scene.Material, options OBJOptions) (scene.Object, error) {
	file, err := os.Open(filename)
	if err != nil {
		return scene.Object{}, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	return ReadPLY(file, filename, material, options)
}

// ReadPLY parses a PLY mesh from r
func ReadPLY(r io.Reader, name string, material scene.Material, options OBJOptions) (scene.Object, error) {
	if options.Scale == 0 {
		options.Scale = 1
	}
	logger := options.Logger
	if logger == nil {
		logger = log.New("loaders")
	}
	start := time.Now()

	br := bufio.NewReader(r)
	header, err := parsePLYHeader(br)
	if err != nil {
		return scene.Object{}, fmt.Errorf("%s: failed to parse PLY header: %w", name, err)
	}

	var next plyValueReader
	switch header.Format {
	case "ascii":
		next = asciiValueReader(br)
	case "binary_little_endian":
		next = binaryValueReader(br, binary.LittleEndian)
	case "binary_big_endian":
		next = binaryValueReader(br, binary.BigEndian)
	default:
		return scene.Object{}, fmt.Errorf("%s: unsupported PLY format: %s", name, header.Format)
	}

	mesh := plyMesh{scale: options.Scale}
	for _, element := range header.Elements {
		for i := 0; i < element.Count; i++ {
			if err := mesh.readElement(element, next); err != nil {
				return scene.Object{}, fmt.Errorf("%s: %s %d: %w", name, element.Name, i, err)
			}
		}
	}

	obj, err := mesh.object(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)), material)
	if err != nil {
		return scene.Object{}, fmt.Errorf("%s: %w", name, err)
	}
	if options.SmoothNormals && len(mesh.normals) == 0 {
		obj.ComputeVertexNormals()
	}

	logger.Noticef("loaded PLY mesh %s: %d vertices, %d triangles in %d ms",
		name, len(mesh.positions), len(obj.Triangles), time.Since(start).Milliseconds())
	return obj, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(br *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := br.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic")
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected end of header")
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "format":
			if len(parts) >= 2 {
				header.Format = parts[1]
			}
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element definition %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Properties = append(element.Properties, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
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
		return PLYProperty{Name: parts[3], Type: parts[2], IsList: true, ListType: parts[1]}, nil
	}
	return PLYProperty{Name: parts[1], Type: parts[0]}, nil
}

func asciiValueReader(br *bufio.Reader) plyValueReader {
	return func(string) (float64, error) {
		var token []byte
		for {
			b, err := br.ReadByte()
			if err != nil {
				if err == io.EOF && len(token) > 0 {
					break
				}
				return 0, io.ErrUnexpectedEOF
			}
			if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
				if len(token) > 0 {
					break
				}
				continue
			}
			token = append(token, b)
		}
		return strconv.ParseFloat(string(token), 64)
	}
}

func binaryValueReader(br *bufio.Reader, order binary.ByteOrder) plyValueReader {
	var buf [8]byte
	return func(dataType string) (float64, error) {
		size := getTypeSize(dataType)
		if size == 0 {
			return 0, fmt.Errorf("unsupported data type: %s", dataType)
		}
		if _, err := io.ReadFull(br, buf[:size]); err != nil {
			return 0, err
		}
		b := buf[:size]

		switch dataType {
		case "char", "int8":
			return float64(int8(b[0])), nil
		case "uchar", "uint8":
			return float64(b[0]), nil
		case "short", "int16":
			return float64(int16(order.Uint16(b))), nil
		case "ushort", "uint16":
			return float64(order.Uint16(b)), nil
		case "int", "int32":
			return float64(int32(order.Uint32(b))), nil
		case "uint", "uint32":
			return float64(order.Uint32(b)), nil
		case "float", "float32":
			return float64(math.Float32frombits(order.Uint32(b))), nil
		default:
			return math.Float64frombits(order.Uint64(b)), nil
		}
	}
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
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

// plyMesh accumulates vertex attributes and face index lists
type plyMesh struct {
	scale     float64
	positions []core.Vec3
	normals   []core.Vec3
	uvs       []core.Vec2
	colours   []core.Vec3
	faces     [][]int
}

func (m *plyMesh) readElement(element PLYElement, next plyValueReader) error {
	values := make(map[string]float64, len(element.Properties))
	var indices []int

	for _, prop := range element.Properties {
		if !prop.IsList {
			v, err := next(prop.Type)
			if err != nil {
				return fmt.Errorf("property %s: %w", prop.Name, err)
			}
			values[prop.Name] = v
			continue
		}

		count, err := next(prop.ListType)
		if err != nil {
			return fmt.Errorf("property %s count: %w", prop.Name, err)
		}
		for k := 0; k < int(count); k++ {
			v, err := next(prop.Type)
			if err != nil {
				return fmt.Errorf("property %s: %w", prop.Name, err)
			}
			if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
				indices = append(indices, int(v))
			}
		}
	}

	switch element.Name {
	case "vertex":
		m.addVertex(values)
	case "face":
		m.faces = append(m.faces, indices)
	}
	return nil
}

func (m *plyMesh) addVertex(values map[string]float64) {
	m.positions = append(m.positions, core.NewVec3(values["x"], values["y"], values["z"]).Multiply(m.scale))

	if nx, ok := values["nx"]; ok {
		m.normals = append(m.normals, core.NewVec3(nx, values["ny"], values["nz"]))
	}
	if u, ok := firstOf(values, "u", "s", "texture_u"); ok {
		v, _ := firstOf(values, "v", "t", "texture_v")
		m.uvs = append(m.uvs, core.NewVec2(u, v))
	}
	if r, ok := firstOf(values, "red", "r"); ok {
		g, _ := firstOf(values, "green", "g")
		b, _ := firstOf(values, "blue", "b")
		m.colours = append(m.colours, core.NewVec3(r, g, b))
	}
}

func firstOf(values map[string]float64, names ...string) (float64, bool) {
	for _, name := range names {
		if v, ok := values[name]; ok {
			return v, true
		}
	}
	return 0, false
}

// object fans each face into triangles around its first corner
func (m *plyMesh) object(name string, material scene.Material) (scene.Object, error) {
	var triangles []scene.Triangle
	for f, face := range m.faces {
		if len(face) < 3 {
			return scene.Object{}, fmt.Errorf("face %d has %d vertices", f, len(face))
		}
		for _, idx := range face {
			if idx < 0 || idx >= len(m.positions) {
				return scene.Object{}, fmt.Errorf("face %d references vertex %d of %d", f, idx, len(m.positions))
			}
		}

		for i := 1; i+1 < len(face); i++ {
			a, b, c := face[0], face[i], face[i+1]
			mat := material
			if len(m.colours) == len(m.positions) {
				avg := m.colours[a].Add(m.colours[b]).Add(m.colours[c]).Multiply(1.0 / 3)
				mat.Colour = scene.NewColour(int(avg.X), int(avg.Y), int(avg.Z))
			}

			tri := scene.NewTriangle(m.positions[a], m.positions[b], m.positions[c], mat)
			if len(m.normals) == len(m.positions) {
				tri.SetVertexNormals(m.normals[a], m.normals[b], m.normals[c])
			}
			if len(m.uvs) == len(m.positions) {
				tri.SetTexCoords(m.uvs[a], m.uvs[b], m.uvs[c])
			}
			triangles = append(triangles, tri)
		}
	}
	return scene.NewObject(name, triangles), nil
}
