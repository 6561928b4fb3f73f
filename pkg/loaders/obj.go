package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-triangle-raytracer/pkg/core"
	"github.com/df07/go-triangle-raytracer/pkg/log"
	"github.com/df07/go-triangle-raytracer/pkg/scene"
)

// OBJOptions controls how a wavefront model is turned into scene objects
type OBJOptions struct {
	Scale           float64  // Applied to every vertex position
	MirrorMaterials []string // Material names that reflect
	GlassMaterials  []string // Material names flagged as glass
	SmoothNormals   bool     // Average face normals for objects without vn data
	Logger          log.Logger
}

// DefaultOBJOptions returns unit scale with the Yellow=mirror, Red=glass naming convention
func DefaultOBJOptions() OBJOptions {
	return OBJOptions{
		Scale:           1,
		MirrorMaterials: []string{"Yellow"},
		GlassMaterials:  []string{"Red"},
	}
}

// objMaterial is a parsed MTL entry with its optional diffuse map
type objMaterial struct {
	material scene.Material
	texture  *scene.Texture
}

// faceVertex holds resolved attributes for one corner of a face
type faceVertex struct {
	position  core.Vec3
	normal    core.Vec3
	uv        core.Vec2
	hasNormal bool
	hasUV     bool
}

type objReader struct {
	options OBJOptions
	logger  log.Logger

	materials   map[string]*objMaterial
	curMaterial *objMaterial

	vertexList []core.Vec3
	normalList []core.Vec3
	uvList     []core.Vec2

	objects []scene.Object

	// Describes the include chain when errors occur inside an mtllib
	errStack []string
}

// LoadOBJ reads a wavefront model and its material libraries from disk.
// Material libraries and texture maps are resolved relative to the file.
func LoadOBJ(filename string, options OBJOptions) ([]scene.Object, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open obj file: %w", err)
	}
	defer file.Close()

	return ReadOBJ(file, filename, options)
}

// ReadOBJ parses a wavefront model from r. name is used in error messages
// and as the base for relative mtllib paths.
func ReadOBJ(r io.Reader, name string, options OBJOptions) ([]scene.Object, error) {
	if options.Scale == 0 {
		options.Scale = 1
	}
	logger := options.Logger
	if logger == nil {
		logger = log.New("loaders")
	}

	reader := &objReader{
		options:   options,
		logger:    logger,
		materials: make(map[string]*objMaterial),
	}

	logger.Noticef("parsing model from %s", name)
	start := time.Now()

	if err := reader.parse(r, name); err != nil {
		return nil, err
	}
	objects := reader.finish()

	triangles := 0
	for i := range objects {
		triangles += objects[i].TriangleCount()
	}
	logger.Noticef("parsed %d objects (%d triangles) in %d ms", len(objects), triangles, time.Since(start).Milliseconds())

	return objects, nil
}

// emitError formats a syntax error with its location and the include chain
func (r *objReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	return errors.New(strings.Trim(
		fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n")),
		"\n",
	))
}

func (r *objReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

func (r *objReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// defaultMaterial is used by faces that appear before any usemtl
func (r *objReader) defaultMaterial() *objMaterial {
	mat, exists := r.materials[""]
	if !exists {
		mat = &objMaterial{material: scene.NewMaterial("", scene.NewColour(178, 178, 178))}
		r.materials[""] = mat
	}
	return mat
}

// currentObject returns the object faces are appended to, creating a
// "default" one when the model never declared an o/g line
func (r *objReader) currentObject() *scene.Object {
	if len(r.objects) == 0 {
		r.objects = append(r.objects, scene.NewObject("default", nil))
	}
	return &r.objects[len(r.objects)-1]
}

func (r *objReader) parse(res io.Reader, path string) error {
	lineNum := 0

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "mtllib":
			if len(lineTokens) != 2 {
				return r.emitError(path, lineNum, "unsupported syntax for 'mtllib'; expected 1 argument; got %d", len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [mtllib]", path, lineNum))
			mtlPath := relativeTo(path, lineTokens[1])
			file, err := os.Open(mtlPath)
			if err != nil {
				return r.emitError(path, lineNum, "%s", err.Error())
			}
			err = r.parseMaterials(file, mtlPath)
			file.Close()
			if err != nil {
				return err
			}
			r.popFrame()
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(path, lineNum, "unsupported syntax for 'usemtl'; expected 1 argument; got %d", len(lineTokens)-1)
			}

			mat, exists := r.materials[lineTokens[1]]
			if !exists {
				return r.emitError(path, lineNum, "undefined material with name '%s'", lineTokens[1])
			}
			r.curMaterial = mat
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(path, lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v.Multiply(r.options.Scale))
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(path, lineNum, "%s", err.Error())
			}
			r.normalList = append(r.normalList, v)
		case "vt":
			v, err := parseVec2(lineTokens)
			if err != nil {
				return r.emitError(path, lineNum, "%s", err.Error())
			}
			r.uvList = append(r.uvList, v)
		case "g", "o":
			if len(lineTokens) < 2 {
				return r.emitError(path, lineNum, "unsupported syntax for '%s'; expected 1 argument for object name; got %d", lineTokens[0], len(lineTokens)-1)
			}
			r.objects = append(r.objects, scene.NewObject(strings.Join(lineTokens[1:], " "), nil))
		case "f":
			triangles, err := r.parseFace(lineTokens)
			if err != nil {
				return r.emitError(path, lineNum, "%s", err.Error())
			}
			obj := r.currentObject()
			obj.Triangles = append(obj.Triangles, triangles...)
			if r.curMaterial.texture != nil {
				if obj.Texture == nil {
					obj.Texture = r.curMaterial.texture
				} else if obj.Texture != r.curMaterial.texture {
					r.logger.Warningf("object '%s' uses more than one texture; keeping the first", obj.Name)
				}
			}
		default:
			r.logger.Debugf("[%s: %d] ignoring '%s'", path, lineNum, lineTokens[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// finish drops empty objects and fills in smooth normals when requested
func (r *objReader) finish() []scene.Object {
	objects := make([]scene.Object, 0, len(r.objects))
	for _, obj := range r.objects {
		if len(obj.Triangles) == 0 {
			r.logger.Warningf("dropping object '%s' with no faces", obj.Name)
			continue
		}
		if r.options.SmoothNormals && !hasVertexNormals(&obj) {
			obj.ComputeVertexNormals()
		}
		objects = append(objects, obj)
	}
	return objects
}

func hasVertexNormals(obj *scene.Object) bool {
	for i := range obj.Triangles {
		if obj.Triangles[i].HasVertexNormals {
			return true
		}
	}
	return false
}

// parseFace parses a face with three or more corners. Each corner uses
// one of the following formats:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to reference the end of the
// list. Polygons are split into a triangle fan around the first corner.
func (r *objReader) parseFace(lineTokens []string) ([]scene.Triangle, error) {
	if len(lineTokens) < 4 {
		return nil, fmt.Errorf("unsupported syntax for 'f'; expected at least 3 arguments; got %d", len(lineTokens)-1)
	}

	corners := make([]faceVertex, len(lineTokens)-1)
	expIndices := 0
	for arg := range corners {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first corner defines the format for the rest
		if arg == 0 {
			expIndices = len(vTokens)
			if expIndices > 3 {
				return nil, fmt.Errorf("face argument %d has %d indices; expected at most 3", arg, expIndices)
			}
		} else if len(vTokens) != expIndices {
			return nil, fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}

		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		offset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		corners[arg].position = r.vertexList[offset]

		if len(vTokens) > 1 && vTokens[1] != "" {
			offset, err = selectFaceCoordIndex(vTokens[1], len(r.uvList))
			if err != nil {
				return nil, fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err.Error())
			}
			corners[arg].uv = r.uvList[offset]
			corners[arg].hasUV = true
		}

		if len(vTokens) > 2 && vTokens[2] != "" {
			offset, err = selectFaceCoordIndex(vTokens[2], len(r.normalList))
			if err != nil {
				return nil, fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
			corners[arg].normal = r.normalList[offset]
			corners[arg].hasNormal = true
		}
	}

	if r.curMaterial == nil {
		r.curMaterial = r.defaultMaterial()
	}
	material := r.curMaterial.material

	triangles := make([]scene.Triangle, 0, len(corners)-2)
	for i := 1; i+1 < len(corners); i++ {
		a, b, c := corners[0], corners[i], corners[i+1]
		tri := scene.NewTriangle(a.position, b.position, c.position, material)
		if a.hasNormal && b.hasNormal && c.hasNormal {
			tri.SetVertexNormals(a.normal, b.normal, c.normal)
		}
		if a.hasUV && b.hasUV && c.hasUV {
			tri.SetTexCoords(a.uv, b.uv, c.uv)
		}
		triangles = append(triangles, tri)
	}
	return triangles, nil
}

// parseMaterials reads a wavefront material library. Kd components in
// 0..1 are converted to 8-bit channels by truncation.
func (r *objReader) parseMaterials(res io.Reader, path string) error {
	lineNum := 0
	var curMaterial *objMaterial

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		if lineTokens[0] == "newmtl" {
			if len(lineTokens) != 2 {
				return r.emitError(path, lineNum, "unsupported syntax for 'newmtl'; expected 1 argument; got %d", len(lineTokens)-1)
			}

			matName := lineTokens[1]
			if _, exists := r.materials[matName]; exists {
				return r.emitError(path, lineNum, "material '%s' already defined", matName)
			}

			curMaterial = &objMaterial{material: scene.Material{
				Name:     matName,
				Colour:   scene.Colour{Name: matName},
				IsMirror: contains(r.options.MirrorMaterials, matName),
				IsGlass:  contains(r.options.GlassMaterials, matName),
			}}
			r.materials[matName] = curMaterial
			continue
		}

		if curMaterial == nil {
			return r.emitError(path, lineNum, "got '%s' without a 'newmtl'", lineTokens[0])
		}

		switch lineTokens[0] {
		case "Kd":
			kd, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(path, lineNum, "%s", err.Error())
			}
			c := &curMaterial.material.Colour
			c.R, c.G, c.B = unitToChannel(kd.X), unitToChannel(kd.Y), unitToChannel(kd.Z)
		case "map_Kd":
			if len(lineTokens) < 2 {
				return r.emitError(path, lineNum, "unsupported syntax for 'map_Kd'; expected 1 argument; got 0")
			}

			// Options such as -s precede the file name, which is always last
			texPath := relativeTo(path, lineTokens[len(lineTokens)-1])
			tex, err := LoadTexture(texPath)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					r.logger.Warningf("ignoring missing texture %s", texPath)
					continue
				}
				return r.emitError(path, lineNum, "%s", err.Error())
			}
			curMaterial.texture = tex
		default:
			r.logger.Debugf("[%s: %d] ignoring '%s'", path, lineNum, lineTokens[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// unitToChannel converts a 0..1 component to 0..255, truncating
func unitToChannel(v float64) int {
	return max(0, min(255, int(v*255)))
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// relativeTo resolves ref against the directory containing base
func relativeTo(base, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(base), ref)
}

// selectFaceCoordIndex converts a 1-based (or negative, end-relative)
// wavefront index into an offset into a list of coordListLen entries
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var offset int
	if index < 0 {
		offset = coordListLen + int(index)
	} else {
		offset = int(index - 1)
	}
	if offset < 0 || offset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return offset, nil
}

// parseVec3 parses the three numbers following a keyword
func parseVec3(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var coords [3]float64
	for i := range coords {
		v, err := strconv.ParseFloat(lineTokens[i+1], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		coords[i] = v
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseVec2 parses the two numbers following a keyword; a trailing w is ignored
func parseVec2(lineTokens []string) (core.Vec2, error) {
	if len(lineTokens) < 3 {
		return core.Vec2{}, fmt.Errorf("unsupported syntax for '%s'; expected 2 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	u, err := strconv.ParseFloat(lineTokens[1], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	v, err := strconv.ParseFloat(lineTokens[2], 64)
	if err != nil {
		return core.Vec2{}, err
	}
	return core.NewVec2(u, v), nil
}
