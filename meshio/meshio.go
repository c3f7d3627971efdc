// Package meshio loads triangle meshes from Wavefront .obj files and builds
// the flat reference plate used for normalized diffusion comparisons. The
// original implementation loaded its test models from paths like
// "./models/monkeyfull.obj" (see ApplicationBuild/validation.cpp) without
// shipping a parser of its own; LoadOBJ supplies the missing piece so mesh
// input isn't limited to geometry built up by hand in code.
package meshio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
	"github.com/janeusz2000/DcoefficientRayTracer/rterr"
)

// LoadOBJ parses a Wavefront .obj stream into triangles. Only "v" (vertex)
// and "f" (face) records are honored; normals, texture coordinates,
// materials, and groups are ignored. Faces with more than three vertices
// are fan-triangulated around their first vertex. A face that collapses to
// a degenerate triangle (zero area, within geometry.Accuracy) is skipped
// rather than failing the whole load, since stray degenerate faces are
// common in exported meshes and the simulator tolerates an incomplete mesh
// far better than it tolerates refusing to load one.
func LoadOBJ(r io.Reader) ([]geometry.Triangle, error) {
	var vertices []geometry.Vec3
	var triangles []geometry.Triangle

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, rterr.Configurationf("obj line %d: %v", lineNum, err)
			}
			vertices = append(vertices, v)

		case "f":
			indices, err := parseFaceIndices(fields[1:], len(vertices))
			if err != nil {
				return nil, rterr.Configurationf("obj line %d: %v", lineNum, err)
			}
			for i := 1; i+1 < len(indices); i++ {
				tri, err := geometry.NewTriangle(vertices[indices[0]], vertices[indices[i]], vertices[indices[i+1]])
				if err != nil {
					continue // degenerate face, skip
				}
				triangles = append(triangles, tri)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, rterr.Configurationf("reading obj stream: %v", err)
	}

	return triangles, nil
}

func parseVertex(fields []string) (geometry.Vec3, error) {
	if len(fields) < 3 {
		return geometry.Vec3{}, rterr.Configurationf("vertex needs 3 coordinates, got %d", len(fields))
	}
	coords := make([]float32, 3)
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return geometry.Vec3{}, rterr.Configurationf("invalid vertex coordinate %q", fields[i])
		}
		coords[i] = float32(f)
	}
	return geometry.NewVec3(coords[0], coords[1], coords[2]), nil
}

// parseFaceIndices resolves a face record's vertex references (possibly
// slash-separated "v/vt/vn" triples, possibly negative for relative
// indexing) into zero-based indices into the already-seen vertex slice.
func parseFaceIndices(fields []string, vertexCount int) ([]int, error) {
	if len(fields) < 3 {
		return nil, rterr.Configurationf("face needs at least 3 vertices, got %d", len(fields))
	}
	indices := make([]int, len(fields))
	for i, field := range fields {
		ref := field
		if slash := strings.IndexByte(field, '/'); slash >= 0 {
			ref = field[:slash]
		}
		n, err := strconv.Atoi(ref)
		if err != nil {
			return nil, rterr.Configurationf("invalid face index %q", field)
		}
		idx := n - 1
		if n < 0 {
			idx = vertexCount + n
		}
		if idx < 0 || idx >= vertexCount {
			return nil, rterr.Configurationf("face index %d out of range (have %d vertices)", n, vertexCount)
		}
		indices[i] = idx
	}
	return indices, nil
}

// FlatReferencePlate builds the perfectly flat square used as the reference
// model for normalized diffusion comparisons: two triangles spanning
// [-side/2, side/2] on X and Y at z=0.
func FlatReferencePlate(side float32) ([]geometry.Triangle, error) {
	half := side / 2
	a := geometry.NewVec3(-half, -half, 0)
	b := geometry.NewVec3(half, -half, 0)
	c := geometry.NewVec3(half, half, 0)
	d := geometry.NewVec3(-half, half, 0)

	t1, err := geometry.NewTriangle(a, b, c)
	if err != nil {
		return nil, err
	}
	t2, err := geometry.NewTriangle(a, c, d)
	if err != nil {
		return nil, err
	}
	return []geometry.Triangle{t1, t2}, nil
}
