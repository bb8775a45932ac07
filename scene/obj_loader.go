package scene

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"desk-room/core"
)

// LoadModel loads a model file, picking the format from its extension.
func LoadModel(path string) (*Node, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return LoadGLTF(path)
	case ".obj":
		return LoadOBJ(path)
	default:
		return nil, fmt.Errorf("model %q: unsupported format", path)
	}
}

// LoadOBJ parses a Wavefront .obj file (and its mtllib, if any) into a group
// with one primitive per object or group statement. Faces are fan
// triangulated; missing normals are smoothed from face normals.
func LoadOBJ(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	root, err := parseOBJ(f, filepath.Base(path), func(lib string) map[string]*Material {
		mtlPath := filepath.Join(dir, lib)
		mats, err := loadMTL(mtlPath, dir)
		if err != nil {
			slog.Warn("obj: skipping material library", "path", mtlPath, "err", err)
			return nil
		}
		return mats
	})
	if err != nil {
		return nil, fmt.Errorf("obj %q: %w", path, err)
	}
	return root, nil
}

type objMesh struct {
	name     string
	material string
	vertices []core.Vertex
	indices  []uint32
	// hasNormal[i] is false when vertex i came without a vn reference
	hasNormal []bool
}

func parseOBJ(r io.Reader, name string, mtllib func(string) map[string]*Material) (*Node, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		meshes    []*objMesh
	)
	materials := make(map[string]*Material)

	cur := &objMesh{name: "default"}
	seen := make(map[string]uint32) // "v/vt/vn" -> vertex index

	flush := func(next string) {
		if len(cur.indices) > 0 {
			meshes = append(meshes, cur)
		}
		cur = &objMesh{name: next, material: cur.material}
		seen = make(map[string]uint32)
	}

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v", "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if fields[0] == "v" {
				positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
			} else {
				normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
			}
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			face := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				if idx, ok := seen[ref]; ok {
					face = append(face, idx)
					continue
				}
				v, withNormal, err := parseFaceVertex(ref, positions, normals, uvs)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				idx := uint32(len(cur.vertices))
				cur.vertices = append(cur.vertices, v)
				cur.hasNormal = append(cur.hasNormal, withNormal)
				seen[ref] = idx
				face = append(face, idx)
			}
			for i := 2; i < len(face); i++ {
				cur.indices = append(cur.indices, face[0], face[i-1], face[i])
			}
		case "o", "g":
			next := "unnamed"
			if len(fields) > 1 {
				next = fields[1]
			}
			flush(next)
		case "usemtl":
			if len(fields) > 1 {
				if len(cur.indices) > 0 {
					flush(cur.name)
				}
				cur.material = fields[1]
			}
		case "mtllib":
			if len(fields) > 1 && mtllib != nil {
				for k, m := range mtllib(fields[1]) {
					materials[k] = m
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush("")

	if len(meshes) == 0 {
		return nil, fmt.Errorf("no faces")
	}

	root := NewGroup(name)
	fallback := NewMaterial("obj-default", core.ColorGrey)
	for i, m := range meshes {
		smoothMissingNormals(m)
		mat, ok := materials[m.material]
		if !ok {
			mat = fallback
		}
		meshName := fmt.Sprintf("%s_%d", m.name, i)
		root.Add(NewPrimitive(m.name, CreateMeshFromData(meshName, m.vertices, m.indices), mat))
	}
	return root, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// objIndex resolves a 1-based (or negative, relative) OBJ index.
func objIndex(s string, n int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		idx = n + idx + 1
	}
	if idx < 1 || idx > n {
		return 0, fmt.Errorf("index %s out of range [1,%d]", s, n)
	}
	return idx - 1, nil
}

// parseFaceVertex parses a face vertex reference "v", "v/vt", "v//vn" or
// "v/vt/vn".
func parseFaceVertex(ref string, positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) (core.Vertex, bool, error) {
	var v core.Vertex
	parts := strings.Split(ref, "/")

	i, err := objIndex(parts[0], len(positions))
	if err != nil {
		return v, false, fmt.Errorf("position: %w", err)
	}
	v.Position = positions[i]

	if len(parts) >= 2 && parts[1] != "" {
		i, err := objIndex(parts[1], len(uvs))
		if err != nil {
			return v, false, fmt.Errorf("uv: %w", err)
		}
		v.UV = uvs[i]
	}

	if len(parts) >= 3 && parts[2] != "" {
		i, err := objIndex(parts[2], len(normals))
		if err != nil {
			return v, false, fmt.Errorf("normal: %w", err)
		}
		v.Normal = normals[i]
		return v, true, nil
	}
	return v, false, nil
}

func smoothMissingNormals(m *objMesh) {
	missing := false
	for _, ok := range m.hasNormal {
		if !ok {
			missing = true
			break
		}
	}
	if !missing {
		return
	}

	acc := make([]mgl32.Vec3, len(m.vertices))
	for t := 0; t+2 < len(m.indices); t += 3 {
		a, b, c := m.indices[t], m.indices[t+1], m.indices[t+2]
		pa, pb, pc := m.vertices[a].Position, m.vertices[b].Position, m.vertices[c].Position
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i := range m.vertices {
		if m.hasNormal[i] {
			continue
		}
		if acc[i].Len() > 0 {
			m.vertices[i].Normal = acc[i].Normalize()
		} else {
			m.vertices[i].Normal = mgl32.Vec3{0, 1, 0}
		}
	}
}

// loadMTL reads the diffuse color, diffuse map and opacity of each material
// in a .mtl file. Texture paths are resolved against dir and decoded
// synchronously.
func loadMTL(path, dir string) (map[string]*Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseMTL(f, func(name string) (*Texture, error) {
		return LoadTexture(filepath.Join(dir, name))
	})
}

func parseMTL(r io.Reader, loadTex func(string) (*Texture, error)) (map[string]*Material, error) {
	result := make(map[string]*Material)
	var cur *Material

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) > 1 {
				cur = NewMaterial(fields[1], core.ColorWhite)
				result[fields[1]] = cur
			}
			continue
		}
		if cur == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			if v, err := parseFloats(fields[1:], 3); err == nil {
				cur.Color = core.Color{R: v[0], G: v[1], B: v[2], A: cur.Color.A}
			}
		case "Ns":
			if v, err := parseFloats(fields[1:], 1); err == nil {
				cur.Shininess = v[0]
			}
		case "d", "Tr":
			if v, err := parseFloats(fields[1:], 1); err == nil {
				alpha := v[0]
				if fields[0] == "Tr" {
					alpha = 1 - alpha
				}
				cur.Color.A = alpha
				cur.Transparent = alpha < 1
			}
		case "map_Kd":
			if len(fields) < 2 || loadTex == nil {
				continue
			}
			tex, err := loadTex(fields[len(fields)-1])
			if err != nil {
				slog.Warn("mtl: skipping texture", "material", cur.Name, "err", err)
				continue
			}
			cur.Map = tex
		}
	}
	return result, scanner.Err()
}
