package scene

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"desk-room/core"
)

// gltfPrimitive is one converted glTF primitive with its material.
type gltfPrimitive struct {
	mesh     *Mesh
	material *Material
}

// LoadGLTF opens a .glb or .gltf file and returns its default scene as a
// single group node. Geometry, base-color materials and textures, and the
// node hierarchy are converted; PBR factors are approximated to Blinn-Phong.
// Images that fail to decode are logged and skipped.
func LoadGLTF(path string) (*Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return convertGLTF(doc, filepath.Dir(path), filepath.Base(path))
}

func convertGLTF(doc *gltf.Document, dir, name string) (*Node, error) {
	textures := make([]*Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil || *gt.Source >= len(doc.Images) {
			continue
		}
		tex, err := loadGLTFImage(doc, dir, *gt.Source)
		if err != nil {
			slog.Warn("gltf: skipping image", "model", name, "image", *gt.Source, "err", err)
			continue
		}
		textures[i] = tex
	}

	materials := make([]*Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := NewMaterial(gm.Name, core.ColorWhite)
		if gm.DoubleSided {
			mat.Side = DoubleSide
		}
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Color = core.Color{
				R: float32(cf[0]), G: float32(cf[1]),
				B: float32(cf[2]), A: float32(cf[3]),
			}
			if pbr.BaseColorTexture != nil {
				idx := pbr.BaseColorTexture.Index
				if idx < len(textures) && textures[idx] != nil {
					mat.Map = textures[idx]
				}
			}
			// smooth surfaces get tight highlights, metals brighter ones
			roughness := float32(pbr.RoughnessFactorOrDefault())
			metallic := float32(pbr.MetallicFactorOrDefault())
			mat.Shininess = (1-roughness)*(1-roughness)*128 + 1
			mat.Specular = 0.1 + metallic*0.6
		}
		if gm.AlphaMode == gltf.AlphaBlend {
			mat.Transparent = true
		}
		materials[i] = mat
	}

	prims := make([][]gltfPrimitive, len(doc.Meshes))
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, err := loadGLTFPrimitive(doc, gm.Name, pi, prim)
			if err != nil {
				slog.Warn("gltf: skipping primitive", "model", name, "mesh", mi, "primitive", pi, "err", err)
				continue
			}
			p := gltfPrimitive{mesh: m}
			if prim.Material != nil && *prim.Material < len(materials) {
				p.material = materials[*prim.Material]
			} else {
				p.material = NewMaterial("default", core.ColorWhite)
			}
			prims[mi] = append(prims[mi], p)
		}
	}

	nodes := make([]*Node, len(doc.Nodes))
	for i, gn := range doc.Nodes {
		nodeName := gn.Name
		if nodeName == "" {
			nodeName = fmt.Sprintf("node_%d", i)
		}
		n := NewNode(nodeName)

		t := gn.TranslationOrDefault()
		n.SetPosition(mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])})
		sc := gn.ScaleOrDefault()
		n.SetScale(mgl32.Vec3{float32(sc[0]), float32(sc[1]), float32(sc[2])})
		r := gn.RotationOrDefault() // x, y, z, w
		n.SetRotation(mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}})

		if gn.Mesh != nil && *gn.Mesh < len(prims) {
			list := prims[*gn.Mesh]
			if len(list) == 1 {
				n.Mesh = list[0].mesh
				n.Materials = []*Material{list[0].material}
			} else {
				for pi, p := range list {
					n.AddChild(NewPrimitive(fmt.Sprintf("%s_prim%d", nodeName, pi), p.mesh, p.material))
				}
			}
		}
		nodes[i] = n
	}

	hasParent := make([]bool, len(nodes))
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(nodes) && c != i {
				nodes[i].AddChild(nodes[c])
				hasParent[c] = true
			}
		}
	}

	root := NewGroup(name)
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		for _, idx := range doc.Scenes[*doc.Scene].Nodes {
			if idx < len(nodes) {
				root.AddChild(nodes[idx])
			}
		}
	} else {
		for i, n := range nodes {
			if !hasParent[i] {
				root.AddChild(n)
			}
		}
	}
	return root, nil
}

func loadGLTFImage(doc *gltf.Document, dir string, source int) (*Texture, error) {
	img := doc.Images[source]
	imgName := img.Name
	if imgName == "" {
		imgName = fmt.Sprintf("gltf_img_%d", source)
	}
	switch {
	case img.BufferView != nil:
		raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, fmt.Errorf("bufferview: %w", err)
		}
		return decodeImageBytes(imgName, raw)
	case img.IsEmbeddedResource():
		raw, err := img.MarshalData()
		if err != nil {
			return nil, fmt.Errorf("embedded: %w", err)
		}
		return decodeImageBytes(imgName, raw)
	case img.URI != "":
		return LoadTexture(filepath.Join(dir, img.URI))
	}
	return nil, fmt.Errorf("image %d has no data", source)
}

func loadGLTFPrimitive(doc *gltf.Document, meshName string, primIdx int, prim *gltf.Primitive) (*Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	verts := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: mgl32.Vec3{p[0], p[1], p[2]},
			Normal:   mgl32.Vec3{0, 1, 0},
		}
		if i < len(normals) {
			v.Normal = mgl32.Vec3(normals[i])
		}
		if i < len(uvs) {
			v.UV = mgl32.Vec2(uvs[i])
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return CreateMeshFromData(name, verts, indices), nil
}
