package reader

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/achilleasa/go-restir/asset"
	"github.com/achilleasa/go-restir/asset/texture"
	"github.com/achilleasa/go-restir/log"
	"github.com/achilleasa/go-restir/scene"
	"github.com/achilleasa/go-restir/types"
)

type cameraDef struct {
	Position types.Vec3  `json:"position"`
	LookAt   types.Vec3  `json:"lookAt"`
	Up       *types.Vec3 `json:"up,omitempty"`
	FOV      float32     `json:"fov"`
}

type materialDef struct {
	Albedo   types.Vec3 `json:"albedo"`
	Emissive types.Vec3 `json:"emissive,omitempty"`
}

type primitiveDef struct {
	Type     string     `json:"type"`
	Origin   types.Vec3 `json:"origin"`
	Normal   types.Vec3 `json:"normal,omitempty"`
	Radius   float32    `json:"radius,omitempty"`
	Edge1    types.Vec3 `json:"edge1,omitempty"`
	Edge2    types.Vec3 `json:"edge2,omitempty"`
	Material string     `json:"material"`
}

type lightDef struct {
	Type      string     `json:"type"`
	Position  types.Vec3 `json:"position"`
	Edge1     types.Vec3 `json:"edge1,omitempty"`
	Edge2     types.Vec3 `json:"edge2,omitempty"`
	Intensity types.Vec3 `json:"intensity"`

	// Quad lights only: also add an emissive quad primitive.
	Visible bool `json:"visible,omitempty"`
}

type environmentDef struct {
	Radiance types.Vec3 `json:"radiance"`

	// Lat-long image, resolved relative to the scene file.
	Map string `json:"map,omitempty"`
}

type sceneDef struct {
	Name        string                 `json:"name"`
	Camera      cameraDef              `json:"camera"`
	Materials   map[string]materialDef `json:"materials"`
	Primitives  []primitiveDef         `json:"primitives"`
	Lights      []lightDef             `json:"lights"`
	Environment *environmentDef        `json:"environment,omitempty"`
}

type jsonReader struct {
	logger log.Logger
}

func newJSONReader() *jsonReader {
	return &jsonReader{
		logger: log.New("json reader"),
	}
}

// Read scene definition from a JSON resource.
func (r *jsonReader) Read(res *asset.Resource) (*scene.Scene, error) {
	var def sceneDef
	if err := json.NewDecoder(res).Decode(&def); err != nil {
		return nil, fmt.Errorf("reader: could not parse %s: %s", res.Path(), err)
	}

	if def.Name == "" {
		def.Name = path.Base(res.Path())
	}
	sc := scene.NewScene(def.Name)

	cam := scene.NewCamera(def.Camera.FOV)
	if def.Camera.FOV <= 0 {
		cam.FOV = 45
	}
	cam.Position = def.Camera.Position
	cam.LookAt = def.Camera.LookAt
	if def.Camera.Up != nil {
		cam.Up = *def.Camera.Up
	}
	cam.SetupProjection(1)
	sc.SetCamera(cam)

	materials := make(map[string]*scene.Material, len(def.Materials))
	for name, m := range def.Materials {
		materials[name] = &scene.Material{Albedo: m.Albedo, Emissive: m.Emissive}
	}

	for idx, p := range def.Primitives {
		mat, ok := materials[p.Material]
		if !ok {
			return nil, fmt.Errorf("reader: primitive %d references unknown material %q", idx, p.Material)
		}

		var prim *scene.Primitive
		switch p.Type {
		case "plane":
			prim = scene.NewPlane(p.Origin, p.Normal, mat)
		case "sphere":
			prim = scene.NewSphere(p.Origin, p.Radius, mat)
		case "quad":
			prim = scene.NewQuad(p.Origin, p.Edge1, p.Edge2, mat)
		default:
			return nil, fmt.Errorf("reader: primitive %d has unsupported type %q", idx, p.Type)
		}
		if err := sc.AddPrimitive(prim); err != nil {
			return nil, err
		}
	}

	for idx, l := range def.Lights {
		var err error
		switch {
		case l.Type == "point":
			err = sc.AddLight(scene.NewPointLight(l.Position, l.Intensity))
		case l.Type == "quad" && l.Visible:
			err = sc.AddQuadLight(l.Position, l.Edge1, l.Edge2, l.Intensity)
		case l.Type == "quad":
			err = sc.AddLight(scene.NewQuadLight(l.Position, l.Edge1, l.Edge2, l.Intensity))
		default:
			err = fmt.Errorf("reader: light %d has unsupported type %q", idx, l.Type)
		}
		if err != nil {
			return nil, err
		}
	}

	if def.Environment != nil {
		env, err := r.readEnvironment(def.Environment, res)
		if err != nil {
			return nil, err
		}
		sc.SetEnvironment(env)
	}

	r.logger.Infof("loaded scene %q from %s (%d primitives, %d lights)", sc.Name, res.Path(), len(sc.Primitives), len(sc.Lights))
	return sc, nil
}

func (r *jsonReader) readEnvironment(def *environmentDef, relTo *asset.Resource) (*scene.Environment, error) {
	if def.Map == "" {
		return scene.NewConstantEnvironment(def.Radiance), nil
	}

	mapRes, err := asset.NewResource(def.Map, relTo)
	if err != nil {
		return nil, err
	}
	defer mapRes.Close()

	tex, err := texture.New(mapRes)
	if err != nil {
		return nil, err
	}

	scale := def.Radiance
	if scale.IsZero() {
		scale = types.XYZ(1, 1, 1)
	}
	r.logger.Debugf("loaded %dx%d environment map from %s", tex.Width, tex.Height, mapRes.Path())
	return scene.NewMapEnvironment(tex, scale), nil
}
