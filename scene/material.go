package scene

import "github.com/achilleasa/go-restir/types"

// Defines a Lambertian scene material.
type Material struct {
	// Diffuse reflectance (albedo) in linear RGB.
	Albedo types.Vec3

	// Emitted radiance. Only front faces of quads emit.
	Emissive types.Vec3
}

// Create a diffuse material.
func Diffuse(albedo types.Vec3) *Material {
	return &Material{Albedo: albedo}
}

// Create an emissive material with no diffuse response.
func Emitter(radiance types.Vec3) *Material {
	return &Material{Emissive: radiance}
}
