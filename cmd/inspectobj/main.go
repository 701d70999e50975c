package main

import (
	"fmt"
	"math"
	"os"

	"obj-cache-renderer/internal/obj"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: inspectobj file.obj")
		os.Exit(1)
	}
	path := os.Args[1]

	model, err := obj.Parse(path, obj.Options{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Vertices: %d, Triangles: %d\n", len(model.Vertices), len(model.Indices)/3)

	minX, minY, minZ := math.Inf(1), math.Inf(1), math.Inf(1)
	maxX, maxY, maxZ := math.Inf(-1), math.Inf(-1), math.Inf(-1)
	for _, v := range model.Vertices {
		x, y, z := float64(v.Position[0]), float64(v.Position[1]), float64(v.Position[2])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		minZ, maxZ = math.Min(minZ, z), math.Max(maxZ, z)
	}
	fmt.Printf("BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n", minX, maxX, minY, maxY, minZ, maxZ)
	fmt.Printf("Size: %.2f x %.2f x %.2f\n", maxX-minX, maxY-minY, maxZ-minZ)

	mat := model.Material
	fmt.Printf("Material: %q illum=%d Ns=%.1f Ni=%.2f d=%.2f\n",
		mat.Name, mat.Illum, mat.SpecularExponent, mat.OpticalDensity, mat.Dissolve)
	fmt.Printf("  Ka %.2f %.2f %.2f  Kd %.2f %.2f %.2f  Ks %.2f %.2f %.2f\n",
		mat.Ambient[0], mat.Ambient[1], mat.Ambient[2],
		mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2],
		mat.Specular[0], mat.Specular[1], mat.Specular[2])
	printMap := func(label, path string, loaded bool) {
		if path == "" {
			return
		}
		state := "missing"
		if loaded {
			state = "loaded"
		}
		fmt.Printf("  %s %s (%s)\n", label, path, state)
	}
	printMap("map_Kd", mat.MapKdPath, mat.MapKd != nil)
	printMap("map_Bump", mat.MapBumpPath, mat.MapBump != nil)
	printMap("map_Ks", mat.MapKsPath, mat.MapKs != nil)

	for _, w := range model.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}
