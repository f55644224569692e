// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"math"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/nebula/camera"
	"github.com/gogpu/nebula/layer"
	"github.com/gogpu/nebula/scene"
)

// Galaxy shape. The disc lies in the XY plane with +Z up.
const (
	galaxyArms      = 4
	galaxyRadius    = 420
	galaxyThickness = 6
	armTwist        = 3.2
	armSpread       = 0.35
	coreRadius      = 60

	starSize = 1.2
	hazeSize = 36

	// brightFraction of the stars also glow in the bloom channel.
	brightFraction = 0.12

	// Beyond scaleNear the star sprites grow with camera distance so the
	// disc stays readable from afar, up to maxStarScale.
	scaleNear    = 600
	maxStarScale = 4
)

// Galaxy is a procedural spiral galaxy. It implements scene.Provider.
type Galaxy struct {
	Stars  *scene.Points
	Bright *scene.Points
	Haze   *scene.Points
	Core   *scene.Label
}

// NewGalaxy generates n stars from seed. The same seed always yields the
// same galaxy.
func NewGalaxy(n int, seed int64) *Galaxy {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x6e6562756c61))

	nBright := int(float64(n) * brightFraction)
	nHaze := max(n/40, 1)

	g := &Galaxy{
		Stars:  scene.NewPoints(make([]mgl32.Vec3, 0, n-nBright), make([]scene.Color, 0, n-nBright), starSize),
		Bright: scene.NewPoints(make([]mgl32.Vec3, 0, nBright), make([]scene.Color, 0, nBright), starSize*1.6),
		Haze:   scene.NewPoints(make([]mgl32.Vec3, 0, nHaze), make([]scene.Color, 0, nHaze), hazeSize),
		Core:   scene.NewLabel(mgl32.Vec3{0, 0, galaxyThickness * 4}, "core"),
	}

	for i := range n {
		pos := starPosition(rng)
		c := starColor(rng, pos)
		if i < nBright {
			g.Bright.Positions = append(g.Bright.Positions, pos)
			g.Bright.Colors = append(g.Bright.Colors, c.Scale(2.5))
			continue
		}
		g.Stars.Positions = append(g.Stars.Positions, pos)
		g.Stars.Colors = append(g.Stars.Colors, c)
	}
	for range nHaze {
		pos := starPosition(rng)
		c := scene.Hex(0x9fb7ff).Lerp(scene.Hex(0xff9fd0), rng.Float32())
		c.A = 0.04
		g.Haze.Positions = append(g.Haze.Positions, pos)
		g.Haze.Colors = append(g.Haze.Colors, c)
	}

	g.Stars.Blending = scene.AdditiveBlending
	g.Bright.Blending = scene.AdditiveBlending
	g.Haze.Blending = scene.AdditiveBlending
	g.Core.Color = scene.Hex(0xffd27f)

	layer.Assign(g.Stars, layer.Base)
	layer.Assign(g.Bright, layer.Base, layer.Bloom)
	layer.Assign(g.Haze, layer.Base)
	layer.Assign(g.Core, layer.Overlay)
	return g
}

// Objects returns the galaxy's scene objects in draw order.
func (g *Galaxy) Objects() []scene.Object {
	return []scene.Object{g.Haze, g.Stars, g.Bright, g.Core}
}

// UpdateScale grows the star sprites with the distance from the galactic
// center and hides the haze once the camera is inside the disc.
func (g *Galaxy) UpdateScale(cam *camera.Camera) {
	d := float32(cam.Position.Len())
	s := math32.Max(1, math32.Min(d/scaleNear, maxStarScale))
	g.Stars.Scale = s
	g.Bright.Scale = s
	g.Haze.Visible = d > coreRadius
}

// starPosition samples a point on one of the spiral arms, or in the central
// bulge.
func starPosition(rng *rand.Rand) mgl32.Vec3 {
	// r is biased toward the center
	r := galaxyRadius * math.Pow(rng.Float64(), 1.6)
	if r < coreRadius {
		// bulge: a flattened gaussian ball
		return mgl32.Vec3{
			float32(rng.NormFloat64() * coreRadius / 2),
			float32(rng.NormFloat64() * coreRadius / 2),
			float32(rng.NormFloat64() * galaxyThickness * 2),
		}
	}
	arm := float64(rng.IntN(galaxyArms))
	theta := arm*2*math.Pi/galaxyArms + armTwist*r/galaxyRadius*math.Pi
	theta += rng.NormFloat64() * armSpread * (1 - r/galaxyRadius/2)
	z := rng.NormFloat64() * galaxyThickness * (1 - r/galaxyRadius/2)
	return mgl32.Vec3{
		float32(r * math.Cos(theta)),
		float32(r * math.Sin(theta)),
		float32(z),
	}
}

// starColor tints stars yellow near the core and blue on the rim.
func starColor(rng *rand.Rand, pos mgl32.Vec3) scene.Color {
	t := math32.Min(pos.Vec2().Len()/galaxyRadius, 1)
	c := scene.Hex(0xffe2b0).Lerp(scene.Hex(0xaac4ff), t)
	return c.Scale(0.6 + 0.4*rng.Float32())
}
