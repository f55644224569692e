// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package nebula renders a 3D point-cloud scene through a layered
// compositing pipeline.
//
// Every object in the scene is tagged with a subset of three channels
// (see package layer). Once per displayed frame the Pipeline renders each
// channel into its own offscreen image, runs the Bloom channel through a
// glow filter, and merges the three images into the framebuffer it hands
// to the host surface:
//
//	input → reconcile viewport → Base → Bloom → Overlay → composite → present
//
// # Quick Start
//
//	sc := scene.New()
//	stars := scene.NewPoints(positions, colors, 2)
//	layer.Assign(stars, layer.Base, layer.Bloom)
//	sc.Add(stars)
//
//	cam := camera.New(60, 1, 0.1, 1000)
//	orbit, _ := camera.NewOrbit(mgl64.Vec3{}, camera.DefaultOrbitOptions())
//	rig := camera.NewRig(cam, orbit, 0)
//
//	p, err := nebula.New(surface.NewImageSurface(800, 600), sc, rig, nebula.DefaultParams())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	d := nebula.NewDriver(p)
//	ticker := time.NewTicker(time.Second / 60)
//	defer ticker.Stop()
//	d.Run(ctx, ticker.C)
//
// # Errors
//
// Construction validates the parameters and the initial viewport and fails
// with ErrInvalidParams or ErrInvalidViewport. After that nothing is fatal:
// a frame that fails returns an error from Pipeline.Frame, the Driver logs
// it and the next tick renders a fresh frame.
//
// # Logging
//
// nebula is silent by default. SetLogger enables structured logging for the
// root package and all sub-packages.
package nebula
