// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/nebula/camera"
	"github.com/gogpu/nebula/scene"
)

// maxPointSize caps sprite diameters in pixels, like the point size range
// of a GPU.
const maxPointSize = 1024

// labelOffset shifts label text right of its anchor, in pixels.
const labelOffset = 4

// RasterStats counts what one channel render drew.
type RasterStats struct {
	Points int
	Culled int
	Lines  int
	Labels int
}

// rasterizer implements scene.Canvas over a FloatTarget and depth buffer.
type rasterizer struct {
	dst   *FloatTarget
	depth []float32
	proj  camera.Projector
	fog   *scene.FogExp2
	half  float32
	face  font.Face
	stats RasterStats
}

var _ scene.Canvas = (*rasterizer)(nil)

func vec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Point implements scene.Canvas.
func (r *rasterizer) Point(s scene.Sprite) {
	x, y, w, ok := r.proj.Project(vec64(s.Position))
	if !ok {
		r.stats.Culled++
		return
	}
	depth := float32(w)
	size := s.Size
	if s.Attenuate {
		size *= r.half / depth
	}
	if !(size > 0) {
		return
	}
	size = min(size, maxPointSize)

	c := s.Color
	if s.Fog {
		c = r.fog.Apply(c, depth)
	}

	fx, fy := float32(x), float32(y)
	rad := size / 2
	if size < 1 {
		// sub-pixel sprites deposit energy in proportion to their area
		px, py := int(math32.Floor(fx)), int(math32.Floor(fy))
		if px < 0 || py < 0 || px >= r.dst.width || py >= r.dst.height {
			r.stats.Culled++
			return
		}
		r.plot(px, py, depth, c, math32.Pi*rad*rad, s.Blending)
		r.stats.Points++
		return
	}

	x0 := max(int(math32.Floor(fx-rad)), 0)
	y0 := max(int(math32.Floor(fy-rad)), 0)
	x1 := min(int(math32.Ceil(fx+rad)), r.dst.width)
	y1 := min(int(math32.Ceil(fy+rad)), r.dst.height)
	if x0 >= x1 || y0 >= y1 {
		r.stats.Culled++
		return
	}
	for py := y0; py < y1; py++ {
		dy := float32(py) + 0.5 - fy
		for px := x0; px < x1; px++ {
			dx := float32(px) + 0.5 - fx
			cov := rad + 0.5 - math32.Sqrt(dx*dx+dy*dy)
			if cov <= 0 {
				continue
			}
			r.plot(px, py, depth, c, min(cov, 1), s.Blending)
		}
	}
	r.stats.Points++
}

// plot blends one fragment. (x, y) must be inside the target.
func (r *rasterizer) plot(x, y int, depth float32, c scene.Color, cov float32, blend scene.Blending) {
	i := y*r.dst.width + x
	if depth > r.depth[i] {
		return
	}
	a := c.A * cov
	p := r.dst.pix[i*4 : i*4+4 : i*4+4]
	if blend == scene.AdditiveBlending {
		p[0] += c.R * a
		p[1] += c.G * a
		p[2] += c.B * a
		p[3] = min(p[3]+a, 1)
		return
	}
	k := 1 - a
	p[0] = c.R*a + p[0]*k
	p[1] = c.G*a + p[1]*k
	p[2] = c.B*a + p[2]*k
	p[3] = a + p[3]*k
	if a >= 0.5 {
		r.depth[i] = depth
	}
}

// Line implements scene.Canvas.
func (r *rasterizer) Line(a, b mgl32.Vec3, ca, cb scene.Color, fog bool) {
	va, vb := r.proj.ToView(vec64(a)), r.proj.ToView(vec64(b))

	// the camera looks down -Z; keep the part in front of the near plane
	near := -r.proj.Near()
	za, zb := va.Z(), vb.Z()
	if za > near && zb > near {
		r.stats.Culled++
		return
	}
	if za > near || zb > near {
		t := (near - za) / (zb - za)
		clipped := va.Add(vb.Sub(va).Mul(t))
		mid := ca.Lerp(cb, float32(t))
		if za > near {
			va, ca = clipped, mid
		} else {
			vb, cb = clipped, mid
		}
	}

	xa, ya, wa := r.proj.Screen(va)
	xb, yb, wb := r.proj.Screen(vb)
	t0, t1, ok := clipSegment(xa, ya, xb, yb, float64(r.dst.width), float64(r.dst.height))
	if !ok {
		r.stats.Culled++
		return
	}

	dx, dy := xb-xa, yb-ya
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) * (t1 - t0)))
	ia, ib := 1/wa, 1/wb
	for i := 0; i <= steps; i++ {
		t := t0
		if steps > 0 {
			t += (t1 - t0) * float64(i) / float64(steps)
		}
		px := int(math.Floor(xa + dx*t))
		py := int(math.Floor(ya + dy*t))
		if px < 0 || py < 0 || px >= r.dst.width || py >= r.dst.height {
			continue
		}
		// perspective-correct depth and color
		inv := ia + (ib-ia)*t
		depth := float32(1 / inv)
		c := ca.Lerp(cb, float32(t*ib/inv))
		if fog {
			c = r.fog.Apply(c, depth)
		}
		r.plot(px, py, depth, c, 1, scene.NormalBlending)
	}
	r.stats.Lines++
}

// clipSegment clips a screen segment to [0,w]x[0,h] (Liang-Barsky) and
// returns the parameter range that remains.
func clipSegment(x0, y0, x1, y1, w, h float64) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, w - x0},
		{-dy, y0},
		{dy, h - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// Text implements scene.Canvas. Labels are screen-aligned and ignore depth.
func (r *rasterizer) Text(anchor mgl32.Vec3, s string, c scene.Color) {
	x, y, _, ok := r.proj.Project(vec64(anchor))
	if !ok || r.face == nil {
		r.stats.Culled++
		return
	}
	dot := fixed.P(int(math.Round(x))+labelOffset, int(math.Round(y)))
	b, _ := font.BoundString(r.face, s)
	rect := image.Rect(
		b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil(),
	).Add(image.Pt(dot.X.Floor(), dot.Y.Floor())).Intersect(r.dst.Bounds())
	if rect.Empty() {
		r.stats.Culled++
		return
	}

	mask := image.NewAlpha(rect)
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: r.face, Dot: dot}
	d.DrawString(s)

	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			cov := mask.AlphaAt(px, py).A
			if cov == 0 {
				continue
			}
			a := c.A * float32(cov) / 255
			i := (py*r.dst.width + px) * 4
			p := r.dst.pix[i : i+4 : i+4]
			k := 1 - a
			p[0] = c.R*a + p[0]*k
			p[1] = c.G*a + p[1]*k
			p[2] = c.B*a + p[2]*k
			p[3] = a + p[3]*k
		}
	}
	r.stats.Labels++
}
