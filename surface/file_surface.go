// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// FileSurface writes presented frames to image files. The encoder is chosen
// from the path's extension: .png, .jpg/.jpeg or .bmp.
type FileSurface struct {
	*ImageSurface

	path    string
	every   int
	encoder imgio.Encoder
	written []string
}

// NewFileSurface creates a file surface from opts. Path is required.
func NewFileSurface(opts Options) (*FileSurface, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("%w: file surface needs a path", ErrInvalidOptions)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, opts.Width, opts.Height)
	}
	enc, err := encoderFor(opts.Path)
	if err != nil {
		return nil, err
	}
	img := NewImageSurface(opts.Width, opts.Height)
	img.SetPixelRatio(opts.ratio())
	return &FileSurface{
		ImageSurface: img,
		path:         opts.Path,
		every:        max(opts.Every, 1),
		encoder:      enc,
	}, nil
}

func encoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(95), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported image format %q", ErrInvalidOptions, filepath.Ext(path))
	}
}

// Present implements Surface. Every Nth frame, counting from the first, is
// written to disk.
func (s *FileSurface) Present(frame *image.RGBA) error {
	n := s.Frames()
	if err := s.ImageSurface.Present(frame); err != nil {
		return err
	}
	if n%s.every != 0 {
		return nil
	}
	name := s.path
	if strings.Contains(name, "%d") {
		name = fmt.Sprintf(name, n)
	}
	if err := imgio.Save(name, frame, s.encoder); err != nil {
		return fmt.Errorf("surface: write %s: %w", name, err)
	}
	s.written = append(s.written, name)
	return nil
}

// Written returns the files written so far, oldest first.
func (s *FileSurface) Written() []string {
	return append([]string(nil), s.written...)
}

var _ Surface = (*FileSurface)(nil)
