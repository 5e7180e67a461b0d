// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture loads 2D texture images for the render device.
//
// Two sources are supported: raw .tex files holding tightly packed
// 32-bit RGBA texels with no header, and any image format registered
// with the standard image package (PNG is registered by this package).
package texture

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"path"

	// Registers the PNG decoder for Decode.
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// RawSize is the edge length of a raw .tex image. Raw files carry no
// header, so dimensions are fixed by convention.
const RawSize = 256

// ErrShortRead is returned when a raw texture file holds fewer texels
// than its dimensions require.
var ErrShortRead = errors.New("texture: short read")

// WrapMode selects how sampling outside [0,1] texture coordinates
// behaves.
type WrapMode int

// Wrap modes.
const (
	Repeat WrapMode = iota
	MirroredRepeat
	ClampToEdge
)

// String returns the wrap mode name.
func (w WrapMode) String() string {
	switch w {
	case Repeat:
		return "repeat"
	case MirroredRepeat:
		return "mirrored-repeat"
	case ClampToEdge:
		return "clamp-to-edge"
	default:
		return "unknown"
	}
}

// Texture is a decoded image ready for GPU upload: tightly packed RGBA8
// rows, no padding.
type Texture struct {
	Width  int
	Height int
	Pixels []byte
	Wrap   WrapMode
}

// LoadRaw reads width*height raw RGBA texels from r.
func LoadRaw(r io.Reader, width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture: invalid dimensions %dx%d", width, height)
	}
	pixels := make([]byte, width*height*4)
	if _, err := io.ReadFull(r, pixels); err != nil {
		return nil, fmt.Errorf("%w: %dx%d RGBA: %v", ErrShortRead, width, height, err)
	}
	return &Texture{Width: width, Height: height, Pixels: pixels}, nil
}

// Decode reads any registered image format from r and converts it to
// tightly packed RGBA.
func Decode(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}
	return fromImage(img), nil
}

// Load opens p in fsys and decodes it. Files with a .tex extension are
// read as raw RawSize x RawSize RGBA; everything else goes through the
// image decoders.
func Load(fsys fs.FS, p string) (*Texture, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", p, err)
	}
	defer f.Close()

	if path.Ext(p) == ".tex" {
		t, err := LoadRaw(f, RawSize, RawSize)
		if err != nil {
			return nil, fmt.Errorf("%w (in %s)", err, p)
		}
		return t, nil
	}
	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, p)
	}
	return t, nil
}

// Scaled returns the texture resampled to the given dimensions with
// bilinear filtering. The receiver is not modified.
func (t *Texture) Scaled(width, height int) *Texture {
	if width == t.Width && height == t.Height {
		out := *t
		out.Pixels = append([]byte(nil), t.Pixels...)
		return &out
	}
	src := t.toRGBA()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return &Texture{Width: width, Height: height, Pixels: dst.Pix, Wrap: t.Wrap}
}

func (t *Texture) toRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	copy(img.Pix, t.Pixels)
	return img
}

func fromImage(img image.Image) *Texture {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return &Texture{Width: b.Dx(), Height: b.Dy(), Pixels: dst.Pix}
}
