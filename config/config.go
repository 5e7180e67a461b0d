// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the demo's TOML configuration. Every field has a
// working default, so a missing file or an empty one yields a runnable
// setup; the file only overrides what it names.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/stage/scene"
	"github.com/gogpu/stage/texture"
)

// Config is the root of the TOML document.
type Config struct {
	Window     Window     `toml:"window"`
	Camera     Camera     `toml:"camera"`
	Population Population `toml:"population"`
	Assets     Assets     `toml:"assets"`
	Log        Log        `toml:"log"`
}

// Window sizes the framebuffer the projections are computed against.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Camera carries the view parameters.
type Camera struct {
	Height        float32 `toml:"height"`
	MinHeight     float32 `toml:"min_height"`
	MaxHeight     float32 `toml:"max_height"`
	Step          float32 `toml:"step"`
	MinimapHeight float32 `toml:"minimap_height"`
}

// Population carries the controller bounds and spawn ranges.
type Population struct {
	Min      int     `toml:"min"`
	Max      int     `toml:"max"`
	Extent   float32 `toml:"extent"`
	ScaleMin float32 `toml:"scale_min"`
	ScaleMax float32 `toml:"scale_max"`
	MaxAngle float32 `toml:"max_angle"`
	MaxSpeed float32 `toml:"max_speed"`
}

// Assets locates the scene and mesh files and names the camera object
// within the scene.
type Assets struct {
	Scene        string `toml:"scene"`
	MeshDir      string `toml:"mesh_dir"`
	Texture      string `toml:"texture"`
	TextureWrap  string `toml:"texture_wrap"`
	CameraObject string `toml:"camera_object"`
	OnDuplicate  string `toml:"on_duplicate"`
}

// Log selects the slog level.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "stage",
		},
		Camera: Camera{
			Height:        1000,
			MinHeight:     500,
			MaxHeight:     2000,
			Step:          5,
			MinimapHeight: 12000,
		},
		Population: Population{
			Min:      1,
			Max:      1024,
			Extent:   5000,
			ScaleMin: 50,
			ScaleMax: 400,
			MaxAngle: 360,
			MaxSpeed: 30,
		},
		Assets: Assets{
			Scene:        "scenes/scene.scn",
			MeshDir:      "meshes",
			TextureWrap:  "repeat",
			CameraObject: "Camera",
			OnDuplicate:  "reject",
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error;
// the defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is not positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.MinHeight <= 0 || c.Camera.MinHeight > c.Camera.MaxHeight {
		return fmt.Errorf("camera bounds [%g, %g] are inverted", c.Camera.MinHeight, c.Camera.MaxHeight)
	}
	if c.Camera.Height < c.Camera.MinHeight || c.Camera.Height > c.Camera.MaxHeight {
		return fmt.Errorf("camera height %g outside [%g, %g]", c.Camera.Height, c.Camera.MinHeight, c.Camera.MaxHeight)
	}
	if c.Camera.Step <= 0 {
		return fmt.Errorf("camera step %g is not positive", c.Camera.Step)
	}
	if c.Population.Min < 1 || c.Population.Min > c.Population.Max {
		return fmt.Errorf("population bounds [%d, %d] are invalid", c.Population.Min, c.Population.Max)
	}
	if c.Population.ScaleMin <= 0 || c.Population.ScaleMin > c.Population.ScaleMax {
		return fmt.Errorf("spawn scale range [%g, %g] is invalid", c.Population.ScaleMin, c.Population.ScaleMax)
	}
	if _, err := c.DuplicatePolicy(); err != nil {
		return err
	}
	if _, err := c.TextureWrapMode(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// DuplicatePolicy maps the configured duplicate-name handling onto the
// scene loader's policy.
func (c *Config) DuplicatePolicy() (scene.DuplicatePolicy, error) {
	switch c.Assets.OnDuplicate {
	case "", "reject":
		return scene.Reject, nil
	case "overwrite":
		return scene.Overwrite, nil
	case "rename":
		return scene.Rename, nil
	default:
		return scene.Reject, fmt.Errorf("unknown duplicate policy %q", c.Assets.OnDuplicate)
	}
}

// TextureWrapMode maps the configured wrap name onto the texture
// package's sampling modes.
func (c *Config) TextureWrapMode() (texture.WrapMode, error) {
	switch c.Assets.TextureWrap {
	case "", "repeat":
		return texture.Repeat, nil
	case "mirrored-repeat":
		return texture.MirroredRepeat, nil
	case "clamp-to-edge":
		return texture.ClampToEdge, nil
	default:
		return texture.Repeat, fmt.Errorf("unknown texture wrap %q", c.Assets.TextureWrap)
	}
}

// LogLevel parses the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return lvl, nil
}
