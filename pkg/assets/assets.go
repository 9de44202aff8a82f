// Package assets holds the textures bundled with the sandbox.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"sort"
)

//go:embed resource/*.png
var bundled embed.FS

const dir = "resource"

// Names lists the bundled textures
func Names() []string {
	entries, err := fs.ReadDir(bundled, dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Read returns the texture data for name. A file on disk takes precedence
// over a bundled texture with the same name.
func Read(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read texture %q: %w", name, err)
	}

	data, err := bundled.ReadFile(path.Join(dir, path.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("texture %q not found: %w", name, fs.ErrNotExist)
	}
	return data, nil
}

// Decode reads and decodes the texture name
func Decode(name string) (image.Image, error) {
	data, err := Read(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", name, err)
	}
	return img, nil
}

// Size returns the pixel dimensions of the texture name without decoding it
func Size(name string) (int, int, error) {
	data, err := Read(name)
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode texture %q: %w", name, err)
	}
	return cfg.Width, cfg.Height, nil
}
