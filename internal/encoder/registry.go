package encoder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry maps format names and file extensions to encoders.
type Registry struct {
	encoders map[string]Encoder
	byExt    map[string]Encoder
}

// NewRegistry creates a registry with every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
		byExt:    make(map[string]Encoder),
	}
	for _, enc := range []Encoder{&PNGEncoder{}, &JPEGEncoder{}} {
		r.encoders[enc.Format()] = enc
		r.byExt["."+enc.Extension()] = enc
	}
	// Common aliases.
	r.encoders["jpg"] = r.encoders["jpeg"]
	r.byExt[".jpeg"] = r.encoders["jpeg"]
	return r
}

// Get returns an encoder for the given format, or nil if unknown.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(format)]
}

// ForPath picks an encoder from the file extension of path.
func (r *Registry) ForPath(path string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if enc, ok := r.byExt[ext]; ok {
		return enc, nil
	}
	return nil, fmt.Errorf("unsupported output extension %q (want %s)", ext, strings.Join(r.Available(), ", "))
}

// Available returns all format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"png", "jpeg"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
