package manifest

// Manifest is the top-level output of a build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers      int `json:"workers"`
	ComponentsX  int `json:"components_x"`
	ComponentsY  int `json:"components_y"`
	MaxSourceDim int `json:"max_source_dim"` // encode-time downscale box, 0 = none
}

// Asset describes a single source image, its blurhash, and any rendered
// placeholders.
type Asset struct {
	Original     OriginalInfo  `json:"original"`
	BlurHash     string        `json:"blurhash"`
	ComponentsX  int           `json:"components_x"`
	ComponentsY  int           `json:"components_y"`
	AspectRatio  float64       `json:"aspect_ratio"`        // width / height
	AvgColor     *[3]uint8     `json:"avg_color,omitempty"` // [R,G,B] from the DC term
	SourceHash   string        `json:"source_hash"`         // xxhash64 of the source file
	Placeholders []Placeholder `json:"placeholders,omitempty"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Placeholder is one decoded rendering of an asset's blurhash.
type Placeholder struct {
	Format string `json:"format"` // "png", "jpeg"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes       int64 `json:"total_input_bytes"`
	TotalPlaceholderBytes int64 `json:"total_placeholder_bytes"`
	TotalHashBytes        int   `json:"total_hash_bytes"` // sum of blurhash string lengths
	TotalAssets           int   `json:"total_assets"`
	TotalPlaceholders     int   `json:"total_placeholders"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the default manifest name inside an output directory.
const FileName = "blurhash.manifest.json"
