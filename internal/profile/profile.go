package profile

// Profile defines blurhash parameters for a class of assets.
type Profile struct {
	Name         string
	ComponentsX  int     // horizontal DCT components, 1-9
	ComponentsY  int     // vertical DCT components, 1-9
	MaxSourceDim int     // source is downscaled to fit this box before encoding (0 = never)
	Widths       []int   // placeholder render widths
	Punch        float64 // decode-time contrast for placeholders
	Format       string  // placeholder output format
	Retina       bool    // also render 2x placeholders
}

// Built-in profiles.
var profiles = map[string]Profile{
	"balanced": {
		Name:         "balanced",
		ComponentsX:  4,
		ComponentsY:  3,
		MaxSourceDim: 64,
		Widths:       []int{32},
		Punch:        1,
		Format:       "png",
		Retina:       true,
	},
	"detailed": {
		Name:         "detailed",
		ComponentsX:  6,
		ComponentsY:  5,
		MaxSourceDim: 128,
		Widths:       []int{32, 64},
		Punch:        1,
		Format:       "png",
		Retina:       true,
	},
	"minimal": {
		Name:         "minimal",
		ComponentsX:  3,
		ComponentsY:  3,
		MaxSourceDim: 32,
		Widths:       []int{16},
		Punch:        1,
		Format:       "jpeg",
		Retina:       false,
	},
}

// DefaultName is used when no profile is requested.
const DefaultName = "balanced"

// Get returns a profile by name. Falls back to balanced if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profiles.
func Names() []string {
	return []string{"balanced", "detailed", "minimal"}
}

// EffectiveWidths returns placeholder widths including retina variants.
// Placeholders are never wider than the original.
func (p Profile) EffectiveWidths(originalWidth int) []int {
	seen := map[int]bool{}
	var result []int

	for _, w := range p.Widths {
		if w <= 0 || w > originalWidth {
			continue
		}
		if !seen[w] {
			seen[w] = true
			result = append(result, w)
		}
		if p.Retina {
			w2 := w * 2
			if w2 <= originalWidth && !seen[w2] {
				seen[w2] = true
				result = append(result, w2)
			}
		}
	}

	// Tiny originals still get one placeholder at native width.
	if len(result) == 0 && originalWidth > 0 && len(p.Widths) > 0 {
		result = append(result, originalWidth)
	}

	return result
}
