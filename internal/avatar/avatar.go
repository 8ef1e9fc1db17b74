// Package avatar generates deterministic avatar image URLs from a style
// identifier and a seed string, in the shape of the DiceBear HTTP API the
// original client used. The service never fetches the image; rendering
// and load failures are the client's concern.
package avatar

import (
	"fmt"
	"math/rand"
	"net/url"
	"sync"
	"time"
)

// DefaultBaseURL is the public generation endpoint.
const DefaultBaseURL = "https://api.dicebear.com/7.x"

// Styles is the supported style catalogue.
var Styles = []string{
	"adventurer",
	"avataaars",
	"big-ears",
	"big-smile",
	"bottts",
	"croodles",
	"fun-emoji",
	"identicon",
	"initials",
	"lorelei",
	"micah",
	"miniavs",
	"open-peeps",
	"personas",
	"pixel-art",
	"shapes",
}

// ValidStyle reports whether style is in the catalogue.
func ValidStyle(style string) bool {
	for _, s := range Styles {
		if s == style {
			return true
		}
	}
	return false
}

// Generator builds avatar URLs. The zero value uses DefaultBaseURL and a
// time-seeded random source on first use.
type Generator struct {
	BaseURL string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a Generator with a deterministic random source,
// useful for tests and reproducible dev fixtures.
func NewGenerator(baseURL string, seed int64) *Generator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Generator{
		BaseURL: baseURL,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// URL returns the deterministic image URL for a style and seed. The same
// pair always yields the same URL.
func (g *Generator) URL(style, seed string) string {
	base := g.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/%s/svg?seed=%s&size=150", base, style, url.QueryEscape(seed))
}

// Random picks a random style and seed and returns them with the
// resulting URL.
func (g *Generator) Random() (style, seed, rawURL string) {
	g.mu.Lock()
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	style = Styles[g.rng.Intn(len(Styles))]
	seed = fmt.Sprintf("random%06x", g.rng.Intn(1<<24))
	g.mu.Unlock()
	return style, seed, g.URL(style, seed)
}
