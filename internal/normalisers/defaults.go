package normalisers

import (
	"github.com/custodia-labs/onboard/internal/normalisers/dataurl"
	"github.com/custodia-labs/onboard/internal/normalisers/html"
	"github.com/custodia-labs/onboard/internal/normalisers/markdown"
	"github.com/custodia-labs/onboard/internal/normalisers/plaintext"
)

// RegisterDefaults registers all built-in normalisers with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(dataurl.New())
}

// NewDefaultRegistry returns a registry with the built-in normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
