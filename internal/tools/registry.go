package tools

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// Registry answers tool lookups against Genkit's live tool registry. The
// tool list is never cached: the agent's tool set and the /tools listing are
// both derived from what is actually registered.
//
// Registry holds no mutable state and is safe for concurrent use.
type Registry struct {
	g *genkit.Genkit
}

// NewRegistry creates a registry backed by the given Genkit instance.
func NewRegistry(g *genkit.Genkit) *Registry {
	return &Registry{g: g}
}

// All returns references to every registered tool, for use with
// ai.WithTools.
func (r *Registry) All() []ai.ToolRef {
	registered := genkit.ListTools(r.g)

	refs := make([]ai.ToolRef, len(registered))
	for i, t := range registered {
		refs[i] = t
	}
	return refs
}

// Descriptors returns name and description for every registered tool,
// for the listing endpoint.
func (r *Registry) Descriptors() []Descriptor {
	registered := genkit.ListTools(r.g)

	descs := make([]Descriptor, 0, len(registered))
	for _, t := range registered {
		def := t.Definition()
		if def == nil {
			continue
		}
		descs = append(descs, Descriptor{
			Name:        def.Name,
			Description: def.Description,
		})
	}
	return descs
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	return len(genkit.ListTools(r.g))
}
