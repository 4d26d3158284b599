// Package scenario maps abstract game types to concrete business framings.
// Agents never see canonical move names or the underlying game structure;
// they see a narrative and option text, and the option-to-move mapping
// translates their answers back.
package scenario

import (
	"fmt"

	"github.com/mcpseud/coop-evolution-LLMs/internal/entropy"
	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
)

// Scenario is one narrative framing of a game type.
type Scenario struct {
	GameType    game.Type
	Name        string
	Description string
	Options     []string
	MoveMapping map[string]game.Move
}

// Provider hands out scenarios for game types, choosing among the framings
// for a type via the injected entropy source.
type Provider struct {
	src     *entropy.Source
	catalog map[game.Type][]Scenario
}

// NewProvider creates a Provider backed by the built-in catalog.
func NewProvider(src *entropy.Source) *Provider {
	return &Provider{src: src, catalog: catalog}
}

// Pick returns a random scenario for the given game type.
func (p *Provider) Pick(t game.Type) (Scenario, error) {
	scenarios, ok := p.catalog[t]
	if !ok || len(scenarios) == 0 {
		return Scenario{}, fmt.Errorf("no scenarios for game type %q", t)
	}
	return scenarios[p.src.Intn(len(scenarios))], nil
}

// ForType returns all scenarios registered for a game type.
func (p *Provider) ForType(t game.Type) []Scenario {
	scenarios := p.catalog[t]
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}
