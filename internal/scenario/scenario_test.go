package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpseud/coop-evolution-LLMs/internal/entropy"
	"github.com/mcpseud/coop-evolution-LLMs/internal/game"
)

func TestCatalogIntegrity(t *testing.T) {
	t.Parallel()

	p := NewProvider(entropy.NewSource(1))

	for _, gt := range game.Types() {
		scenarios := p.ForType(gt)
		require.Len(t, scenarios, 3, "game type %s", gt)

		for _, sc := range scenarios {
			assert.Equal(t, gt, sc.GameType, "%s", sc.Name)
			assert.NotEmpty(t, sc.Name)
			assert.NotEmpty(t, sc.Description)
			require.Len(t, sc.Options, 2, "%s", sc.Name)
			require.Len(t, sc.MoveMapping, 2, "%s", sc.Name)

			// Every option has a mapping entry, and every mapped move is a
			// canonical move of the scenario's game type.
			mapped := make(map[game.Move]bool)
			for _, opt := range sc.Options {
				mv, ok := sc.MoveMapping[opt]
				require.True(t, ok, "%s: option %q has no mapping", sc.Name, opt)
				assert.True(t, game.Valid(gt, mv), "%s: option %q maps to %q", sc.Name, opt, mv)
				mapped[mv] = true
			}
			// Both canonical moves must be reachable through option text.
			assert.Len(t, mapped, 2, "%s: options must cover both moves", sc.Name)
		}
	}
}

func TestPickReturnsMatchingType(t *testing.T) {
	t.Parallel()

	p := NewProvider(entropy.NewSource(3))
	for _, gt := range game.Types() {
		for i := 0; i < 20; i++ {
			sc, err := p.Pick(gt)
			require.NoError(t, err)
			assert.Equal(t, gt, sc.GameType)
		}
	}
}

func TestPickUnknownType(t *testing.T) {
	t.Parallel()

	p := NewProvider(entropy.NewSource(3))
	_, err := p.Pick(game.Type("tic_tac_toe"))
	assert.Error(t, err)
}

func TestPickCoversAllFramings(t *testing.T) {
	t.Parallel()

	p := NewProvider(entropy.NewSource(8))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		sc, err := p.Pick(game.PrisonersDilemma)
		require.NoError(t, err)
		seen[sc.Name] = true
	}
	assert.Len(t, seen, 3, "all framings should be reachable")
}

func TestOptionTextCanonicalizes(t *testing.T) {
	t.Parallel()

	// The round trip agents actually exercise: an answer containing the
	// option text must come back as the move the scenario mapped it to.
	p := NewProvider(entropy.NewSource(1))
	for _, gt := range game.Types() {
		for _, sc := range p.ForType(gt) {
			for _, opt := range sc.Options {
				got := game.Canonicalize(gt, "I choose: "+opt, sc.MoveMapping)
				assert.Equal(t, sc.MoveMapping[opt], got, "%s / %q", sc.Name, opt)
			}
		}
	}
}
