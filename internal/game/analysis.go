package game

// Outcome is an ordered pair of canonical moves, one per player.
type Outcome struct {
	M1, M2 Move
}

// NashEquilibria returns the pure-strategy Nash equilibria of a game type,
// found by exhaustive enumeration over the 2x2 move space: an outcome is an
// equilibrium when neither player gains from a unilateral deviation.
func NashEquilibria(t Type) []Outcome {
	moves := validMoves[t]
	var equilibria []Outcome

	for _, m1 := range moves {
		for _, m2 := range moves {
			if isNash(t, m1, m2, moves) {
				equilibria = append(equilibria, Outcome{m1, m2})
			}
		}
	}
	return equilibria
}

func isNash(t Type, m1, m2 Move, moves []Move) bool {
	base := matrices[t][outcome{m1, m2}]

	for _, alt := range moves {
		if alt != m1 && matrices[t][outcome{alt, m2}].P1 > base.P1 {
			return false
		}
		if alt != m2 && matrices[t][outcome{m1, alt}].P2 > base.P2 {
			return false
		}
	}
	return true
}

// IsParetoOptimal reports whether an outcome is Pareto optimal: no other
// outcome makes both players strictly better off.
func IsParetoOptimal(t Type, m1, m2 Move) bool {
	moves := validMoves[t]
	base := matrices[t][outcome{m1, m2}]

	for _, a1 := range moves {
		for _, a2 := range moves {
			if a1 == m1 && a2 == m2 {
				continue
			}
			other := matrices[t][outcome{a1, a2}]
			if other.P1 > base.P1 && other.P2 > base.P2 {
				return false
			}
		}
	}
	return true
}

// ParetoOutcomes returns all Pareto-optimal outcomes of a game type.
func ParetoOutcomes(t Type) []Outcome {
	moves := validMoves[t]
	var optimal []Outcome

	for _, m1 := range moves {
		for _, m2 := range moves {
			if IsParetoOptimal(t, m1, m2) {
				optimal = append(optimal, Outcome{m1, m2})
			}
		}
	}
	return optimal
}

// SocialOptimum returns the outcome maximizing summed payoff across both
// players. Ties resolve to the first outcome in enumeration order, so the
// result is deterministic.
func SocialOptimum(t Type) Outcome {
	moves := validMoves[t]
	best := Outcome{}
	bestTotal := 0
	first := true

	for _, m1 := range moves {
		for _, m2 := range moves {
			p := matrices[t][outcome{m1, m2}]
			total := p.P1 + p.P2
			if first || total > bestTotal {
				best = Outcome{m1, m2}
				bestTotal = total
				first = false
			}
		}
	}
	return best
}
