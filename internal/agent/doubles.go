package agent

import (
	"context"
	"sync"
)

// StaticOracle always returns the same text (or error). Used for dry runs
// and simple tests; a static "cooperate"-style answer canonicalizes to a
// sensible move in every game type.
type StaticOracle struct {
	Text string
	Err  error
}

func (o StaticOracle) Complete(context.Context, string, string, int) (string, error) {
	return o.Text, o.Err
}

// ScriptOracle replays canned responses in order, then repeats the last one.
// Keeps multi-round tests deterministic without mocking frameworks.
type ScriptOracle struct {
	mu        sync.Mutex
	Responses []string
	next      int
}

func (o *ScriptOracle) Complete(context.Context, string, string, int) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.Responses) == 0 {
		return "", nil
	}
	i := o.next
	if i >= len(o.Responses) {
		i = len(o.Responses) - 1
	}
	o.next++
	return o.Responses[i], nil
}
