// Package evalctx holds the small set of types shared between the engine
// and every inspector it dispatches to: the Decision lattice and the
// recursive evaluation Context. It exists as its own package (rather than
// living in internal/engine) purely to break the import cycle that would
// otherwise result from inspectors needing to recurse back into the
// evaluator for things like `find -exec` or `xargs` sub-invocations.
package evalctx

import "github.com/anthonysapien/hall-pass/internal/shellparse"

// Kind is the verdict a Decision carries.
type Kind int

const (
	// KindAllow lets the command through with no further checks.
	KindAllow Kind = iota
	// KindPass means "no opinion": the engine returns it for an invocation
	// no stage recognizes, and the hook then writes the passthrough
	// envelope so the host applies its own default behavior.
	KindPass
	// KindAsk requires explicit human confirmation before the command runs.
	KindAsk
)

// Decision is the result of any single evaluation step. Guidance is only
// ever set on an Ask decision that also wants to suggest a better command.
type Decision struct {
	Kind     Kind
	Reason   string
	Guidance string
}

// Rank orders decisions so the more dominant of two can be picked cheaply:
// Allow < Pass < Ask < Ask-with-guidance.
func (d Decision) Rank() int {
	switch d.Kind {
	case KindAllow:
		return 0
	case KindPass:
		return 1
	case KindAsk:
		if d.Guidance != "" {
			return 3
		}
		return 2
	}
	return 2
}

// Allow builds a KindAllow decision.
func Allow(reason string) Decision { return Decision{Kind: KindAllow, Reason: reason} }

// Pass builds a KindPass decision — no opinion, defer to the host's default.
func Pass() Decision { return Decision{Kind: KindPass} }

// Ask builds a plain KindAsk decision.
func Ask(reason string) Decision { return Decision{Kind: KindAsk, Reason: reason} }

// AskWithGuidance builds a KindAsk decision carrying actionable feedback.
func AskWithGuidance(reason, guidance string) Decision {
	return Decision{Kind: KindAsk, Reason: reason, Guidance: guidance}
}

// Worse returns whichever of a, b ranks higher, keeping a on a tie so
// earlier-found reasons win ties over later ones.
func Worse(a, b Decision) Decision {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Context is threaded through every inspector call. Evaluate lets an
// inspector recurse into the full evaluation pipeline for a sub-invocation
// it has discovered (an `-exec` argument, an `xargs` command template, the
// real command behind a wrapper) without inspect importing engine.
type Context struct {
	Evaluate func(inv shellparse.CommandInvocation) Decision
	WorkDir  string
}
