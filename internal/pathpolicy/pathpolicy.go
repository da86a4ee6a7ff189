// Package pathpolicy implements the Path Policy: glob-based rules over
// three severity tiers that apply regardless of which program is touching
// a path. Grounded on the teacher's isSystemPath/isWithinDir and
// evaluateFileOp/evaluateFileCmd, generalized from a flat prefix/substring
// check into tiered, glob-driven rules using bmatcuk/doublestar/v4 for the
// recursive ** matching path/filepath.Match cannot express.
package pathpolicy

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/anthonysapien/hall-pass/internal/evalctx"
)

// Operation is the kind of access being made to a path.
type Operation int

const (
	// OpRead is any operation that only observes a path's contents.
	OpRead Operation = iota
	// OpWrite is any operation that creates or modifies a path's contents.
	OpWrite
	// OpDelete is any operation that removes a path.
	OpDelete
)

// Tier is the severity class a PathRule belongs to.
type Tier int

const (
	// TierProtected paths can never be written or deleted; reads are fine.
	TierProtected Tier = iota
	// TierReadOnly paths allow reads freely but ask on any write.
	TierReadOnly
	// TierNoDelete paths allow reads and writes but ask on delete.
	TierNoDelete
)

// PathRule is a single glob pattern paired with the tier it enforces.
type PathRule struct {
	Glob string
	Tier Tier
}

// Policy holds the active set of rules, built-in plus whatever config
// appended.
type Policy struct {
	rules []PathRule
}

// New builds a Policy pre-seeded with the built-in defaults.
func New() *Policy {
	return &Policy{rules: append([]PathRule(nil), defaultRules...)}
}

// Extend appends additional rules to the policy. User config extends,
// never replaces, the built-in defaults.
func (p *Policy) Extend(rules ...PathRule) {
	p.rules = append(p.rules, rules...)
}

// Evaluate resolves path to an absolute form and checks it against every
// rule, returning the worst decision across all matches. A path that
// matches no rule at all is Allow.
func (p *Policy) Evaluate(path string, op Operation) evalctx.Decision {
	resolved := resolve(path)

	decision := evalctx.Allow("path matches no policy rule")
	matched := false

	for _, rule := range p.rules {
		ok, err := doublestar.Match(rule.Glob, resolved)
		if err != nil || !ok {
			continue
		}
		matched = true
		d := decisionFor(rule.Tier, op, resolved)
		decision = evalctx.Worse(decision, d)
	}

	if !matched {
		return decision
	}
	return decision
}

func decisionFor(tier Tier, op Operation, path string) evalctx.Decision {
	switch tier {
	case TierProtected:
		if op == OpWrite || op == OpDelete {
			return evalctx.Ask(path + " is protected; writes and deletes require confirmation")
		}
	case TierReadOnly:
		if op == OpWrite || op == OpDelete {
			return evalctx.Ask(path + " is read-only by policy")
		}
	case TierNoDelete:
		if op == OpDelete {
			return evalctx.Ask(path + " may not be deleted by policy")
		}
	}
	return evalctx.Allow(path + " permitted under its matched tier")
}

// resolve expands a leading ~ and cleans the path to an absolute form so
// every glob match operates on the same representation regardless of how
// the caller wrote the path.
func resolve(path string) string {
	if path == "" {
		return path
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if !filepath.IsAbs(path) {
		if wd, err := os.Getwd(); err == nil {
			path = filepath.Join(wd, path)
		}
	}
	return filepath.Clean(path)
}

// defaultRules mirror the teacher's isSystemPath prefix/suffix checks,
// rewritten as globs and spread across the three tiers.
var defaultRules = []PathRule{
	{Glob: "/etc/**", Tier: TierProtected},
	{Glob: "/bin/**", Tier: TierProtected},
	{Glob: "/usr/bin/**", Tier: TierProtected},
	{Glob: "/usr/sbin/**", Tier: TierProtected},
	{Glob: "/sbin/**", Tier: TierProtected},
	{Glob: "/boot/**", Tier: TierProtected},
	{Glob: "/sys/**", Tier: TierProtected},
	{Glob: "/System/**", Tier: TierProtected},
	{Glob: "/Library/**", Tier: TierProtected},

	{Glob: "**/.ssh/**", Tier: TierProtected},
	{Glob: "**/.gnupg/**", Tier: TierProtected},
	{Glob: "**/.aws/**", Tier: TierProtected},
	{Glob: "**/.bashrc", Tier: TierProtected},
	{Glob: "**/.zshrc", Tier: TierProtected},
	{Glob: "**/.profile", Tier: TierProtected},
	{Glob: "**/.env", Tier: TierProtected},
	{Glob: "**/.env.*", Tier: TierProtected},
	{Glob: "**/credentials*", Tier: TierProtected},
	{Glob: "**/secret*", Tier: TierProtected},
	{Glob: "**/*.pem", Tier: TierProtected},
	{Glob: "**/*id_rsa*", Tier: TierProtected},

	{Glob: "**/go.sum", Tier: TierReadOnly},
	{Glob: "**/package-lock.json", Tier: TierReadOnly},
	{Glob: "**/yarn.lock", Tier: TierReadOnly},
	{Glob: "**/pnpm-lock.yaml", Tier: TierReadOnly},

	{Glob: "**/.git/**", Tier: TierNoDelete},
}
