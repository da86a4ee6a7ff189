// Package engine implements the Evaluator Pipeline and Decision Driver: it
// parses a command string, walks every invocation the parser found through
// wrapper unwrapping, the dangerous-env check, Git Policy, the SQL
// Classifier, the Named Inspectors and the Safe-Command Registry in that
// order, folds every redirect through the Path Policy, and combines all of
// it into a single worst-of decision. Grounded on the teacher's
// EvaluateRules/evaluateCommand/evaluateSegment and its worstVerdict
// folding pattern in rules.go, restructured from one flat function into a
// small pipeline of named stages so each stage lives in its own package.
package engine

import (
	"path/filepath"

	"github.com/anthonysapien/hall-pass/internal/evalctx"
	"github.com/anthonysapien/hall-pass/internal/gitpolicy"
	"github.com/anthonysapien/hall-pass/internal/inspect"
	"github.com/anthonysapien/hall-pass/internal/pathpolicy"
	"github.com/anthonysapien/hall-pass/internal/registry"
	"github.com/anthonysapien/hall-pass/internal/shellparse"
	"github.com/anthonysapien/hall-pass/internal/sqlclassify"
	"github.com/anthonysapien/hall-pass/internal/wrapper"
)

// Config bundles every stage's static configuration. It is built once at
// startup (from defaults plus whatever the loaded config file appended)
// and reused for every evaluation.
type Config struct {
	Registry *registry.Registry
	Paths    *pathpolicy.Policy
}

// NewConfig builds a Config pre-seeded with every package's built-in
// defaults.
func NewConfig() *Config {
	return &Config{
		Registry: registry.New(),
		Paths:    pathpolicy.New(),
	}
}

// EvaluateCommand is the entry point for a Bash tool call: parse command,
// evaluate every invocation and every write/read redirect it contains, and
// fold the results into one Decision.
func EvaluateCommand(cfg *Config, workDir, command string) evalctx.Decision {
	parsed, err := shellparse.Parse(command)
	if err != nil {
		return evalctx.Ask("command could not be parsed: " + err.Error())
	}

	if len(parsed.Invocations) == 0 {
		// Pure assignment prefix with no command, e.g. `FOO=bar`.
		return evalctx.Allow("command contains no executable invocation")
	}

	var ctx evalctx.Context
	ctx.WorkDir = workDir
	ctx.Evaluate = func(inv shellparse.CommandInvocation) evalctx.Decision {
		return evaluateInvocation(ctx, cfg, inv)
	}

	worst := evalctx.Allow("every invocation and redirect was permitted")
	for _, inv := range parsed.Invocations {
		worst = evalctx.Worse(worst, ctx.Evaluate(inv))
	}
	for _, r := range parsed.Redirects {
		op := pathpolicy.OpRead
		if r.Op == shellparse.OpWrite {
			op = pathpolicy.OpWrite
		}
		worst = evalctx.Worse(worst, cfg.Paths.Evaluate(r.Path, op))
	}

	return worst
}

// EvaluateFileOp is the entry point for Write, Edit and NotebookEdit tool
// calls: these never go through the shell parser at all, only the Path
// Policy against the target file.
func EvaluateFileOp(cfg *Config, path string) evalctx.Decision {
	return cfg.Paths.Evaluate(path, pathpolicy.OpWrite)
}

// evaluateInvocation runs the fixed stage order for a single invocation:
// unwrap wrappers, check dangerous env assigns, check the Always-Ask
// registry, hand off to Git Policy or the SQL Classifier for their
// programs, dispatch to a Named Inspector, fall back to the Safe-Command
// Registry, and otherwise Pass.
func evaluateInvocation(ctx evalctx.Context, cfg *Config, inv shellparse.CommandInvocation) evalctx.Decision {
	if wrapper.IsWrapper(inv.Name) {
		inner, ok := wrapper.Unwrap(inv.Name, inv.Args)
		if !ok {
			return evalctx.Ask(inv.Name + " has no inner command for the evaluator to inspect")
		}
		name := filepath.Base(inner[0])
		sub := shellparse.CommandInvocation{Name: name, Args: append([]string{name}, inner[1:]...)}
		return ctx.Evaluate(sub)
	}

	for _, a := range inv.Assigns {
		if cfg.Registry.IsDangerousEnvVar(a.Name) {
			return evalctx.Ask(a.Name + " can change how the dynamic linker or interpreter runs the command")
		}
	}

	if cfg.Registry.IsAlwaysAsk(inv.Name) {
		return evalctx.Ask(inv.Name + " is always-ask by policy")
	}

	if inv.Name == "git" {
		return gitpolicy.Evaluate(inv.Args)
	}

	if cfg.Registry.IsDBClient(inv.Name) {
		return evaluateDBClient(inv)
	}

	if insp, ok := inspect.Lookup(inv.Name); ok {
		return insp(ctx, inv)
	}

	if cfg.Registry.IsAlwaysSafe(inv.Name) {
		return evalctx.Allow(inv.Name + " is always-safe by policy")
	}

	return evalctx.Pass()
}

func evaluateDBClient(inv shellparse.CommandInvocation) evalctx.Decision {
	stmt, ok := sqlclassify.ExtractStatement(inv.Name, inv.Args[1:])
	if !ok {
		return evalctx.Ask(inv.Name + " has no inline SQL statement to classify")
	}
	if sqlclassify.IsReadOnly(stmt) {
		return evalctx.Allow("SQL statement is read-only")
	}
	return evalctx.Ask("SQL statement is not read-only")
}
