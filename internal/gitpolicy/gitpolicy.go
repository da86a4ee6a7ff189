// Package gitpolicy implements git's subcommand, flag and branch policy.
// Grounded on the teacher's evaluateGit/evaluateGitPush, generalized from a
// single flat function into a small table-driven policy so new
// subcommands can be classified without touching control flow.
package gitpolicy

import (
	"strings"

	"github.com/anthonysapien/hall-pass/internal/evalctx"
)

// protectedBranches can't be pushed to (with or without force) or deleted
// without asking.
var protectedBranches = map[string]struct{}{
	"main": {}, "master": {}, "develop": {}, "trunk": {},
}

// dangerousConfigKeys are -c key=value overrides or `git config` targets
// that can redirect git's own execution (a hook path, the SSH command it
// shells out through).
var dangerousConfigKeys = map[string]struct{}{
	"core.sshcommand": {}, "core.hookspath": {}, "core.pager": {},
	"core.editor": {}, "protocol.ext.allow": {}, "http.proxy": {},
	"credential.helper": {}, "core.fsmonitor": {}, "diff.external": {},
}

// dangerousConfigPrefixes and dangerousConfigFilterSuffixes cover the
// wildcard key families (alias.*, pager.*, filter.*.clean,
// filter.*.smudge) that can't be enumerated as literal keys: any alias or
// pager runs an arbitrary command, and a filter driver's clean/smudge
// command runs on every checkout or commit.
var dangerousConfigPrefixes = []string{"alias.", "pager."}
var dangerousConfigFilterSuffixes = []string{".clean", ".smudge"}

// isDangerousConfigKey reports whether key (a config key as it would
// appear in `-c key=value` or as a positional `git config` argument) names
// or is prefixed by a security-sensitive config setting.
func isDangerousConfigKey(key string) bool {
	key = strings.ToLower(key)
	if _, ok := dangerousConfigKeys[key]; ok {
		return true
	}
	for _, p := range dangerousConfigPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	if strings.HasPrefix(key, "filter.") {
		for _, s := range dangerousConfigFilterSuffixes {
			if strings.HasSuffix(key, s) {
				return true
			}
		}
	}
	return false
}

// alwaysSafe subcommands never mutate history or remote state in a way
// that needs confirmation. config is handled separately by evaluateConfig,
// since whether it's safe depends on which key it touches.
var alwaysSafe = map[string]struct{}{
	"status": {}, "log": {}, "diff": {}, "show": {}, "blame": {}, "grep": {},
	"fetch": {}, "remote": {}, "describe": {}, "tag": {},
	"stash": {}, "add": {}, "commit": {}, "pull": {}, "rev-parse": {},
	"cat-file": {}, "ls-files": {}, "shortlog": {}, "reflog": {},
}

// alwaysDestructive subcommands rewrite or discard history regardless of
// flags and always require confirmation.
var alwaysDestructive = map[string]struct{}{
	"filter-branch": {}, "filter-repo": {},
}

// ExtendProtectedBranches appends additional branch names to the protected
// set. User config extends, never replaces, the built-in defaults.
func ExtendProtectedBranches(names ...string) {
	for _, n := range names {
		protectedBranches[n] = struct{}{}
	}
}

// Evaluate classifies a git invocation. args is the full argv including
// "git" itself (args[0]).
func Evaluate(args []string) evalctx.Decision {
	rest := args[1:]

	// Pre-flag injection check: `git -c core.sshCommand=... push` lets a
	// flag change git's behavior before the subcommand is even reached.
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if arg == "-c" || arg == "--config-env" {
			if i+1 < len(rest) {
				key := strings.SplitN(rest[i+1], "=", 2)[0]
				if isDangerousConfigKey(key) {
					return evalctx.Ask("git -c overrides a security-sensitive config key: " + rest[i+1])
				}
			}
			i++
			continue
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		// First non-flag token is the subcommand.
		return evaluateSubcommand(arg, rest[i+1:])
	}

	return evalctx.Ask("git invocation with no recognizable subcommand")
}

func evaluateSubcommand(sub string, rest []string) evalctx.Decision {
	if _, ok := alwaysDestructive[sub]; ok {
		return evalctx.Ask("git " + sub + " rewrites history")
	}

	switch sub {
	case "push":
		return evaluatePush(rest)
	case "reset":
		return evaluateReset(rest)
	case "clean":
		return evaluateClean(rest)
	case "branch":
		return evaluateBranch(rest)
	case "checkout", "switch":
		return evaluateCheckout(sub, rest)
	case "rebase":
		return evaluateRebase(rest)
	case "gc":
		return evaluateGC(rest)
	case "config":
		return evaluateConfig(rest)
	}

	if _, ok := alwaysSafe[sub]; ok {
		return evalctx.Allow("git " + sub + " is a read-only or additive subcommand")
	}

	return evalctx.Ask("git " + sub + " is not a recognized subcommand")
}

func evaluatePush(rest []string) evalctx.Decision {
	force := false
	var target string
	for _, a := range rest {
		switch {
		case a == "--force" || a == "-f" || a == "--force-with-lease" || strings.HasPrefix(a, "--force-with-lease="):
			force = true
		case a == "--delete" || a == "-d":
			force = true
		case strings.HasPrefix(a, "-"):
			// ignore other flags
		default:
			target = a
		}
	}

	if !force {
		if branch := branchFromRefspec(target); isProtectedBranch(branch) {
			return evalctx.Ask("git push targets protected branch " + branch)
		}
		return evalctx.Allow("git push without a force/delete flag to an unprotected branch")
	}

	branch := branchFromRefspec(target)
	if isProtectedBranch(branch) {
		return evalctx.Ask("git push --force targets protected branch " + branch)
	}
	return evalctx.Ask("git push --force or --delete always requires confirmation")
}

func branchFromRefspec(target string) string {
	// refspecs look like `origin main`, `origin HEAD:main`, or just `main`.
	if i := strings.LastIndex(target, ":"); i >= 0 {
		return target[i+1:]
	}
	return target
}

func isProtectedBranch(branch string) bool {
	_, ok := protectedBranches[branch]
	return ok
}

func evaluateReset(rest []string) evalctx.Decision {
	for _, a := range rest {
		if a == "--hard" {
			return evalctx.Ask("git reset --hard discards uncommitted work")
		}
	}
	return evalctx.Allow("git reset without --hard")
}

func evaluateClean(rest []string) evalctx.Decision {
	for _, a := range rest {
		if a == "-f" || a == "-fd" || a == "-fdx" || a == "--force" || strings.HasPrefix(a, "-f") {
			return evalctx.Ask("git clean with a force flag deletes untracked files")
		}
	}
	// `git clean` with no force flag is a no-op (git refuses to run).
	return evalctx.Allow("git clean without a force flag is a dry run")
}

func evaluateBranch(rest []string) evalctx.Decision {
	deleteFlag := false
	var target string
	for _, a := range rest {
		switch {
		case a == "-D" || a == "-d" || a == "--delete":
			deleteFlag = true
		case strings.HasPrefix(a, "-"):
		default:
			target = a
		}
	}
	if !deleteFlag {
		return evalctx.Allow("git branch without delete flags")
	}
	if isProtectedBranch(target) {
		return evalctx.Ask("git branch -D targets protected branch " + target)
	}
	return evalctx.Ask("git branch delete always requires confirmation")
}

func evaluateCheckout(sub string, rest []string) evalctx.Decision {
	for _, a := range rest {
		if a == "." || a == "--" || a == "-f" || a == "--force" {
			return evalctx.Ask(sub + " can silently discard local modifications")
		}
	}
	return evalctx.Allow(sub + " without a discard flag")
}

func evaluateRebase(rest []string) evalctx.Decision {
	for _, a := range rest {
		if a == "--abort" || a == "--continue" || a == "--skip" {
			return evalctx.Allow("git rebase " + a + " continues an in-progress rebase")
		}
	}
	return evalctx.Ask("git rebase rewrites commit history")
}

func evaluateConfig(rest []string) evalctx.Decision {
	for _, a := range rest {
		if strings.HasPrefix(a, "-") {
			continue
		}
		if isDangerousConfigKey(a) {
			return evalctx.Ask("git config sets a security-sensitive key: " + a)
		}
	}
	return evalctx.Allow("git config does not touch a security-sensitive key")
}

func evaluateGC(rest []string) evalctx.Decision {
	for _, a := range rest {
		if a == "--prune=now" || strings.HasPrefix(a, "--prune") {
			return evalctx.Ask("git gc --prune can permanently remove unreferenced commits")
		}
	}
	return evalctx.Allow("git gc without an aggressive prune")
}
