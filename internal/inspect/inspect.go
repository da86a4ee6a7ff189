// Package inspect implements the Named Inspectors: per-program pure
// analyzer functions dispatched from a flat registry table, each deciding
// whether its program's specific argument shapes are dangerous. Grounded
// on the teacher's per-command evaluate* functions in rules.go (find, sed,
// chmod, docker, node/python's -c/-e handling) plus the supplemental
// inspectors drawn from the retrieval pack's other hook implementations
// (crontab, dd, ssh/scp, npx) that the teacher didn't have.
package inspect

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthonysapien/hall-pass/internal/evalctx"
	"github.com/anthonysapien/hall-pass/internal/guidance"
	"github.com/anthonysapien/hall-pass/internal/shellparse"
)

// Inspector analyzes one command invocation, given the evaluation context
// for recursing into sub-invocations it discovers.
type Inspector func(ctx evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision

// table is the flat dispatch registry. git is handled by internal/gitpolicy
// directly, not here — it has its own dedicated component.
var table = map[string]Inspector{
	"find":     inspectFind,
	"sed":      inspectSed,
	"awk":      inspectAwk,
	"kill":     inspectKill,
	"pkill":    inspectKill,
	"chmod":    inspectChmod,
	"docker":   inspectDocker,
	"node":     inspectInterpreter,
	"python":   inspectInterpreter,
	"python3":  inspectInterpreter,
	"ruby":     inspectInterpreter,
	"xargs":    inspectXargs,
	"source":   inspectSource,
	".":        inspectSource,
	"crontab":  inspectCrontab,
	"dd":       inspectDD,
	"ssh":      inspectSSH,
	"scp":      inspectSCP,
	"npx":      inspectNpx,
}

// Lookup returns the inspector registered for name, if any.
func Lookup(name string) (Inspector, bool) {
	i, ok := table[name]
	return i, ok
}

func inspectFind(ctx evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	args := inv.Args[1:]
	worst := evalctx.Allow("find with no dangerous action flags")

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch a {
		case "-delete":
			worst = evalctx.Worse(worst, evalctx.Ask("find -delete removes every matched file"))
		case "-exec", "-execdir", "-ok", "-okdir":
			cmd, consumed := collectFindExec(args[i+1:])
			i += consumed
			if len(cmd) == 0 {
				continue
			}
			interactive := a == "-ok" || a == "-okdir"
			if interactive {
				worst = evalctx.Worse(worst, evalctx.Ask("find "+a+" runs an embedded command, which is not evaluated further: "+strings.Join(cmd, " ")))
				continue
			}
			sub := shellparse.CommandInvocation{Name: filepath.Base(cmd[0]), Args: append([]string{filepath.Base(cmd[0])}, cmd[1:]...)}
			worst = evalctx.Worse(worst, ctx.Evaluate(sub))
		}
	}
	return worst
}

// collectFindExec reads find's {} ... ; or {} ... + terminated command
// template, returning the command tokens and how many args were consumed.
func collectFindExec(rest []string) ([]string, int) {
	var cmd []string
	for i, tok := range rest {
		if tok == ";" || tok == "+" {
			return cmd, i + 1
		}
		cmd = append(cmd, tok)
	}
	return cmd, len(rest)
}

func inspectSed(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	for _, a := range inv.Args[1:] {
		if a == "-i" || strings.HasPrefix(a, "-i") {
			return evalctx.Ask("sed -i edits files in place")
		}
	}
	return evalctx.Allow("sed without in-place editing")
}

func inspectAwk(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	for _, a := range inv.Args[1:] {
		if strings.Contains(a, "system(") {
			return evalctx.Ask("awk program calls system(), which shells out to an arbitrary command")
		}
	}
	return evalctx.Allow("awk program has no system() call")
}

func inspectKill(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	for _, a := range inv.Args[1:] {
		if a == "-1" {
			return evalctx.Ask(inv.Name + " -1 signals every process the caller can reach")
		}
		if n, err := strconv.Atoi(a); err == nil && n == 1 {
			return evalctx.Ask(inv.Name + " targets pid 1 (init)")
		}
	}
	return evalctx.Allow(inv.Name + " targets a specific process")
}

func inspectChmod(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	for _, a := range inv.Args[1:] {
		if strings.Contains(a, "a+rwx") || strings.Contains(a, "ugo+rwx") || strings.Contains(a, "o+w") {
			return evalctx.Ask("chmod grants world-writable permissions")
		}
		mode, ok := normalizeNumericMode(a)
		if !ok {
			continue
		}
		if mode[0] != '0' {
			return evalctx.Ask("chmod sets a setuid, setgid or sticky bit")
		}
		if mode[3] >= '6' {
			return evalctx.Ask("chmod grants world-writable permissions")
		}
	}
	return evalctx.Allow("chmod does not grant world-writable permissions or set special bits")
}

// normalizeNumericMode parses a 3-4 digit octal chmod mode and left-pads it
// to 4 digits, so callers can always index the special-bits digit at 0 and
// the other-bits digit at 3. Non-numeric arguments (symbolic modes, paths)
// report ok=false.
func normalizeNumericMode(s string) (string, bool) {
	if len(s) < 3 || len(s) > 4 {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '7' {
			return "", false
		}
	}
	if len(s) == 3 {
		return "0" + s, true
	}
	return s, true
}

var dockerDestructiveSubcommands = map[string]struct{}{
	"rm": {}, "rmi": {}, "kill": {}, "builder": {},
}

func inspectDocker(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	args := inv.Args[1:]
	if len(args) == 0 {
		return evalctx.Ask("docker invocation with no subcommand")
	}

	if args[0] == "system" && len(args) > 1 && args[1] == "prune" {
		return evalctx.Ask("docker system prune removes stopped containers, dangling images and unused volumes")
	}
	if args[0] == "volume" && len(args) > 1 && args[1] == "rm" {
		return evalctx.Ask("docker volume rm permanently deletes volume data")
	}
	if _, ok := dockerDestructiveSubcommands[args[0]]; ok {
		return evalctx.Ask("docker " + args[0] + " removes containers or images")
	}

	if args[0] == "run" || args[0] == "create" {
		for i, a := range args {
			if a == "--privileged" {
				return evalctx.Ask("docker run --privileged grants full host device access")
			}
			vol := ""
			if (a == "-v" || a == "--volume") && i+1 < len(args) {
				vol = args[i+1]
			} else if strings.HasPrefix(a, "-v=") || strings.HasPrefix(a, "--volume=") {
				vol = a[strings.Index(a, "=")+1:]
			}
			if strings.HasPrefix(vol, "/:") {
				return evalctx.Ask("docker run mounts the host root filesystem into the container")
			}
		}
	}

	return evalctx.Allow("docker subcommand has no recognized destructive shape")
}

func inspectInterpreter(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	code, ok := guidance.InlineFlagValue(inv.Args[1:])
	if !ok {
		return evalctx.Allow(inv.Name + " invoked without inline code")
	}
	if hint := guidance.ForInlineCode(code); hint != "" {
		return evalctx.AskWithGuidance(inv.Name+" executes inline code", hint)
	}
	return evalctx.Ask(inv.Name + " executes inline code passed directly on the command line")
}

func inspectXargs(ctx evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	args := inv.Args[1:]
	cmd := xargsCommand(args)
	if len(cmd) == 0 {
		// Bare `xargs` with no trailing command defaults to running `echo`.
		return evalctx.Allow("xargs with no explicit command runs echo")
	}
	sub := shellparse.CommandInvocation{Name: filepath.Base(cmd[0]), Args: append([]string{filepath.Base(cmd[0])}, cmd[1:]...)}
	return ctx.Evaluate(sub)
}

// xargsCommand walks past xargs' own flags (skipping the value of flags
// that take one) to find the trailing command template.
var xargsValueFlags = map[string]struct{}{
	"-I": {}, "-n": {}, "-P": {}, "-s": {}, "-E": {}, "-d": {}, "--delimiter": {},
}

func xargsCommand(args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			return args[i:]
		}
		if _, needsValue := xargsValueFlags[a]; needsValue {
			i++
		}
	}
	return nil
}

func inspectSource(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	return evalctx.Ask(inv.Name + " executes the contents of another file in the current shell, which cannot be inspected ahead of time")
}

func inspectCrontab(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	return evalctx.Ask("crontab installs or modifies a persistent scheduled job")
}

var blockDevicePrefixes = []string{
	"/dev/sd", "/dev/hd", "/dev/nvme", "/dev/vd", "/dev/xvd", "/dev/md", "/dev/dm-", "/dev/loop", "/dev/disk",
}

func inspectDD(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	for _, a := range inv.Args[1:] {
		if strings.HasPrefix(a, "of=") {
			target := strings.TrimPrefix(a, "of=")
			for _, prefix := range blockDevicePrefixes {
				if strings.HasPrefix(target, prefix) {
					return evalctx.Ask("dd writes directly to block device " + target)
				}
			}
			return evalctx.Allow("dd writes to a regular file")
		}
	}
	return evalctx.Ask("dd with no of= target writes to standard output, likely a mistake")
}

func inspectSSH(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	if hasRemoteCommand(inv.Args[1:], 1) {
		return evalctx.Ask("ssh with an embedded remote command runs arbitrary code on the target host")
	}
	return evalctx.Allow("ssh without an embedded remote command")
}

func inspectSCP(_ evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	return evalctx.Allow("scp transfers files without executing a remote command")
}

var sshValueFlags = map[string]struct{}{
	"-p": {}, "-i": {}, "-l": {}, "-o": {}, "-F": {}, "-J": {}, "-b": {}, "-c": {}, "-D": {}, "-L": {}, "-R": {}, "-W": {}, "-e": {},
}

// hasRemoteCommand reports whether ssh's argv carries more than
// maxPositional positional (non-flag) arguments, which means a remote
// command follows the host.
func hasRemoteCommand(args []string, maxPositional int) bool {
	positional := 0
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "-") {
			if _, needsValue := sshValueFlags[a]; needsValue {
				i++
			}
			continue
		}
		positional++
		if positional > maxPositional {
			return true
		}
	}
	return false
}

func inspectNpx(ctx evalctx.Context, inv shellparse.CommandInvocation) evalctx.Decision {
	pkg := firstPositional(inv.Args[1:])
	if pkg == "" {
		return evalctx.Ask("npx with no package argument")
	}
	if ctx.WorkDir != "" {
		localBin := filepath.Join(ctx.WorkDir, "node_modules", ".bin", pkg)
		if info, err := os.Stat(localBin); err == nil && !info.IsDir() {
			return evalctx.Allow("npx runs a package already installed locally in node_modules/.bin")
		}
	}
	return evalctx.Ask("npx downloads and executes a package that isn't already installed locally")
}

func firstPositional(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "-y" || a == "--yes" || a == "-p" || a == "--package" {
			if a == "-p" || a == "--package" {
				i++
			}
			continue
		}
		if strings.HasPrefix(a, "-") {
			continue
		}
		return a
	}
	return ""
}
