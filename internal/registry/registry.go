// Package registry is the Safe-Command Registry: static classification
// tables for programs that never need per-invocation inspection, plus the
// handful of cross-cutting sets (database clients, dangerous environment
// variables) other components consult. Grounded on the teacher's
// alwaysSafeCommands/alwaysAskCommands maps in its old rules.go, extended
// with the registry-level concerns spec.md adds on top (dangerous env vars,
// DB client recognition for the SQL classifier).
package registry

// Registry holds the built-in classification tables plus whatever a loaded
// configuration appended to them.
type Registry struct {
	safe       map[string]struct{}
	alwaysAsk  map[string]struct{}
	dbClients  map[string]struct{}
	dangerEnvs map[string]struct{}
}

// New builds a Registry pre-seeded with the built-in defaults.
func New() *Registry {
	r := &Registry{
		safe:       toSet(defaultSafe),
		alwaysAsk:  toSet(defaultAlwaysAsk),
		dbClients:  toSet(defaultDBClients),
		dangerEnvs: toSet(defaultDangerousEnvVars),
	}
	return r
}

// ExtendSafe appends additional program names to the Always-Safe set. Used
// by config loading: user config extends, never replaces, the defaults.
func (r *Registry) ExtendSafe(names ...string) {
	for _, n := range names {
		r.safe[n] = struct{}{}
	}
}

// ExtendAlwaysAsk appends additional program names to the Always-Ask set.
func (r *Registry) ExtendAlwaysAsk(names ...string) {
	for _, n := range names {
		r.alwaysAsk[n] = struct{}{}
	}
}

// IsAlwaysSafe reports whether name is in the Always-Safe set.
func (r *Registry) IsAlwaysSafe(name string) bool {
	_, ok := r.safe[name]
	return ok
}

// IsAlwaysAsk reports whether name is in the Always-Ask set. Always-Ask
// takes priority over Always-Safe when (through misconfiguration) a name
// somehow lands in both, since asking is the safer default.
func (r *Registry) IsAlwaysAsk(name string) bool {
	_, ok := r.alwaysAsk[name]
	return ok
}

// IsDBClient reports whether name is a recognized SQL client program,
// routing it to the SQL Classifier instead of generic inspection.
func (r *Registry) IsDBClient(name string) bool {
	_, ok := r.dbClients[name]
	return ok
}

// IsDangerousEnvVar reports whether an inline assignment to name should
// force Ask regardless of which command it prefixes (LD_PRELOAD and
// friends can subvert an otherwise-safe program).
func (r *Registry) IsDangerousEnvVar(name string) bool {
	_, ok := r.dangerEnvs[name]
	return ok
}

func toSet(names []string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// defaultSafe mirrors the teacher's alwaysSafeCommands: read-only
// utilities plus build tools, archivers and task runners (make, tar, go,
// cargo, npm, ...) that are allowed without per-invocation inspection.
var defaultSafe = []string{
	"cat", "head", "tail", "less", "more", "wc", "ls", "pwd", "echo", "printf",
	"grep", "egrep", "fgrep", "rg", "ag", "which", "whereis", "type",
	"file", "stat", "diff", "cmp", "sort", "uniq", "cut", "tr", "column",
	"ping", "ps", "top", "date", "whoami", "id", "uname", "env", "printenv",
	"true", "false", "test", "basename", "dirname", "realpath", "readlink",
	"tar", "zip", "unzip", "gzip", "gunzip", "tmux", "screen", "make",
	"sleep", "xxd", "hexdump", "md5sum", "sha1sum", "sha256sum",
	"npm", "yarn", "pnpm", "go", "cargo", "rustc", "javac",
	"pre-commit", "prettier", "eslint", "gofmt", "goimports", "golint",
	"jq", "yq",
}

// find, awk and sed are intentionally absent here: each has argument shapes
// (find -delete/-exec, awk system(), sed -i) that need inspection, so they
// live in the Named Inspector table instead of Always-Safe.

// defaultAlwaysAsk mirrors the teacher's alwaysAskCommands: a small set of
// programs whose entire purpose is to escalate or bypass policy, so even
// seeing the bare program name is enough.
var defaultAlwaysAsk = []string{
	"sudo", "su", "doas", "eval", "dd", "systemctl", "launchctl", "reboot",
	"shutdown", "halt", "poweroff", "mkfs", "fdisk", "parted",
}

// defaultDBClients are the interactive/one-shot SQL clients the SQL
// Classifier knows how to extract statements from.
var defaultDBClients = []string{"psql", "mysql", "sqlite3", "mariadb"}

// defaultDangerousEnvVars can change a program's behavior at the dynamic
// linker or interpreter level, independent of which program they prefix.
var defaultDangerousEnvVars = []string{
	"LD_PRELOAD", "LD_LIBRARY_PATH", "DYLD_INSERT_LIBRARIES",
	"DYLD_LIBRARY_PATH", "PYTHONSTARTUP", "NODE_OPTIONS", "PERL5OPT",
	"BASH_ENV", "ENV", "GIT_SSH_COMMAND",
}
