// Package wrapper unwraps process-lifetime wrappers — programs that exist
// purely to change how their argument command runs (in the background, at
// a different priority, with a deadline) rather than to do anything
// themselves. Grounded on the teacher's evaluateTimeout, generalized to a
// small table of known wrappers and their flag shapes.
package wrapper

import "strings"

// flagsWithValue lists, per wrapper program, the flags that consume the
// next argument rather than being boolean switches. Needed to walk past a
// wrapper's own flags without misreading one of its values as the real
// command.
var flagsWithValue = map[string]map[string]struct{}{
	"timeout": {"-k": {}, "--kill-after": {}, "--signal": {}, "-s": {}},
	"nice":    {"-n": {}, "--adjustment": {}},
	"ionice":  {"-c": {}, "-n": {}, "-p": {}},
	"nohup":   {},
	"time":    {},
	"env":     {},
}

// wrappers is the set of program names this package knows how to see
// through. "env" is included because `env FOO=bar cmd` is functionally a
// wrapper even though env also supports flags of its own.
var wrappers = map[string]struct{}{
	"nohup": {}, "nice": {}, "ionice": {}, "timeout": {}, "time": {}, "env": {},
}

// IsWrapper reports whether name is a known process-lifetime wrapper.
func IsWrapper(name string) bool {
	_, ok := wrappers[name]
	return ok
}

// Unwrap strips one layer of wrapper off args (args[0] is the wrapper
// name itself) and returns the remaining argv for the wrapped command, or
// ok=false if no inner command could be found (e.g. `timeout 5` alone).
func Unwrap(name string, args []string) (inner []string, ok bool) {
	if !IsWrapper(name) {
		return nil, false
	}

	valueFlags := flagsWithValue[name]
	rest := args[1:]

	// timeout's own positional argument is the duration, not part of the
	// wrapped command: `timeout 30 rm -rf x` must skip past "30" too.
	needsDuration := name == "timeout"

	for i := 0; i < len(rest); i++ {
		arg := rest[i]

		if name == "env" && strings.Contains(arg, "=") && !strings.HasPrefix(arg, "-") {
			// env FOO=bar BAZ=qux cmd ...: skip inline assignments.
			continue
		}

		if !strings.HasPrefix(arg, "-") {
			if needsDuration {
				needsDuration = false
				continue
			}
			return rest[i:], true
		}

		if _, needsValue := valueFlags[arg]; needsValue {
			i++
			continue
		}

		// timeout/nice also accept --flag=value in one token; nothing to skip.
	}

	return nil, false
}
