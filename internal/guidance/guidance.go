// Package guidance implements the Feedback Rules: pattern checks over
// inline interpreter code (python -c, node -e, and similar) that never
// block a command but attach a suggestion toward a more idiomatic
// shell-native tool. Modeled on the teacher's evaluateRuntime -c/-e
// detection, extended with the pattern classification spec.md's guidance
// module adds on top.
package guidance

import (
	"regexp"
	"strings"
)

var jsonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bjson\.loads?\(`),
	regexp.MustCompile(`\bjson\.dumps?\(`),
	regexp.MustCompile(`\bjson\.load\b`),
	regexp.MustCompile(`\bjson\.dump\b`),
	regexp.MustCompile(`\bJSON\.parse\(`),
	regexp.MustCompile(`\bJSON\.stringify\(`),
	regexp.MustCompile(`\bjson\b`),
	regexp.MustCompile(`\bJSON\b`),
}

var stringManipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.split\(`),
	regexp.MustCompile(`\.replace\(`),
	regexp.MustCompile(`\.join\(`),
	regexp.MustCompile(`\.strip\(`),
	regexp.MustCompile(`\.upper\(\)`),
	regexp.MustCompile(`\.lower\(\)`),
	regexp.MustCompile(`\.startswith\(`),
	regexp.MustCompile(`\.endswith\(`),
	regexp.MustCompile(`\.find\(`),
	regexp.MustCompile(`\.count\(`),
	regexp.MustCompile(`\.trim\(\)`),
	regexp.MustCompile(`\.toUpperCase\(\)`),
	regexp.MustCompile(`\.toLowerCase\(\)`),
	regexp.MustCompile(`\.startsWith\(`),
	regexp.MustCompile(`\.endsWith\(`),
	regexp.MustCompile(`\.indexOf\(`),
	regexp.MustCompile(`\.includes\(`),
	regexp.MustCompile(`\bre\.sub\(`),
	regexp.MustCompile(`\bre\.match\(`),
	regexp.MustCompile(`\bre\.search\(`),
	regexp.MustCompile(`\bre\.findall\(`),
}

// ForInlineCode inspects the literal source passed to an interpreter's
// inline-eval flag and returns a suggestion string, or "" if nothing in it
// matches a known pattern worth flagging.
func ForInlineCode(code string) string {
	if code == "" {
		return ""
	}

	for _, p := range jsonPatterns {
		if p.MatchString(code) {
			return "this looks like JSON handling; `jq` usually expresses the same transform more directly from the shell"
		}
	}

	for _, p := range stringManipPatterns {
		if p.MatchString(code) {
			return "this looks like text manipulation; `sed`, `awk`, `tr` or `cut` may express the same transform more directly from the shell"
		}
	}

	return ""
}

// InlineFlagValue extracts the value of an inline-code flag (-c, -e,
// --eval) from an interpreter's argv, reporting ok=false if none is
// present.
func InlineFlagValue(args []string) (code string, ok bool) {
	for i, a := range args {
		switch {
		case a == "-c" || a == "-e" || a == "--eval":
			if i+1 < len(args) {
				return args[i+1], true
			}
		case strings.HasPrefix(a, "--eval="):
			return strings.TrimPrefix(a, "--eval="), true
		}
	}
	return "", false
}
