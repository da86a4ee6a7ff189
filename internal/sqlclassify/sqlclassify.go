// Package sqlclassify extracts SQL text from a database client's argv and
// classifies it as read-only or not. There is no SQL-parsing library
// anywhere in the retrieval pack (nor a widely-used one in the broader
// ecosystem that handles psql/mysql/sqlite3 dialect differences at once),
// so this is a deliberately narrow, stdlib-only top-level-statement
// splitter and keyword classifier rather than a real parser: it only needs
// to answer "could this possibly write", not understand the statement.
package sqlclassify

import "strings"

// readOnlyMeta lists backslash (psql) and dot (sqlite3) commands that only
// ever inspect state, never mutate it.
var readOnlyMeta = map[string]struct{}{
	`\d`: {}, `\dt`: {}, `\dn`: {}, `\di`: {}, `\dv`: {}, `\df`: {}, `\du`: {},
	`\l`: {}, `\c`: {}, `\conninfo`: {}, `\?`: {}, `\h`: {}, `\timing`: {},
	".tables": {}, ".schema": {}, ".dump": {}, ".indexes": {}, ".help": {},
	".mode": {}, ".headers": {},
}

var readOnlyKeywords = map[string]struct{}{
	"select": {}, "with": {}, "show": {}, "values": {}, "explain": {}, "table": {},
}

// ExtractStatement pulls the literal SQL text out of a DB client's argv,
// reporting ok=false if none of the known flag shapes matched (an
// interactive session with no statement on the command line — always Ask,
// since there is nothing here to classify).
func ExtractStatement(program string, args []string) (stmt string, ok bool) {
	switch program {
	case "psql":
		return extractFlagValue(args, "-c", "--command")
	case "mysql", "mariadb":
		return extractFlagValue(args, "-e", "--execute")
	case "sqlite3":
		// sqlite3 [flags] dbfile 'SQL statement'
		for i := len(args) - 1; i > 0; i-- {
			if !strings.HasPrefix(args[i], "-") {
				return args[i], true
			}
		}
		return "", false
	}
	return "", false
}

func extractFlagValue(args []string, short, long string) (string, bool) {
	for i, a := range args {
		if a == short || a == long {
			if i+1 < len(args) {
				return args[i+1], true
			}
			return "", false
		}
		if strings.HasPrefix(a, long+"=") {
			return strings.TrimPrefix(a, long+"="), true
		}
	}
	return "", false
}

// IsReadOnly reports whether every top-level statement in stmt is read-only
// (SELECT/WITH/SHOW/VALUES/EXPLAIN/TABLE, or a known read-only meta-command).
// An empty statement carries no statement to mutate anything, so it's
// read-only; any non-empty statement this classifier can't positively
// identify as read-only is treated as not read-only.
func IsReadOnly(stmt string) bool {
	trimmed := strings.TrimSpace(stmt)
	if trimmed == "" {
		return true
	}

	if strings.HasPrefix(trimmed, `\`) || strings.HasPrefix(trimmed, ".") {
		word := strings.Fields(trimmed)[0]
		_, ok := readOnlyMeta[strings.ToLower(word)]
		return ok
	}

	if strings.HasPrefix(strings.ToLower(trimmed), "pragma") {
		// PRAGMA foo = bar mutates a session setting, not stored data, but
		// can still flip a safety setting (e.g. foreign_keys). Treat any
		// PRAGMA with an assignment as not read-only; bare "PRAGMA foo;" as
		// read-only (it only reports the current value).
		return !strings.Contains(trimmed, "=")
	}

	for _, part := range splitStatements(trimmed) {
		if !isReadOnlyStatement(part) {
			return false
		}
	}
	return true
}

func isReadOnlyStatement(stmt string) bool {
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return true
	}
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return true
	}
	_, ok := readOnlyKeywords[strings.ToLower(fields[0])]
	return ok
}

// splitStatements splits stmt on top-level semicolons, respecting single
// and double quoting so a semicolon inside a string literal doesn't split
// the statement in two.
func splitStatements(stmt string) []string {
	var parts []string
	var cur strings.Builder
	inSingle, inDouble := false, false

	for _, r := range stmt {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case r == ';' && !inSingle && !inDouble:
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if strings.TrimSpace(cur.String()) != "" {
		parts = append(parts, cur.String())
	}
	return parts
}
