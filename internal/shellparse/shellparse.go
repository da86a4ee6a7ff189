// Package shellparse turns a shell command string into a flat, typed view of
// every command invocation and redirect it contains, using a real shell
// grammar (mvdan.cc/sh/v3/syntax) instead of regexes.
//
// The adapter deliberately throws away shell tree shape: callers only ever
// need "what programs run" and "what paths are touched", never which branch
// of an if/case/loop a command lives in. Pipes, &&/||/;, subshells, command
// and process substitution, and the bodies of for/while/if/case are all
// walked and flattened into the same two lists.
package shellparse

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// RedirectOp classifies a Redirect by the direction of data flow.
type RedirectOp int

const (
	// OpRead marks a redirect that feeds data into the command (<).
	OpRead RedirectOp = iota
	// OpWrite marks a redirect that a command writes through (>, >>, >|, &>, &>>).
	OpWrite
)

// Assign is one inline variable assignment prefixing a command, e.g. the
// FOO=bar in `FOO=bar ls`.
type Assign struct {
	Name  string
	Value string
}

// CommandInvocation is a single program invocation discovered anywhere in
// the parse tree. Name is the basename of the program; Args always starts
// with Name itself.
type CommandInvocation struct {
	Name    string
	Args    []string
	Assigns []Assign
}

// Redirect is a single file-targeting I/O redirection discovered anywhere
// in the parse tree.
type Redirect struct {
	Path string
	Op   RedirectOp
}

// ParsedCommand is the flattened result of parsing a command string: every
// invocation and every redirect found anywhere in the tree, in source order.
type ParsedCommand struct {
	Invocations []CommandInvocation
	Redirects   []Redirect
}

// ParseError wraps a shell-grammar parse failure. The driver must turn this
// into Ask, never Allow.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "shell parse failed: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

const maxSubstDepth = 8

// Parse parses command into a ParsedCommand, recursing into command and
// process substitutions up to a bounded depth (the pack's
// claudecode-hooks/pkg/detector uses the same style of depth guard against
// pathologically nested input). A command node kind the walker does not
// handle (e.g. `[[ ]]`, `(( ))`, `let`, `coproc`) is reported as a
// ParseError rather than silently skipped.
func Parse(command string) (*ParsedCommand, error) {
	p := syntax.NewParser(syntax.Variant(syntax.LangBash), syntax.KeepComments(false))
	file, err := p.Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	pc := &ParsedCommand{}
	w := &walker{pc: pc}
	w.walkStmts(file.Stmts, 0)
	if w.unknown != "" {
		return nil, &ParseError{Err: fmt.Errorf("unsupported shell construct %s", w.unknown)}
	}
	return pc, nil
}

type walker struct {
	pc *ParsedCommand
	// unknown names the first command node kind walkCommand did not handle.
	unknown string
}

func (w *walker) walkStmts(stmts []*syntax.Stmt, depth int) {
	for _, s := range stmts {
		w.walkStmt(s, depth)
	}
}

func (w *walker) walkStmt(stmt *syntax.Stmt, depth int) {
	if stmt == nil {
		return
	}

	for _, redir := range stmt.Redirs {
		w.collectRedirect(redir, depth)
	}

	w.walkCommand(stmt.Cmd, depth)
}

func (w *walker) walkCommand(cmd syntax.Command, depth int) {
	switch c := cmd.(type) {
	case *syntax.CallExpr:
		w.walkCallExpr(c, depth)
	case *syntax.BinaryCmd:
		w.walkStmt(c.X, depth)
		w.walkStmt(c.Y, depth)
	case *syntax.Subshell:
		w.walkStmts(c.Stmts, depth)
	case *syntax.Block:
		w.walkStmts(c.Stmts, depth)
	case *syntax.IfClause:
		for cl := c; cl != nil; cl = cl.Else {
			w.walkStmts(cl.Cond, depth)
			w.walkStmts(cl.Then, depth)
		}
	case *syntax.WhileClause:
		w.walkStmts(c.Cond, depth)
		w.walkStmts(c.Do, depth)
	case *syntax.ForClause:
		if wi, ok := c.Loop.(*syntax.WordIter); ok {
			for _, word := range wi.Items {
				w.walkWordEmbedded(word, depth)
			}
		}
		w.walkStmts(c.Do, depth)
	case *syntax.CaseClause:
		w.walkWordEmbedded(c.Word, depth)
		for _, item := range c.Items {
			for _, pat := range item.Patterns {
				w.walkWordEmbedded(pat, depth)
			}
			w.walkStmts(item.Stmts, depth)
		}
	case *syntax.FuncDecl:
		w.walkStmt(c.Body, depth)
	case *syntax.DeclClause:
		// declare/export/local/readonly: not an executable program, but its
		// assigned values may embed command substitutions.
		for _, a := range c.Assigns {
			if a.Value != nil {
				w.walkWordEmbedded(a.Value, depth)
			}
		}
	case *syntax.TimeClause:
		w.walkStmt(c.Stmt, depth)
	case nil:
		// A statement made only of redirects, e.g. `> file`.
	default:
		if w.unknown == "" {
			w.unknown = fmt.Sprintf("%T", cmd)
		}
	}
}

func (w *walker) walkCallExpr(call *syntax.CallExpr, depth int) {
	for _, a := range call.Assigns {
		if a.Value != nil {
			w.walkWordEmbedded(a.Value, depth)
		}
	}

	if len(call.Args) == 0 {
		// Bare assignment prefix with no command: `FOO=bar` alone. Per the
		// data model invariant, this never produces a CommandInvocation —
		// the driver treats an empty invocation list as Allow.
		return
	}

	words := make([]string, 0, len(call.Args))
	for _, word := range call.Args {
		words = append(words, wordString(word))
		w.walkWordEmbedded(word, depth)
	}

	name := basename(words[0])
	args := append([]string{name}, words[1:]...)

	assigns := make([]Assign, 0, len(call.Assigns))
	for _, a := range call.Assigns {
		val := ""
		if a.Value != nil {
			val = wordString(a.Value)
		}
		assigns = append(assigns, Assign{Name: a.Name.Value, Value: val})
	}

	w.pc.Invocations = append(w.pc.Invocations, CommandInvocation{
		Name:    name,
		Args:    args,
		Assigns: assigns,
	})
}

func (w *walker) collectRedirect(redir *syntax.Redirect, depth int) {
	if redir.Hdoc != nil {
		// Heredoc bodies aren't file targets; only scan for embedded
		// command substitutions so `cat <<EOF ... $(evil) ... EOF` is seen.
		w.walkWordEmbedded(redir.Hdoc, depth)
		return
	}
	if redir.Word == nil {
		return
	}

	switch redir.Op {
	case syntax.RdrOut, syntax.AppOut, syntax.RdrAll, syntax.AppAll, syntax.ClbOut:
		w.pc.Redirects = append(w.pc.Redirects, Redirect{Path: wordString(redir.Word), Op: OpWrite})
	case syntax.RdrIn:
		w.pc.Redirects = append(w.pc.Redirects, Redirect{Path: wordString(redir.Word), Op: OpRead})
	}

	// Process substitution, e.g. `diff <(cmd1) <(cmd2)`, is parsed as a
	// CmdSubst/ProcSubst word part, picked up by the embedded-word walk.
	w.walkWordEmbedded(redir.Word, depth)
}

// walkWordEmbedded looks for command and process substitutions nested
// inside a word and walks their statements as additional top-level
// invocations, flattened into the same ParsedCommand.
func (w *walker) walkWordEmbedded(word *syntax.Word, depth int) {
	if word == nil || depth >= maxSubstDepth {
		return
	}
	for _, part := range word.Parts {
		w.walkWordPart(part, depth)
	}
}

func (w *walker) walkWordPart(part syntax.WordPart, depth int) {
	switch p := part.(type) {
	case *syntax.CmdSubst:
		w.walkStmts(p.Stmts, depth+1)
	case *syntax.ProcSubst:
		w.walkStmts(p.Stmts, depth+1)
	case *syntax.DblQuoted:
		for _, sub := range p.Parts {
			w.walkWordPart(sub, depth)
		}
	case *syntax.ParamExp:
		if p.Exp != nil && p.Exp.Word != nil {
			w.walkWordEmbedded(p.Exp.Word, depth)
		}
	}
}

// wordString renders a word as the program receives it: single and double
// quotes are removed, while expansions ($VAR, $(...)) and backslash escapes
// keep their source text.
func wordString(word *syntax.Word) string {
	var sb strings.Builder
	printer := syntax.NewPrinter()
	for _, part := range word.Parts {
		switch p := part.(type) {
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			_ = printer.Print(&sb, &syntax.Word{Parts: p.Parts})
		default:
			_ = printer.Print(&sb, &syntax.Word{Parts: []syntax.WordPart{part}})
		}
	}
	return sb.String()
}

func basename(s string) string {
	i := strings.LastIndexByte(s, '/')
	if i < 0 {
		return s
	}
	return s[i+1:]
}
