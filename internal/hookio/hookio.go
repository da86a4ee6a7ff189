// Package hookio implements the host's PreToolUse hook JSON envelope:
// decoding the request Claude Code sends on stdin and encoding the
// permission decision back out on stdout. Grounded on the teacher's
// hook.go (HookInput/HookOutput/HookSpecificOutput, skipEvaluationTools,
// shouldSkipEvaluation, exitPassthrough).
package hookio

import (
	"encoding/json"
	"io"

	"github.com/anthonysapien/hall-pass/internal/evalctx"
)

// HookInput is the subset of Claude Code's PreToolUse payload this hook
// reads. Any other field in the envelope is ignored when decoding.
type HookInput struct {
	SessionID string          `json:"session_id"`
	ToolName  string          `json:"tool_name"`
	ToolInput json.RawMessage `json:"tool_input"`
	CWD       string          `json:"cwd"`
}

// BashToolInput is the shape of tool_input when ToolName is "Bash".
type BashToolInput struct {
	Command string `json:"command"`
}

// FileToolInput is the shape of tool_input for Write, Edit and
// NotebookEdit, where only the target path matters.
type FileToolInput struct {
	FilePath     string `json:"file_path"`
	NotebookPath string `json:"notebook_path"`
}

// Path returns whichever of FilePath/NotebookPath is set.
func (f FileToolInput) Path() string {
	if f.NotebookPath != "" {
		return f.NotebookPath
	}
	return f.FilePath
}

// HookSpecificOutput carries the actual permission verdict.
type HookSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
	AdditionalContext        string `json:"additionalContext,omitempty"`
}

// HookOutput is the full envelope written back to Claude Code. An empty
// HookOutput (no HookSpecificOutput) means passthrough: let the host apply
// its own default behavior.
type HookOutput struct {
	HookSpecificOutput *HookSpecificOutput `json:"hookSpecificOutput,omitempty"`
}

// skipEvaluationTools are tool calls that never touch the shell or the
// filesystem in a way this hook cares about, so evaluating them would only
// add latency for no benefit.
var skipEvaluationTools = map[string]struct{}{
	"ExitPlanMode": {}, "EnterPlanMode": {}, "AskUserQuestion": {},
	"TaskCreate": {}, "TaskUpdate": {}, "TaskList": {}, "TaskGet": {}, "TaskStop": {}, "TaskOutput": {},
	"Read": {}, "Glob": {}, "Grep": {}, "WebFetch": {}, "WebSearch": {},
	"Task": {}, "Skill": {},
}

// ShouldSkipEvaluation reports whether toolName is in skipEvaluationTools.
func ShouldSkipEvaluation(toolName string) bool {
	_, ok := skipEvaluationTools[toolName]
	return ok
}

// ReadInput decodes a single HookInput from r.
func ReadInput(r io.Reader) (*HookInput, error) {
	var in HookInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// WriteOutput encodes out to w as JSON.
func WriteOutput(w io.Writer, out HookOutput) error {
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

// Passthrough writes the empty envelope that tells the host to apply its
// own default behavior, used for skip-evaluation tools.
func Passthrough(w io.Writer) error {
	return WriteOutput(w, HookOutput{})
}

// FromDecision builds the host envelope for a Decision. hookEventName is
// always "PreToolUse" in production but is threaded through as a parameter
// so tests don't depend on a package-level constant leaking between cases.
func FromDecision(hookEventName string, d evalctx.Decision) HookOutput {
	switch d.Kind {
	case evalctx.KindAllow:
		return HookOutput{HookSpecificOutput: &HookSpecificOutput{
			HookEventName:            hookEventName,
			PermissionDecision:       "allow",
			PermissionDecisionReason: d.Reason,
		}}
	default:
		// KindPass never reaches here: callers write Passthrough directly
		// for a Pass decision instead of calling FromDecision.
		return HookOutput{HookSpecificOutput: &HookSpecificOutput{
			HookEventName:            hookEventName,
			PermissionDecision:       "ask",
			PermissionDecisionReason: d.Reason,
			AdditionalContext:        d.Guidance,
		}}
	}
}
