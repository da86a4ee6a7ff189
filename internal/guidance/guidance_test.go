package guidance

import "testing"

func TestForInlineCodeJSON(t *testing.T) {
	if hint := ForInlineCode(`import json; print(json.loads(data))`); hint == "" {
		t.Error("expected a jq suggestion for json.loads")
	}
}

func TestForInlineCodeStringManip(t *testing.T) {
	if hint := ForInlineCode(`data.split(",")`); hint == "" {
		t.Error("expected a sed/awk suggestion for .split(")
	}
}

func TestForInlineCodeNoMatch(t *testing.T) {
	if hint := ForInlineCode(`print("hello world")`); hint != "" {
		t.Errorf("expected no suggestion, got %q", hint)
	}
}

func TestForInlineCodeEmpty(t *testing.T) {
	if hint := ForInlineCode(""); hint != "" {
		t.Errorf("expected no suggestion for empty code, got %q", hint)
	}
}

func TestInlineFlagValueDashC(t *testing.T) {
	code, ok := InlineFlagValue([]string{"-c", "print(1)"})
	if !ok || code != "print(1)" {
		t.Fatalf("InlineFlagValue = %q, %v", code, ok)
	}
}

func TestInlineFlagValueEvalEquals(t *testing.T) {
	code, ok := InlineFlagValue([]string{"--eval=console.log(1)"})
	if !ok || code != "console.log(1)" {
		t.Fatalf("InlineFlagValue = %q, %v", code, ok)
	}
}

func TestInlineFlagValueAbsent(t *testing.T) {
	_, ok := InlineFlagValue([]string{"script.py"})
	if ok {
		t.Error("expected ok=false when no inline flag present")
	}
}
