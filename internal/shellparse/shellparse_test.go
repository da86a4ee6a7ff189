package shellparse

import "testing"

func TestParseSimpleCommand(t *testing.T) {
	pc, err := Parse("ls -la /tmp")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(pc.Invocations) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(pc.Invocations))
	}
	inv := pc.Invocations[0]
	if inv.Name != "ls" {
		t.Errorf("Name = %q, want ls", inv.Name)
	}
	want := []string{"ls", "-la", "/tmp"}
	if !equalSlices(inv.Args, want) {
		t.Errorf("Args = %v, want %v", inv.Args, want)
	}
}

func TestParseBasenameStripsPath(t *testing.T) {
	pc, err := Parse("/usr/bin/git status")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if pc.Invocations[0].Name != "git" {
		t.Errorf("Name = %q, want git", pc.Invocations[0].Name)
	}
	if pc.Invocations[0].Args[0] != "git" {
		t.Errorf("Args[0] = %q, want git", pc.Invocations[0].Args[0])
	}
}

func TestParsePipeline(t *testing.T) {
	pc, err := Parse("cat file.txt | grep foo | wc -l")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(pc.Invocations) != 3 {
		t.Fatalf("expected 3 invocations, got %d: %+v", len(pc.Invocations), pc.Invocations)
	}
	names := []string{pc.Invocations[0].Name, pc.Invocations[1].Name, pc.Invocations[2].Name}
	want := []string{"cat", "grep", "wc"}
	if !equalSlices(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
}

func TestParseCommandSubstitution(t *testing.T) {
	pc, err := Parse(`echo $(rm -rf /tmp/x)`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(pc.Invocations) != 2 {
		t.Fatalf("expected 2 invocations (echo + rm), got %d: %+v", len(pc.Invocations), pc.Invocations)
	}
	found := false
	for _, inv := range pc.Invocations {
		if inv.Name == "rm" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a rm invocation hidden in command substitution, got %+v", pc.Invocations)
	}
}

func TestParseSubshellAndAndOr(t *testing.T) {
	pc, err := Parse("(echo a && echo b) || echo c")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(pc.Invocations) != 3 {
		t.Fatalf("expected 3 invocations, got %d: %+v", len(pc.Invocations), pc.Invocations)
	}
}

func TestParseRedirects(t *testing.T) {
	pc, err := Parse("echo hi > /tmp/out.txt")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(pc.Redirects) != 1 {
		t.Fatalf("expected 1 redirect, got %d", len(pc.Redirects))
	}
	if pc.Redirects[0].Op != OpWrite {
		t.Errorf("Op = %v, want OpWrite", pc.Redirects[0].Op)
	}
	if pc.Redirects[0].Path != "/tmp/out.txt" {
		t.Errorf("Path = %q, want /tmp/out.txt", pc.Redirects[0].Path)
	}
}

func TestParseAppendRedirect(t *testing.T) {
	pc, err := Parse("echo hi >> /tmp/out.txt")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(pc.Redirects) != 1 || pc.Redirects[0].Op != OpWrite {
		t.Fatalf("expected 1 write redirect, got %+v", pc.Redirects)
	}
}

func TestParseBareAssignmentProducesNoInvocation(t *testing.T) {
	pc, err := Parse("FOO=bar BAZ=qux")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(pc.Invocations) != 0 {
		t.Errorf("expected 0 invocations for bare assignment, got %d: %+v", len(pc.Invocations), pc.Invocations)
	}
}

func TestParseInvocationAssigns(t *testing.T) {
	pc, err := Parse("FOO=bar ls")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(pc.Invocations) != 1 {
		t.Fatalf("expected 1 invocation, got %d", len(pc.Invocations))
	}
	inv := pc.Invocations[0]
	if len(inv.Assigns) != 1 || inv.Assigns[0].Name != "FOO" || inv.Assigns[0].Value != "bar" {
		t.Errorf("Assigns = %+v, want [{FOO bar}]", inv.Assigns)
	}
}

func TestParseSyntaxErrorReturnsError(t *testing.T) {
	_, err := Parse("echo (((")
	if err == nil {
		t.Fatal("expected a parse error for malformed input, got nil")
	}
}

func TestParseIfWhileForCaseBodies(t *testing.T) {
	cmd := `if true; then rm -rf /tmp/a; fi
while false; do echo loop; done
for x in 1 2; do echo $x; done
case foo in bar) echo hit;; esac`
	pc, err := Parse(cmd)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	names := map[string]bool{}
	for _, inv := range pc.Invocations {
		names[inv.Name] = true
	}
	for _, want := range []string{"true", "rm", "false", "echo"} {
		if !names[want] {
			t.Errorf("expected invocation %q to be found among branch bodies, got %+v", want, pc.Invocations)
		}
	}
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
