package pathpolicy

import (
	"testing"

	"github.com/anthonysapien/hall-pass/internal/evalctx"
)

func TestProtectedPathAsksOnWrite(t *testing.T) {
	p := New()
	d := p.Evaluate("/etc/passwd", OpWrite)
	if d.Kind != evalctx.KindAsk {
		t.Errorf("write to /etc/passwd = %+v, want Ask", d)
	}
}

func TestProtectedPathAllowsRead(t *testing.T) {
	p := New()
	d := p.Evaluate("/etc/passwd", OpRead)
	if d.Kind != evalctx.KindAllow {
		t.Errorf("read /etc/passwd = %+v, want Allow", d)
	}
}

func TestDotEnvIsProtected(t *testing.T) {
	p := New()
	d := p.Evaluate("/home/user/project/.env", OpWrite)
	if d.Kind != evalctx.KindAsk {
		t.Errorf("write to .env = %+v, want Ask", d)
	}
}

func TestNestedDotEnvGlobMatches(t *testing.T) {
	p := New()
	d := p.Evaluate("/home/user/project/deeply/nested/.env", OpWrite)
	if d.Kind != evalctx.KindAsk {
		t.Errorf("write to nested .env = %+v, want Ask", d)
	}
}

func TestUnrelatedPathAllowsWrite(t *testing.T) {
	p := New()
	d := p.Evaluate("/home/user/project/main.go", OpWrite)
	if d.Kind != evalctx.KindAllow {
		t.Errorf("write to main.go = %+v, want Allow", d)
	}
}

func TestGoSumReadOnlyAsksOnWrite(t *testing.T) {
	p := New()
	d := p.Evaluate("/home/user/project/go.sum", OpWrite)
	if d.Kind != evalctx.KindAsk {
		t.Errorf("write to go.sum = %+v, want Ask", d)
	}
	if d2 := p.Evaluate("/home/user/project/go.sum", OpRead); d2.Kind != evalctx.KindAllow {
		t.Errorf("read go.sum = %+v, want Allow", d2)
	}
}

func TestGitDirNoDeleteAllowsWrite(t *testing.T) {
	p := New()
	if d := p.Evaluate("/home/user/project/.git/config", OpWrite); d.Kind != evalctx.KindAllow {
		t.Errorf("write to .git/config = %+v, want Allow", d)
	}
	if d := p.Evaluate("/home/user/project/.git/config", OpDelete); d.Kind != evalctx.KindAsk {
		t.Errorf("delete .git/config = %+v, want Ask", d)
	}
}

func TestCredentialsAndSecretsAreProtected(t *testing.T) {
	p := New()
	for _, path := range []string{
		"/home/user/project/credentials.json",
		"/home/user/project/secrets.yaml",
		"/home/user/.ssh/id_rsa",
		"/home/user/project/server.pem",
	} {
		d := p.Evaluate(path, OpWrite)
		if d.Kind != evalctx.KindAsk {
			t.Errorf("write to %s = %+v, want Ask", path, d)
		}
	}
}

func TestExtendAddsRule(t *testing.T) {
	p := New()
	p.Extend(PathRule{Glob: "/home/user/secrets/**", Tier: TierProtected})
	d := p.Evaluate("/home/user/secrets/key.pem", OpWrite)
	if d.Kind != evalctx.KindAsk {
		t.Errorf("write under extended protected rule = %+v, want Ask", d)
	}
}
