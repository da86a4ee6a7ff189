package gitpolicy

import (
	"testing"

	"github.com/anthonysapien/hall-pass/internal/evalctx"
)

func TestSafeSubcommandsAllow(t *testing.T) {
	for _, args := range [][]string{
		{"git", "status"},
		{"git", "log", "--oneline"},
		{"git", "diff"},
		{"git", "add", "."},
		{"git", "commit", "-m", "msg"},
	} {
		d := Evaluate(args)
		if d.Kind != evalctx.KindAllow {
			t.Errorf("Evaluate(%v) = %+v, want Allow", args, d)
		}
	}
}

func TestPushWithoutForceAllows(t *testing.T) {
	d := Evaluate([]string{"git", "push", "origin", "feature-branch"})
	if d.Kind != evalctx.KindAllow {
		t.Errorf("push without force = %+v, want Allow", d)
	}
}

func TestPushForceToProtectedBranchAsks(t *testing.T) {
	d := Evaluate([]string{"git", "push", "--force", "origin", "main"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("push --force to main = %+v, want Ask", d)
	}
}

func TestPushForceToFeatureBranchStillAsks(t *testing.T) {
	// Force push always asks regardless of branch, per policy.
	d := Evaluate([]string{"git", "push", "--force", "origin", "feature-branch"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("push --force = %+v, want Ask", d)
	}
}

func TestResetHardAsks(t *testing.T) {
	d := Evaluate([]string{"git", "reset", "--hard", "HEAD~1"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("reset --hard = %+v, want Ask", d)
	}
}

func TestResetSoftAllows(t *testing.T) {
	d := Evaluate([]string{"git", "reset", "--soft", "HEAD~1"})
	if d.Kind != evalctx.KindAllow {
		t.Errorf("reset --soft = %+v, want Allow", d)
	}
}

func TestCleanForceAsks(t *testing.T) {
	d := Evaluate([]string{"git", "clean", "-fd"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("clean -fd = %+v, want Ask", d)
	}
}

func TestBranchDeleteProtectedAsks(t *testing.T) {
	d := Evaluate([]string{"git", "branch", "-D", "main"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("branch -D main = %+v, want Ask", d)
	}
}

func TestFilterBranchAlwaysAsks(t *testing.T) {
	d := Evaluate([]string{"git", "filter-branch", "--force"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("filter-branch = %+v, want Ask", d)
	}
}

func TestDangerousConfigFlagAsks(t *testing.T) {
	d := Evaluate([]string{"git", "-c", "core.sshCommand=evil", "fetch"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("git -c core.sshCommand = %+v, want Ask", d)
	}
}

func TestDangerousConfigFsmonitorFlagAsks(t *testing.T) {
	d := Evaluate([]string{"git", "-c", `core.fsmonitor="rm -rf /"`, "status"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("git -c core.fsmonitor = %+v, want Ask", d)
	}
}

func TestConfigDangerousKeyAsks(t *testing.T) {
	d := Evaluate([]string{"git", "config", "alias.yolo", "!rm -rf /"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("git config alias.yolo = %+v, want Ask", d)
	}
}

func TestConfigFilterCleanKeyAsks(t *testing.T) {
	d := Evaluate([]string{"git", "config", "filter.lfs.clean", "git-lfs clean -- %f"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("git config filter.lfs.clean = %+v, want Ask", d)
	}
}

func TestConfigBenignKeyAllows(t *testing.T) {
	d := Evaluate([]string{"git", "config", "user.name", "foo"})
	if d.Kind != evalctx.KindAllow {
		t.Errorf("git config user.name = %+v, want Allow", d)
	}
}

func TestUnrecognizedSubcommandAsks(t *testing.T) {
	d := Evaluate([]string{"git", "some-unknown-subcommand"})
	if d.Kind != evalctx.KindAsk {
		t.Errorf("unknown subcommand = %+v, want Ask", d)
	}
}
