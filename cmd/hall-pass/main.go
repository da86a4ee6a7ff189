// Command hall-pass is a PreToolUse hook for Claude Code: given a tool
// call on stdin, it decides whether to allow it outright or ask the user
// for confirmation, and writes that verdict back out as JSON. Grounded on
// the teacher's cmd bootstrap, rebuilt on github.com/spf13/cobra in the
// style of the retrieval pack's other CLI front ends.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/anthonysapien/hall-pass/internal/audit"
	"github.com/anthonysapien/hall-pass/internal/config"
	"github.com/anthonysapien/hall-pass/internal/engine"
	"github.com/anthonysapien/hall-pass/internal/evalctx"
	"github.com/anthonysapien/hall-pass/internal/gitpolicy"
	"github.com/anthonysapien/hall-pass/internal/hookio"
	"github.com/anthonysapien/hall-pass/internal/hplog"
	"github.com/anthonysapien/hall-pass/internal/pathpolicy"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hall-pass",
		Short: "PreToolUse authorization hook for Claude Code",
		// Invoking the binary with no subcommand runs the hook itself, so
		// it can be registered directly as the hook command.
		RunE: runHook,
	}

	root.AddCommand(newHookCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newInstallCmd())
	root.AddCommand(newUninstallCmd())

	return root
}

func newHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hook",
		Short: "Read a PreToolUse payload from stdin and write a verdict to stdout",
		RunE:  runHook,
	}
}

func loadEngineConfig() (*engine.Config, *config.Config, error) {
	fileCfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	engineCfg := engine.NewConfig()
	engineCfg.Registry.ExtendSafe(fileCfg.Commands.Safe...)
	engineCfg.Registry.ExtendAlwaysAsk(fileCfg.Commands.AlwaysAsk...)
	gitpolicy.ExtendProtectedBranches(fileCfg.Git.ProtectedBranches...)

	for _, g := range fileCfg.Paths.Protected {
		engineCfg.Paths.Extend(pathpolicy.PathRule{Glob: g, Tier: pathpolicy.TierProtected})
	}
	for _, g := range fileCfg.Paths.ReadOnly {
		engineCfg.Paths.Extend(pathpolicy.PathRule{Glob: g, Tier: pathpolicy.TierReadOnly})
	}
	for _, g := range fileCfg.Paths.NoDelete {
		engineCfg.Paths.Extend(pathpolicy.PathRule{Glob: g, Tier: pathpolicy.TierNoDelete})
	}

	return engineCfg, fileCfg, nil
}

func runHook(cmd *cobra.Command, _ []string) error {
	engineCfg, fileCfg, err := loadEngineConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	debugEnabled := fileCfg.Debug.Enabled || os.Getenv("HALL_PASS_DEBUG") == "1"
	log := hplog.New(debugEnabled)

	auditLogger, err := audit.Open(auditPath(fileCfg))
	if err != nil {
		// Audit logging is ambient, not load-bearing: fall back to a
		// discarding logger rather than failing the hook over it.
		auditLogger = &audit.Logger{}
	}
	defer auditLogger.Close()

	in, err := hookio.ReadInput(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("malformed hook input: %w", err)
	}
	log.Debug().Str("tool", in.ToolName).Msg("received hook input")

	if hookio.ShouldSkipEvaluation(in.ToolName) {
		return hookio.Passthrough(cmd.OutOrStdout())
	}

	decision := evaluateTool(engineCfg, *in)

	auditLogger.Log(audit.Event{
		Timestamp: time.Now(),
		SessionID: in.SessionID,
		ToolName:  in.ToolName,
		Decision:  decisionLabel(decision),
		Reason:    decision.Reason,
	})
	log.Debug().Str("decision", decisionLabel(decision)).Str("reason", decision.Reason).Msg("evaluated")

	if decision.Kind == evalctx.KindPass {
		return hookio.Passthrough(cmd.OutOrStdout())
	}

	return hookio.WriteOutput(cmd.OutOrStdout(), hookio.FromDecision("PreToolUse", decision))
}

func evaluateTool(cfg *engine.Config, in hookio.HookInput) evalctx.Decision {
	switch in.ToolName {
	case "Bash":
		var bashIn hookio.BashToolInput
		if err := json.Unmarshal(in.ToolInput, &bashIn); err != nil {
			return evalctx.Ask("could not parse Bash tool input")
		}
		return engine.EvaluateCommand(cfg, in.CWD, bashIn.Command)
	case "Write", "Edit", "NotebookEdit":
		var fileIn hookio.FileToolInput
		if err := json.Unmarshal(in.ToolInput, &fileIn); err != nil {
			return evalctx.Ask("could not parse file tool input")
		}
		return engine.EvaluateFileOp(cfg, fileIn.Path())
	default:
		return evalctx.Ask(in.ToolName + " is not a recognized tool")
	}
}

func auditPath(cfg *config.Config) string {
	if !cfg.Audit.Enabled {
		return ""
	}
	return cfg.Audit.Path
}

func decisionLabel(d evalctx.Decision) string {
	switch d.Kind {
	case evalctx.KindAllow:
		return "allow"
	case evalctx.KindPass:
		return "pass"
	default:
		return "ask"
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <command>",
		Short: "Evaluate a literal command string and print the verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engineCfg, _, err := loadEngineConfig()
			if err != nil {
				return err
			}
			wd, _ := os.Getwd()
			decision := engine.EvaluateCommand(engineCfg, wd, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", decisionLabel(decision), decision.Reason)
			if decision.Guidance != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "guidance: %s\n", decision.Guidance)
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the loaded configuration file as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, fileCfg, err := loadEngineConfig()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fileCfg)
		},
	})
	return configCmd
}

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Print the PreToolUse hook registration to add to Claude Code's settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Add the following to your Claude Code settings under hooks.PreToolUse:")
			fmt.Fprintln(cmd.OutOrStdout(), `{"matcher": "Bash|Write|Edit|NotebookEdit", "hooks": [{"type": "command", "command": "hall-pass hook"}]}`)
			return nil
		},
	}
}

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Print instructions for removing the hook registration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Remove the hall-pass entry from hooks.PreToolUse in your Claude Code settings.")
			return nil
		},
	}
}
