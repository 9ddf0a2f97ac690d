package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/konditional-dev/konditional/criteria"
	"github.com/konditional-dev/konditional/konditional"
	"github.com/konditional-dev/konditional/value"
)

var (
	evalSnapshotPath string
	evalFlagName     string
	evalPlatform     string
	evalLocale       string
	evalAppVersion   string
	evalUser         string
	evalAxes         []string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one flag from a snapshot file against a request context",
	Long: `Evaluate decodes a snapshot file and runs one flag's decision
procedure for a synthetic request context built from flags.

Examples:
  konditional evaluate --snapshot snap.json --flag feature::web::dark_mode --user u1
  konditional evaluate --snapshot snap.json --flag feature::web::dark_mode --user u1 --platform ios --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := loadSnapshot(evalSnapshotPath)
		if err != nil {
			return err
		}

		id, err := value.ParseFlagID(evalFlagName)
		if err != nil {
			return fmt.Errorf("invalid --flag: %w", err)
		}

		ctx, err := buildContext()
		if err != nil {
			return err
		}

		result := konditional.EvaluateWithTrace(container, id, ctx)
		if quiet {
			return nil
		}
		return printEvalResult(newEvalResult(id.Render(), result), resolvedFormat())
	},
}

func buildContext() (criteria.Context, error) {
	ctx := criteria.Context{PlatformTag: evalPlatform, LocaleTag: evalLocale}

	if evalAppVersion != "" {
		v, err := value.ParseVersion(evalAppVersion)
		if err != nil {
			return ctx, fmt.Errorf("invalid --app-version: %w", err)
		}
		ctx.AppVersion = v
	}

	if evalUser != "" {
		sid, err := value.StableIDOf(evalUser)
		if err != nil {
			return ctx, fmt.Errorf("invalid --user: %w", err)
		}
		ctx.StableID = sid
	} else {
		ctx.StableIDFallback = true
	}

	if len(evalAxes) > 0 {
		axes := make(map[string]string, len(evalAxes))
		for _, kv := range evalAxes {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return ctx, fmt.Errorf("invalid --axis %q: expected key=value", kv)
			}
			axes[k] = v
		}
		ctx.Axes = axes
	}

	return ctx, nil
}

func init() {
	evaluateCmd.Flags().StringVar(&evalSnapshotPath, "snapshot", "", "path to a snapshot JSON file (required)")
	evaluateCmd.Flags().StringVar(&evalFlagName, "flag", "", "rendered flag id, e.g. feature::web::dark_mode (required)")
	evaluateCmd.Flags().StringVar(&evalPlatform, "platform", "", "platform tag, e.g. ios")
	evaluateCmd.Flags().StringVar(&evalLocale, "locale", "", "locale tag, e.g. en-US")
	evaluateCmd.Flags().StringVar(&evalAppVersion, "app-version", "", "semantic app version, e.g. 2.3.0")
	evaluateCmd.Flags().StringVar(&evalUser, "user", "", "stable id to bucket on; omit to evaluate as an unidentified user")
	evaluateCmd.Flags().StringSliceVar(&evalAxes, "axis", nil, "axis criterion as key=value, repeatable")
	_ = evaluateCmd.MarkFlagRequired("snapshot")
	_ = evaluateCmd.MarkFlagRequired("flag")

	rootCmd.AddCommand(evaluateCmd)
}
