package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfg is the viper instance backing this CLI's own configuration
// (env vars + an optional config file), kept separate from the
// snapshot/flag data the commands operate on. Grounded on the teacher's
// internal/config package's viper usage, trimmed to what a single-binary
// demo CLI needs: no DSNs, no API keys, just output preferences.
var cfg = viper.New()

// initConfig wires env-var configuration: KONDITIONAL_FORMAT overrides
// the --format default, KONDITIONAL_CONFIG points at an optional YAML
// config file (~/.konditional/config.yaml if unset).
func initConfig() {
	cfg.SetEnvPrefix("konditional")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	if path := cfg.GetString("config"); path != "" {
		cfg.SetConfigFile(path)
	} else {
		cfg.SetConfigName("config")
		cfg.SetConfigType("yaml")
		cfg.AddConfigPath("$HOME/.konditional")
	}
	_ = cfg.ReadInConfig() // optional; silently absent is fine
}

// bindConfigDefaults sets viper's defaults from each persistent flag and
// binds the flag so an explicit --format always wins over KONDITIONAL_FORMAT,
// which in turn wins over the flag's own zero-value default.
func bindConfigDefaults(cmd *cobra.Command) {
	cfg.SetDefault("format", "table")
	_ = cfg.BindPFlag("format", cmd.PersistentFlags().Lookup("format"))
}

// resolvedFormat returns the effective output format once flags and env
// vars have both been read.
func resolvedFormat() OutputFormat {
	return OutputFormat(cfg.GetString("format"))
}
