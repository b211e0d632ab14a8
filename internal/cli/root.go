// Package cli wires the command-line surface to the application
package cli

import (
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bethropolis/cocat/internal/app"
	"github.com/bethropolis/cocat/internal/config"
)

// NewRootCommand builds the cocat root command.
func NewRootCommand() *cobra.Command {
	cfg := config.Default()
	var noRecursive bool

	cmd := &cobra.Command{
		Use:   "cocat <directory>",
		Short: "Concatenate the text files of a directory tree into one stream",
		Long: `cocat walks a directory tree and concatenates every file that passes
the configured filters into a single formatted output stream.

Filtering combines an allow/deny list of file extensions with regex
patterns read from an ignore-file inside the target directory (default
".ignore"). Each non-comment line of that file is a regular expression
matched against the full path relative to the target, using forward
slashes on every platform.

Examples:
  cocat ./src --include go,md
  cocat ./src -o dump.txt --exclude log
  cocat ./project --ignore-file .cocatignore --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.RootDir = args[0]
			cfg.Recursive = !noRecursive
			// Env-backed settings: COCAT_* defaults, explicit flags win.
			cfg.IgnoreFile = viper.GetString("ignore-file")
			cfg.Format = viper.GetString("format")
			cfg.NoColor = viper.GetBool("no-color")
			return app.New(cfg, afero.NewOsFs()).Run(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.IgnoreFile, "ignore-file", "i", cfg.IgnoreFile, "name of the ignore file inside the target directory")
	flags.StringVarP(&cfg.OutputFile, "output", "o", "", "write output to this file instead of stdout")
	flags.StringSliceVar(&cfg.Include, "include", nil, "only include files with these extensions (without dots)")
	flags.StringSliceVar(&cfg.Exclude, "exclude", nil, "exclude files with these extensions (ignored when --include is given)")
	flags.BoolVar(&noRecursive, "no-recursive", false, "do not descend into subdirectories")
	flags.BoolVar(&cfg.FollowDirSymlinks, "follow-dir-symlinks", false, "descend into directory symlinks (may loop on cyclic links)")
	flags.BoolVar(&cfg.UseGitignore, "gitignore", false, "also honor repository .gitignore rules")
	flags.StringVar(&cfg.Format, "format", cfg.Format, "output format: text, json or markdown")
	flags.Int64Var(&cfg.MaxFileSizeMB, "max-size", 0, "max file size to include in MB (0 = no limit)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose diagnostics on stderr")
	flags.BoolVar(&cfg.Quiet, "quiet", false, "suppress warnings as well")
	flags.BoolVar(&cfg.NoColor, "no-color", false, "disable colored diagnostics")

	viper.SetEnvPrefix("COCAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlag("ignore-file", flags.Lookup("ignore-file"))
	viper.BindPFlag("format", flags.Lookup("format"))
	viper.BindPFlag("no-color", flags.Lookup("no-color"))

	return cmd
}
