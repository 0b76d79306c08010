package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abemedia/tokentrim"
	"github.com/abemedia/tokentrim/internal/config"
	"github.com/abemedia/tokentrim/internal/logger"
	"github.com/abemedia/tokentrim/internal/output"
	"github.com/abemedia/tokentrim/internal/runner"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var ext string

	cmd := &cobra.Command{
		Use:   "tokentrim [flags] [<input-dir> <output-dir>]",
		Short: "Strip redundant whitespace from source trees",
		Long: `Tokentrim mirrors a directory tree while removing trailing whitespace and
redundant blank lines from every eligible file. String literals, comments
and fenced code blocks are kept byte-for-byte, JSON is compacted and HTML
and CSS lose their comments and inter-tag whitespace.

If no directories are given, stdin is trimmed to stdout.

Examples:
  tokentrim ./src ./src-trimmed
  tokentrim --extensions py,go --preserve-md ./repo ./out
  tokentrim --ext py < main.py
  tokentrim watch ./src ./src-trimmed`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
			}
			return nil
		},
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.runStdin(cmd, ext)
			}
			return a.runTree(cmd, args[0], args[1])
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.tokentrim.yaml)")
	pf.StringSlice("extensions", tokentrim.DefaultExtensions, "extensions to trim, everything else is copied")
	pf.Bool("preserve-md", false, "copy markdown through untouched")
	pf.Int("workers", 0, "number of files processed at once (0 for one per CPU)")
	pf.Bool("atomic", true, "write outputs through a temporary file and a rename")
	pf.String("format", "text", "summary format (text, json, yaml)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.BoolP("quiet", "q", false, "only log errors")
	pf.Bool("log-json", false, "log as JSON")

	for key, flag := range map[string]string{
		"extensions":  "extensions",
		"preserve_md": "preserve-md",
		"workers":     "workers",
		"atomic":      "atomic",
		"format":      "format",
		"verbose":     "verbose",
		"quiet":       "quiet",
		"log_json":    "log-json",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	cmd.Flags().StringVar(&ext, "ext", ".txt", "extension whose dialect is used for stdin")

	cmd.AddCommand(newWatchCmd(a), newVersionCmd())
	return cmd
}

// setup reads the config file and environment, validates the result and
// sets up logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigName(".tokentrim")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("TOKENTRIM")
	a.v.AutomaticEnv()
	config.SetDefaults(a.v)

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.Init(logger.Options{
		Debug:  cfg.Verbose,
		Quiet:  cfg.Quiet,
		JSON:   cfg.LogJSON,
		Output: cmd.ErrOrStderr(),
	})
	if used := a.v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}
	return nil
}

func (a *app) trimmer() *tokentrim.Trimmer {
	return tokentrim.New(a.cfg.Trim())
}

func (a *app) runner(input, out string) (*runner.Runner, error) {
	return runner.New(a.trimmer(), runner.Options{
		Input:   input,
		Output:  out,
		Workers: a.cfg.Workers,
		Atomic:  a.cfg.Atomic,
	})
}

// runStdin trims stdin to stdout. Content that cannot be trimmed is written
// back unchanged.
func (a *app) runStdin(cmd *cobra.Command, ext string) error {
	input, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	out := input
	res, err := a.trimmer().Trim(tokentrim.Document{Name: "<stdin>", Ext: ext, Content: input})
	if err != nil {
		logger.Warn("writing input unchanged", "error", err)
	} else {
		out = res.Content
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// runTree mirrors input into out and prints the summary.
func (a *app) runTree(cmd *cobra.Command, input, out string) error {
	r, err := a.runner(input, out)
	if err != nil {
		return err
	}
	logger.Debug("starting run", "input", input, "output", out, "extensions", a.cfg.Extensions)

	stats, err := r.Run(cmd.Context())
	if stats != nil {
		if werr := a.writeSummary(cmd, stats); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

func (a *app) writeSummary(cmd *cobra.Command, stats *runner.Stats) error {
	return output.New(cmd.OutOrStdout(), output.ParseFormat(a.cfg.Format)).WriteSummary(stats)
}
