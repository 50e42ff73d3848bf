// repoindex scans a source tree, counts lines per file, and writes three
// plain-text reports: a directory hierarchy, summary statistics, and a
// subdomain documentation guide.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phobologic/repoindex/internal/guide"
	"github.com/phobologic/repoindex/internal/index"
	"github.com/phobologic/repoindex/internal/persist"
)

var version = "dev"

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "repoindex [path]",
		Short:         "Index a repository's size and structure into text reports",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runScan(root, v, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.String("repo-name", "", "repository name used in reports and file names (default: basename of path)")
	flags.String("repo-url", "", "repository URL recorded in the summary report")
	flags.Int("max-depth", -1, "maximum directory depth to descend (-1 for unlimited)")
	flags.Int("workers", 0, "worker count for line counting (0 = number of CPUs)")
	flags.Bool("no-parallel", false, "count lines on a single thread")
	flags.StringP("output-dir", "o", ".", "directory to write the report files into")
	flags.StringSlice("exclude", nil, "additional directory names to exclude")
	flags.Bool("gitignore", false, "also skip paths matched by the root .gitignore")
	flags.String("guide", "", "YAML file with the documentation guide domain table")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	return cmd
}

// initConfig layers configuration: defaults, then an optional config file in
// ~/.config/repoindex or the working directory, then REPOINDEX_* environment
// variables, then flags.
func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "repoindex"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("REPOINDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return v.BindPFlags(cmd.Flags())
}

func runScan(root string, v *viper.Viper, stdout, stderr io.Writer) error {
	level := zerolog.WarnLevel
	if v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()

	repoName := v.GetString("repo-name")
	if repoName == "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving root: %w", err)
		}
		repoName = filepath.Base(abs)
	}

	domains := guide.Default()
	if path := v.GetString("guide"); path != "" {
		var err error
		domains, err = guide.Load(path)
		if err != nil {
			return err
		}
	}

	idx, err := index.Scan(root, index.Options{
		RepoName:      repoName,
		RepoURL:       v.GetString("repo-url"),
		MaxDepth:      v.GetInt("max-depth"),
		Parallel:      !v.GetBool("no-parallel"),
		Workers:       v.GetInt("workers"),
		ExtraExcludes: v.GetStringSlice("exclude"),
		UseGitignore:  v.GetBool("gitignore"),
		Logger:        log,
	})
	if err != nil {
		return err
	}

	written, err := persist.WriteAll(idx, domains, v.GetString("output-dir"), repoName)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Indexed %s: %s files, %s lines across %s directories\n",
		repoName,
		humanize.Comma(int64(idx.TotalFiles)),
		humanize.Comma(int64(idx.TotalLines)),
		humanize.Comma(int64(idx.TotalDirectories)))
	for _, w := range written {
		fmt.Fprintf(stdout, "  wrote %s (%s)\n", w.Path, humanize.Bytes(uint64(w.Size)))
	}
	return nil
}
