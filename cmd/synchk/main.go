package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/githubnext/synchk/pkg/cli"
	"github.com/githubnext/synchk/pkg/config"
	"github.com/githubnext/synchk/pkg/console"
	"github.com/githubnext/synchk/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var (
	verbose    bool
	configFile string
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"ext":         "extensions",
	"exclude":     "exclude",
	"skip-hidden": "skip_hidden",
	"workers":     "workers",
	"format":      "format",
	"color":       "color",
	"context":     "context",
	"verbose":     "verbose",
}

// loadConfig resolves the configuration for cmd: defaults, config file,
// SYNCHK_* environment variables and the flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("failed to bind flag --%s: %w", flag, err)
		}
	}
	return config.Load(v, configFile)
}

func mustLoadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatConfigError(err))
		os.Exit(1)
	}
	console.SetColorMode(console.ColorMode(cfg.Color))
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Lightweight syntax checker for web source files",
	Long: `synchk - lightweight syntax checking for web source files

synchk flags structural defects in PHP, JavaScript, CSS, HTML and JSON files:
unmatched brackets, unclosed or mismatched tags, statements missing a
semicolon and malformed JSON. It does not build a parse tree, so it is fast
enough to run on every save or commit.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check a file or directory for syntax errors",
	Long: `Check a file, or every supported file below a directory, for syntax errors.

Directories are walked recursively. Directories whose name starts with '.' are
skipped, as are directories listed with --exclude. Only files with a supported
extension (.php, .js, .css, .html, .htm, .json) are checked during a walk; a
single file given explicitly is always checked.

The exit status is 0 when no syntax errors are found and 1 otherwise.

Examples:
  ` + constants.CLIName + ` check
  ` + constants.CLIName + ` check src/
  ` + constants.CLIName + ` check index.html --context
  ` + constants.CLIName + ` check . --exclude node_modules,vendor
  ` + constants.CLIName + ` check . --format json
  ` + constants.CLIName + ` check src/ --watch`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := "."
		if len(args) > 0 {
			target = args[0]
		}

		cfg := mustLoadConfig(cmd)
		opts := cli.CheckOptionsFromConfig(cfg)
		report := cli.ReportOptionsFromConfig(cfg)

		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			if err := cli.WatchTarget(os.Stdout, target, opts, report); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				os.Exit(1)
			}
			return
		}

		if err := cli.RunCheck(os.Stdout, target, opts, report); err != nil {
			if !errors.Is(err, cli.ErrFindings) {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			}
			os.Exit(1)
		}
	},
}

var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Serve the check_syntax tool over the Model Context Protocol (stdio)",
	Long: `Run an MCP server on stdin/stdout exposing one tool, check_syntax.

The tool takes a path (file or directory) and returns the JSON report and a
one-line summary. Walk settings come from the same configuration as check.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig(cmd)
		if err := cli.RunMCPServer(cmd.Context(), cli.CheckOptionsFromConfig(cfg)); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("%s version %s", constants.CLIName, version)))
		fmt.Println(console.FormatInfoMessage("Lightweight syntax checker for web source files"))
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output showing detailed information")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default is "+constants.DefaultConfigFile+" in the working directory)")

	// Walk flags shared by check and mcp-server
	for _, cmd := range []*cobra.Command{checkCmd, mcpServerCmd} {
		cmd.Flags().StringSlice("ext", constants.DefaultExtensions, "File extensions to check during directory walks")
		cmd.Flags().StringSlice("exclude", nil, "Directory names to skip during directory walks")
		cmd.Flags().Bool("skip-hidden", true, "Skip directories whose name starts with '.'")
		cmd.Flags().IntP("workers", "j", constants.MaxConcurrentChecks, "Number of files checked in parallel")
	}

	// Output flags
	checkCmd.Flags().StringP("format", "f", "text", "Report format (text, json, yaml)")
	checkCmd.Flags().String("color", "auto", "Colorize output (auto, always, never)")
	checkCmd.Flags().Bool("context", false, "Show the source lines around each finding")
	checkCmd.Flags().BoolP("watch", "w", false, "Watch for changes and re-check modified files")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mcpServerCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	// Set version information in the CLI package
	cli.SetVersionInfo(version)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
