package cmd

import (
	"fmt"
	"os"
	"strconv"

	"yt2audio/infrastructure/config"
	"yt2audio/infrastructure/filesystem"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// DefaultOutput is the default output writer for config commands
var DefaultOutput OutputWriter = os.Stdout

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show the configuration or change the output directory.

Examples:
  yt2audio config show
  yt2audio config set-directory ~/Music`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunConfigShowWithDependencies(GetConfig(), filesystem.NewChecker(), DefaultOutput)
	},
}

var configSetDirectoryCmd = &cobra.Command{
	Use:   "set-directory DIR",
	Short: "Set the directory converted audio is written to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunConfigSetDirectoryWithDependencies(GetConfig(), cfgFile, args[0], filesystem.NewChecker(), DefaultOutput)
	},
}

var configSetColorCmd = &cobra.Command{
	Use:   "set-color true|false",
	Short: "Enable or disable colored output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := strconv.ParseBool(args[0])
		if err != nil {
			return fmt.Errorf("invalid value %q: expected true or false", args[0])
		}
		mgr := config.NewConfigManager(GetConfig(), configPathOrDefault(cfgFile))
		if err := mgr.SetColor(enabled); err != nil {
			return err
		}
		fmt.Fprintf(DefaultOutput, "Color set to %t\n", enabled)
		return nil
	},
}

var configSetTableStyleCmd = &cobra.Command{
	Use:   "set-table-style STYLE",
	Short: "Set the table style used for video details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := config.NewConfigManager(GetConfig(), configPathOrDefault(cfgFile))
		if err := mgr.SetTableStyle(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(DefaultOutput, "Table style set to %s\n", mgr.Config().Display.TableStyle)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetDirectoryCmd)
	configCmd.AddCommand(configSetColorCmd)
	configCmd.AddCommand(configSetTableStyleCmd)
}

func configPathOrDefault(path string) string {
	if path == "" {
		return config.DefaultPath
	}
	return path
}

// RunConfigShowWithDependencies prints the configuration
func RunConfigShowWithDependencies(cfg *config.Config, checker config.DirectoryChecker, out OutputWriter) error {
	resolved := cfg.OutputDirectory(checker)
	if resolved == "" {
		resolved = "(current directory)"
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(tableStyle(cfg.Display.TableStyle))
	tw.AppendHeader(table.Row{"Setting", "Value"})
	tw.AppendRows([]table.Row{
		{"directory", cfg.Directory},
		{"output directory", resolved},
		{"display.color", strconv.FormatBool(cfg.Display.Color)},
		{"display.table_style", cfg.Display.TableStyle},
		{"ffmpeg.ffmpeg_path", cfg.FFmpeg.FFmpegPath},
		{"ffmpeg.ffprobe_path", cfg.FFmpeg.FFprobePath},
		{"download.retries", strconv.Itoa(cfg.Download.Retries)},
	})
	tw.Render()
	return nil
}

// RunConfigSetDirectoryWithDependencies updates and saves the output directory
func RunConfigSetDirectoryWithDependencies(cfg *config.Config, configPath, dir string, checker config.DirectoryChecker, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPathOrDefault(configPath))
	if err := mgr.SetDirectory(dir); err != nil {
		return err
	}

	fmt.Fprintf(out, "Directory set to %s\n", cfg.Directory)
	if cfg.Directory != "" && cfg.OutputDirectory(checker) == "" {
		fmt.Fprintln(out, "Warning: directory does not exist; files will be written to the current directory")
	}
	return nil
}
