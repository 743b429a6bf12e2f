package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"yt2audio/infrastructure/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yml.

This command asks where converted audio should be saved and how
output should be displayed.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, cfgFile, os.Stdout)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, output OutputWriter) error {
	if configPath == "" {
		configPath = config.DefaultPath
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm(filepath.Base(configPath)+" already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(output, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(output, "Welcome to yt2audio setup!")
	fmt.Fprintln(output)

	cfg := config.Default()

	if err := promptDirectory(prompter, cfg); err != nil {
		return err
	}

	if err := promptDisplay(prompter, cfg); err != nil {
		return err
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(output)
	fmt.Fprintf(output, "Configuration saved to %s\n", configPath)
	return nil
}

func promptDirectory(prompter Prompter, cfg *config.Config) error {
	dir, err := prompter.Input("Where should audio files go? (empty for the current directory)", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Directory = strings.TrimSpace(dir)
	return nil
}

func promptDisplay(prompter Prompter, cfg *config.Config) error {
	color, err := prompter.Confirm("Use colored output?", cfg.Display.Color)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Display.Color = color

	style, err := prompter.Select("Table style for video details:", config.TableStyles, cfg.Display.TableStyle)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Display.TableStyle = style
	return nil
}
