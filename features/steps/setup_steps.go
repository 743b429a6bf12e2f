//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"yt2audio/cmd"
	"yt2audio/infrastructure/config"

	"github.com/cucumber/godog"
)

type setupContext struct {
	tempDir         string
	configPath      string
	originalContent string
	output          *bytes.Buffer
	err             error
}

var SharedSetupContext = &setupContext{}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedSetupContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "setup-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "config.yml")
		testCtx.originalContent = ""
		testCtx.output = &bytes.Buffer{}
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^no config file exists for setup$`, testCtx.noConfigFileExistsForSetup)
	ctx.Step(`^a config file already exists for setup$`, testCtx.aConfigFileAlreadyExistsForSetup)
	ctx.Step(`^I run the setup command with directory "([^"]*)", color "([^"]*)" and table style "([^"]*)"$`, testCtx.iRunTheSetupCommandWith)
	ctx.Step(`^I run the setup command and decline to overwrite$`, testCtx.iRunTheSetupCommandAndDeclineToOverwrite)
	ctx.Step(`^the config should have directory "([^"]*)"$`, testCtx.theConfigShouldHaveDirectory)
	ctx.Step(`^the config should have table style "([^"]*)"$`, testCtx.theConfigShouldHaveTableStyle)
	ctx.Step(`^the existing config should be unchanged$`, testCtx.theExistingConfigShouldBeUnchanged)
	ctx.Step(`^I set the config directory to "([^"]*)"$`, testCtx.iSetTheConfigDirectoryTo)
}

func (s *setupContext) noConfigFileExistsForSetup() error {
	if _, err := os.Stat(s.configPath); err == nil {
		return fmt.Errorf("config file unexpectedly exists at %s", s.configPath)
	}
	return nil
}

func (s *setupContext) aConfigFileAlreadyExistsForSetup() error {
	s.originalContent = "directory: /existing\n"
	return os.WriteFile(s.configPath, []byte(s.originalContent), 0644)
}

func (s *setupContext) iRunTheSetupCommandWith(dir, color, style string) error {
	prompter := &MockPrompter{
		inputResponses:   []string{dir},
		confirmResponses: []bool{color == "yes"},
		selectResponses:  []string{style},
	}
	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath, s.output)
	return s.err
}

func (s *setupContext) iRunTheSetupCommandAndDeclineToOverwrite() error {
	prompter := &MockPrompter{confirmResponses: []bool{false}}
	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath, s.output)
	return s.err
}

func (s *setupContext) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (s *setupContext) theConfigShouldHaveDirectory(expected string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Directory != expected {
		return fmt.Errorf("expected directory %q, got %q", expected, cfg.Directory)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveTableStyle(expected string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Display.TableStyle != expected {
		return fmt.Errorf("expected table style %q, got %q", expected, cfg.Display.TableStyle)
	}
	return nil
}

func (s *setupContext) theExistingConfigShouldBeUnchanged() error {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return err
	}
	if string(data) != s.originalContent {
		return fmt.Errorf("config changed: %q", data)
	}
	return nil
}

func (s *setupContext) iSetTheConfigDirectoryTo(dir string) error {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return err
	}
	return cmd.RunConfigSetDirectoryWithDependencies(cfg, s.configPath, dir, alwaysDir{}, s.output)
}

// alwaysDir reports every path as an existing directory
type alwaysDir struct{}

func (alwaysDir) IsDir(string) bool { return true }
