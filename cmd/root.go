package cmd

import (
	"fmt"
	"os"

	"yt2audio/infrastructure/config"
	"yt2audio/infrastructure/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	log     *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "yt2audio",
	Short: "Download the best audio track of a video and convert it",
	Long: `yt2audio fetches the highest bitrate audio stream of a YouTube video,
optionally trims it to a time range, and converts it to aac or mp3.

  - Show video details for a URL
  - Download and convert in one command
  - Work interactively, one video after another

Example:
  yt2audio download --url https://youtu.be/dQw4w9WgXcQ --start 10 --end "(1, 30)" --name clip --format mp3`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		log = l
		cmd.SetContext(logger.WithContext(cmd.Context(), l))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic logging")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}

	var err error
	cfg, err = config.LoadOrDefault(cfgFile)
	if err != nil {
		// An unreadable or invalid file is reported, then defaults apply
		fmt.Fprintf(os.Stderr, "warning: %v; using defaults\n", err)
		cfg = config.Default()
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}
