package main

import (
	"fmt"
	"os"

	"github.com/alrs/upload-scripts/internal/config"
	"github.com/alrs/upload-scripts/internal/pipeline"
	"github.com/alrs/upload-scripts/pkg/types"
	"github.com/spf13/cobra"
)

var (
	appVersion = "0.1.0"
	cfgFile    string
	source     string
	mediaType  string
	requireGPS bool
	jobs       int
	manifest   string
	logFile    string
	logJSON    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "osc",
	Short: "Discover and sequence photos/videos for upload",
	Long: `osc scans a directory for photos or videos, orders them into a
sequence (by filename numbering, or by GPS timestamp when GPS validation is
enabled), and writes a manifest the upload stage consumes.`,
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run sequence discovery",
	RunE:  runDiscovery,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(appVersion)
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(versionCmd)

	discoverCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	discoverCmd.Flags().StringVarP(&source, "source", "s", "", "directory holding the sequence")
	discoverCmd.Flags().StringVarP(&mediaType, "type", "t", "", "media type: photo, video")
	discoverCmd.Flags().BoolVar(&requireGPS, "require-gps", false, "only keep photos with a full GPS fix, ordered by GPS time")
	discoverCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of concurrent metadata readers (0=auto)")
	discoverCmd.Flags().StringVar(&manifest, "manifest", "", "manifest output path")
	discoverCmd.Flags().StringVar(&logFile, "log-file", "", "log file path")
	discoverCmd.Flags().BoolVar(&logJSON, "log-json", false, "output JSON logs")
}

func runDiscovery(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if source != "" {
		cfg.Source = source
	}
	if mediaType != "" {
		cfg.Type = types.Kind(mediaType)
	}
	if requireGPS {
		cfg.RequireGPS = true
	}
	if jobs > 0 {
		cfg.Jobs = jobs
	}
	if manifest != "" {
		cfg.ManifestFile = manifest
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logJSON {
		cfg.LogJSON = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Close()

	_, err = p.Run()
	return err
}
