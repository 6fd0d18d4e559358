// imglab - RGBA8 image processing from the command line or a desktop window

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"image-processing-engine/internal/algorithms"
	"image-processing-engine/internal/config"
	"image-processing-engine/internal/io"
)

const (
	AppName    = "imglab"
	AppID      = "com.imglab.image-processing-engine"
	AppVersion = "1.0.0"
)

var (
	debugMode  bool
	logLevel   string
	configPath string
	workers    int
	decoder    string

	logger *logrus.Logger
	cfg    *config.Config
	loader *io.ImageLoader
)

var rootCmd = &cobra.Command{
	Use:     AppName,
	Short:   "Pixel-level image processing on RGBA8 images",
	Long:    `imglab applies arithmetic, logic, histogram, filtering, edge and morphology operations to images.`,
	Version: AppVersion,
	// usage is noise once flags have parsed
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		logger, err = initLogger(cfg.Debug, cfg.LogLevel)
		if err != nil {
			return err
		}
		if cfg.Debug && cmd.Flags().Changed("log-level") {
			// an explicit level wins over --debug
			lvl, _ := logrus.ParseLevel(cfg.LogLevel)
			logger.SetLevel(lvl)
		}

		algorithms.SetMaxWorkers(cfg.Workers)

		d, err := io.ParseDecoder(cfg.Decoder)
		if err != nil {
			return err
		}
		loader = io.NewImageLoader(logger, d)

		logger.WithFields(logrus.Fields{
			"version": AppVersion,
			"workers": algorithms.MaxWorkers(),
			"decoder": d,
			"config":  configPath,
		}).Debug("Starting " + AppName)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose logging")
	flags.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&configPath, "config", "", "TOML configuration file")
	flags.IntVar(&workers, "workers", 0, "Worker goroutines per operation (0 = GOMAXPROCS)")
	flags.StringVar(&decoder, "decoder", "native", "Image decoder: native or opencv")
}

// loadConfig reads --config and lets explicitly set flags override it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		c.Debug = debugMode
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("workers") {
		c.Workers = workers
	}
	if flags.Changed("decoder") {
		c.Decoder = decoder
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool, level string) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	if debugMode {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		l.Debug("Debug logging enabled")
		return l, nil
	}

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	l.SetLevel(parsed)
	return l, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
