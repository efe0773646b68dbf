package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnoccur/internal/iofs"
	"github.com/gnames/gnoccur/internal/iologger"
	"github.com/gnames/gnoccur/pkg/config"
	app "github.com/gnames/gnoccur/pkg/gnoccur"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "gnoccur",
	Short:   "Score species occurrence proximity to an area of interest",
	Long: `gnoccur checks where species have been recorded and how close
those records fall to a project area.

It reads an area of interest (GeoJSON polygon) and a species list
(CSV), queries the GBIF occurrence API for each species, and scores
every one from 0 to 10 by proximity: 10 when records fall inside the
area, decreasing with distance, 0 beyond the relevance threshold.

It can also run a bulk occurrence search over the area itself,
optionally within a circular radius around the area centroid, and
enrich plant records with life-form data from Flora e Funga do
Brasil.`,
	PersistentPreRunE: bootstrap,
	RunE:              runRoot,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "gnoccur version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnoccur")

	rootCmd.AddCommand(getAnalyzeCmd())
	rootCmd.AddCommand(getSearchCmd())
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions(),
	// i.e. persistent configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNOCCUR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// GBIF client configuration
	v.BindEnv("gbif.api_url", "GNOCCUR_GBIF_API_URL")
	v.BindEnv("gbif.page_size", "GNOCCUR_GBIF_PAGE_SIZE")
	v.BindEnv("gbif.max_attempts", "GNOCCUR_GBIF_MAX_ATTEMPTS")
	v.BindEnv("gbif.retry_base_sec", "GNOCCUR_GBIF_RETRY_BASE_SEC")
	v.BindEnv("gbif.page_delay_ms", "GNOCCUR_GBIF_PAGE_DELAY_MS")
	v.BindEnv("gbif.timeout_sec", "GNOCCUR_GBIF_TIMEOUT_SEC")

	// Analysis configuration
	v.BindEnv("analysis.max_relevant_km", "GNOCCUR_ANALYSIS_MAX_RELEVANT_KM")
	v.BindEnv("analysis.record_cap", "GNOCCUR_ANALYSIS_RECORD_CAP")
	v.BindEnv("analysis.circle_segments", "GNOCCUR_ANALYSIS_CIRCLE_SEGMENTS")

	// Trait lookup configuration
	v.BindEnv("trait.api_url", "GNOCCUR_TRAIT_API_URL")
	v.BindEnv("trait.timeout_sec", "GNOCCUR_TRAIT_TIMEOUT_SEC")

	// Log configuration
	v.BindEnv("log.level", "GNOCCUR_LOG_LEVEL")
	v.BindEnv("log.format", "GNOCCUR_LOG_FORMAT")
	v.BindEnv("log.destination", "GNOCCUR_LOG_DESTINATION")

	v.AutomaticEnv()
}
