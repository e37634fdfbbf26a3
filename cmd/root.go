package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wiktorkowalski/blog/internal/config"
	"github.com/wiktorkowalski/blog/pkg/logger"
)

var (
	cfgFile   string
	appConfig config.Config
	log       zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Content pipeline for the blog",
	Long: `blog loads Markdown posts with front matter, sorts and slugs them,
and emits the build artifacts the site serves: an ordered post manifest,
a client-side search index, rendered post fragments, and static assets.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	log = logger.New()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Bool("strict", false, "treat content parse errors as fatal")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("siteTitle", "Wiktor Kowalski")
	v.SetDefault("author", "Wiktor Kowalski")
	v.SetDefault("baseURL", "")
	v.SetDefault("contentDir", "content")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "public")
	v.SetDefault("pageSize", 10)
	v.SetDefault("recentCount", 5)
	v.SetDefault("strict", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BLOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlag("strict", cmd.Flags().Lookup("strict")); err != nil {
		return fmt.Errorf("binding strict flag: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
			log.Debug().Msg("no config file found, using defaults and environment")
		} else {
			return fmt.Errorf("reading config file: %w", err)
		}
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}

	return nil
}
