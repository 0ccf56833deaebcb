package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ivs-digital/ivsite"
)

var (
	cfgFile string
	siteCfg ivsite.SiteConfig
)

var rootCmd = &cobra.Command{
	Use:           "ivsite",
	Short:         "IVS company website",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ivsite.yaml)")
	rootCmd.AddCommand(serveCmd, postsCmd, versionCmd)
}

// envKeys maps config keys to the environment variables that override them.
var envKeys = map[string]string{
	"name":                    "SITE_NAME",
	"url":                     "SITE_URL",
	"description":             "SITE_DESCRIPTION",
	"addr":                    "ADDR",
	"static_dir":              "STATIC_DIR",
	"log_level":               "LOG_LEVEL",
	"whatsapp_url":            "WHATSAPP_URL",
	"analytics_enabled":       "ANALYTICS_ENABLED",
	"analytics_database_path": "ANALYTICS_DATABASE_PATH",
	"retention_days":          "ANALYTICS_RETENTION_DAYS",
	"admin_password":          "ADMIN_PASSWORD",
	"session_secret":          "SESSION_SECRET",
	"cookie_secure":           "COOKIE_SECURE",
	"thumb_cache_ttl":         "THUMB_CACHE_TTL",
}

func loadConfig() error {
	v := viper.New()

	v.SetDefault("analytics_enabled", true)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("ivsite")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	siteCfg = ivsite.SiteConfig{}
	if err := v.Unmarshal(&siteCfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
