package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	spacetraders "github.com/spacetraders-community/go-spacetraders"
	"github.com/spacetraders-community/go-spacetraders/observability"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "spacetraders",
	Short:         "Interact with the SpaceTraders API",
	Version:       fmt.Sprintf("%s (%s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.spacetraders.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().String("token", "", "account token (or SPACETRADERS_TOKEN env)")
	rootCmd.PersistentFlags().String("base-url", spacetraders.DefaultBaseURL, "API base URL")

	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".spacetraders")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("spacetraders")
	viper.AutomaticEnv()

	// Missing config file is fine: token can come from flag or env.
	_ = viper.ReadInConfig()
}

// newClient builds an API client from the resolved configuration.
func newClient() (*spacetraders.Client, error) {
	logger := zap.NewNop()
	if viper.GetBool("verbose") {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
	}

	client, err := spacetraders.New(spacetraders.Config{
		Token:   viper.GetString("token"),
		BaseURL: viper.GetString("base_url"),
		Timeout: 30 * time.Second,
		Logger:  observability.NewZapLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("build client: %w", err)
	}
	return client, nil
}
