package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnjosHD-Black/bmw-offer-pilot/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	        __  __                 _ _       _
	  ___  / _|/ _| ___ _ __ _ __ (_) | ___ | |_
	 / _ \| |_| |_ / _ \ '__| '_ \| | |/ _ \| __|
	| (_) |  _|  _|  __/ |  | |_) | | | (_) | |_
	 \___/|_| |_|  \___|_|  | .__/|_|_|\___/ \__|
	                        |_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "offerpilot",
	Short: "Vehicle quotation generator.",
	Long: LOGO + `offerpilot turns a selected set of vehicle option codes into a priced,
categorized configuration and renders it as an Excel workbook or a PDF quotation.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.offerpilot.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("dbpath", "offerpilot.sqlite", "Path to the sqlite catalog database")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a JSON catalog file (bypasses the database)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".offerpilot")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.offerpilot.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("catalog.sync_url", "")
	viper.SetDefault("catalog.sync_token", "")
	viper.SetDefault("server.username", "")
	viper.SetDefault("server.password", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
