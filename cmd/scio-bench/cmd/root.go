package cmd

import (
	"os"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielnorberg/scio/pkg/dataflow"
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.scio-bench.yaml)")
	dataflow.AddConnectionCommandlineArgs(rootCmd)
}

var rootCmd = &cobra.Command{
	Use:   "scio-bench command",
	Short: "Command line utility to benchmark data-processing pipelines on Dataflow",
	Long: `
Command line utility to benchmark data-processing pipelines on Dataflow.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:

project: my-gcp-project
region: us-central1
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

var cfgFile string

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".scio-bench")
	}

	viper.AutomaticEnv()

	if err := viper.MergeInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// The default config file is optional.
		default:
			log.Errorf("error reading config file %s: %s", viper.ConfigFileUsed(), err)
			os.Exit(1)
		}
	}
}
