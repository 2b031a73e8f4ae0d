package dataflow

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func AddConnectionCommandlineArgs(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("project", "", "Google Cloud project jobs are submitted to")
	rootCmd.PersistentFlags().String("region", "us-central1", "Dataflow regional endpoint")
	rootCmd.PersistentFlags().String("endpoint", "", "override the Dataflow API endpoint (for testing)")
	viper.BindPFlag("project", rootCmd.PersistentFlags().Lookup("project"))
	viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
}

func ExtractCommandlineConnectionDetails() *ConnectionDetails {
	connectionDetails := &ConnectionDetails{}
	viper.Unmarshal(connectionDetails)
	return connectionDetails
}
