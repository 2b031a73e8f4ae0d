package cmd

import (
	"context"
	"os"
	"regexp"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/danielnorberg/scio/internal/harness"
	"github.com/danielnorberg/scio/pkg/dataflow"
	"github.com/danielnorberg/scio/pkg/dataflow/util"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("name", ".*", "regular expression selecting the benchmarks to run")
	viper.BindPFlag("name", runCmd.Flags().Lookup("name"))
}

// settings is the optional per-run settings file.
type settings struct {
	CommonArgs []string `yaml:"commonArgs"`
}

var runCmd = &cobra.Command{
	Use:   "run [./path/to/settings.yaml]",
	Short: "Run the benchmark suite",
	Long: `Run the benchmark suite, one Dataflow job per benchmark configuration.

	Example settings.yaml:

	commonArgs:
	  - --autoscalingAlgorithm=NONE
	  - --numWorkers=4

`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSettings := &settings{}
		if len(args) > 0 {
			if err := util.BindYaml(args[0], runSettings); err != nil {
				log.Error(err)
				os.Exit(1)
			}
		}

		filter, err := regexp.Compile(viper.GetString("name"))
		if err != nil {
			log.Errorf("invalid benchmark name filter: %s", err)
			os.Exit(1)
		}

		ctx := context.Background()
		connectionDetails := dataflow.ExtractCommandlineConnectionDetails()
		svc, err := dataflow.CreateService(ctx, connectionDetails)
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}

		app := harness.New()
		app.Params.ConnectionDetails = connectionDetails
		app.Params.CommonArgs = runSettings.CommonArgs
		app.Engine = dataflow.NewEngine(svc, connectionDetails)
		app.Metadata = dataflow.NewMetadataService(svc, connectionDetails)

		if err := app.Run(ctx, filter); err != nil {
			log.Error(err)
			os.Exit(1)
		}
	},
}
