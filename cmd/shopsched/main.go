package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/srand/shopsched/pkg/gantt"
	"github.com/srand/shopsched/pkg/jobshop"
	"github.com/srand/shopsched/pkg/log"
	"github.com/srand/shopsched/pkg/utils"
)

var config *Config

var rootCmd = &cobra.Command{
	Use:   "shopsched [flags] file ...",
	Short: "Greedy list scheduler for job shop instances",
	Args:  cobra.MinimumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viper.SetEnvPrefix("shopsched")
		viper.AutomaticEnv()

		viper.SetConfigName("shopsched.yaml")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/shopsched/")
		viper.AddConfigPath("$HOME/.config/shopsched")
		viper.AddConfigPath(".")

		viper.ReadInConfig()

		if err := utils.UnmarshalConfig(*viper.GetViper(), &config); err != nil {
			log.Fatal(err)
		}

		verbosity, err := cmd.Flags().GetCount("verbose")
		if err != nil {
			panic(err)
		}

		switch {
		case verbosity >= 2:
			log.SetLevel(log.TraceLevel)
		case verbosity >= 1:
			log.SetLevel(log.DebugLevel)
		}

		config.Log()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		output := make([]string, len(args))

		var eg errgroup.Group
		for i, path := range args {
			i, path := i, path
			eg.Go(func() error {
				schedule, err := solve(path)
				if err != nil {
					log.DebugError(err)
					return err
				}

				renderer := &gantt.Renderer{Color: !config.NoColor}
				output[i] = renderer.Chart(schedule) + "\n" + renderer.Summary(schedule) + "\n"
				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			return err
		}

		for _, text := range output {
			fmt.Print(text)
		}

		return nil
	},
}

// Load an instance from disk and schedule it with the configured policy.
func solve(path string) (*jobshop.Schedule, error) {
	id, _ := uuid.NewRandom()
	log.Infof("new - schedule - id: %s, file: %s", id, path)

	inst, err := jobshop.Load(afero.NewOsFs(), path)
	if err != nil {
		return nil, err
	}

	schedule, err := jobshop.New(inst)
	if err != nil {
		return nil, err
	}
	schedule.Verify = config.Verify

	if config.Heuristic == "" {
		err = schedule.RunLongestFirst()
	} else {
		var heuristic jobshop.Heuristic
		heuristic, err = jobshop.HeuristicByName(config.Heuristic)
		if err != nil {
			return nil, err
		}
		err = schedule.Run(heuristic)
	}
	if err != nil {
		return nil, err
	}

	log.Infof("end - schedule - id: %s, makespan: %d", id, schedule.Makespan())
	return schedule, nil
}

func init() {
	rootCmd.PersistentFlags().StringP("heuristic", "H", "",
		fmt.Sprintf("Job order heuristic %v (default: stage-local longest first)", jobshop.HeuristicNames()))
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("verify", false, "Verify timeline invariants after every placement")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Verbosity (repeatable)")

	viper.BindPFlag("heuristic", rootCmd.PersistentFlags().Lookup("heuristic"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("verify", rootCmd.PersistentFlags().Lookup("verify"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
