package main

import (
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/srand/shopsched/pkg/gantt"
	"github.com/srand/shopsched/pkg/log"
	"github.com/srand/shopsched/pkg/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags] file",
	Short: "Solve an instance and serve the schedule over HTTP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, err := solve(args[0])
		if err != nil {
			log.DebugError(err)
			return err
		}

		renderer := &gantt.Renderer{Color: false}

		r := echo.New()
		r.HideBanner = true
		r.Use(service.HttpLogger)
		service.NewHttpHandler(schedule, renderer, r)

		log.Info("Listening on http", config.ListenHttp)
		return r.Start(config.ListenHttp)
	},
}

func init() {
	serveCmd.Flags().StringP("listen-http", "l", ":8080", "Address to listen on for HTTP connections")
	viper.BindPFlag("listen_http", serveCmd.Flags().Lookup("listen-http"))

	rootCmd.AddCommand(serveCmd)
}
