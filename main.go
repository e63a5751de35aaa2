package main

import (
	"fmt"
	"os"

	"fjacquet/finanai/cmd/add"
	"fjacquet/finanai/cmd/alerts"
	"fjacquet/finanai/cmd/analyze"
	"fjacquet/finanai/cmd/charts"
	"fjacquet/finanai/cmd/goal"
	"fjacquet/finanai/cmd/importcmd"
	"fjacquet/finanai/cmd/root"
	"fjacquet/finanai/internal/config"
	"fjacquet/finanai/internal/logging"
)

func init() {
	// .env first and without output, so LOG_LEVEL from it applies
	config.LoadEnv(logging.NewLogrusAdapter("error", "text"))

	// set the global level before any logger is used
	logging.SetAllLogLevels(config.LevelFromEnv())

	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(alerts.Cmd)
	root.Cmd.AddCommand(charts.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(goal.Cmd)
	root.Cmd.AddCommand(importcmd.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
