package main

import (
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"

	"image-processing-engine/internal/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Launch the desktop front end",
	Run: func(cmd *cobra.Command, args []string) {
		logger.Info("Starting desktop front end")

		fyneApp := app.NewWithID(AppID)
		fyneApp.SetIcon(theme.DocumentIcon())
		fyneApp.Settings().SetTheme(theme.DefaultTheme())

		mainApp := gui.NewApplication(fyneApp, logger, loader, cfg.Params, cfg.Debug)
		mainApp.ShowAndRun()

		logger.Info("Application shutting down gracefully")
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
