package cmd

import (
	"os"

	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	provide app.Provider
}

func NewInfoCmd(provide app.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, transaction store, database path, and system details.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				provide: provide,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	a, err := r.provide()
	if err != nil {
		return err
	}

	configPath := a.Config.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbPath, err := a.DBPath()
	if err != nil {
		return err
	}

	dbExists := false
	if _, err := os.Stat(dbPath); err == nil {
		dbExists = true
	}

	items := views.SystemInfoItem{
		ConfigPath: configPath,
		DBPath:     dbPath,
		DBExists:   dbExists,
		APIBaseURL: a.Config.API.BaseURL,
		HasToken:   a.Config.API.Token != "",
		LogLevel:   a.Config.Log.Level,
		AppDataDir: appDataDirOrUnknown(),
	}

	return views.RenderSystemInfo(items)
}

func appDataDirOrUnknown() string {
	dir, err := app.GetAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
