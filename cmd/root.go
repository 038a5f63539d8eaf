package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/dealflow/cmd/deal"
	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/config"
	"github.com/hance08/dealflow/internal/errhandler"
	"github.com/hance08/dealflow/internal/remote"
	"github.com/hance08/dealflow/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var cfgFile string

// session builds the App once per process.
type session struct {
	migrations fs.FS
	app        *app.App
	cleanup    func()
}

func (s *session) App() (*app.App, error) {
	if s.app != nil {
		return s.app, nil
	}

	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	application, cleanup, err := app.NewApp(cfg, s.migrations)
	if err != nil {
		return nil, err
	}

	s.app = application
	s.cleanup = cleanup
	return application, nil
}

// RemoteApp is App for commands that talk to the transaction store. On the
// first interactive run it asks where the store lives.
func (s *session) RemoteApp() (*app.App, error) {
	a, err := s.App()
	if err != nil {
		return nil, err
	}
	changed, err := initAPI(a.Config)
	if err != nil {
		return nil, err
	}
	if changed {
		a.Remote = remote.New(a.Config.API, a.Logger)
	}
	return a, nil
}

func (s *session) Close() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	sess := &session{migrations: migrations}
	defer sess.Close()

	rootCmd := NewRootCmd(sess)
	if err := rootCmd.Execute(); err != nil {
		sess.Close()
		errhandler.HandleError(err)
	}
}

func NewRootCmd(sess *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dealflow",
		Short: "dealflow is a terminal board for a brokerage transaction pipeline",
		Long: `dealflow shows the brokerage's transactions as a pipeline board
(In Progress, Conditional, Firm, Closed) and moves deals between columns.

Moves show up on the board immediately and are confirmed with the
transaction store in the background; a rejected move snaps back.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")

	rootCmd.AddCommand(NewBoardCmd(sess.RemoteApp))
	rootCmd.AddCommand(NewMoveCmd(sess.RemoteApp))
	rootCmd.AddCommand(NewServeCmd(sess.App))
	rootCmd.AddCommand(NewInfoCmd(sess.App))
	rootCmd.AddCommand(deal.NewDealCmd(sess.App))

	return rootCmd
}

func initConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return nil, fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if err := createDefaultConfig(appDir); err != nil {
			return nil, fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	setDefaults(config.NewDefault())

	viper.SetEnvPrefix("DEALFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg := config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return cfg, nil
}

// setDefaults registers every key so env overrides apply on Unmarshal.
func setDefaults(def *config.Config) {
	viper.SetDefault("api.base_url", def.API.BaseURL)
	viper.SetDefault("api.token", def.API.Token)
	viper.SetDefault("api.timeout", def.API.Timeout)
	viper.SetDefault("database.path", def.Database.Path)
	viper.SetDefault("server.host", def.Server.Host)
	viper.SetDefault("server.port", def.Server.Port)
	viper.SetDefault("server.shutdown_timeout", def.Server.ShutdownTimeout)
	viper.SetDefault("log.level", def.Log.Level)
	viper.SetDefault("log.format", def.Log.Format)
}

// initAPI runs the first-run wizard when nothing says where the store is
// and a user is there to answer.
func initAPI(cfg *config.Config) (bool, error) {
	if viper.InConfig("api.base_url") || os.Getenv("DEALFLOW_API_BASE_URL") != "" {
		return false, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, nil
	}

	settings, err := prompts.PromptInitAPI(cfg.API.BaseURL)
	if err != nil {
		return false, err
	}

	viper.Set("api.base_url", settings.BaseURL)
	viper.Set("api.token", settings.Token)

	if err := viper.WriteConfig(); err != nil {
		return false, fmt.Errorf("failed to save config to file: %w", err)
	}

	cfg.API.BaseURL = settings.BaseURL
	cfg.API.Token = settings.Token
	if err := cfg.Validate(); err != nil {
		return false, err
	}

	pterm.Success.Printf("Configuration saved. Transaction store set to: %s\n", settings.BaseURL)
	return true, nil
}

func createDefaultConfig(appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
