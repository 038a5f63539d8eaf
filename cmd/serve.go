package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hance08/dealflow/internal/app"
	"github.com/hance08/dealflow/internal/model"
	"github.com/hance08/dealflow/internal/server"
	"github.com/hance08/dealflow/internal/service"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type serveFlags struct {
	Host    string
	Port    int
	Seed    bool
	Verbose bool
}

type serveRunner struct {
	provide app.Provider
	flags   *serveFlags
}

func NewServeCmd(provide app.Provider) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the transaction store API on the local database",
		Long: `Serve the transaction store HTTP API backed by the local SQLite database.

Point api.base_url at this server to use the board without a hosted store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &serveRunner{
				provide: provide,
				flags:   flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&flags.Host, "host", "", "Listen host (overrides server.host)")
	cmd.Flags().IntVarP(&flags.Port, "port", "p", 0, "Listen port (overrides server.port)")
	cmd.Flags().BoolVar(&flags.Seed, "seed", false, "Add sample transactions when the database is empty")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every request")

	return cmd
}

func (r *serveRunner) Run(ctx context.Context) error {
	a, err := r.provide()
	if err != nil {
		return err
	}

	cfg := a.Config.Server
	if r.flags.Host != "" {
		cfg.Host = r.flags.Host
	}
	if r.flags.Port != 0 {
		cfg.Port = r.flags.Port
	}
	if r.flags.Verbose && a.Logger.Level > pterm.LogLevelInfo {
		a.Logger.Level = pterm.LogLevelInfo
	}

	dbStore, err := a.Store()
	if err != nil {
		return err
	}
	svc, err := a.Service()
	if err != nil {
		return err
	}

	if r.flags.Seed {
		n, err := seedTransactions(svc.Transaction)
		if err != nil {
			return err
		}
		if n > 0 {
			pterm.Success.Printf("Added %d sample transactions\n", n)
		}
	}

	handler := server.NewRouter(a.Logger, server.RouterDependencies{
		Health: dbStore,
		API:    server.NewAPIHandlers(a.Logger, svc.Transaction),
		Token:  a.Config.API.Token,
	})
	srv := server.New(a.Logger, cfg, handler)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown(context.Background())
	})

	pterm.Info.Printf("Serving transactions on http://%s (Ctrl+C to stop)\n", srv.Addr())
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	pterm.Info.Println("Server stopped")
	return nil
}

// seedTransactions fills an empty database with one deal per column.
func seedTransactions(svc *service.TransactionService) (int, error) {
	existing, err := svc.ListTransactions(1)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	samples := []service.TransactionInput{
		{Name: "Maple Ave Condo", Address: "12 Maple Ave, Unit 4", Price: decimal.NewFromInt(450000), Parties: []string{"J. Chen", "R. Patel"}, Status: model.StatusInProgress},
		{Name: "Harbour View Townhouse", Address: "88 Harbour Rd", Price: decimal.NewFromInt(715000), Parties: []string{"M. Ortiz"}, Status: model.StatusInProgress},
		{Name: "Elm Street Bungalow", Address: "301 Elm St", Price: decimal.NewFromInt(389900), Parties: []string{"A. Nguyen", "S. Brooks"}, Status: model.StatusConditional},
		{Name: "Lakeside Lot", Address: "Lot 7, Lakeshore Dr", Price: decimal.NewFromInt(125000), Status: model.StatusFirm},
		{Name: "Queen St Duplex", Address: "1450 Queen St W", Price: decimal.RequireFromString("999000.50"), Parties: []string{"K. Singh"}, Status: model.StatusClosed},
	}

	for _, in := range samples {
		if _, err := svc.CreateTransaction(in); err != nil {
			return 0, fmt.Errorf("failed to seed %q: %w", in.Name, err)
		}
	}
	return len(samples), nil
}
