package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artwork/internal/server"
	"github.com/matzehuels/artwork/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render server",
		Long: `Run an HTTP server exposing the render pipeline.

Routes:
  POST /v1/render   render an inline description
  GET  /v1/methods  list shape methods
  GET  /healthz     liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), c.Config.GetString(cfgServerAddr), noCache)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	_ = c.Config.BindPFlag(cfgServerAddr, cmd.Flags().Lookup("addr"))

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	handler := server.New(runner,
		server.WithLogger(c.Logger),
		server.WithDefaults(pipeline.Options{
			Background:  c.Config.GetString(cfgRenderBackground),
			Scale:       c.Config.GetFloat64(cfgRenderScale),
			Supersample: c.Config.GetInt(cfgRenderSupersample),
		}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	url := "http://" + displayAddr(addr)
	printSuccess("Listening on %s", StyleLink.Render(url))
	printNextStep("List methods", "curl -s "+url+"/v1/methods")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down", "timeout", shutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
