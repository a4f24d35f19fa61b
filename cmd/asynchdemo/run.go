package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/baxromumarov/asynch/observe"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline until the consumer goes idle",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindRunFlags(v, cmd.Flags())
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log := newLogger(cfg.Log, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sum, err := run(ctx, cfg, log)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sent=%d received=%d distinct=%d\n",
				sum.Sent, sum.Received, sum.Distinct)
			return err
		},
	}
	addRunFlags(cmd.Flags())
	return cmd
}

// addRunFlags registers the pipeline flags. Their defaults mirror
// setDefaults for the help text; unset flags never override viper.
func addRunFlags(f *pflag.FlagSet) {
	f.Int("legs", 2, "number of merged mailboxes (at least 2)")
	f.Int("buffer", 8, "capacity of each mailbox")
	f.Int("count", 20, "number of values to send")
	f.String("filter", "all", "values to accept: all, even or odd")
	f.Int("scale", 1, "multiplier applied to accepted values")
	f.Int("rate", 0, "maximum sends per second, 0 for unlimited")
	f.Duration("idle", 200*time.Millisecond, "stop after receiving nothing for this long")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
}

// bindRunFlags binds the flags registered by addRunFlags to v. It runs when
// a command executes, since run and config register the same keys.
func bindRunFlags(v *viper.Viper, f *pflag.FlagSet) {
	for _, name := range []string{"legs", "buffer", "count", "filter", "scale", "rate", "idle"} {
		_ = v.BindPFlag(name, f.Lookup(name))
	}
	_ = v.BindPFlag("metrics.addr", f.Lookup("metrics-addr"))
}

// run executes the pipeline and, if configured, serves metrics while it
// runs.
func run(ctx context.Context, cfg Config, log zerolog.Logger) (Summary, error) {
	reg := prometheus.NewRegistry()
	metrics := observe.NewMetrics(reg, cfg.Metrics.Namespace)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           newMetricsRouter(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			return serveMetrics(gctx, srv, log)
		})
	}

	var sum Summary
	g.Go(func() error {
		// The server only stops once the pipeline is done.
		defer cancel()
		var err error
		sum, err = runPipeline(gctx, cfg, log, metrics)
		return err
	})

	if err := g.Wait(); err != nil {
		return sum, err
	}
	log.Info().
		Int("sent", sum.Sent).
		Int("received", sum.Received).
		Int("distinct", sum.Distinct).
		Msg("pipeline finished")
	return sum, nil
}

func serveMetrics(ctx context.Context, srv *http.Server, log zerolog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("serving metrics")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		return nil
	}
}
