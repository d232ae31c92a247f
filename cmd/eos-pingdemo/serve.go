package main

import (
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nspcc-dev/eos-pingdemo/misc"
	"github.com/nspcc-dev/eos-pingdemo/pkg/config"
	"github.com/nspcc-dev/eos-pingdemo/pkg/metrics"
	httputil "github.com/nspcc-dev/eos-pingdemo/pkg/util/http"
	"github.com/nspcc-dev/eos-pingdemo/pkg/web"
	"github.com/nspcc-dev/eos-pingdemo/pkg/widget"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the ping page",
		Long:  "Serve the ping page together with enabled pprof and prometheus services until SIGINT, SIGTERM or SIGHUP.",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

type namedServer struct {
	name string
	srv  *httputil.Server
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	cli, err := newEOSClient(ctx, cfg, log)
	if err != nil {
		return err
	}

	opts := []widget.Option{widget.WithLogger(log)}

	if cfg.Prometheus.Enabled {
		opts = append(opts, widget.WithMetrics(metrics.NewPingMetrics(prometheus.DefaultRegisterer, misc.Version)))
	}

	w, err := widget.New(widget.Prm{
		Target:  pingTarget(cfg),
		Invoker: cli,
	}, opts...)
	if err != nil {
		return err
	}
	defer w.Close()

	gin.SetMode(gin.ReleaseMode)

	servers := initHTTPServers(cfg, log, web.NewHandler(w, log))

	listeners := make([]net.Listener, 0, len(servers))

	for i := range servers {
		l, err := servers[i].srv.Listen()
		if err != nil {
			for j := range listeners {
				_ = listeners[j].Close()
			}

			return fmt.Errorf("%s server: %w", servers[i].name, err)
		}

		log.Debug("listening", zap.String("server", servers[i].name), zap.Stringer("address", l.Addr()))

		listeners = append(listeners, l)
	}

	srvErr := make(chan error, len(servers))

	for i := range servers {
		s, l := servers[i], listeners[i]

		go func() {
			if err := s.srv.Serve(l); err != nil {
				srvErr <- fmt.Errorf("%s server: %w", s.name, err)
			}
		}()
	}

	log.Info("application started",
		zap.String("version", misc.Version),
		zap.String("address", cfg.Web.Address),
		zap.String("contract", cfg.EOS.Contract),
		zap.String("endpoint", cfg.EOS.Endpoint),
	)

	select {
	case <-ctx.Done():
	case err = <-srvErr:
		log.Error("HTTP server failure", zap.Error(err))
	}

	var shutdownWG errgroup.Group

	for i := range servers {
		s := servers[i]

		shutdownWG.Go(func() error {
			err := s.srv.Shutdown()
			if err != nil {
				log.Debug("could not shutdown HTTP server",
					zap.String("server", s.name),
					zap.Error(err),
				)
			}

			return err
		})
	}

	shutdownErr := shutdownWG.Wait()
	if err == nil && shutdownErr != nil {
		err = shutdownErr
	}

	log.Info("application stopped")

	return err
}

func initHTTPServers(cfg *config.Config, log *zap.Logger, page http.Handler) []namedServer {
	items := []struct {
		service config.BasicService
		name    string
		handler func() http.Handler
	}{
		{config.BasicService{
			Enabled:         true,
			Address:         cfg.Web.Address,
			ShutdownTimeout: cfg.Web.ShutdownTimeout,
		}, "web", func() http.Handler { return page }},
		{cfg.Prometheus, "prometheus", promhttp.Handler},
		{cfg.Pprof, "pprof", httputil.Handler},
	}

	servers := make([]namedServer, 0, len(items))

	for _, item := range items {
		if !item.service.Enabled {
			log.Info(item.name + " is disabled, skip")
			continue
		}

		log.Info(item.name+" is enabled", zap.String("address", item.service.Address))

		var prm httputil.Prm

		prm.Address = item.service.Address
		prm.Handler = item.handler()

		servers = append(servers, namedServer{
			name: item.name,
			srv: httputil.New(prm,
				httputil.WithShutdownTimeout(item.service.ShutdownTimeout),
			),
		})
	}

	return servers
}
