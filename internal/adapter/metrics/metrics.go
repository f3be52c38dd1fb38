package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pscheid92/hello-env/internal/platform/version"
)

const namespace = "hello_env"

// NewRegistry creates a Prometheus registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler returns an http.Handler that serves Prometheus metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// NewBuildInfo registers a constant gauge carrying the build information as labels.
func NewBuildInfo(reg prometheus.Registerer, info version.Info) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Build information of the running binary.",
		ConstLabels: prometheus.Labels{
			"version":    info.Version,
			"commit":     info.Commit,
			"go_version": info.GoVersion,
		},
	})
	g.Set(1)
	reg.MustRegister(g)
	return g
}

// AdminServer serves /metrics on its own listener so the public port keeps
// only the application routes.
type AdminServer struct {
	echo *echo.Echo
	addr string
}

func NewAdminServer(addr string, reg *prometheus.Registry) *AdminServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/metrics", echo.WrapHandler(Handler(reg)))

	return &AdminServer{echo: e, addr: addr}
}

// ServeHTTP exposes the admin routes for tests.
func (a *AdminServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.echo.ServeHTTP(w, r)
}

func (a *AdminServer) Start() error {
	slog.Info("Starting metrics server", "addr", a.addr)
	if err := a.echo.Start(a.addr); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	return nil
}

func (a *AdminServer) Shutdown(ctx context.Context) error {
	if err := a.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}
	return nil
}
