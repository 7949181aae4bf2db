package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	dashboardinadapter "launchdash/internal/modules/dashboard/adapter/in"
	dashboardoutadapter "launchdash/internal/modules/dashboard/adapter/out"
	dashboardservice "launchdash/internal/modules/dashboard/service"
	dashboardusecase "launchdash/internal/modules/dashboard/usecase"
	launchesinadapter "launchdash/internal/modules/launches/adapter/in"
	launchesoutadapter "launchdash/internal/modules/launches/adapter/out"
	"launchdash/internal/modules/launches/dto"
	launchesservice "launchdash/internal/modules/launches/service"
	launchesusecase "launchdash/internal/modules/launches/usecase"
	"launchdash/internal/platform/clock"
	"launchdash/internal/platform/config"
	"launchdash/internal/platform/id"
	"launchdash/internal/platform/logging"
	uiapp "launchdash/internal/ui/app"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config        config.Config
	Logger        *zap.Logger
	LaunchesCLI   launchesinadapter.CLIHandler
	DashboardCLI  dashboardinadapter.CLIHandler
	DashboardTUI  dashboardinadapter.TUIHandler
	DashboardHTTP *dashboardinadapter.HTTPHandler
}

// New wires every module and loads the dataset. A load failure is the one
// fatal error of the program and is returned as is.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)

	reader := launchesoutadapter.NewCSVTableReader(&http.Client{}, cfg.FetchTimeout)
	launchesUC := launchesusecase.NewInteractor(
		launchesservice.NewLaunchService(clock.SystemClock{}, id.UUID{}, reader, launchesoutadapter.NewSQLiteSnapshotWriter()),
		logger,
	)
	if _, err := launchesUC.Load(ctx, dto.LoadInput{Location: cfg.DataURL}); err != nil {
		return nil, err
	}

	dashboardUC := dashboardusecase.NewInteractor(dashboardservice.NewDashboardService(
		dashboardoutadapter.NewLaunchesDatasetAdapter(launchesUC),
		dashboardoutadapter.NewGoChartRenderer(),
		nil,
		cfg.ChartWidth,
		cfg.ChartHeight,
	))

	dashboardHTTP := dashboardinadapter.NewHTTPHandler(dashboardUC, logger, cfg.ChartWidth, cfg.ChartHeight)
	if cfg.Debug {
		dashboardHTTP.LogRequestsAt(zapcore.InfoLevel)
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		LaunchesCLI:   launchesinadapter.NewCLIHandler(launchesUC),
		DashboardCLI:  dashboardinadapter.NewCLIHandler(dashboardUC),
		DashboardTUI:  dashboardinadapter.NewTUIHandler(dashboardUC),
		DashboardHTTP: dashboardHTTP,
	}, nil
}

// Serve listens on the configured address until ctx is cancelled.
func Serve(ctx context.Context, app *App) error {
	ln, err := net.Listen("tcp", app.Config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.Config.Addr, err)
	}
	return ServeListener(ctx, app, ln)
}

// ServeListener serves the dashboard on ln and shuts down gracefully when
// ctx is cancelled.
func ServeListener(ctx context.Context, app *App, ln net.Listener) error {
	logger := app.Logger.Named("server")
	srv := &http.Server{
		Handler:           app.DashboardHTTP.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("dashboard listening", zap.String("addr", "http://"+ln.Addr().String()), zap.Bool("debug", app.Config.Debug))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.DashboardTUI, app.LaunchesCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
