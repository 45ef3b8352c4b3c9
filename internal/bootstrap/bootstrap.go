package bootstrap

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	deliveryinadapter "ridelog/internal/modules/delivery/adapter/in"
	deliveryoutadapter "ridelog/internal/modules/delivery/adapter/out"
	deliveryservice "ridelog/internal/modules/delivery/service"
	deliveryusecase "ridelog/internal/modules/delivery/usecase"
	exportinadapter "ridelog/internal/modules/export/adapter/in"
	exportoutadapter "ridelog/internal/modules/export/adapter/out"
	exportservice "ridelog/internal/modules/export/service"
	exportusecase "ridelog/internal/modules/export/usecase"
	reportinadapter "ridelog/internal/modules/report/adapter/in"
	reportoutadapter "ridelog/internal/modules/report/adapter/out"
	reportservice "ridelog/internal/modules/report/service"
	reportusecase "ridelog/internal/modules/report/usecase"
	trackerinadapter "ridelog/internal/modules/tracker/adapter/in"
	trackeroutadapter "ridelog/internal/modules/tracker/adapter/out"
	trackerservice "ridelog/internal/modules/tracker/service"
	trackerusecase "ridelog/internal/modules/tracker/usecase"
	"ridelog/internal/platform/clock"
	"ridelog/internal/platform/config"
	"ridelog/internal/platform/id"
	uiapp "ridelog/internal/ui/app"
)

type App struct {
	TrackerCLI  trackerinadapter.CLIHandler
	ReportCLI   reportinadapter.CLIHandler
	ExportCLI   exportinadapter.CLIHandler
	DeliveryCLI deliveryinadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	sessionStore := trackeroutadapter.NewFileSessionStore(cfg.StatePath())
	entryProjector, err := trackeroutadapter.NewSQLiteEntryProjector(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("new entry projector: %w", err)
	}
	trackerSvc := trackerservice.NewTrackerService(clk, ids, sessionStore, entryProjector,
		trackeroutadapter.NewMarkdownArchiveStore(cfg.ArchiveDir()))
	trackerUC := trackerusecase.NewInteractor(trackerSvc)

	reportUC := reportusecase.NewInteractor(reportservice.NewReportService(
		clk,
		reportoutadapter.NewTrackerIntervalSource(trackerUC),
	))

	deliveryUC := deliveryusecase.NewInteractor(deliveryservice.NewDeliveryService(
		deliveryoutadapter.NewFileManifestStore(cfg.ManifestPath()),
		deliveryoutadapter.NewGRPCHost(),
	))

	registry := exportoutadapter.NewDelivererRegistry(deliveryUC,
		exportoutadapter.NewDirDeliverer(cfg.Export.Dir),
		exportoutadapter.NewOpenDeliverer(cfg.Export.Dir),
		exportoutadapter.NewStdoutDeliverer(),
	)
	exportUC := exportusecase.NewInteractor(exportservice.NewExportService(
		clk,
		exportoutadapter.NewTrackerIntervalSource(trackerUC),
		registry,
		cfg.Export.Via,
	))

	return &App{
		TrackerCLI:  trackerinadapter.NewCLIHandler(trackerUC),
		ReportCLI:   reportinadapter.NewCLIHandler(reportUC),
		ExportCLI:   exportinadapter.NewCLIHandler(exportUC),
		DeliveryCLI: deliveryinadapter.NewCLIHandler(deliveryUC),
	}, nil
}

func RunTUI(cfg config.Config, app *App) error {
	tick := time.Duration(cfg.UI.TickMS) * time.Millisecond
	model := uiapp.NewModel(app.TrackerCLI, app.ReportCLI, app.ExportCLI, tick)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
