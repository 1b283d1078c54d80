package cmd

import (
	"log/slog"

	httpin "donations/internal/adapters/in/http"
	"donations/internal/adapters/out/contentgen"
	"donations/internal/adapters/out/memory"
	"donations/internal/adapters/out/metrics"
	"donations/internal/adapters/out/postgres"
	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"
	"donations/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot builds every handler, the HTTP server and the job manager
// from one Config. Domain services are stateless and shared.
type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	registry   *prometheus.Registry
	observer   *metrics.Observer
	uowFactory ports.UnitOfWorkFactory

	access     services.AccessPolicy
	capacity   services.CapacityTracker
	donations  services.DonationLifecycle
	deliveries services.DeliveryLifecycle
}

// NewCompositionRoot wires the storage backend chosen by cfg. gormDB is only
// used for the postgres backend.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer, err := metrics.NewObserver(registry)
	if err != nil {
		return nil, err
	}

	var uowFactory ports.UnitOfWorkFactory
	if cfg.StorageBackend == StorageMemory {
		uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore(), observer)
	} else {
		uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, observer)
	}

	access := services.NewAccessPolicy()
	capacity := services.NewCapacityTracker(cfg.CapacityEnforced)
	return &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		registry:   registry,
		observer:   observer,
		uowFactory: uowFactory,
		access:     access,
		capacity:   capacity,
		donations:  services.NewDonationLifecycle(access, capacity),
		deliveries: services.NewDeliveryLifecycle(access),
	}, nil
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) readers() queries.ReaderFactory {
	return queries.UnitOfWorkReaders{Factory: c.uowFactory}
}

// CreateReconcileCenterLoadsCommandHandler is used by both the job and the
// admin endpoint.
func (c *CompositionRoot) CreateReconcileCenterLoadsCommandHandler() commands.ReconcileCenterLoadsCommandHandler {
	return commands.NewReconcileCenterLoadsCommandHandler(c.uows(), c.access)
}

// CreateGenerateContentCommandHandler wires the HTTP content generator.
func (c *CompositionRoot) CreateGenerateContentCommandHandler() (commands.GenerateContentCommandHandler, error) {
	client := contentgen.NewClient(contentgen.Config{
		URL:     c.cfg.ContentAPIURL,
		APIKey:  c.cfg.ContentAPIKey,
		Timeout: c.cfg.ContentTimeout,
	}, c.logger)
	return commands.NewGenerateContentCommandHandler(c.uows(), c.access, client, c.logger)
}

// CreateHandlers builds every use case the HTTP server exposes.
func (c *CompositionRoot) CreateHandlers() (httpin.Handlers, error) {
	uows, readers := c.uows(), c.readers()
	generate, err := c.CreateGenerateContentCommandHandler()
	if err != nil {
		return httpin.Handlers{}, err
	}

	return httpin.Handlers{
		CreateDonor:           commands.NewCreateDonorCommandHandler(uows, c.access),
		DeleteDonor:           commands.NewDeleteDonorCommandHandler(uows, c.access, c.capacity),
		CreateCenter:          commands.NewCreateCollectionCenterCommandHandler(uows, c.access),
		UpdateCenter:          commands.NewUpdateCollectionCenterCommandHandler(uows, c.access),
		ReconcileCenterLoads:  c.CreateReconcileCenterLoadsCommandHandler(),
		CreateDeliveryPartner: commands.NewCreateDeliveryPartnerCommandHandler(uows, c.access),
		CreateRecipient:       commands.NewCreateRecipientCommandHandler(uows, c.access),
		SetRecipientActive:    commands.NewSetRecipientActiveCommandHandler(uows, c.access),

		CreateDonation:         commands.NewCreateDonationCommandHandler(uows, c.access, c.capacity),
		AssignDonationToCenter: commands.NewAssignDonationToCenterCommandHandler(uows, c.donations),
		AcceptDonation:         commands.NewAcceptDonationCommandHandler(uows, c.donations),
		RejectDonation:         commands.NewRejectDonationCommandHandler(uows, c.donations),
		ProcessDonation:        commands.NewProcessDonationCommandHandler(uows, c.donations),
		DeleteDonation:         commands.NewDeleteDonationCommandHandler(uows, c.access, c.capacity),

		CreateDelivery:        commands.NewCreateDeliveryCommandHandler(uows, c.deliveries),
		PickupDelivery:        commands.NewPickupDeliveryCommandHandler(uows, c.deliveries),
		MarkDeliveryInTransit: commands.NewMarkDeliveryInTransitCommandHandler(uows, c.deliveries),
		CompleteDelivery:      commands.NewCompleteDeliveryCommandHandler(uows, c.deliveries),
		CancelDelivery:        commands.NewCancelDeliveryCommandHandler(uows, c.deliveries),
		DeleteDelivery:        commands.NewDeleteDeliveryCommandHandler(uows, c.deliveries),

		RecordWaste:  commands.NewRecordWasteCommandHandler(uows, c.access),
		ProcessWaste: commands.NewProcessWasteCommandHandler(uows, c.access),
		DeleteWaste:  commands.NewDeleteWasteCommandHandler(uows, c.access),

		GenerateContent: generate,

		ListDonations:    queries.NewListDonationsQueryHandler(readers),
		GetDonation:      queries.NewGetDonationQueryHandler(readers),
		ListDeliveries:   queries.NewListDeliveriesQueryHandler(readers),
		ListMyDeliveries: queries.NewListMyDeliveriesQueryHandler(readers),
		Registry:         queries.NewRegistryQueryHandler(readers),
		Content:          queries.NewContentQueryHandler(readers),
	}, nil
}

// CreateServer returns the echo server with authentication and metrics.
func (c *CompositionRoot) CreateServer() (*httpin.Server, error) {
	handlers, err := c.CreateHandlers()
	if err != nil {
		return nil, err
	}
	auth, err := httpin.NewAuthenticator(c.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	return httpin.NewServer(handlers, auth, c.registry, c.observer, c.logger), nil
}

// CreateJobManager schedules load reconciliation on cfg.ReconcileSchedule.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileCenterLoadsCommandHandler(), c.cfg.ReconcileSchedule, c.logger)
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
