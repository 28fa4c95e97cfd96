package bootstrap

import (
	"feature-prioritizer/internal/config"
	"feature-prioritizer/internal/controller"
	"feature-prioritizer/internal/pkg/logger"
	"feature-prioritizer/internal/pkg/metrics"
	"feature-prioritizer/internal/service"
	"feature-prioritizer/pkg/catalog"

	pktNats "feature-prioritizer/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Container struct {
	Logger   logger.ILogger
	Registry *prometheus.Registry

	// Services
	SessionService service.ISessionService

	// Controllers
	FeatureController controller.IFeatureController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	closers []func()
}

// Options tweaks container wiring for callers other than the REST server.
type Options struct {
	Logger logger.ILogger
	// DisableEvents skips the event bus and NATS entirely.
	DisableEvents bool
}

func NewContainer(cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	sysLogger := opts.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	c.Logger = sysLogger

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(c.Registry)

	// 2. Storage
	store, closeStore, err := NewBlobStore(cfg, sysLogger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, closeStore)
	storageService := service.NewStorageService(store, cfg.Storage.Key, sysLogger, m)

	// 3. Event Bus
	publisherService := service.NewNoopPublisherService()
	if !opts.DisableEvents {
		pubSub := gochannel.NewGoChannel(
			gochannel.Config{},
			watermill.NewStdLogger(false, false),
		)
		c.closers = append(c.closers, func() { pubSub.Close() })
		publisherService = service.NewPublisherService(pubSub, service.FeatureEventsTopic)

		var forwarder service.EventForwarder
		if cfg.App.NatsURL != "" {
			natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
			if err != nil {
				sysLogger.Warn("bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
			} else {
				forwarder = natsPub
				c.closers = append(c.closers, natsPub.Close)
			}
		}
		c.ConsumerService = service.NewConsumerService(pubSub, service.FeatureEventsTopic, forwarder, sysLogger, m)
	}

	// 4. Services
	c.SessionService = service.NewSessionService(storageService, publisherService, catalog.Default(), sysLogger, m)

	// 5. Controllers
	c.FeatureController = controller.NewFeatureController(c.SessionService)

	return c, nil
}

// Close releases store connections and the event bus, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
