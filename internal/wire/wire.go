// Package wire provides dependency injection for tebexd.
// It creates singleton services with lazy initialization.
package wire

import (
	"errors"
	"io"
	"os"
	"sync"

	bboltadapter "github.com/example/tebexd/internal/adapters/bbolt"
	cliadapter "github.com/example/tebexd/internal/adapters/cli"
	rconadapter "github.com/example/tebexd/internal/adapters/rcon"
	"github.com/example/tebexd/internal/adapters/sqlite"
	"github.com/example/tebexd/internal/adapters/tebex"
	"github.com/example/tebexd/internal/app"
	"github.com/example/tebexd/internal/config"
	"github.com/example/tebexd/internal/db"
	applog "github.com/example/tebexd/internal/log"
	"github.com/example/tebexd/internal/ports/primary"
	"github.com/example/tebexd/internal/ports/secondary"
)

var (
	cfg *config.Config

	reconcileService primary.ReconcileService
	pendingService   primary.PendingService
	historyService   primary.HistoryService
	daemon           *app.Daemon
	watcher          *rconadapter.Watcher
	closers          []io.Closer
	once             sync.Once
)

// Configure sets the configuration services are built from. It must be
// called before the first accessor; later calls have no effect.
func Configure(c *config.Config) {
	cfg = c
}

// ReconcileService returns the singleton ReconcileService instance.
func ReconcileService() primary.ReconcileService {
	once.Do(initServices)
	return reconcileService
}

// PendingService returns the singleton PendingService instance.
func PendingService() primary.PendingService {
	once.Do(initServices)
	return pendingService
}

// HistoryService returns the singleton HistoryService instance.
func HistoryService() primary.HistoryService {
	once.Do(initServices)
	return historyService
}

// Daemon returns the scheduler driving passes and presence events.
func Daemon() *app.Daemon {
	once.Do(initServices)
	return daemon
}

// Watcher returns the presence watcher feeding the daemon.
func Watcher() *rconadapter.Watcher {
	once.Do(initServices)
	return watcher
}

// Close releases the store and the RCON session.
func Close() error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		errs = append(errs, closers[i].Close())
	}
	closers = nil
	return errors.Join(errs...)
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	if cfg == nil {
		cfg = config.Default()
	}

	store, deliveryLog, err := openStore(cfg)
	if err != nil {
		applog.Get().Fatalf("failed to initialize store: %v", err)
	}

	// Secondary adapters
	queue := tebex.NewClient(cfg.Tebex.Secret,
		tebex.WithBaseURL(cfg.Tebex.BaseURL),
		tebex.WithTimeout(cfg.Timeout()),
	)
	provider := rconadapter.NewProvider(cfg.RCON.Address, cfg.RCON.Password)
	closers = append(closers, provider)

	// Core components, shared by the loop and the flush handler
	identities := app.NewIdentityCache()
	buffer := app.NewCommandBuffer(store)
	executor := app.NewCommandExecutor(provider)

	reconciler := app.NewReconciler(queue, provider, identities, buffer, executor, deliveryLog)
	flush := app.NewFlushHandler(queue, identities, buffer, executor, deliveryLog)
	watcher = rconadapter.NewWatcher(provider, cfg.PresenceInterval())
	daemon = app.NewDaemon(reconciler, flush, watcher, cfg.PollInterval())

	// Services (primary ports implementation)
	reconcileService = reconciler
	pendingService = app.NewPendingService(buffer)
	historyService = app.NewHistoryService(deliveryLog)
}

// openStore opens the configured property store. Only the sqlite driver
// keeps a delivery log.
func openStore(c *config.Config) (secondary.PropertyStore, secondary.DeliveryLog, error) {
	path, err := c.StorePath()
	if err != nil {
		return nil, nil, err
	}

	switch c.Store.Driver {
	case config.DriverBolt:
		store, err := bboltadapter.Open(path)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, store)
		return store, nil, nil
	default:
		database, err := db.Open(path)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, database)
		return sqlite.NewPropertyStore(database), sqlite.NewDeliveryLogRepository(database), nil
	}
}

// PendingAdapter returns a new PendingAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func PendingAdapter() *cliadapter.PendingAdapter {
	return PendingAdapterWithOutput(os.Stdout)
}

// PendingAdapterWithOutput returns a new PendingAdapter writing to the given output.
func PendingAdapterWithOutput(out io.Writer) *cliadapter.PendingAdapter {
	return cliadapter.NewPendingAdapter(PendingService(), out)
}

// QueueAdapter returns a new QueueAdapter writing to stdout.
func QueueAdapter() *cliadapter.QueueAdapter {
	return QueueAdapterWithOutput(os.Stdout)
}

// QueueAdapterWithOutput returns a new QueueAdapter writing to the given output.
func QueueAdapterWithOutput(out io.Writer) *cliadapter.QueueAdapter {
	return cliadapter.NewQueueAdapter(ReconcileService(), out)
}

// HistoryAdapter returns a new HistoryAdapter writing to stdout.
func HistoryAdapter() *cliadapter.HistoryAdapter {
	return HistoryAdapterWithOutput(os.Stdout)
}

// HistoryAdapterWithOutput returns a new HistoryAdapter writing to the given output.
func HistoryAdapterWithOutput(out io.Writer) *cliadapter.HistoryAdapter {
	return cliadapter.NewHistoryAdapter(HistoryService(), out)
}
