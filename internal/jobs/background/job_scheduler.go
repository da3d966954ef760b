package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"ultimedia/internal/services"
)

// reconcileGrace keeps the reconciler away from bookings whose invoice may
// still be mid-creation.
const reconcileGrace = 5 * time.Minute

// JobScheduler runs the periodic maintenance jobs: invoice reconciliation
// for bookings left without one, and catalog cache warming.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	bookingSvc services.BookingServiceInterface
	catalogSvc services.CatalogServiceInterface
	jobs       map[string]gocron.Job
	mu         sync.RWMutex
}

func NewJobScheduler(bookingSvc services.BookingServiceInterface, catalogSvc services.CatalogServiceInterface) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		bookingSvc: bookingSvc,
		catalogSvc: catalogSvc,
		jobs:       make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

// Start begins running the registered jobs.
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop shuts the scheduler down, waiting for running jobs to finish.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	reconcileJob, err := js.scheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(js.reconcileInvoices),
		gocron.WithName("invoice-reconciliation"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create invoice reconciliation job: %v", err)
	} else {
		js.jobs["invoice-reconciliation"] = reconcileJob
	}

	warmJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.warmCatalogCache),
		gocron.WithName("catalog-cache-warm"),
	)
	if err != nil {
		log.Printf("Failed to create catalog cache warm job: %v", err)
	} else {
		js.jobs["catalog-cache-warm"] = warmJob
	}
}

func (js *JobScheduler) reconcileInvoices() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repaired, err := js.bookingSvc.ReconcileMissingInvoices(ctx, reconcileGrace)
	if err != nil {
		log.Printf("Invoice reconciliation failed: %v", err)
		return
	}
	if repaired > 0 {
		log.Printf("Invoice reconciliation created %d missing invoices", repaired)
	}
}

func (js *JobScheduler) warmCatalogCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := js.catalogSvc.WarmCache(ctx); err != nil {
		log.Printf("Catalog cache warm failed: %v", err)
	}
}
