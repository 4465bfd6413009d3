package serverrunner

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/urbanserve/urbanserve/internal/api"
	"github.com/urbanserve/urbanserve/internal/api/handlers"
	"github.com/urbanserve/urbanserve/internal/broadcast"
	"github.com/urbanserve/urbanserve/internal/cache"
	"github.com/urbanserve/urbanserve/internal/mq"
	"github.com/urbanserve/urbanserve/internal/queue"
	"github.com/urbanserve/urbanserve/internal/service"
	"github.com/urbanserve/urbanserve/runner"
)

// PruneInterval is how often stale worker locations are removed
const PruneInterval = time.Hour

// ServerRunner runs the API server plus the job broadcast subscriber
type ServerRunner struct {
	cfg         *runner.Config
	db          *sql.DB
	srv         *http.Server
	redisCache  *cache.RedisCache
	deliveryQ   *queue.Queue
	mqPub       mq.Publisher
	publisher   broadcast.Publisher
	subscriber  *broadcast.Subscriber
	monitor     *broadcast.Monitor
	locationSvc *service.LiveLocationService
}

// New creates a new ServerRunner
func New(cfg *runner.Config) (runner.Runner, error) {
	db, repos, err := runner.OpenStorage(cfg.Dsn)
	if err != nil {
		return nil, err
	}

	s := &ServerRunner{cfg: cfg, db: db}

	// Cache and broadcast both need Redis. Without it the server still
	// works: reads hit the database and jobs are not offered to workers.
	var appCache cache.Cache = cache.NewNoOpCache()
	metrics := broadcast.NewMetrics()
	s.publisher = broadcast.NoOpPublisher{}

	if cfg.RedisAddr != "" || cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			db.Close()
			return nil, err
		}

		s.redisCache = rc
		appCache = rc
		s.publisher = broadcast.NewRedisPublisher(rc.Client(), metrics)

		q, err := queue.New(&queue.Config{
			RedisURL:  cfg.RedisURL,
			RedisAddr: cfg.RedisAddr,
			Password:  cfg.RedisPass,
			DB:        cfg.RedisDB,
		})
		if err != nil {
			rc.Close()
			db.Close()
			return nil, err
		}
		s.deliveryQ = q
	}

	if cfg.RabbitMQURL != "" {
		pub, err := mq.NewPublisher(mq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			s.closeTransports()
			db.Close()
			return nil, err
		}
		s.mqPub = pub
	}

	// Services
	userSvc := service.NewUserService(repos.Users)
	workerSvc := service.NewWorkerService(repos.Workers, appCache)
	jobSvc := service.NewJobService(repos.Jobs, repos.Users, repos.Workers, repos.Locations, s.publisher, appCache)
	transactionSvc := service.NewTransactionService(repos.Transactions, repos.Jobs, repos.Workers, appCache)
	specializationSvc := service.NewSpecializationService(repos.Specializations, repos.Workers)
	reviewSvc := service.NewReviewService(repos.Reviews, repos.Jobs, repos.Workers, repos.Users)
	statsSvc := service.NewStatsService(repos.Stats, appCache)
	locationSvc := service.NewLiveLocationService(repos.Locations, repos.Workers)
	s.locationSvc = locationSvc

	notificationSvc := service.NewNotificationService(repos.Notifications)
	if s.mqPub != nil {
		notificationSvc = notificationSvc.WithMQ(s.mqPub)
	} else if s.deliveryQ != nil {
		notificationSvc = notificationSvc.WithQueue(s.deliveryQ)
	}

	// Job offers flow through the same delivery pipeline as API sends
	if s.redisCache != nil {
		s.subscriber = broadcast.NewSubscriber(s.redisCache.Client(), repos.Locations, notificationSvc, metrics)
		s.monitor = broadcast.NewMonitor(metrics, broadcast.DefaultMonitorInterval)
	}

	// Handlers
	var cachePinger handlers.Pinger
	if s.redisCache != nil {
		cachePinger = redisPinger{s.redisCache}
	}

	router := api.NewRouter(
		handlers.NewStatsHandler(statsSvc),
		handlers.NewWorkerHandler(workerSvc),
		handlers.NewUserHandler(userSvc),
		handlers.NewJobHandler(jobSvc),
		handlers.NewTransactionHandler(transactionSvc),
		handlers.NewSpecializationHandler(specializationSvc),
		handlers.NewReviewHandler(reviewSvc),
		handlers.NewNotificationHandler(notificationSvc),
		handlers.NewLiveLocationHandler(locationSvc),
		handlers.NewBroadcastHandler(metrics),
		handlers.NewHealthHandler(dbPinger{db}, cachePinger),
	)

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.Setup(cfg.APIToken),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

// Run starts the HTTP server and the background loops
func (s *ServerRunner) Run(ctx context.Context) error {
	egroup, ctx := errgroup.WithContext(ctx)

	egroup.Go(func() error {
		return s.startServer(ctx)
	})

	if s.subscriber != nil {
		egroup.Go(func() error {
			return s.subscriber.Run(ctx)
		})
		egroup.Go(func() error {
			return s.monitor.Run(ctx)
		})
	}

	if !s.cfg.DisablePruner {
		egroup.Go(func() error {
			return s.runPruner(ctx)
		})
	}

	return egroup.Wait()
}

// Close cleans up resources
func (s *ServerRunner) Close(_ context.Context) error {
	s.closeTransports()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *ServerRunner) closeTransports() {
	if s.mqPub != nil {
		s.mqPub.Close()
	}
	if s.deliveryQ != nil {
		s.deliveryQ.Close()
	}
	if s.redisCache != nil {
		s.redisCache.Close()
	}
}

func (s *ServerRunner) startServer(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("error shutting down server: %v", err)
		}
	}()

	log.Printf("API server starting on http://localhost%s", s.cfg.Addr)
	if strings.HasPrefix(s.cfg.Dsn, "postgres") {
		log.Printf("using PostgreSQL database")
	} else {
		log.Printf("using SQLite database: %s", s.cfg.Dsn)
	}
	log.Printf("API endpoints available at /api/v1/")

	err := s.srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *ServerRunner) runPruner(ctx context.Context) error {
	ticker := time.NewTicker(PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pruned, err := s.locationSvc.PruneStale(ctx)
			if err != nil {
				log.Printf("[Pruner] failed to prune stale locations: %v", err)
				continue
			}
			if pruned > 0 {
				log.Printf("[Pruner] removed %d stale locations", pruned)
			}
		}
	}
}

type dbPinger struct {
	db *sql.DB
}

func (p dbPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

type redisPinger struct {
	rc *cache.RedisCache
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.rc.Client().Ping(ctx).Err()
}
