package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/tennispal/internal/config"
	"github.com/riskibarqy/tennispal/internal/domain/availability"
	"github.com/riskibarqy/tennispal/internal/domain/invite"
	"github.com/riskibarqy/tennispal/internal/domain/match"
	"github.com/riskibarqy/tennispal/internal/domain/notification"
	"github.com/riskibarqy/tennispal/internal/domain/post"
	"github.com/riskibarqy/tennispal/internal/domain/user"
	"github.com/riskibarqy/tennispal/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/tennispal/internal/infrastructure/notify"
	repocache "github.com/riskibarqy/tennispal/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tennispal/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tennispal/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tennispal/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/tennispal/internal/platform/cache"
	idgen "github.com/riskibarqy/tennispal/internal/platform/id"
	"github.com/riskibarqy/tennispal/internal/platform/logging"
	"github.com/riskibarqy/tennispal/internal/platform/resilience"
	"github.com/riskibarqy/tennispal/internal/usecase"
)

// NewHTTPServer wires storage, notification delivery, the usecase layer
// and the HTTP router into a ready-to-run server. The returned cleanup
// releases everything the server owns and must be called after shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var closers []func(context.Context) error
	cleanup := func(ctx context.Context) error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	fail := func(err error) (*http.Server, func(context.Context) error, error) {
		_ = cleanup(context.Background())
		return nil, nil, err
	}

	var (
		userRepo   user.Repository
		slotRepo   availability.Repository
		matchRepo  match.Repository
		inviteRepo invite.Repository
		postRepo   post.Repository
		noteRepo   notification.Repository
	)

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := openDB(context.Background(), cfg)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func(context.Context) error { return db.Close() })

		if cfg.SeedDemoData {
			if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
				return fail(fmt.Errorf("bootstrap seed: %w", err))
			}
		}

		userRepo = postgres.NewUserRepository(db)
		slotRepo = postgres.NewAvailabilityRepository(db)
		matchRepo = postgres.NewMatchRepository(db)
		inviteRepo = postgres.NewInviteRepository(db)
		postRepo = postgres.NewPostRepository(db)
		noteRepo = postgres.NewNotificationRepository(db)
	default:
		if cfg.SeedDemoData {
			userRepo = memory.NewUserRepository(memory.SeedUsers())
			slotRepo = memory.NewSeededAvailabilityRepository()
		} else {
			userRepo = memory.NewUserRepository(nil)
			slotRepo = memory.NewAvailabilityRepository()
		}
		matchRepo = memory.NewMatchRepository()
		inviteRepo = memory.NewInviteRepository()
		postRepo = memory.NewPostRepository()
		noteRepo = memory.NewNotificationRepository()
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		userRepo = repocache.NewUserRepository(userRepo, store)
		slotRepo = repocache.NewAvailabilityRepository(slotRepo, store)
	}

	var smsSender notify.SMSSender
	if cfg.TwilioEnabled {
		smsSender = notify.NewTwilioClient(notify.TwilioConfig{
			BaseURL:    cfg.TwilioBaseURL,
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			FromNumber: cfg.TwilioFromNumber,
			Timeout:    cfg.TwilioTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.TwilioCircuitEnabled,
				FailureThreshold: cfg.TwilioCircuitFailureCount,
				OpenTimeout:      cfg.TwilioCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.TwilioCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	var emailSender notify.EmailSender
	if cfg.SendGridEnabled {
		emailSender = notify.NewSendGridClient(notify.SendGridConfig{
			BaseURL:   cfg.SendGridBaseURL,
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
			Timeout:   cfg.SendGridTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SendGridCircuitEnabled,
				FailureThreshold: cfg.SendGridCircuitFailureCount,
				OpenTimeout:      cfg.SendGridCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SendGridCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	dispatcher, err := notify.NewDispatcher(smsSender, emailSender, cfg.NotifyWorkers, logger)
	if err != nil {
		return fail(fmt.Errorf("create notify dispatcher: %w", err))
	}
	closers = append(closers, func(context.Context) error {
		dispatcher.Close()
		return nil
	})

	idGen := idgen.NewRandomGenerator()

	userSvc := usecase.NewUserService(userRepo, slotRepo, idGen)
	availabilitySvc := usecase.NewAvailabilityService(slotRepo, idGen)
	matchSvc := usecase.NewMatchService(matchRepo, userRepo, noteRepo, dispatcher, idGen)
	inviteSvc := usecase.NewInviteService(inviteRepo, matchRepo, userRepo, noteRepo, dispatcher, idGen)
	postSvc := usecase.NewPostService(postRepo, matchRepo, userRepo, noteRepo, dispatcher, idGen)
	statsSvc := usecase.NewStatsService(matchRepo, userRepo)
	matchmakingSvc := usecase.NewMatchmakingService(userRepo, slotRepo, matchRepo, cfg.MatchmakingWorkers)
	notificationSvc := usecase.NewNotificationService(noteRepo)

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		cfg.AnubisBaseURL,
		cfg.AnubisIntrospectURL,
		cfg.AnubisAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		userSvc,
		availabilitySvc,
		matchSvc,
		inviteSvc,
		postSvc,
		statsSvc,
		matchmakingSvc,
		notificationSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return fail(fmt.Errorf("http server addr cannot be empty"))
	}

	return server, cleanup, nil
}
