package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/findrival/internal/config"
	"github.com/riskibarqy/findrival/internal/domain/matchrequest"
	"github.com/riskibarqy/findrival/internal/domain/notification"
	"github.com/riskibarqy/findrival/internal/domain/team"
	"github.com/riskibarqy/findrival/internal/infrastructure/account/firebase"
	"github.com/riskibarqy/findrival/internal/infrastructure/push"
	"github.com/riskibarqy/findrival/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/findrival/internal/infrastructure/repository/mongodb"
	"github.com/riskibarqy/findrival/internal/interfaces/httpapi"
	"github.com/riskibarqy/findrival/internal/platform/id"
	"github.com/riskibarqy/findrival/internal/platform/logging"
	"github.com/riskibarqy/findrival/internal/platform/resilience"
	"github.com/riskibarqy/findrival/internal/platform/worker"
	"github.com/riskibarqy/findrival/internal/usecase"
)

// App owns every long-lived dependency of the API process.
type App struct {
	cfg    config.Config
	logger *logging.Logger
	server *http.Server
	store  *mongodb.Client
	pool   *worker.Pool
}

type stores struct {
	teams    team.Repository
	requests matchrequest.Repository
	health   httpapi.HealthChecker
	client   *mongodb.Client
}

type identity struct {
	verifier *firebase.Verifier
	sender   notification.Sender
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	pool, err := worker.NewPool(worker.Config{Size: cfg.PushWorkers, MaxQueue: cfg.PushQueueSize}, logger)
	if err != nil {
		_ = st.client.Close(context.Background())
		return nil, err
	}

	ident := buildIdentity(ctx, cfg, logger)

	teamSvc := usecase.NewTeamService(st.teams, usecase.TeamServiceConfig{
		ListLimit:        cfg.TeamListLimit,
		EnforceOwnership: cfg.AuthEnforced,
	}, logger)
	requestSvc := usecase.NewMatchRequestService(st.requests, st.teams, ident.sender, pool, usecase.MatchRequestServiceConfig{
		NotifyTimeout:    cfg.PushTimeout,
		EnforceOwnership: cfg.AuthEnforced,
	}, logger)

	handler := httpapi.NewHandler(teamSvc, requestSvc, st.health, httpapi.ServiceInfo{
		Name:    cfg.ServiceName,
		Version: cfg.ServiceVersion,
	}, logger)
	router := httpapi.NewRouter(handler, ident.verifier, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AuthEnforced:       cfg.AuthEnforced,
		SwaggerEnabled:     cfg.SwaggerEnabled,
	})

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		store: st.client,
		pool:  pool,
	}, nil
}

func (a *App) Server() *http.Server {
	return a.server
}

// Close drains queued pushes before the store goes away, since push tasks
// re-read the receiving team.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	drain := a.cfg.ShutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		drain = time.Until(deadline)
	}
	if a.pool != nil {
		if err := a.pool.Close(drain); err != nil {
			errs = append(errs, err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func openStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (stores, error) {
	if cfg.StoreBackend == config.StoreMemory {
		ids := id.NewHexGenerator(12)
		logger.Warn("using in-memory store, data is lost on restart")
		return stores{
			teams:    memory.NewTeamRepository(ids),
			requests: memory.NewMatchRequestRepository(ids),
		}, nil
	}

	client, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
		AppName:  cfg.ServiceName,
		Timeout:  cfg.MongoTimeout,
		Monitor:  newCommandMonitor(),
	})
	if err != nil {
		return stores{}, fmt.Errorf("connect store %s: %w", redactMongoURI(cfg.MongoURI), err)
	}
	logger.Info("mongo connected", "uri", redactMongoURI(cfg.MongoURI), "database", cfg.MongoDatabase)

	return stores{
		teams:    mongodb.NewTeamRepository(client.Database()),
		requests: mongodb.NewMatchRequestRepository(client.Database()),
		health:   client,
		client:   client,
	}, nil
}

// buildIdentity never fails: without Firebase every bearer token is rejected
// and pushes are only logged.
func buildIdentity(ctx context.Context, cfg config.Config, logger *logging.Logger) identity {
	verifierCfg := firebase.VerifierConfig{CacheTTL: cfg.AuthCacheTTL}
	fallback := identity{
		verifier: firebase.NewVerifier(nil, verifierCfg, logger),
		sender:   push.NewLogSender(logger),
	}
	if !cfg.FirebaseEnabled {
		logger.Info("firebase disabled", "reason", "FIREBASE_ENABLED=false")
		return fallback
	}

	fbApp, err := firebase.NewApp(ctx, firebase.AppConfig{
		CredentialsB64: cfg.FirebaseCredentialsB64,
		ProjectID:      cfg.FirebaseProjectID,
	})
	if err != nil {
		logger.Warn("firebase init failed, auth and push disabled", "error", err)
		return fallback
	}

	out := fallback
	if authClient, err := fbApp.Auth(ctx); err != nil {
		logger.Warn("firebase auth client unavailable", "error", err)
	} else {
		out.verifier = firebase.NewVerifier(authClient, verifierCfg, logger)
	}

	if msgClient, err := fbApp.Messaging(ctx); err != nil {
		logger.Warn("firebase messaging client unavailable", "error", err)
	} else {
		out.sender = push.NewFCMSender(msgClient, resilience.CircuitBreakerConfig{
			Enabled:          cfg.PushCircuitEnabled,
			FailureThreshold: cfg.PushCircuitFailureCount,
			OpenTimeout:      cfg.PushCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PushCircuitHalfOpenMaxReq,
		}, logger)
	}

	logger.Info("firebase enabled", "project_id", cfg.FirebaseProjectID)
	return out
}
