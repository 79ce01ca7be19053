package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountrepo "github.com/finalstore/backend/internal/account/repository"
	"github.com/finalstore/backend/internal/common/clock"
	"github.com/finalstore/backend/internal/common/config"
	commoncrypto "github.com/finalstore/backend/internal/common/crypto"
	"github.com/finalstore/backend/internal/common/db"
	commonhttp "github.com/finalstore/backend/internal/common/http"
	"github.com/finalstore/backend/internal/common/jwtauth"
	"github.com/finalstore/backend/internal/common/logger"
	"github.com/finalstore/backend/internal/common/server"
	orderhttp "github.com/finalstore/backend/internal/order/http"
	orderrepo "github.com/finalstore/backend/internal/order/repository"
	orderservice "github.com/finalstore/backend/internal/order/service"
	paymenthttp "github.com/finalstore/backend/internal/payment/http"
	paymentservice "github.com/finalstore/backend/internal/payment/service"
	sessionhttp "github.com/finalstore/backend/internal/session/http"
	sessionservice "github.com/finalstore/backend/internal/session/service"
)

const serviceName = "store"

func main() {
	appLog, err := logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	cfg, err := config.LoadStoreConfig()
	if err != nil {
		appLog.Fatalf("failed to load config: %v", err)
	}

	if err := db.RunMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		appLog.Fatalf("failed to run migrations: %v", err)
	}

	pool := db.NewPool(appLog, cfg.DatabaseURL)
	defer pool.Close()

	credentials := accountrepo.NewPgCredentialRepository(pool)
	profiles := accountrepo.NewPgProfileRepository(pool)
	txManager := accountrepo.NewPgAccountTxManager(pool)
	orders := orderrepo.NewPgOrderRepository(pool)

	realClock := clock.NewRealClock()
	idGenerator := commoncrypto.NewUUIDGenerator()
	hasher := commoncrypto.NewBcryptHasher(cfg.BcryptCost)

	issuer := sessionservice.NewTokenIssuer(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		idGenerator,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		realClock,
	)
	verifier := sessionservice.NewTokenVerifier(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, realClock)

	sessions := sessionservice.NewSessionService(
		credentials,
		profiles,
		txManager,
		hasher,
		issuer,
		verifier,
		cfg.RevokeSessionsOnPasswordChange,
		appLog,
	)
	orderSvc := orderservice.NewOrderService(orders, credentials, idGenerator, realClock, appLog)
	payments := paymentservice.NewPaymentService(cfg.StripeSecretKey, appLog)

	authMiddleware := jwtauth.Middleware(verifier, appLog)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(appLog))
	mux.Handle("/metrics", promhttp.Handler())

	sessionhttp.NewRouter(sessions, appLog, cfg.RequestTimeout).RegisterRoutes(mux, authMiddleware)
	orderhttp.NewRouter(orderSvc, appLog, cfg.RequestTimeout).RegisterRoutes(mux, authMiddleware)
	paymenthttp.NewRouter(payments, appLog, cfg.RequestTimeout).RegisterRoutes(mux, authMiddleware)

	rateLimiter := commonhttp.NewStrictRateLimiter()
	handler := commonhttp.BuildBaseHandler(appLog, rateLimiter.Middleware(mux))

	srv := server.NewServer(server.DefaultServerConfig(cfg.HTTPPort), handler)

	server.StartWithGracefulShutdownAndHooks(srv, appLog, serviceName, []server.ShutdownHook{
		func(ctx context.Context) error {
			pool.Close()
			return nil
		},
	})
}
