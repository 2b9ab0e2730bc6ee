package app

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/humanbelnik/oscarparty/internal/config"
	http_auth "github.com/humanbelnik/oscarparty/internal/delivery/http/auth"
	http_images "github.com/humanbelnik/oscarparty/internal/delivery/http/images"
	http_init "github.com/humanbelnik/oscarparty/internal/delivery/http/init"
	http_session_middleware "github.com/humanbelnik/oscarparty/internal/delivery/http/middleware/session"
	http_nominations "github.com/humanbelnik/oscarparty/internal/delivery/http/nominations"
	http_party "github.com/humanbelnik/oscarparty/internal/delivery/http/party"
	http_voting "github.com/humanbelnik/oscarparty/internal/delivery/http/voting"
	infra_catalog "github.com/humanbelnik/oscarparty/internal/infra/catalog"
	infra_memory_session "github.com/humanbelnik/oscarparty/internal/infra/memory/session"
	infra_redis_init "github.com/humanbelnik/oscarparty/internal/infra/redis/init"
	infra_session_cache "github.com/humanbelnik/oscarparty/internal/infra/redis/session"
	infra_tmdb "github.com/humanbelnik/oscarparty/internal/infra/tmdb"
	infra_web3forms "github.com/humanbelnik/oscarparty/internal/infra/web3forms"
	service_password_auth "github.com/humanbelnik/oscarparty/internal/service/auth/password"
	service_images "github.com/humanbelnik/oscarparty/internal/service/images"
	service_wizard "github.com/humanbelnik/oscarparty/internal/service/wizard"
	"github.com/humanbelnik/oscarparty/internal/telemetry"
	usecase_auth "github.com/humanbelnik/oscarparty/internal/usecase/auth"
	usecase_rsvp "github.com/humanbelnik/oscarparty/internal/usecase/rsvp"
	usecase_voting "github.com/humanbelnik/oscarparty/internal/usecase/voting"
)

type sessionStore interface {
	usecase_auth.SessionStore
	usecase_voting.SessionStore
}

func Go(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := telemetry.SetupLogging(os.Stdout, cfg.Telemetry.LogLevel)
	logger.Info("starting", slog.String("service", cfg.Telemetry.ServiceName))

	shutdown, err := telemetry.SetupOpenTelemetry(ctx, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Fatalf("failed to set up telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	catalog := infra_catalog.MustLoad()

	var sessions sessionStore
	if cfg.Redis.Enabled() {
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
		defer redisConn.Close()
		sessions = infra_session_cache.New(redisConn, infra_session_cache.KeyPrefix, cfg.Access.SessionTTL)
	} else {
		logger.Warn("REDIS_HOST is not set, sessions are kept in memory")
		sessions = infra_memory_session.New(cfg.Access.SessionTTL)
	}

	tmdb := infra_tmdb.New(cfg.TMDB.BaseURL, cfg.TMDB.ReadToken,
		infra_tmdb.WithRateLimit(cfg.TMDB.RPS),
		infra_tmdb.WithTimeout(cfg.TMDB.Timeout),
	)
	if !tmdb.Configured() {
		logger.Warn("TMDB read token is not set, images fall back to placeholders")
	}
	relay := infra_web3forms.New(cfg.Web3Forms.Endpoint, cfg.Web3Forms.AccessKey,
		infra_web3forms.WithTimeout(cfg.Web3Forms.Timeout),
		infra_web3forms.WithLogger(logger),
	)

	images := service_images.New(tmdb, cfg.TMDB.CacheTTL, service_images.WithLogger(logger))
	gate := service_password_auth.New(cfg.Access.GuestPasswordHash, cfg.Access.PublicPasswordHash)
	wizard := service_wizard.New(catalog)

	authUC := usecase_auth.New(gate, sessions)
	votingUC := usecase_voting.New(wizard, sessions, relay)
	rsvpUC := usecase_rsvp.New(relay)

	sessionMiddleware := http_session_middleware.New(authUC)

	controllerPool := http_init.NewControllerPool(
		http_init.WithServiceName(cfg.Telemetry.ServiceName),
		http_init.WithCORSOrigins(cfg.HTTP.CORSOrigins),
		http_init.WithLogger(logger),
	)
	controllerPool.Add(http_auth.New(authUC, sessionMiddleware, http_auth.WithLogger(logger)))
	controllerPool.Add(http_nominations.New(catalog, sessionMiddleware))
	controllerPool.Add(http_images.New(tmdb, images, catalog, sessionMiddleware, http_images.WithLogger(logger)))
	controllerPool.Add(http_voting.New(votingUC, catalog, sessionMiddleware, http_voting.WithLogger(logger)))
	controllerPool.Add(http_party.New(rsvpUC, sessionMiddleware))

	controllerPool.Register()
	if err := controllerPool.RunAll(ctx, cfg.HTTP.Host, cfg.HTTP.Port); err != nil {
		logger.Error("http server stopped", slog.String("error", err.Error()))
	}
}
