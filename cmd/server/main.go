package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"scheduling-api/internal/account"
	"scheduling-api/internal/auth"
	"scheduling-api/internal/config"
	"scheduling-api/internal/graph"
	gweb "scheduling-api/internal/grpcweb"
	"scheduling-api/internal/handler"
	"scheduling-api/internal/jobs"
	"scheduling-api/internal/logging"
	"scheduling-api/internal/middleware"
	"scheduling-api/internal/rest"
	"scheduling-api/internal/rpc"
	"scheduling-api/internal/scheduling"
	"scheduling-api/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()

	// database
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("connected to postgres")

	st := store.New(pool)
	applied, err := st.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("migrations applied", zap.Strings("files", applied))

	deny := denylist(ctx, cfg, log)
	accounts := account.New(st, deny, cfg.JWTSecret, log)
	sched := scheduling.New(st, log)

	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rl.Close()

	// a listener that dies takes the process down
	fatal := make(chan error, 3)

	// grpc server
	srv := handler.NewServer(handler.New(accounts, sched, log), accounts, rl, log)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer srv.GracefulStop()
	go func() {
		log.Info("grpc listening", zap.String("port", cfg.GRPCPort))
		if err := srv.Serve(lis); err != nil {
			fatal <- fmt.Errorf("grpc: %w", err)
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, log)
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	defer bridge.Close()
	webSrv := &http.Server{Addr: ":" + cfg.WebPort, Handler: bridge.Handler(), ReadHeaderTimeout: 10 * time.Second}
	serve(webSrv, "grpc-web", log, fatal)

	// rest + graphql
	gql, err := graph.Handler(accounts, sched, log)
	if err != nil {
		return fmt.Errorf("graphql schema: %w", err)
	}
	api := rest.New(rest.Deps{
		Accounts:       accounts,
		Sched:          sched,
		Log:            log,
		Limiter:        rl,
		GraphQL:        gql,
		Health:         pool.Ping,
		SecureCookies:  cfg.IsProduction(),
		TrustedProxies: cfg.TrustedProxies,
	})
	httpSrv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: api, ReadHeaderTimeout: 10 * time.Second}
	serve(httpSrv, "http", log, fatal)

	cron, err := jobs.New(cfg.TokenPurgeCron, st, log)
	if err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	cron.Start()

	log.Info("scheduling api ready", zap.String("service", rpc.ServiceName), zap.String("env", cfg.Env))

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	runErr := wait(ch, fatal, log)

	sctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	cron.Stop(sctx)
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := webSrv.Shutdown(sctx); err != nil {
		log.Warn("grpc-web shutdown", zap.Error(err))
	}
	return runErr
}

// wait blocks until a shutdown signal or a listener failure. Only the
// latter is returned as an error.
func wait(sig <-chan os.Signal, fatal <-chan error, log *zap.Logger) error {
	select {
	case s := <-sig:
		log.Info("shutting down", zap.String("signal", s.String()))
		return nil
	case err := <-fatal:
		log.Error("listener failed, shutting down", zap.Error(err))
		return err
	}
}

func serve(s *http.Server, name string, log *zap.Logger, fatal chan<- error) {
	go func() {
		log.Info(name+" listening", zap.String("addr", s.Addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal <- fmt.Errorf("%s: %w", name, err)
		}
	}()
}

// denylist uses redis when configured and reachable, otherwise an
// in-process list (revocations then don't survive restarts or span replicas).
func denylist(ctx context.Context, cfg *config.Config, log *zap.Logger) auth.Denylist {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, using in-memory token denylist")
		return auth.NewMemoryDenylist()
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		log.Warn("redis unreachable, using in-memory token denylist", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		rdb.Close()
		return auth.NewMemoryDenylist()
	}
	log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	return auth.NewRedisDenylist(rdb)
}
