package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learntype/internal/api"
	"github.com/abhisek/learntype/internal/journal"
	"github.com/abhisek/learntype/internal/metrics"
	"github.com/abhisek/learntype/internal/sessionstore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger, err := newLogger(false)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		engine, err := newEngine()
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg)

		coach, err := newCoach(ctx, engine, st, m, logger)
		if err != nil {
			return err
		}

		checks := []func(context.Context) error{st.DB().PingContext}
		var sessions sessionstore.Store
		if cfg.Redis.Addr != "" {
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer client.Close()
			rs := sessionstore.NewRedisStore(client, cfg.Session.TTL)
			if err := rs.Ping(ctx); err != nil {
				return fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
			}
			checks = append(checks, rs.Ping)
			sessions = rs
			logger.Info("using redis session store", zap.String("addr", cfg.Redis.Addr))
		} else {
			sessions = sessionstore.NewMemoryStore(cfg.Session.TTL)
			logger.Info("using in-memory session store")
		}

		srv := api.NewServer(api.Deps{
			Engine:   engine,
			Sessions: sessions,
			Journal:  journal.New(st.EventRepo(), st.ResultRepo(), m, logger),
			Coach:    coach,
			Metrics:  m,
			Gatherer: reg,
			Logger:   logger,
			HealthCheck: func(ctx context.Context) error {
				for _, check := range checks {
					if err := check(ctx); err != nil {
						return err
					}
				}
				return nil
			},
		})

		logger.Info("starting learntype server",
			zap.String("bank_version", engine.Bank().Version()),
			zap.String("followup_mode", cfg.Followup.Mode),
			zap.Bool("llm_coaching", coach.HasLLM()))

		return api.Serve(ctx, api.ServerConfig{
			Addr:            cfg.Server.Addr,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		}, srv.Router(), logger, nil)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
	serveCmd.Flags().String("redis-addr", "", "Redis address for session state; empty keeps sessions in memory")
}
