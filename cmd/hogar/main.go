package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"hogar/internal/amqp"
	"hogar/internal/budget"
	"hogar/internal/config"
	apphttp "hogar/internal/http"
	"hogar/internal/ledger"
	applog "hogar/internal/log"
	"hogar/internal/rank"
	"hogar/internal/repo"
	"hogar/internal/services"
	"hogar/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	st, err := store.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open store", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// AMQP wiring is optional: without it the engine runs standalone and
	// simply never hears about writes from other processes.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		st.SetNotifier(amqpClient)

		g.Go(func() error {
			return amqpClient.ConsumeChanges(gctx, st.DispatchExternal)
		})
		logger.Info("AMQP change bus connected", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - running without external change notifications")
	}

	l := ledger.New(st)
	usersRepo := repo.NewUsers(st)
	tasksRepo := repo.NewTasks(st)
	shoppingRepo := repo.NewShopping(st)
	expensesRepo := repo.NewExpenses(st)
	aggregator := budget.NewAggregator(usersRepo, expensesRepo)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Users:    services.NewUserService(usersRepo, tasksRepo, shoppingRepo, expensesRepo, l),
		Tasks:    services.NewTaskService(tasksRepo, l, cfg.TaskPoints),
		Shopping: services.NewShoppingService(shoppingRepo),
		Expenses: services.NewExpenseService(expensesRepo),
		Rewards:  services.NewRewardService(repo.NewRewards(st), repo.NewHistory(st), l),
		Ledger:   l,
		Budget:   aggregator,
		Ranker:   rank.NewRanker(usersRepo, l, aggregator),
		Ready: func(ctx context.Context) error {
			_, _, err := st.Read(ctx, store.KeyUsers)
			return err
		},
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting hogar server", "port", cfg.Port, "db", cfg.SQLiteDBPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cancel()
	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Background consumer error", applog.FieldError, err)
	}
	logger.Info("Server stopped gracefully")
}
