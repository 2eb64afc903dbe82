package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/acuna/shelfwise/api/v1"
	"github.com/acuna/shelfwise/catalog"
	"github.com/acuna/shelfwise/config"
	"github.com/acuna/shelfwise/database"
	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/recommend"
	"github.com/acuna/shelfwise/scheduler"
	"github.com/acuna/shelfwise/server"
	"github.com/acuna/shelfwise/store"
	"github.com/acuna/shelfwise/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	greetingBanner = `
███████ ██   ██ ███████ ██      ███████ ██     ██ ██ ███████ ███████
██      ██   ██ ██      ██      ██      ██     ██ ██ ██      ██
███████ ███████ █████   ██      █████   ██  █  ██ ██ ███████ █████
     ██ ██   ██ ██      ██      ██      ██ ███ ██ ██      ██ ██
███████ ██   ██ ███████ ███████ ██       ███ ███  ██ ███████ ███████
`
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:   "shelfwise",
		Short: "Shelfwise is a personal book tracking service",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if _, err := config.GetConfig(); err != nil {
				log.Error("Error loading configuration", zap.Error(err))
				return
			}
			if configFile != "" {
				if _, err := config.ParseFile(configFile); err != nil {
					log.Error("Error parsing config file", zap.Error(err))
					return
				}
			}

			// Rebuild the logger with the configured rotation settings.
			log.Logger = log.NewLoggerWith(
				config.Opts.LogFile,
				config.Opts.LogLevel,
				config.Opts.LogFileMaxSize,
				config.Opts.LogFileMaxBackups,
				config.Opts.LogFileMaxAge,
				config.Opts.LogCompress,
			)

			db, err := database.NewDB()
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return
			}
			defer db.Close()
			if err := database.Migrate(ctx, db); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			s := store.NewStore(db)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			jwtSecret := config.Opts.JWTSecret
			if jwtSecret == "" {
				security, err := s.GetOrUpsetSystemSecuritySetting()
				if err != nil {
					log.Error("Error loading security settings", zap.Error(err))
					return
				}
				jwtSecret = security.JWTSecret
			}

			client := catalog.NewClient(
				config.Opts.CatalogEndpoint,
				config.Opts.CatalogLanguage,
				time.Duration(config.Opts.CatalogTimeout)*time.Second,
			)
			reconciler := catalog.NewReconciler(s, client)
			generator := recommend.NewGenerator(config.Opts.OllamaEndpoint, config.Opts.OllamaModel)
			workflow := recommend.NewWorkflow(s, generator, reconciler)

			pool := worker.NewPool(workflow, config.Opts.WorkerPoolSize)
			sched := scheduler.Start(s, pool, config.Opts.RefreshInterval)
			defer sched.Stop()

			handler := v1.NewHandler(s, reconciler, workflow, jwtSecret)
			httpServer := server.StartServer(ctx, handler, s)

			println(greetingBanner)
			log.Info("Server started",
				zap.String("host", config.Opts.Host),
				zap.Int("port", config.Opts.Port))

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			log.Info("Shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down HTTP server", zap.Error(err))
			}
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
}

func main() {
	defer log.Logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("Failed to start", zap.Error(err))
	}
}
