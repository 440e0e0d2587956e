package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NathanHymers98/spacebar/api"
	"github.com/NathanHymers98/spacebar/api/core"
	"github.com/NathanHymers98/spacebar/cache"
	"github.com/NathanHymers98/spacebar/config"
	"github.com/NathanHymers98/spacebar/database/dbcore"
	"github.com/NathanHymers98/spacebar/storage"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := dbcore.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := dbcore.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	repositories := core.NewRepositories(db)
	repositories.UsersRepo.CreateDefaultAdminUser()

	storageFactory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	cacheProvider, err := cache.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	if err := api.TokenInit(cfg.JwtSecret, cfg.JwtExpiresIn); err != nil {
		log.Fatalf("Failed to initialize JWT: %s", err)
	}

	deps := &core.ServerDependencies{
		DB:             db,
		StorageFactory: storageFactory,
		CacheProvider:  cacheProvider,
		Repositories:   repositories,
	}

	// 启动gin
	server, cleanup := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// 处理退出signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
		log.Println("Cleanup tasks finished.")
	}

	if err := cacheProvider.Close(); err != nil {
		log.Printf("Error closing cache: %v", err)
	}

	if err := dbcore.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited successfully")
}
