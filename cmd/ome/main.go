package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dikshith-shetty/ome/config"
	"github.com/dikshith-shetty/ome/pkg/engine"
	"github.com/dikshith-shetty/ome/pkg/httpapi"
	postgres_wrapper "github.com/dikshith-shetty/ome/pkg/infra/postgres"
	"github.com/dikshith-shetty/ome/pkg/logging"
	"github.com/dikshith-shetty/ome/pkg/oms"
	"github.com/dikshith-shetty/ome/pkg/oms/repo"
	"github.com/dikshith-shetty/ome/pkg/oms/store"
	"github.com/dikshith-shetty/ome/pkg/orderbook"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	logger, err := logging.Init(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // nolint

	go func() {
		http.ListenAndServe("localhost:6060", nil) // nolint
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	var rp repo.IRepo
	if cfg.OmsDB != nil {
		db := postgres_wrapper.InitPostgresWithBackoff(cfg.OmsDB)
		rp = repo.NewRepo(db)
	}

	eng := engine.New(orderbook.NewManager(), cfg.Engine)
	svc := oms.NewOrderService(store.NewInMemoryStore(), eng, rp)
	srv := httpapi.NewServer(cfg.HTTP, svc)

	go func() {
		zap.S().Infof("listening on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("http server: %v", err)
		}
	}()
	fmt.Println("OME started. Press Ctrl+C to exit.")

	<-sigs
	fmt.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Warnf("http shutdown: %v", err)
	}
	eng.Stop()

	fmt.Println("Exited cleanly.")
}
