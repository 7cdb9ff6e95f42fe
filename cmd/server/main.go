// HTTP API - предпросмотр скидок, атрибуция, балансы, управление акциями
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	api "github.com/budleaf/marketing/engine/internal/api"
	db "github.com/budleaf/marketing/engine/internal/db"
	services "github.com/budleaf/marketing/engine/internal/services"
	otel "github.com/budleaf/marketing/engine/observability/otel"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// log
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// config
	port := os.Getenv("MARKETING_PORT")
	if port == "" {
		panic("env MARKETING_PORT is not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// tracing
	shutdown := otel.InitTracer(ctx)
	defer shutdown()

	// databases
	deals, err := db.NewDealsDB()
	if err != nil {
		panic(err)
	}
	ledger, err := db.NewLedgerDB(logger)
	if err != nil {
		panic(err)
	}
	touch, err := db.NewTouchDB()
	if err != nil {
		panic(err)
	}

	// cache
	cache, err := db.NewCacheService()
	if err != nil {
		logger.Error(err.Error())
	}

	var halfLife float64
	if hl := os.Getenv("MARKETING_HALF_LIFE_DAYS"); hl != "" {
		halfLife, err = strconv.ParseFloat(hl, 64)
		if err != nil {
			panic("env MARKETING_HALF_LIFE_DAYS is not a number")
		}
	}

	orch := services.NewOrchestrator(logger, deals, ledger, touch, cache,
		services.DealConfig{Stacking: services.StackingPolicy(os.Getenv("MARKETING_STACKING"))},
		services.AttributionConfig{HalfLifeDays: halfLife},
		"",
	)

	// api handlers
	handler := api.NewHandler(orch, deals, logger)
	mw := api.MiddlewareLog()

	root := http.NewServeMux()
	root.Handle("/metrics", promhttp.Handler())
	root.Handle("/", mw(handler))

	srv := &http.Server{
		Handler:      root,
		Addr:         ":" + port,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	go srv.ListenAndServe()

	// shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	timeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = srv.Shutdown(timeout)
	if err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
