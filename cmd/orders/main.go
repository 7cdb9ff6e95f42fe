// Job - обработка завершенных заказов
// Опрос Kafka -> скидки, начисление баллов, атрибуция
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	db "github.com/budleaf/marketing/engine/internal/db"
	kafka "github.com/budleaf/marketing/engine/internal/external/kafka"
	services "github.com/budleaf/marketing/engine/internal/services"
	"go.uber.org/zap"
)

func main() {
	// log
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// kafka
	reader, err := kafka.GetNewReader("orders")
	if err != nil {
		panic(err)
	}
	defer reader.CloseReader()

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

	// start
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var semcount int
	semenv := os.Getenv("MARKETING_ORDERS_COUNT")
	if semenv == "" {
		semcount = 5
	} else {
		semcount, err = strconv.Atoi(semenv)
		if err != nil {
			semcount = 5
		}
	}
	if semcount == 0 {
		semcount = 1
	}

	wg := &sync.WaitGroup{}
	semaphore := make(chan struct{}, semcount)

loop:
	for {
		select {
		case <-interrupt:
			cancel()
			break loop
		case <-ctx.Done():
			break loop
		default:

			orderJson, err := reader.GetNewMessage(ctx)
			if err != nil {
				logger.Error(err.Error())
				return
			}

			semaphore <- struct{}{}
			wg.Add(1)
			go func(orderJson string) {
				defer wg.Done()
				defer func() { <-semaphore }()
				order, err := services.ParseOrder(orderJson)
				if err != nil {
					orch.Log(err)
					return
				}
				err = orch.OrderCompleted(ctx, order)
				if err != nil {
					orch.Log(err)
					return
				}
			}(orderJson)
		}
	}
	wg.Wait()
}
