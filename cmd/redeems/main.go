// Job - обработка списаний баллов из очереди с подтверждениями
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	db "github.com/budleaf/marketing/engine/internal/db"
	rabbit "github.com/budleaf/marketing/engine/internal/external/rabbitmq"
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

	// rabbitmq
	reader, err := rabbit.NewRabbitConsumer()
	if err != nil {
		logger.Error(err.Error())
		panic(err)
	}
	defer reader.Close()

	// databases
	deals, err := db.NewDealsDB()
	if err != nil {
		panic(err)
	}
	ledger, err := db.NewLedgerDB(logger)
	if err != nil {
		logger.Error(err.Error())
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

	orch := services.NewOrchestrator(logger, deals, ledger, touch, cache,
		services.DealConfig{}, services.AttributionConfig{}, "")

	// start
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var semcount int
	semenv := os.Getenv("MARKETING_REDEEM_COUNT")
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

	// os signals
	go func() {
		<-interrupt
		cancel()
	}()

	// workers
	wg := &sync.WaitGroup{}
	wg.Add(semcount)
	for i := 0; i < semcount; i++ {
		go worker(ctx, orch, wg, logger, reader)
	}
	wg.Wait()
}

// worker for rabbitmq messages
func worker(ctx context.Context, orch *services.Orchestrator, wg *sync.WaitGroup, logger *zap.Logger, reader *rabbit.RabbitConsumer) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
			msg, ok := <-reader.Msg
			if !ok {
				return
			}
			request, err := services.ParseRedeem(string(msg.Body))
			if err != nil {
				logger.Error(err.Error())
				continue
			}
			err = orch.RedeemPoints(ctx, request.MemberID, request.Points, request.RedeemID)
			if err != nil {
				logger.Error(err.Error())
				_ = reader.Processed(ctx, request.RedeemID, false)
				continue
			}
			err = reader.Processed(ctx, request.RedeemID, true)
			if err != nil {
				logger.Error(err.Error())
				continue
			}
		}
	}
}
