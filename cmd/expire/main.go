// Job - сгорание баллов по программе
// Лоты начислений старше срока жизни гасятся списаниями FIFO, остаток сгорает
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	db "github.com/budleaf/marketing/engine/internal/db"
	services "github.com/budleaf/marketing/engine/internal/services"
)

func main() {
	// log
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// config
	programEnv := os.Getenv("MARKETING_PROGRAM")
	if programEnv == "" {
		panic("env MARKETING_PROGRAM is not set")
	}
	programId, err := uuid.Parse(programEnv)
	if err != nil {
		panic("env MARKETING_PROGRAM is not a uuid")
	}

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

	orch := services.NewOrchestrator(logger, deals, ledger, touch, cache,
		services.DealConfig{}, services.AttributionConfig{}, "")

	err = orch.ExpireProgram(context.Background(), programId, time.Now())
	if err != nil {
		logger.Error(err.Error())
		return
	}

	// переоценка уровней на границе периода
	if os.Getenv("MARKETING_ROLLOVER") == "true" {
		err = orch.RolloverProgram(context.Background(), programId)
		if err != nil {
			logger.Error(err.Error())
			return
		}
	}
	logger.Info("Job points expiry is finished")
}
