package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/nimbusbank/account-transfer-service/internal/config"
	kafkanotifier "github.com/nimbusbank/account-transfer-service/internal/events/kafka"
	"github.com/nimbusbank/account-transfer-service/internal/events/logging"
	interfaces "github.com/nimbusbank/account-transfer-service/internal/interfaces"
	"github.com/nimbusbank/account-transfer-service/internal/ledger"
	"github.com/nimbusbank/account-transfer-service/internal/server"
	"github.com/nimbusbank/account-transfer-service/internal/storage/memory"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var notifier interfaces.Notifier
	switch cfg.NotifierBackend {
	case config.NotifierKafka:
		kn := kafkanotifier.NewNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kn.Close()
		notifier = kn
	default:
		notifier = logging.NewNotifier(logger)
	}

	store := memory.NewAccountStore()
	ledgerService := ledger.NewLedger(store, notifier, logger)
	srv := server.New(ledgerService, logger)

	logger.Info("starting server",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("notifier", cfg.NotifierBackend),
	)
	if err := http.ListenAndServe(cfg.HTTPAddr, srv.Handler()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
