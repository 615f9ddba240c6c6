package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quikbite/quikbite/config"
	"github.com/quikbite/quikbite/database"
	"github.com/quikbite/quikbite/database/dbhelper"
	"github.com/quikbite/quikbite/handlers"
	"github.com/quikbite/quikbite/notify"
	"github.com/quikbite/quikbite/orders"
	"github.com/quikbite/quikbite/payments"
	"github.com/quikbite/quikbite/server"
	"github.com/quikbite/quikbite/storage"
)

const shutdownTimeOut = 10 * time.Second

func main() {
	config.Init()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	if err := database.ConnectAndMigrate(); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	gateway := payments.NewStripeGateway(config.StripeSecretKey)
	settlement := payments.NewService(gateway, dbhelper.SettlementStore{}, config.Currency, config.PlatformFeePercent)

	var objectStore storage.ObjectStore
	if config.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), config.S3Bucket, config.S3Region)
		if err != nil {
			logrus.Panicf("failed to initialize object storage, error: %v", err)
		}
		objectStore = s3Store
	}

	handlers.Init(settlement, objectStore, notify.LogSender{}, orders.FixedFee{DeliveryFee: config.DeliveryFee})

	svr := server.SetupRoutes()
	go func() {
		logrus.Printf("starting server on %s", config.ServerPort)
		if err := svr.Run(config.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Panic("server failed")
		}
	}()

	<-done

	logrus.Info("shutting down...")
	if err := svr.Shutdown(shutdownTimeOut); err != nil {
		logrus.WithError(err).Error("failed to shut down server cleanly!")
	}
	if err := database.ShutdownDatabase(); err != nil {
		logrus.WithError(err).Error("failed to close database connection!")
	}

	logrus.Info("system is shut ..zzz")
}
