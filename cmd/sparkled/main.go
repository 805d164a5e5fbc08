package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/sparkle-network/sparkled/internal/config"
	"github.com/sparkle-network/sparkled/internal/core/application"
	"github.com/sparkle-network/sparkled/internal/core/ports"
	dbbadger "github.com/sparkle-network/sparkled/internal/infrastructure/storage/db/badger"
	"github.com/sparkle-network/sparkled/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/sparkle-network/sparkled/internal/interfaces/http"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	logLevel := log.Level(config.GetInt(config.LogLevelKey))
	log.SetLevel(logLevel)
	if logLevel < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Fatal("error opening storage backend")
	}
	defer repoManager.Close()

	svc, err := application.NewService(repoManager, prometheus.DefaultRegisterer)
	if err != nil {
		log.WithError(err).Fatal("error creating coordinator service")
	}

	reaper := application.NewReaper(svc, config.GetDuration(config.ReaperIntervalKey))
	reaper.Start()

	addr := fmt.Sprintf(":%d", config.GetInt(config.PortKey))
	server := &http.Server{
		Addr:    addr,
		Handler: httpinterface.NewRouter(svc, config.GetInt(config.RateLimitKey)),
	}

	go func() {
		log.Infof("coordinator interface is listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("error listening on coordinator interface")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("shutting down")
	reaper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("error shutting down coordinator interface")
	}

	log.Info("exiting")
}

func newRepoManager() (ports.RepoManager, error) {
	switch config.GetString(config.DBTypeKey) {
	case config.DBBadger:
		return dbbadger.NewDbManager(config.GetDbDir(), nil)
	default:
		return inmemory.NewDbManager(), nil
	}
}
