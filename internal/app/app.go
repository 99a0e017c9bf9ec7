package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cbrbot/internal/adapters"
	"cbrbot/internal/adapters/cache"
	"cbrbot/internal/adapters/httpclient"
	"cbrbot/internal/adapters/kafka"
	"cbrbot/internal/adapters/redis"
	"cbrbot/internal/api"
	"cbrbot/internal/bot"
	"cbrbot/internal/config"
	httpserver "cbrbot/internal/platform/http"
	redisclient "cbrbot/internal/platform/redis"
	"cbrbot/internal/rate"
	"cbrbot/internal/rate/handler"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const startupTimeout = 30 * time.Second

// Run wires the application components, syncs rates once, then serves the bot and the operator HTTP API
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (redis connect, initial sync)
	startupCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	// Cache
	redisCli, err := redisclient.CreateClientAndPing(startupCtx, appCfg.Redis)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to redis")
		return err
	}
	defer func() { _ = redisCli.Close() }()
	logrus.Info("✅ Redis connection successful")
	var store adapters.RateStore = redis.NewStore(redisCli)

	// Optional in-process read cache in front of redis
	if appCfg.LocalCache.TTLSeconds > 0 {
		rateCache, cacheErr := cache.NewReadThroughStore(
			store,
			appCfg.LocalCache.MaxItems,
			time.Duration(appCfg.LocalCache.TTLSeconds)*time.Second,
		)
		if cacheErr != nil {
			logrus.WithError(cacheErr).Error("Failed to create rate cache")
			return cacheErr
		}
		defer rateCache.Close()
		store = rateCache
	}

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	feedClient := httpclient.NewCBRFeedClient(&http.Client{Timeout: httpTimeout}, appCfg.Feed.URL)

	// Optional event publishing
	var publisher adapters.EventPublisher
	if brokers := kafka.ParseBrokers(appCfg.Kafka.Brokers); len(brokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(brokers, appCfg.Kafka.Topic)
		defer func() {
			if closeErr := kafkaPublisher.Close(); closeErr != nil {
				logrus.WithError(closeErr).Error("Kafka publisher close error")
			}
		}()
		publisher = kafkaPublisher
		logrus.Infof("✅ Rates updated events go to topic %s", appCfg.Kafka.Topic)
	}

	// Services
	syncer := rate.NewSyncer(feedClient, store, publisher)
	rateService := rate.NewService(store)

	// Initial sync has to finish before any command is served
	execID := uuid.NewString()
	if syncErr := syncer.Sync(startupCtx, execID); syncErr != nil {
		logrus.WithError(syncErr).Errorf("Startup rates sync %s failed, serving cached rates", execID)
	}

	if appCfg.Scheduler.RefreshIntervalSeconds > 0 {
		scheduler := rate.NewScheduler(syncer, time.Duration(appCfg.Scheduler.RefreshIntervalSeconds)*time.Second)
		// Ensure scheduler stops before redis client closes
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Chat transport
	if logErr := tgbotapi.SetLogger(logrus.StandardLogger()); logErr != nil {
		return logErr
	}
	botAPI, err := tgbotapi.NewBotAPI(appCfg.Bot.Token)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to telegram")
		return err
	}
	botAPI.Debug = appCfg.Bot.Debug
	logrus.Infof("✅ Authorized as @%s", botAPI.Self.UserName)
	chatBot := bot.NewBot(botAPI, bot.NewCommands(rateService), appCfg.Bot.PollTimeoutSeconds, appCfg.Bot.SkipPending)

	// Handlers and router
	rateHandler := handler.NewRateHandler(rateService, syncer)
	router := api.NewRouter(rateHandler)

	// Whichever of the two stops first takes the other one down
	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer stop()
		logrus.Info("Starting http server")
		if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
			logrus.Errorf("HTTP server error: %v", serverErr)
			errCh <- serverErr
		}
	}()
	go func() {
		defer wg.Done()
		defer stop()
		if botErr := chatBot.Run(ctx); botErr != nil {
			logrus.Errorf("Bot error: %v", botErr)
			errCh <- botErr
		}
	}()
	wg.Wait()
	close(errCh)

	var runErr error
	for e := range errCh {
		runErr = errors.Join(runErr, e)
	}
	logrus.Info("Shutdown complete")
	return runErr
}
