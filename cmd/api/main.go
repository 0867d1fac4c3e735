package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adactor "github.com/badnest/badnest2mqtt/internal/adapter/actor"
	"github.com/badnest/badnest2mqtt/internal/config"
	"github.com/badnest/badnest2mqtt/internal/core/actor"
	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/internal/core/service"
	"github.com/badnest/badnest2mqtt/internal/i18n"
	"github.com/badnest/badnest2mqtt/internal/server"
	"github.com/badnest/badnest2mqtt/internal/util/actorutil"
	"github.com/badnest/badnest2mqtt/pkg/nest"

	pactor "github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {

	// load and print config
	cfg, err := initConfig()
	if err != nil {
		slog.Error("config errors", "error", err)
		return
	}
	safePrintConfig(*cfg)

	// zap logger
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)

	logger := zap.Must(zapCfg.Build())

	// init actor system
	as := actorutil.NewActorSystemWithZapLogger(logger)
	ctx := as.Root

	defer logger.Sync()

	// load service manifest and translations
	registry, err := service.LoadRegistry(cfg.Services.ManifestPath)
	if err != nil {
		slog.Error("could not load service manifest", "error", err)
		return
	}
	catalog, err := i18n.LoadCatalog(cfg.Services.TranslationsPath)
	if err != nil {
		slog.Error("could not load translations", "error", err)
		return
	}

	props := pactor.PropsFromProducer(func() pactor.Actor {
		return actor.NewMasterOfPuppetsActor(*cfg, nestActorProvider(cfg, logger), mqttActorProvider(cfg, logger), logger)
	})
	pid, err := ctx.SpawnNamed(props, "master")
	if err != nil {
		return
	}

	// discover devices to build the entity table for the service layer
	entities, err := discoverEntities(ctx, pid)
	if err != nil {
		slog.Error("device discovery failed", "error", err)
		ctx.Stop(pid)
		as.Shutdown()
		return
	}

	controller := adactor.NewActorDeviceController(ctx, pid, 30*time.Second)
	dispatcher := service.NewDispatcher(registry, entities, controller, logger)

	server := server.NewServer(*cfg, ctx, pid, dispatcher, registry, catalog)
	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(server, done)

	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Println("Graceful shutdown complete.")

	ctx.Stop(pid)
	as.Shutdown()
}

func discoverEntities(ctx *pactor.RootContext, master *pactor.PID) (*domain.EntityTable, error) {
	res, err := ctx.RequestFuture(master, domain.GetDevicesRequest{}, 60*time.Second).Result()
	if err != nil {
		return nil, err
	}
	resp, ok := res.(domain.GetDevicesResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", res)
	}
	if resp.HasResponseError() {
		return nil, resp.GetResponseError()
	}
	return domain.NewEntityTable(domain.EntitiesFromDevices(resp.Devices)), nil
}

func initConfig() (*config.Config, error) {

	// alias PORT => BADNEST_PORT
	if port := os.Getenv("PORT"); port != "" {
		os.Setenv("BADNEST_PORT", port)
	}

	setConfigDefaults()

	viper.SetEnvPrefix("badnest")
	viper.AutomaticEnv()

	// if defined, try to load config from yaml file
	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			slog.Info("Using config", "file", cfgFile)
			viper.SetConfigFile(cfgFile)

			err = viper.ReadInConfig()
			if err != nil {
				slog.Error("Error reading config file", "error", err)
			}
		}
	}

	var cfg config.Config

	err := viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	// parse log level
	switch viper.GetString("log_level") {
	case "trace":
		cfg.LogLevel = zap.DebugLevel
	case "debug":
		cfg.LogLevel = zap.DebugLevel
	case "info":
		cfg.LogLevel = zap.InfoLevel
	case "error":
		cfg.LogLevel = zap.ErrorLevel
	case "warn":
		cfg.LogLevel = zap.WarnLevel
	case "fatal":
		cfg.LogLevel = zap.FatalLevel
	default:
		cfg.LogLevel = zap.InfoLevel
	}

	// check and fix base topic
	baseTopic, err := config.CheckMQTTTopic(cfg.MQTT.BaseTopic)
	if err != nil {
		return nil, errors.New("invalid base topic. can only contain letters, numbers and underscores")
	}
	cfg.MQTT.BaseTopic = baseTopic

	// check and fix homeassistant discovery topic
	hadBaseTopic, err := config.CheckMQTTTopic(cfg.MQTT.HADiscoveryTopic)
	if err != nil {
		return nil, errors.New("invalid homeassistant discovery topic. can only contain letters, numbers and underscores")
	}
	cfg.MQTT.HADiscoveryTopic = hadBaseTopic

	// check bounds
	if cfg.MonitorConfig.PollIntervalMillis < 1000 {
		return nil, errors.New("config param monitor.poll_interval_millis should be >= 1000")
	}
	if cfg.Services.DefaultBoostMinutes < 1 || cfg.Services.DefaultBoostMinutes > 240 {
		return nil, errors.New("config param services.default_boost_minutes should be within [1, 240]")
	}

	// check Nest credentials
	if cfg.Nest.AccessToken == "" && (cfg.Nest.IssueToken == "" || cfg.Nest.Cookie == "") {
		return nil, errors.New("config params nest.issue_token and nest.cookie (or nest.access_token) are required")
	}
	if cfg.Nest.UserID == "" {
		return nil, errors.New("config param nest.user_id is required")
	}

	return &cfg, nil
}

func nestActorProvider(cfg *config.Config, logger *zap.Logger) actor.NestActorProvider {
	return func() *adactor.NestActor {
		client := nest.CreateRestClient(nest.ClientParams{
			UserID:      cfg.Nest.UserID,
			AccessToken: cfg.Nest.AccessToken,
			IssueToken:  cfg.Nest.IssueToken,
			Cookie:      cfg.Nest.Cookie,
		}, 15*time.Second, logger)
		return adactor.NewNestActor(client, logger)
	}
}

func mqttActorProvider(cfg *config.Config, logger *zap.Logger) actor.MQTTActorProvider {
	return func(es *eventstream.EventStream) *adactor.MQTTActor {
		return adactor.NewMQTTActor(cfg, es, logger)
	}
}

func setConfigDefaults() {
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("mqtt.ha_discovery_enable", false)
	viper.SetDefault("mqtt.base_topic", "badnest")
	viper.SetDefault("mqtt.ha_discovery_topic", "homeassistant")
	viper.SetDefault("monitor.poll_interval_millis", 5000)
	viper.SetDefault("services.manifest_path", "services.yaml")
	viper.SetDefault("services.translations_path", "translations/en.json")
	viper.SetDefault("services.default_boost_minutes", 30)
	viper.SetDefault("port", 8080)
}

func safePrintConfig(cfg config.Config) {
	cfg.MQTT.Username = "*redacted*"
	cfg.MQTT.Password = "*redacted*"
	cfg.Nest.AccessToken = "*redacted*"
	cfg.Nest.IssueToken = "*redacted*"
	cfg.Nest.Cookie = "*redacted*"
	slog.Info("Using", "config", cfg)
}
