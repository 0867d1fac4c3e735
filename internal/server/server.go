package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/badnest/badnest2mqtt/internal/config"
	"github.com/badnest/badnest2mqtt/internal/core/service"
	"github.com/badnest/badnest2mqtt/internal/i18n"

	"github.com/asynkron/protoactor-go/actor"
	_ "github.com/joho/godotenv/autoload"
)

type Server struct {
	port        uint
	httpLog     bool
	rootContext *actor.RootContext
	masterActor *actor.PID
	dispatcher  *service.Dispatcher
	registry    *service.Registry
	catalog     *i18n.Catalog
}

func NewServer(cfg config.Config, rootContext *actor.RootContext, masterActor *actor.PID,
	dispatcher *service.Dispatcher, registry *service.Registry, catalog *i18n.Catalog) *http.Server {
	NewServer := &Server{
		port:        cfg.Port,
		rootContext: rootContext,
		masterActor: masterActor,
		dispatcher:  dispatcher,
		registry:    registry,
		catalog:     catalog,
		httpLog:     cfg.HttpLog,
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", NewServer.port),
		Handler:      NewServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
