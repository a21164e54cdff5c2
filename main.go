package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/plainconf/settings-api/configs"
	"github.com/plainconf/settings-api/handlers"
	"github.com/plainconf/settings-api/handlers/middleware"
	"github.com/plainconf/settings-api/settings"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

const version = "0.3.0"

var (
	sha1ver   string // sha1 revision used to build the program
	buildTime string // when the executable was built
)

func main() {
	var (
		printVersion bool
		envFilePath  string
	)

	// If we should just print the version number and exit
	flag.BoolVar(&printVersion, "version", false, "if true, print version and exit")
	flag.StringVar(&envFilePath, "envfile", "", "load environment variables from this file")
	flag.Parse()

	if printVersion {
		fmt.Printf("v%s build on %s from sha1 %s\n", version, buildTime, sha1ver)
		os.Exit(0)
	}

	cfg, err := configs.ParseWithOpts(configs.Options{EnvFilePath: envFilePath})
	if err != nil {
		panic(err)
	}

	runServer(cfg)

	os.Exit(0)
}

func runServer(cfg *configs.Config) {
	configs.ConfigureLogger(cfg.LogLevel)

	log.Info("Starting server")

	// Settings store
	store := settings.NewFileStore()

	if cfg.CreateMissing {
		if err := store.EnsureFileExists(cfg.SettingsFile); err != nil {
			log.Fatal(err)
		}
	}

	if err := store.Load(cfg.SettingsFile); err != nil {
		log.Fatal(err)
	}

	log.
		WithFields(log.Fields{
			"file":    cfg.SettingsFile,
			"entries": len(store.Settings()),
		}).
		Info("Settings loaded")

	// Service
	var opts []settings.ServiceOption
	if cfg.SaveRateLimit > 0 {
		opts = append(opts, settings.WithSaveRatelimiter(
			ratelimit.New(cfg.SaveRateLimit, ratelimit.WithoutSlack),
		))
	}

	service := settings.NewService(store, opts...)

	// HTTP handling
	settingsHandler := handlers.NewSettings(service)

	r := mux.NewRouter()

	// Catch the api version
	rv := r.PathPrefix("/{apiVersion}").Subrouter()

	// Debug
	rv.Handle("/debug", handlers.Debug("https://github.com/plainconf/settings-api", sha1ver, buildTime, cfg.SettingsFile)).Methods(http.MethodGet)

	// Health
	rv.HandleFunc("/health/ready", handlers.HandleHealthReady).Methods(http.MethodGet)
	rv.Handle("/health/liveness", handlers.Liveness(func() (interface{}, error) {
		return map[string]int{"entries": len(store.Settings())}, nil
	})).Methods(http.MethodGet)

	// Settings
	rv.Handle("/settings", settingsHandler.List()).Methods(http.MethodGet)      // list
	rv.Handle("/settings/{key}", settingsHandler.Get()).Methods(http.MethodGet) // details
	rv.Handle("/settings/{key}", settingsHandler.Set()).Methods(http.MethodPut) // upsert
	rv.Handle("/settings/actions/save", settingsHandler.Save()).Methods(http.MethodPost)
	rv.Handle("/settings/actions/save-as", settingsHandler.SaveAs()).Methods(http.MethodPost)
	rv.Handle("/settings/actions/reload", settingsHandler.Reload()).Methods(http.MethodPost)

	h := http.TimeoutHandler(r, cfg.ServerRequestTimeout, "request timed out")
	if !cfg.DisableCors {
		h = handlers.UseCors(h)
	}
	h = middleware.LoggingHandler(h)
	if !cfg.DisableCompress {
		h = handlers.UseCompress(h)
	}
	h = handlers.UseJson(h)

	// Server boilerplate
	srv := &http.Server{
		Handler:      h,
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		WriteTimeout: 0, // Disabled, set cfg.ServerRequestTimeout instead
		ReadTimeout:  0, // Disabled, set cfg.ServerRequestTimeout instead
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.
			WithFields(log.Fields{
				"host": cfg.Host,
				"port": cfg.Port,
			}).
			Info("Server listening")
		if err := srv.ListenAndServe(); err != nil {
			log.Warn(err)
		}
	}()

	// Trap interupt or sigterm and gracefully shutdown the server
	c := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+/) will not be caught.
	signal.Notify(c, os.Interrupt)

	// Block until we receive our signal.
	sig := <-c

	log.Infof("Got signal: %s. Shutting down..", sig)

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("Error in server shutdown: %s", err)
	}
}
