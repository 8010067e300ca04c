package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spencer-p/goldenhour/pkg/app"
	"github.com/spencer-p/goldenhour/pkg/config"
	"github.com/spencer-p/goldenhour/pkg/handlers"
	"github.com/spencer-p/goldenhour/pkg/history"
	"github.com/spencer-p/goldenhour/pkg/log"
	"github.com/spencer-p/goldenhour/pkg/metrics"
)

func main() {
	env, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := log.Init(env.Debug, env.LogFile); err != nil {
		log.Fatalf("%v", err)
	}
	defer log.Sync()

	a, err := app.New(context.Background(), env)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	r := mux.NewRouter().StrictSlash(true)
	r.Use(metrics.LatencyHandler)
	r.Handle("/metrics", promhttp.Handler())
	s := r.PathPrefix(env.Prefix).Subrouter()

	handlers.Register(s, env.Prefix, &handlers.Server{
		Resolver: a.Resolver,
		Engine:   a.Engine,
		Weather:  a.Forecast,
		Sessions: history.NewSessionStore(env.SessionKey, env.EncryptionKey, env.SecureCookies),
		History:  a.History,
	})

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Infof("Listening and serving on %s%s", srv.Addr, env.Prefix)
	log.Fatalf("%v", srv.ListenAndServe())
}
