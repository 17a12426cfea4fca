package main

import (
	"embed"
	"log"
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"edascope/internal/config"
	"edascope/internal/insight"
	"edascope/internal/session"
	"edascope/ui"
)

//go:embed ui/templates/*.html ui/static/*
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store := session.NewStore(cfg.Server.SessionTTL)
	defer store.Close()

	client := insight.NewClient(cfg.AI)
	if cfg.AI.APIKey == "" {
		log.Println("EDA_API_KEY not set - insight streaming will be unavailable until configured")
	}

	server, err := ui.NewServer(cfg, store, client, embeddedFiles)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if cfg.Ops.Enabled {
		go runOpsServer(cfg.Ops.Port)
	}

	log.Printf("Starting EDA dashboard on http://localhost:%s", cfg.Server.Port)
	log.Fatal(server.Start())
}

// runOpsServer exposes health and pprof endpoints on a separate port so
// they never share a listener with the dashboard.
func runOpsServer(port string) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/debug/pprof/", pprof.Index)
	r.Get("/debug/pprof/cmdline", pprof.Cmdline)
	r.Get("/debug/pprof/profile", pprof.Profile)
	r.Get("/debug/pprof/symbol", pprof.Symbol)
	r.Get("/debug/pprof/trace", pprof.Trace)
	r.Get("/debug/pprof/{name}", func(w http.ResponseWriter, req *http.Request) {
		pprof.Handler(chi.URLParam(req, "name")).ServeHTTP(w, req)
	})

	log.Printf("[ops] Health and profiling server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Printf("[ops] server failed: %v", err)
	}
}
