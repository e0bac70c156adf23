package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactkeval/option-value/internal/config"
	"github.com/contactkeval/option-value/internal/data"
	"github.com/contactkeval/option-value/internal/logger"
	"github.com/contactkeval/option-value/internal/report"
	"github.com/contactkeval/option-value/internal/sweep"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	outdir := flag.String("outdir", "", "override output directory")
	pretty := flag.Bool("pretty", false, "human-readable console logging")
	rest := flag.Bool("rest", false, "run as REST server (accept sweep jobs)")
	port := flag.String("port", ":8080", "REST server listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Str("path", *configPath).Msg("reading config")
	}
	if *outdir != "" {
		cfg.Output.Dir = *outdir
	}
	if *pretty {
		cfg.Log.Pretty = true
	}
	logger.SetGlobal(logger.New(cfg.Log))
	log := logger.Component("main")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	runner := sweep.NewRunner(cfg, chooseProvider(cfg, log))

	if *rest {
		serveREST(runner, *port, log)
		return
	}

	start := time.Now()
	res, err := runner.Run(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("sweep failed")
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		log.Warn().Err(err).Str("dir", cfg.Output.Dir).Msg("could not create output dir")
	}
	_ = report.WriteJSON(res, cfg.Output.Dir)
	_ = report.WriteCSV(res, cfg.Output.Dir)
	log.Info().
		Dur("elapsed", time.Since(start)).
		Int("scenarios", len(res.Scenarios)).
		Str("dir", cfg.Output.Dir).
		Msg("done")
}

// chooseProvider wires the market data chain: the quotes API when an API
// key is present, backed by the local quote file when one is configured.
// Inline-only runs get no provider at all.
func chooseProvider(cfg *config.Config, log zerolog.Logger) data.Provider {
	var prov data.Provider
	if cfg.Market.QuoteFile != "" {
		csvProv, err := data.NewCSVQuoteProvider(cfg.Market.QuoteFile, nil)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Market.QuoteFile).Msg("loading quote file")
		}
		prov = csvProv
		log.Info().Str("path", cfg.Market.QuoteFile).Msg("csv provider enabled")
	}
	if apiKey := os.Getenv("QUOTES_API_KEY"); apiKey != "" {
		prov = data.NewHTTPQuoteProvider(apiKey, prov)
		log.Info().Msg("quotes API provider enabled")
	}
	return prov
}

func serveREST(runner *sweep.Runner, addr string, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		// quick endpoint to run a sweep once with the loaded config
		log.Info().Str("remote", r.RemoteAddr).Msg("received /run request")
		res, err := runner.Run(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	log.Info().Str("addr", addr).Msg("starting REST server")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal().Err(err).Msg("rest server stopped")
	}
}
