package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"notif-insights-go/internal/analyzer"
	"notif-insights-go/internal/generator"
	"notif-insights-go/internal/insights"
	"notif-insights-go/internal/logger"
	"notif-insights-go/internal/matcher"
	"notif-insights-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "notif-insights-go").Info("starting service")

	engine := analyzer.New(log)

	// optional external generator; heuristic stays the fallback
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		llm := generator.NewOpenAI(apiKey, os.Getenv("OPENAI_MODEL"), log)
		engine.SetGenerator(generator.WithFallback(llm, generator.NewHeuristic(nil), log))
		log.Info("external candidate generator enabled")
	}

	// optional dataset preload
	if dataPath := os.Getenv("DATASET_PATH"); dataPath != "" {
		log.WithField("dataset_path", dataPath).Info("loading dataset")
		res, err := engine.IngestWorkbook(dataPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load dataset")
		}
		log.WithField("accepted", res.Accepted).WithField("rejected", res.Rejected).Info("dataset loaded")
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		logger.New().WithRequest(req).Info("health check")
		fmt.Fprint(w, "ok")
	})

	r.Post("/api/upload", func(w http.ResponseWriter, req *http.Request) {
		reqLog := logger.New().WithRequest(req).WithField("handler", "upload")
		body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, 10<<20))
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read request body")
			return
		}
		res, err := engine.IngestText(string(body))
		if err != nil {
			reqLog.WithError(err).Warn("ingestion failed")
			if errors.Is(err, types.ErrEmptyDataset) {
				writeError(w, http.StatusBadRequest, "no valid rows found")
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		reqLog.WithField("accepted", res.Accepted).WithField("rejected", res.Rejected).Info("ingestion complete")
		writeJSON(w, http.StatusOK, res)
	})

	r.Get("/api/dashboard", func(w http.ResponseWriter, req *http.Request) {
		snap, err := engine.Dashboard()
		if err != nil {
			writeQueryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	})

	r.Post("/api/score", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		res, err := engine.Score(in.Message)
		if err != nil {
			writeQueryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	r.Post("/api/match", func(w http.ResponseWriter, req *http.Request) {
		mreq, ok := decodeRequest(w, req)
		if !ok {
			return
		}
		results, err := engine.Match(mreq)
		if err != nil {
			writeQueryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, results)
	})

	r.Post("/api/generate", func(w http.ResponseWriter, req *http.Request) {
		reqLog := logger.New().WithRequest(req).WithField("handler", "generate")
		mreq, ok := decodeRequest(w, req)
		if !ok {
			return
		}
		start := time.Now()
		candidates, err := engine.GenerateCandidates(req.Context(), mreq)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("generation finished")
		if err != nil {
			writeQueryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, candidates)
	})

	r.Get("/api/insights", func(w http.ResponseWriter, req *http.Request) {
		stats, err := engine.Statistics()
		if err != nil {
			writeQueryError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, insights.Build(stats))
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// decodeRequest reads a MessageRequest, also accepting a free-text "text"
// field that is parsed into structured attributes when the structured
// fields are absent.
func decodeRequest(w http.ResponseWriter, req *http.Request) (types.MessageRequest, bool) {
	var in struct {
		types.MessageRequest
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return types.MessageRequest{}, false
	}
	if in.Text != "" && in.Service == "" && len(in.Keywords) == 0 && in.Tone == "" {
		parsed := matcher.ParseRequest(in.Text)
		parsed.Limit = in.Limit
		return parsed, true
	}
	return in.MessageRequest, true
}

func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrNotAnalyzed):
		writeError(w, http.StatusConflict, "please ingest data first")
	case errors.Is(err, types.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
