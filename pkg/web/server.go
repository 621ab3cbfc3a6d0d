package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/ritzau/cycle-detector/pkg/adjacency"
	"github.com/ritzau/cycle-detector/pkg/analysis"
	"github.com/ritzau/cycle-detector/pkg/config"
	"github.com/ritzau/cycle-detector/pkg/cycles"
	"github.com/ritzau/cycle-detector/pkg/logging"
	"github.com/ritzau/cycle-detector/pkg/pubsub"
	"github.com/ritzau/cycle-detector/pkg/samples"
)

// maxBodyBytes bounds the size of a posted matrix
const maxBodyBytes = 8 << 20

// DetectRequest is the body of POST /api/detect
type DetectRequest struct {
	Matrix *adjacency.Matrix `json:"matrix"`
}

// AlgorithmResult is one detector's answer in an API response
type AlgorithmResult struct {
	Algorithm cycles.Algorithm `json:"algorithm"`
	Cyclic    bool             `json:"cyclic"`
	Cycle     []int            `json:"cycle"`
}

// DetectResponse is the body returned by POST /api/detect
type DetectResponse struct {
	Results    []AlgorithmResult `json:"results"`
	Components [][]int           `json:"components"`
}

// SampleResponse is one entry of GET /api/samples
type SampleResponse struct {
	Name   string            `json:"name"`
	Matrix *adjacency.Matrix `json:"matrix"`
	DetectResponse
}

// errorResponse is the body of every non-2xx reply
type errorResponse struct {
	Error string `json:"error"`
}

// Server represents the web server
type Server struct {
	router    *mux.Router
	publisher *pubsub.SSEPublisher
}

// NewServer creates a new web server
func NewServer() *Server {
	ssePublisher := pubsub.NewSSEPublisher()

	// detections: keep a short history, replay only the latest result to new subscribers
	ssePublisher.ConfigureTopic(pubsub.TopicDetections, pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false,
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: ssePublisher,
	}
	s.setupRoutes()
	return s
}

// Publisher returns the publisher that feeds the SSE endpoint
func (s *Server) Publisher() pubsub.Publisher {
	return s.publisher
}

// Handler returns the router wrapped in request logging
func (s *Server) Handler() http.Handler {
	return logging.RequestIDMiddleware(s.router)
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/subscribe/detections", s.handleSubscribeDetections).Methods("GET")

	s.router.HandleFunc("/api/detect", s.handleDetect).Methods("POST")
	s.router.HandleFunc("/api/samples", s.handleSamples).Methods("GET")
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
}

func (s *Server) handleSubscribeDetections(w http.ResponseWriter, r *http.Request) {
	sub, err := s.publisher.Subscribe(r.Context(), pubsub.TopicDetections)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer sub.Close()

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Send initial comment to establish connection (Safari compatibility)
	fmt.Fprintf(w, ": connected\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	// The channel closes when the client goes away
	for event := range sub.Events() {
		if err := pubsub.WriteSSE(w, event); err != nil {
			logging.WarnContext(r.Context(), "error writing SSE event", "error", err)
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	algorithms, err := parseAlgorithms(r.URL.Query().Get("algorithm"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req DetectRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", adjacency.ErrInvalidInput, err))
		return
	}
	if req.Matrix == nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: missing \"matrix\" field", adjacency.ErrInvalidInput))
		return
	}

	report, err := analysis.Analyze("api", req.Matrix, analysis.Options{
		Algorithms: algorithms,
		Components: true,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	logging.InfoContext(ctx, "graph analyzed",
		"vertices", report.Vertices,
		"edges", report.Edges,
		"cyclic", report.Cyclic(),
	)

	update := analysis.Update{Source: "api:" + logging.GetRequestID(ctx), Reason: "request", Report: &report}
	if err := s.publisher.Publish(pubsub.TopicDetections, analysis.EventReport, update); err != nil {
		logging.WarnContext(ctx, "failed to publish detection", "error", err)
	}

	writeJSON(w, http.StatusOK, toResponse(report))
}

func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	all := samples.All()
	response := make([]SampleResponse, 0, len(all))

	for _, sample := range all {
		report, err := analysis.Analyze(sample.Name, sample.Matrix, analysis.Options{
			Algorithms: cycles.Algorithms(),
			Components: true,
		})
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		response = append(response, SampleResponse{
			Name:           sample.Name,
			Matrix:         sample.Matrix,
			DetectResponse: toResponse(report),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseAlgorithms accepts a single algorithm name or "both"; empty means both
func parseAlgorithms(name string) ([]cycles.Algorithm, error) {
	if strings.TrimSpace(name) == "" {
		name = config.AlgorithmBoth
	}
	cfg := config.Config{Algorithm: name}
	return cfg.Algorithms()
}

func toResponse(report analysis.Report) DetectResponse {
	results := make([]AlgorithmResult, 0, len(report.Detections))
	for _, d := range report.Detections {
		results = append(results, AlgorithmResult{
			Algorithm: d.Algorithm,
			Cyclic:    d.Result.Cyclic,
			Cycle:     d.Result.Cycle,
		})
	}

	components := report.Components
	if components == nil {
		components = [][]int{}
	}

	return DetectResponse{Results: results, Components: components}
}

// statusFor maps detection errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, cycles.ErrInternalInconsistency):
		return http.StatusInternalServerError
	case errors.Is(err, adjacency.ErrInvalidInput), errors.Is(err, cycles.ErrUnknownAlgorithm):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// Start serves the API on port until ctx is cancelled
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("starting web server", "url", fmt.Sprintf("http://localhost:%d", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down web server")

	// Ends open SSE streams so Shutdown does not wait on them
	s.publisher.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	return nil
}
