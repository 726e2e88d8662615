package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// Server renders built-in scenes on request and returns them as P3 pixmaps
type Server struct {
	port        int
	consoleChan chan ConsoleMessage
	console     *console
	renders     atomic.Int64

	done      chan struct{}
	collected chan struct{}
	closeOnce sync.Once
}

// NewServer creates a new web server and starts collecting console messages.
// Call Close to stop the collector.
func NewServer(port int) *Server {
	s := &Server{
		port:        port,
		consoleChan: make(chan ConsoleMessage, 100),
		console:     &console{},
		done:        make(chan struct{}),
		collected:   make(chan struct{}),
	}
	go func() {
		defer close(s.collected)
		s.console.collect(s.consoleChan, s.done)
	}()
	return s
}

// Close stops the console collector and waits for it to exit. It is safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	<-s.collected
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`      // Built-in scene name
	Width      int    `json:"width"`      // Image width; height follows the scene aspect ratio
	Samples    int    `json:"samples"`    // Samples per pixel
	Depth      int    `json:"depth"`      // Maximum bounce depth
	Seed       int64  `json:"seed"`       // Sampler seed
	Integrator string `json:"integrator"` // "path" or "normal"
}

// ScenesResponse lists what /api/render accepts
type ScenesResponse struct {
	Scenes      []string `json:"scenes"`
	Integrators []string `json:"integrators"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/console", s.handleConsole)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and integrators
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ScenesResponse{Scenes: scene.List(), Integrators: integrator.Names()})
}

// handleConsole returns the most recent render progress messages
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.console.recent())
}

// handleRender renders one pass and responds with the P3 image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj, err := scene.New(req.Scene)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	sceneObj.SetWidth(req.Width)
	sceneObj.Sampling.SamplesPerPixel = req.Samples
	sceneObj.Sampling.MaxDepth = req.Depth

	raytracer, err := sceneObj.NewRaytracer()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	integ, err := integrator.New(req.Integrator)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	logger := NewWebLogger(renderID, s.consoleChan)
	logger.Printf("Rendering %s (%d spheres) at %dx%d, %d samples\n", req.Scene, sceneObj.GetPrimitiveCount(),
		sceneObj.Sampling.Width, sceneObj.Sampling.Height, req.Samples)

	raytracer.SetIntegrator(integ)
	raytracer.SetSampler(core.NewSeededSampler(req.Seed))
	raytracer.SetLogger(logger)

	img, stats, err := raytracer.RenderPassContext(r.Context())
	if err != nil {
		log.Printf("[%s] %v", renderID, err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	data, err := output.Encode(img)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", output.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Total-Samples", strconv.Itoa(stats.TotalSamples))
	if _, err := w.Write(data); err != nil {
		log.Printf("[%s] write response: %v", renderID, err)
	}
}

// parseRenderRequest parses and range-checks the query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{
		Scene:      "default",
		Integrator: "path",
		Seed:       renderer.DefaultSeed,
	}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}
	if name := values.Get("integrator"); name != "" {
		req.Integrator = name
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 10, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 10, 1, 100); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
