package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits
const (
	minImageSize = 16
	maxImageSize = 2000
	maxSamples   = 64
	maxDepth     = 16
)

// Server handles web requests for the raytracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	return s
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render or inspect request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`    // Scene ID (e.g., "cornell-box" or "json:classic")
	Width    int    `json:"width"`    // Image width
	Height   int    `json:"height"`   // Image height
	Samples  int    `json:"samples"`  // Samples per pixel
	MaxDepth *int   `json:"maxDepth"` // Recursion depth; nil keeps the scene's
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default render settings for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "cornell-box" // Default scene
	}

	sceneObj, err := s.createScene(sceneName, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.Config
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":   map[string]int{"min": minImageSize, "max": maxImageSize},
			"samples":  map[string]int{"min": 1, "max": maxSamples},
			"maxDepth": map[string]int{"min": 0, "max": maxDepth},
		},
	})
}

// parseRenderRequest parses request parameters. Zero width, height or
// samples mean the scene's own setting.
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "cornell-box" // Default scene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if query.Has("depth") {
		depth, err := parseIntParam(query, "depth", 0, 0, maxDepth)
		if err != nil {
			return nil, err
		}
		req.MaxDepth = &depth
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 16 {
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

// createScene loads a built-in scene or a "json:<name>" scene from the
// scenes directory. File paths are not accepted from clients.
func (s *Server) createScene(sceneName string, logger core.Logger) (*scene.Scene, error) {
	if sceneObj, ok := scene.NewBuiltInScene(sceneName); ok {
		return sceneObj, nil
	}
	name, ok := strings.CutPrefix(sceneName, "json:")
	if !ok || name == "" || strings.ContainsAny(name, `/\.`) {
		return nil, fmt.Errorf("unknown scene: %s", sceneName)
	}
	return scene.Load(sceneName, logger)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
