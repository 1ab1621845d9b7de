package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// consoleBufferSize bounds the log lines kept per render
const consoleBufferSize = 100

// RenderResponse is the JSON form of a finished render (format=json)
type RenderResponse struct {
	RenderID  string           `json:"renderId"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// Stats represents render statistics
type Stats struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	PrimaryRays    int64   `json:"primaryRays"`
	SecondaryRays  int64   `json:"secondaryRays"`
	ShadowRays     int64   `json:"shadowRays"`
	Primitives     int     `json:"primitives"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// handleRender renders a scene and returns it as a PNG, or as JSON with the
// render's console output when format=json. The request context cancels the
// render if the client goes away.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	renderID := uuid.NewString()
	consoleChan, webLogger := s.setupConsoleLogging(renderID)

	sceneObj, err := s.createScene(req.Scene, webLogger)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine := s.newEngine(sceneObj, req, webLogger)
	config := engine.Config()
	img := renderer.NewImage(config.Width, config.Height)

	renderStats, err := engine.Render(r.Context(), img)
	if err != nil {
		log.Printf("Render %s failed: %v", renderID, err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}
	webLogger.Printf("Render %s: %dx%d, %d samples in %v\n",
		renderID, config.Width, config.Height, renderStats.TotalSamples, renderStats.Duration)

	stats := Stats{
		Width:          config.Width,
		Height:         config.Height,
		TotalPixels:    renderStats.TotalPixels,
		TotalSamples:   renderStats.TotalSamples,
		AverageSamples: renderStats.AverageSamples(),
		PrimaryRays:    renderStats.Trace.PrimaryRays,
		SecondaryRays:  renderStats.Trace.SecondaryRays,
		ShadowRays:     renderStats.Trace.ShadowRays,
		Primitives:     sceneObj.GetPrimitiveCount(),
		ElapsedMs:      renderStats.Duration.Milliseconds(),
	}

	if r.URL.Query().Get("format") == "json" {
		imageData, err := s.imageToBase64PNG(img.ToRGBA())
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			RenderID:  renderID,
			ImageData: imageData,
			Stats:     stats,
			Console:   drainConsole(consoleChan),
		})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img.ToRGBA()); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-ID", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.ElapsedMs, 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// newEngine applies the request's overrides on top of the scene settings
func (s *Server) newEngine(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) *renderer.Engine {
	if req.MaxDepth != nil {
		sceneObj.Config.MaxDepth = *req.MaxDepth
	}
	return sceneObj.NewEngine(renderer.RenderConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
	}, logger)
}

// setupConsoleLogging creates the console channel and logger for one render
func (s *Server) setupConsoleLogging(renderID string) (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, consoleBufferSize)
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// drainConsole collects the messages logged so far without blocking
func drainConsole(consoleChan chan ConsoleMessage) []ConsoleMessage {
	messages := []ConsoleMessage{}
	for {
		select {
		case msg := <-consoleChan:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
