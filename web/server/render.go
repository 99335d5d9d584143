package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	TilesRendered  int     `json:"tilesRendered"`
}

// RenderResult is sent as the final "complete" event of a render
type RenderResult struct {
	RenderID  string `json:"renderId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type renderOutcome struct {
	img   *image.RGBA
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and streams console output followed by the image via SSE.
// Closing the connection cancels the render.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renderIDs.Add(1))
	consoleChan := make(chan ConsoleMessage, 100)
	logger := NewWebLogger(renderID, consoleChan)

	ctx := r.Context()
	startTime := time.Now()
	done := make(chan renderOutcome, 1)
	go func() {
		pathTracer := integrator.NewPathTracingIntegrator(integrator.DefaultBackground())
		config := renderer.DefaultRenderConfig()
		config.Seed = req.Seed
		img, stats, err := renderer.NewRaytracer(sceneObj, pathTracer, config, logger).Render(ctx)
		done <- renderOutcome{img: img, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, flusher, "console", msg)

		case outcome := <-done:
			s.drainConsole(w, flusher, consoleChan)
			if outcome.err != nil {
				s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Render error: %v", outcome.err))
				return
			}

			imageData, err := imageToBase64PNG(outcome.img)
			if err != nil {
				s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("failed to encode image: %v", err))
				return
			}

			s.sendSSEJSON(w, flusher, "complete", RenderResult{
				RenderID:  renderID,
				Width:     sceneObj.SamplingConfig.Width,
				Height:    sceneObj.SamplingConfig.Height,
				ImageData: imageData,
				Stats: Stats{
					TotalPixels:    outcome.stats.TotalPixels,
					TotalSamples:   int64(outcome.stats.TotalSamples),
					AverageSamples: outcome.stats.AverageSamples,
					TilesRendered:  outcome.stats.TilesRendered,
				},
				ElapsedMs: time.Since(startTime).Milliseconds(),
			})
			return

		case <-ctx.Done():
			// Client went away; the render goroutine sees the same context
			return
		}
	}
}

// drainConsole forwards messages logged before the render finished
func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, flusher, "console", msg)
		default:
			return
		}
	}
}

func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEJSON sends v as the JSON payload of an SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}
	s.sendSSEEvent(w, flusher, event, string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := renderer.WritePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
