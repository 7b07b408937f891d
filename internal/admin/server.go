package admin

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"seawatch/internal/catalog"
	"seawatch/internal/engine"
)

// Server exposes a read-only HTTP view over the latest engine cycle.
// It never mutates engine state.
type Server struct {
	Engine  *engine.Engine
	Catalog *catalog.Catalog
	tpl     *template.Template
}

//go:embed templates/index.html
var content embed.FS

func NewServer(e *engine.Engine) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	cat, err := catalog.Load()
	if err != nil {
		// embedded data; a parse failure is a build defect
		panic(err)
	}
	return &Server{Engine: e, Catalog: cat, tpl: tpl}
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/threats", s.handleThreats)
	mux.HandleFunc("/formations", s.handleFormations)
	mux.HandleFunc("/predictions", s.handlePredictions)
	mux.HandleFunc("/sightings", s.handleSightings)
	mux.HandleFunc("/track/", s.handleTrack)
	mux.HandleFunc("/capability/", s.handleCapability)
}

// Handler returns the server's routed handler, for embedding in tests
// or an external http.Server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.routes(mux)
	return mux
}

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	last := s.Engine.Last()
	data := struct {
		Cycle engine.CycleResult
	}{
		Cycle: last,
	}
	s.tpl.Execute(w, data)
}

func (s *Server) handleThreats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Last().Assessments)
}

func (s *Server) handleFormations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Last().Formations)
}

func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Last().Predictions)
}

func (s *Server) handleSightings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Engine.Last().Sightings)
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/track/")
	if id == "" {
		http.Error(w, "vessel id required", http.StatusBadRequest)
		return
	}
	history := s.Engine.Tracks().History(id)
	if len(history) == 0 {
		http.Error(w, "unknown vessel", http.StatusNotFound)
		return
	}
	writeJSON(w, history)
}

func (s *Server) handleCapability(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/capability/")
	if name == "" {
		http.Error(w, "vessel name required", http.StatusBadRequest)
		return
	}
	caps, ok := s.Catalog.Lookup(name)
	if !ok {
		http.Error(w, "unknown vessel", http.StatusNotFound)
		return
	}
	writeJSON(w, caps)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
