// Package server provides the interactive form: paste Markdown, get a live
// preview plus the raw generated HTML. Each session's most recent render is
// kept in a RenderStore keyed by a session cookie, so concurrent users never
// see each other's documents.
package server

import (
	"crypto/rand"
	"encoding/hex"
	"html/template"
	"log"
	"net/http"

	"mdpage/markdown"
	"mdpage/page"
)

const sessionCookie = "mdpage_session"

// A Server handles the form at / and the raw-HTML endpoint at /raw.
type Server struct {
	converter *markdown.Converter
	store     *RenderStore
	logger    *log.Logger
	mux       *http.ServeMux
}

// New builds a Server around the given converter and render store. A nil
// converter uses default conversion settings.
func New(converter *markdown.Converter, store *RenderStore, logger *log.Logger) *Server {
	if converter == nil {
		converter = markdown.New()
	}
	s := &Server{
		converter: converter,
		store:     store,
		logger:    logger,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/raw", s.handleRaw)
	s.mux = mux
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe runs the form server on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Printf("serving markdown form at http://%s", addr)
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := formData{}
	if r.Method == http.MethodPost {
		source := r.FormValue("md")
		rendered := page.Render(s.converter.Convert(source))

		session := s.session(w, r)
		if err := s.store.Put(session, rendered); err != nil {
			s.logger.Printf("storing render for session %s: %v", session, err)
			http.Error(w, "failed to store render", http.StatusInternalServerError)
			return
		}

		data.Markdown = source
		data.HasResult = true
		data.Preview = template.HTML(rendered)
		data.Raw = rendered
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		s.logger.Printf("rendering form: %v", err)
	}
}

func (s *Server) handleRaw(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		http.Error(w, "no render for this session yet", http.StatusNotFound)
		return
	}
	rendered, ok, err := s.store.Get(cookie.Value)
	if err != nil {
		s.logger.Printf("loading render for session %s: %v", cookie.Value, err)
		http.Error(w, "failed to load render", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "no render for this session yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(rendered))
}

// session returns the request's session ID, minting one and setting the
// cookie when the request has none.
func (s *Server) session(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	buf := make([]byte, 16)
	rand.Read(buf)
	id := hex.EncodeToString(buf)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}
