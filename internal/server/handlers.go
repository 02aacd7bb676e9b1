package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/DevSymphony/forge/internal/assistant"
	"github.com/DevSymphony/forge/internal/diff"
	"github.com/DevSymphony/forge/internal/lessons"
	"github.com/DevSymphony/forge/internal/llm"
	"github.com/DevSymphony/forge/internal/samples"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body into v, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// handleSuggest runs the suggest flow for the caller's session
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Code   string `json:"code"`
		Prompt string `json:"prompt"`
	}
	if !decode(w, r, &req) {
		return
	}

	sess := s.session(w, r)
	result, err := s.assistant.Suggest(r.Context(), sess, req.Code, req.Prompt)
	if err != nil {
		if errors.Is(err, assistant.ErrMalformedInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to suggest changes: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, result)
}

// historyResponse is the dashboard view of a session history.
type historyResponse struct {
	Position int    `json:"position"`
	Length   int    `json:"length"`
	Code     string `json:"code"`
	CanUndo  bool   `json:"canUndo"`
	CanRedo  bool   `json:"canRedo"`
	Changed  bool   `json:"changed"`
}

func historyView(sess *assistant.Session, changed bool) historyResponse {
	st := sess.State()
	resp := historyResponse{
		Position: st.Position,
		Length:   len(st.Snapshots),
		CanUndo:  st.CanUndo,
		CanRedo:  st.CanRedo,
		Changed:  changed,
	}
	if st.Position >= 0 {
		resp.Code = st.Snapshots[st.Position]
	}
	return resp
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	sess, ok := s.existingSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, historyView(sess, false))
}

func (s *Server) handleHistoryRecord(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if !decode(w, r, &req) {
		return
	}

	sess := s.session(w, r)
	added := sess.Record(req.Code)
	writeJSON(w, historyView(sess, added))
}

func (s *Server) handleHistoryUndo(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.existingSession(w, r)
	if !ok {
		return
	}
	_, changed := sess.Undo()
	writeJSON(w, historyView(sess, changed))
}

func (s *Server) handleHistoryRedo(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.existingSession(w, r)
	if !ok {
		return
	}
	_, changed := sess.Redo()
	writeJSON(w, historyView(sess, changed))
}

// handlePatterns scores pattern warnings for the posted code
func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if !decode(w, r, &req) {
		return
	}

	report := s.assistant.Lint(req.Code)
	writeJSON(w, map[string]interface{}{
		"warnings": report.Warnings,
		"clean":    report.Clean,
		"lines":    report.Lines(),
	})
}

// handleImpact estimates the performance change between two versions
func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Original    string `json:"original"`
		Improved    string `json:"improved"`
		Explanation string `json:"explanation"`
	}
	if !decode(w, r, &req) {
		return
	}

	writeJSON(w, s.assistant.EstimateImpact(req.Original, req.Improved, req.Explanation))
}

// handleDiff renders a split (default) or unified diff
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Original string `json:"original"`
		Improved string `json:"improved"`
		Mode     string `json:"mode"`
	}
	if !decode(w, r, &req) {
		return
	}

	switch req.Mode {
	case "", "split":
		writeJSON(w, map[string]interface{}{
			"mode":  "split",
			"lines": diff.Split(req.Original, req.Improved),
		})
	case "unified":
		additions, deletions := diff.Stats(req.Original, req.Improved)
		writeJSON(w, map[string]interface{}{
			"mode":      "unified",
			"unified":   diff.Unified(req.Original, req.Improved),
			"additions": additions,
			"deletions": deletions,
		})
	default:
		http.Error(w, fmt.Sprintf("Unknown diff mode %q", req.Mode), http.StatusBadRequest)
	}
}

func (s *Server) handleLessons(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, lessons.All())
}

// handleExamples returns the sample scenes and the showcase game
func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, map[string]interface{}{
		"examples": samples.All(),
		"demo":     samples.Demo(),
	})
}

// modelResponse lists the models of one provider.
type modelResponse struct {
	Provider    string   `json:"provider"`
	DisplayName string   `json:"displayName"`
	Active      bool     `json:"active"`
	Models      []string `json:"models"`
}

// handleModels lists registered providers and their models
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	active := s.assistant.ProviderName()
	providers := llm.ListProviders()
	resp := make([]modelResponse, 0, len(providers))
	for _, p := range providers {
		ids := make([]string, 0, len(p.Models))
		for _, m := range p.Models {
			ids = append(ids, m.ID)
		}
		resp = append(resp, modelResponse{
			Provider:    p.Name,
			DisplayName: p.DisplayName,
			Active:      p.Name == active,
			Models:      ids,
		})
	}

	writeJSON(w, resp)
}
