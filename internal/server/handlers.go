package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pathakanu/medibot/internal/imaging"
	"github.com/pathakanu/medibot/internal/service"
)

const (
	notConfiguredMessage = "AI not configured. Set OPENAI_API_KEY."
	aiErrorMessage       = "AI error. Try again."
	disclaimer           = "This is educational information, not a medical diagnosis. Consult a licensed clinician for medical advice."

	maxUploadBytes = 10 << 20
)

// generate runs the prompt through the gateway, degrading to a fixed
// message instead of surfacing gateway failures to the caller.
func (s *Server) generate(r *http.Request, prompt string) string {
	if !s.generator.Configured() {
		return notConfiguredMessage
	}
	out, err := s.generator.Generate(r.Context(), prompt)
	if err != nil {
		s.logger.Printf("generate: %v", err)
		return aiErrorMessage
	}
	return out
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Message string `json:"message"`
	}
	if err := readJSON(r, &input); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(input.Message) == "" {
		writeError(w, http.StatusBadRequest, "empty message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"reply": s.generate(r, input.Message),
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Text string `json:"text"`
	}
	if err := readJSON(r, &input); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(input.Text) == "" {
		writeError(w, http.StatusBadRequest, "empty text")
		return
	}

	prompt := "Summarize for a non-expert in 4 bullet points and a short plain summary:\n\n" + input.Text
	writeJSON(w, http.StatusOK, map[string]string{
		"summary": s.generate(r, prompt),
	})
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file")
		return
	}
	defer file.Close()

	name := sanitizeFilename(header.Filename)
	if name == "" {
		writeError(w, http.StatusBadRequest, "empty filename")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.logger.Printf("upload: read: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	target := filepath.Join(s.cfg.UploadDir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		s.logger.Printf("upload: save %s: %v", target, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	localDesc, err := imaging.Describe(data)
	if err != nil {
		localDesc = "Could not read image."
	}

	aiDesc := notConfiguredMessage
	if s.vision.Configured() {
		aiDesc, err = s.vision.DescribeImage(r.Context(), data, header.Header.Get("Content-Type"))
		if err != nil {
			s.logger.Printf("upload: vision: %v", err)
			aiDesc = aiErrorMessage
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"file":              target,
		"local_description": localDesc,
		"ai_description":    aiDesc,
		"disclaimer":        disclaimer,
	})
}

func (s *Server) handleAnalyzeLocal(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Path string `json:"path"`
	}
	if err := readJSON(r, &input); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if input.Path == "" {
		writeError(w, http.StatusBadRequest, "path missing")
		return
	}

	data, err := os.ReadFile(input.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "path missing or not found")
		return
	}

	desc, err := imaging.Describe(data)
	if err != nil {
		desc = "Could not read image."
	}

	writeJSON(w, http.StatusOK, map[string]string{"description": desc})
}

func (s *Server) handleAddReminder(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
		Time string `json:"time"`
	}
	if err := readJSON(r, &input); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	user := owner(r)
	if _, err := s.reminders.Add(user, input.Name, input.Time); err != nil {
		s.writeServiceError(w, err)
		return
	}

	reminders, err := s.reminders.List(user)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"reminders": reminders,
	})
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.reminders.List(owner(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reminders": reminders})
}

func (s *Server) handleCompleteReminder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.reminders.Complete(owner(r), uint(id)); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleDeleteCompleted(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.reminders.DeleteCompleted(owner(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Content string `json:"content"`
	}
	if err := readJSON(r, &input); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if _, err := s.notes.Add(input.Content); err != nil {
		s.writeServiceError(w, err)
		return
	}

	notes, err := s.notes.List(s.cfg.NoteListLimit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "notes": notes})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.NoteListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	notes, err := s.notes.List(limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (s *Server) handleGetWater(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = s.cfg.Today()
	}

	count, err := s.water.Get(owner(r), date)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "count": count})
}

func (s *Server) handlePostWater(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Date  string `json:"date"`
		Count *int   `json:"count"`
	}
	if err := readJSON(r, &input); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	user := owner(r)
	date := input.Date
	if date == "" {
		date = s.cfg.Today()
	}

	var (
		count int
		err   error
	)
	if input.Count != nil {
		// Absolute set, idempotent.
		if err = s.water.Set(user, date, *input.Count); err == nil {
			count, err = s.water.Get(user, date)
		}
	} else {
		count, err = s.water.Increment(user, date)
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"date": date, "count": count})
}

// writeServiceError maps domain errors to responses: validation failures
// become 400s, everything else a generic 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Printf("service error: %v", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// sanitizeFilename strips any path components from an uploaded filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
