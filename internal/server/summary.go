package server

import (
	"net/http"
	"strings"

	"github.com/pathakanu/medibot/internal/model"
)

const summaryNoteLimit = 10

// handleDailySummary assembles a prompt from the caller's pending
// reminders and the recent notes, then returns the generated summary.
// Reminders and notes come from the same service calls as their list
// endpoints so the prompt can never reference stale rows.
func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.reminders.Pending(owner(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	notes, err := s.notes.List(summaryNoteLimit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	prompt := buildSummaryPrompt(notes, reminders)
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":   s.generate(r, prompt),
		"notes":     notes,
		"reminders": reminders,
	})
}

func buildSummaryPrompt(notes []model.Note, reminders []model.Reminder) string {
	var sb strings.Builder
	sb.WriteString("Create a short daily summary (3-6 sentences) from these notes and reminders. Notes:\n")
	for _, n := range notes {
		sb.WriteString("- " + n.Content + "\n")
	}
	sb.WriteString("\nReminders:\n")
	for _, r := range reminders {
		sb.WriteString("- " + r.Name + " at " + r.Time + "\n")
	}
	sb.WriteString("\nWrite a friendly daily summary and list one actionable tip.")
	return sb.String()
}
