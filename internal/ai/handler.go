// Package ai builds prompts for the domain agents, calls the model through
// the Client boundary, and parses its JSON answers into typed results.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jpcarmona/atenea/internal/domain"
)

// Client is the boundary to the underlying model. Generate expects a JSON
// answer; Classify expects a single domain word.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Classify(ctx context.Context, prompt string) (string, error)
}

// History formatting bounds: only the most recent turns are injected into
// prompts, with long responses truncated, to keep token usage flat.
const (
	historyTurns        = 3
	historyResponseMax  = 150
	statusResultPreview = 100
)

// Handler answers domain queries by combining the loaded system prompts
// with dynamic context (time, conversation history, external records) and
// calling the model.
type Handler struct {
	client  Client
	prompts *Prompts
	tz      *time.Location
	logger  *slog.Logger
}

// NewHandler creates a Handler. timezone names the IANA zone used for the
// prompt time context; an unknown zone falls back to a fixed UTC-5 offset.
func NewHandler(client Client, prompts *Prompts, timezone string, logger *slog.Logger) *Handler {
	tz, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to fixed UTC-5 offset",
			"timezone", timezone, "error", err)
		tz = time.FixedZone("UTC-5", -5*60*60)
	}

	return &Handler{
		client:  client,
		prompts: prompts,
		tz:      tz,
		logger:  logger.With("component", "ai_handler"),
	}
}

// HandleTasks answers a tasks-domain query given the current task context
// and conversation history.
func (h *Handler) HandleTasks(
	ctx context.Context,
	query string,
	tctx domain.TaskContext,
	history []domain.ConversationTurn,
) (*Result, error) {
	var b strings.Builder
	b.WriteString(h.prompts.Tasks)
	b.WriteString("\n\n--- DYNAMIC CONTEXT ---\n")
	b.WriteString(h.timeContext())
	b.WriteString(formatHistory(history))

	b.WriteString("\nAVAILABLE AREAS:\n")
	for _, area := range tctx.Areas {
		fmt.Fprintf(&b, "- %s (ID: %s)\n", area.Name, area.ID)
	}

	b.WriteString("\nAVAILABLE PROJECTS:\n")
	for _, proj := range tctx.Projects {
		fmt.Fprintf(&b, "- %s (ID: %s)\n", proj.Name, proj.ID)
	}

	b.WriteString("\nEXISTING TASKS (Recent/Active):\n")
	for _, task := range tctx.Tasks {
		fmt.Fprintf(&b, "- %s (ID: %s)", task.Name, task.ID)
		if task.DueDate != "" {
			fmt.Fprintf(&b, " | Due: %s", task.DueDate)
		}
		if task.Priority != "" {
			fmt.Fprintf(&b, " | Priority: %s", task.Priority)
		}
		var flags []string
		if task.Urgent {
			flags = append(flags, "Urgent")
		}
		if task.Important {
			flags = append(flags, "Important")
		}
		if len(flags) > 0 {
			fmt.Fprintf(&b, " | Flags: %s", strings.Join(flags, ", "))
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\nUSER INPUT: %q", query)
	return h.callJSON(ctx, b.String())
}

// HandleContacts answers a contacts-domain query given the current contact
// context and conversation history.
func (h *Handler) HandleContacts(
	ctx context.Context,
	query string,
	cctx domain.ContactContext,
	history []domain.ConversationTurn,
) (*Result, error) {
	var b strings.Builder
	b.WriteString(h.prompts.Contacts)
	b.WriteString("\n\n--- DYNAMIC CONTEXT ---\n")
	b.WriteString(h.timeContext())
	b.WriteString(formatHistory(history))

	b.WriteString("\nCONTACTS:\n")
	for _, c := range cctx.Contacts {
		fmt.Fprintf(&b, "- %s (ID: %s)", c.Name, c.ID)
		if c.Groups != "" {
			fmt.Fprintf(&b, " | Group: %s", c.Groups)
		}
		if c.Company != "" {
			fmt.Fprintf(&b, " | Company: %s", c.Company)
		}
		if c.Email != "" {
			fmt.Fprintf(&b, " | Email: %s", c.Email)
		}
		if c.Birthday != "" {
			fmt.Fprintf(&b, " | Birthday: %s", c.Birthday)
		}
		if c.Age > 0 {
			fmt.Fprintf(&b, " | Age: %d", c.Age)
		}
		if c.DaysUntilBirthday > 0 {
			fmt.Fprintf(&b, " | Days until birthday: %d", c.DaysUntilBirthday)
		}
		if c.Notes != "" {
			fmt.Fprintf(&b, " | Notes: %s", c.Notes)
		}
		if c.Favorite {
			b.WriteString(" | Favorite")
		}
		if c.ContactDue != "" {
			fmt.Fprintf(&b, " | Status: %s", c.ContactDue)
		}
		if c.PageContent != "" {
			fmt.Fprintf(&b, " | Page Content: %s", c.PageContent)
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\nUSER INPUT: %q", query)
	return h.callJSON(ctx, b.String())
}

// HandleGeneral answers a general-conversation query.
func (h *Handler) HandleGeneral(
	ctx context.Context,
	query string,
	history []domain.ConversationTurn,
) (*Result, error) {
	var b strings.Builder
	b.WriteString(h.prompts.General)
	b.WriteString("\n\n--- DYNAMIC CONTEXT ---\n")
	b.WriteString(h.timeContext())
	b.WriteString(formatHistory(history))
	fmt.Fprintf(&b, "\nUSER INPUT: %q", query)
	return h.callJSON(ctx, b.String())
}

// callJSON sends the prompt and parses the model's JSON answer.
func (h *Handler) callJSON(ctx context.Context, prompt string) (*Result, error) {
	h.logger.Debug("calling model", "prompt_length", len(prompt))

	output, err := h.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	var result Result
	if err := json.Unmarshal([]byte(extractJSON(output)), &result); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}
	return &result, nil
}

// timeContext renders the current date and time block injected into every
// prompt so the model can resolve relative dates.
func (h *Handler) timeContext() string {
	now := time.Now().In(h.tz)
	return fmt.Sprintf("CURRENT DATE: %s\nCURRENT TIME: %s (Timezone: %s)\n",
		now.Format("2006-01-02 Monday"),
		now.Format("15:04:05"),
		h.tz.String())
}

// formatHistory renders the most recent conversation turns for prompt
// injection. Responses are truncated to keep prompts small.
func formatHistory(history []domain.ConversationTurn) string {
	if len(history) == 0 {
		return ""
	}

	recent := history
	if len(recent) > historyTurns {
		recent = recent[len(recent)-historyTurns:]
	}

	var b strings.Builder
	b.WriteString("\n--- CONVERSATION HISTORY ---\n")
	b.WriteString("(Previous turns in this session for context)\n")
	for i, turn := range recent {
		preview := truncateRunes(turn.Response, historyResponseMax)
		fmt.Fprintf(&b, "\n[Turn %d]\nUser: %s\nAssistant: %s\n", i+1, turn.Query, preview)
	}
	b.WriteString("\n--- END CONVERSATION HISTORY ---\n")
	return b.String()
}

// truncateRunes shortens s to at most max runes, marking the cut with an
// ellipsis. Counting runes instead of bytes keeps accented characters intact.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// extractJSON strips the markdown code fences some models wrap JSON in.
func extractJSON(output string) string {
	trimmed := strings.TrimSpace(output)

	if idx := strings.Index(trimmed, "```json"); idx >= 0 {
		rest := trimmed[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	if idx := strings.Index(trimmed, "```"); idx >= 0 {
		rest := trimmed[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	return trimmed
}
