package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpcarmona/atenea/internal/domain"
)

// Canned status responses for the AI-free fast paths.
const (
	respNothingPending  = "No tengo tareas procesando. ¿En qué te puedo ayudar?"
	respStillWorkingOne = "Todavía estoy trabajando en eso. Dame unos segundos más."
)

// TaskReader is the slice of the task store the status handler needs.
type TaskReader interface {
	Pending() []domain.BackgroundTask
	RecentCompleted() []domain.BackgroundTask
	MarkConsumed(id string)
}

// HandleStatus answers a "what happened?" query from the task store.
//
// It is AI-free when the answer is unambiguous: nothing in flight, or only
// pending work. Otherwise the model is asked which completed task best
// answers the query, and a matched task is consumed so it is not offered
// again. HandleStatus never fails; on any model error it degrades to an
// apologetic response.
func (h *Handler) HandleStatus(ctx context.Context, query string, tasks TaskReader) *Result {
	pending := tasks.Pending()
	completed := tasks.RecentCompleted()

	if len(pending) == 0 && len(completed) == 0 {
		return &Result{Intent: "status", Response: respNothingPending}
	}

	if len(completed) == 0 {
		if len(pending) == 1 {
			return &Result{Intent: "status", Response: respStillWorkingOne}
		}
		return &Result{
			Intent: "status",
			Response: fmt.Sprintf(
				"Tengo %d tareas procesando. Dame unos segundos más.", len(pending)),
		}
	}

	var b strings.Builder
	b.WriteString(h.prompts.Status)
	b.WriteString("\n\n--- DYNAMIC CONTEXT ---\n")
	b.WriteString(h.timeContext())

	b.WriteString("\nPENDING TASKS (still processing):\n")
	for _, task := range pending {
		fmt.Fprintf(&b, "- ID: %s | Query: %q\n", task.ID, task.Query)
	}

	b.WriteString("\nCOMPLETED TASKS (ready to return):\n")
	for _, task := range completed {
		preview := truncateRunes(task.Result, statusResultPreview)
		fmt.Fprintf(&b, "- ID: %s | Query: %q | Result: %q", task.ID, task.Query, preview)
		if task.Error != "" {
			fmt.Fprintf(&b, " | Error: %s", task.Error)
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\nUSER STATUS QUERY: %q", query)

	result, err := h.callJSON(ctx, b.String())
	if err != nil {
		h.logger.Warn("status matching failed", "error", err)
		return &Result{
			Intent:   "status",
			Response: "Lo siento, hubo un error al revisar tus tareas. Inténtalo de nuevo.",
		}
	}

	if result.MatchedTaskID != "" {
		tasks.MarkConsumed(result.MatchedTaskID)
	}

	return result
}
