package ai

import (
	"fmt"
	"os"
	"path/filepath"
)

// Prompt file names expected under the configured prompts directory.
const (
	routerPromptFile   = "ROUTER.md"
	tasksPromptFile    = "TASKS_AGENT.md"
	contactsPromptFile = "CONTACTS_AGENT.md"
	generalPromptFile  = "GENERAL_AGENT.md"
	statusPromptFile   = "STATUS_AGENT.md"
)

// Prompts holds the system prompts for the router and the domain agents,
// loaded once at startup.
type Prompts struct {
	Router   string
	Tasks    string
	Contacts string
	General  string
	Status   string
}

// LoadPrompts reads all prompt files from dir. A missing or unreadable file
// is a startup error; the agents cannot run without their instructions.
func LoadPrompts(dir string) (*Prompts, error) {
	load := func(name string) (string, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("failed to read prompt %s: %w", name, err)
		}
		return string(data), nil
	}

	var p Prompts
	var err error
	if p.Router, err = load(routerPromptFile); err != nil {
		return nil, err
	}
	if p.Tasks, err = load(tasksPromptFile); err != nil {
		return nil, err
	}
	if p.Contacts, err = load(contactsPromptFile); err != nil {
		return nil, err
	}
	if p.General, err = load(generalPromptFile); err != nil {
		return nil, err
	}
	if p.Status, err = load(statusPromptFile); err != nil {
		return nil, err
	}
	return &p, nil
}
