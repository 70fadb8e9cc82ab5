package notion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/jpcarmona/atenea/internal/config"
	"github.com/jpcarmona/atenea/internal/domain"
)

// Service talks to the Notion workspace databases.
type Service struct {
	client *notionapi.Client
	cfg    config.NotionConfig
	logger *slog.Logger

	// now is swappable in tests for birthday math.
	now func() time.Time
}

// NewService creates a Service from the Notion configuration.
func NewService(cfg config.NotionConfig, logger *slog.Logger) (*Service, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("notion API key cannot be empty")
	}
	if cfg.TasksDatabaseID == "" {
		return nil, errors.New("notion tasks database ID cannot be empty")
	}

	return &Service{
		client: notionapi.NewClient(notionapi.Token(cfg.APIKey)),
		cfg:    cfg,
		logger: logger.With("component", "notion"),
		now:    time.Now,
	}, nil
}

// Areas fetches all areas. Returns an empty slice when no areas database is
// configured.
func (s *Service) Areas(ctx context.Context) ([]domain.Area, error) {
	if s.cfg.AreasDatabaseID == "" {
		return nil, nil
	}

	var areas []domain.Area
	err := s.queryAll(ctx, s.cfg.AreasDatabaseID, nil, func(page notionapi.Page) {
		areas = append(areas, domain.Area{
			ID:   page.ID.String(),
			Name: titleOf(page.Properties, "Name"),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch areas: %w", err)
	}
	return areas, nil
}

// Projects fetches all projects. Returns an empty slice when no projects
// database is configured.
func (s *Service) Projects(ctx context.Context) ([]domain.Project, error) {
	if s.cfg.ProjectsDatabaseID == "" {
		return nil, nil
	}

	var projects []domain.Project
	err := s.queryAll(ctx, s.cfg.ProjectsDatabaseID, nil, func(page notionapi.Page) {
		projects = append(projects, domain.Project{
			ID:   page.ID.String(),
			Name: titleOf(page.Properties, "Name"),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	return projects, nil
}

// ActiveTasks fetches the tasks whose status is not Done.
func (s *Service) ActiveTasks(ctx context.Context) ([]domain.TaskRecord, error) {
	filter := notionapi.PropertyFilter{
		Property: "Status",
		Status:   &notionapi.StatusFilterCondition{DoesNotEqual: "Done"},
	}

	var tasks []domain.TaskRecord
	err := s.queryAll(ctx, s.cfg.TasksDatabaseID, filter, func(page notionapi.Page) {
		tasks = append(tasks, domain.TaskRecord{
			ID:            page.ID.String(),
			Name:          titleOf(page.Properties, "Task name"),
			URL:           page.URL,
			DueDate:       dateOf(page.Properties, "Due date"),
			Priority:      selectOf(page.Properties, "Priority"),
			Urgent:        checkboxOf(page.Properties, "Urgent"),
			Important:     checkboxOf(page.Properties, "Important"),
			GoogleEventID: richTextOf(page.Properties, "Google Event ID"),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active tasks: %w", err)
	}
	return tasks, nil
}

// Contacts fetches all contacts. Returns an empty slice when no contacts
// database is configured. Age and days-until-birthday are derived from the
// birthday property; page content is left empty for the enrichment step.
func (s *Service) Contacts(ctx context.Context) ([]domain.Contact, error) {
	if s.cfg.ContactsDatabaseID == "" {
		return nil, nil
	}

	now := s.now()
	var contacts []domain.Contact
	err := s.queryAll(ctx, s.cfg.ContactsDatabaseID, nil, func(page notionapi.Page) {
		birthday := dateOf(page.Properties, "Birthday")
		age, daysUntil := birthdayFacts(birthday, now)

		contacts = append(contacts, domain.Contact{
			ID:                page.ID.String(),
			Name:              titleOf(page.Properties, "Name"),
			Groups:            selectOf(page.Properties, "Groups"),
			Company:           richTextOf(page.Properties, "Company"),
			Email:             emailOf(page.Properties, "Email"),
			Birthday:          birthday,
			Age:               age,
			DaysUntilBirthday: daysUntil,
			Notes:             richTextOf(page.Properties, "Notes"),
			Favorite:          checkboxOf(page.Properties, "Favorite"),
			ContactDue:        formulaStringOf(page.Properties, "Contact Due"),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	return contacts, nil
}

// PageContent reads the text blocks of a page into a single string. Used to
// enrich relevant contacts with their page notes.
func (s *Service) PageContent(ctx context.Context, pageID string) (string, error) {
	var b strings.Builder
	cursor := notionapi.Cursor("")

	for {
		resp, err := s.client.Block.GetChildren(ctx, notionapi.BlockID(pageID), &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    100,
		})
		if err != nil {
			return "", fmt.Errorf("failed to fetch page content for %s: %w", pageID, err)
		}

		for _, block := range resp.Results {
			if line := blockText(block); line != "" {
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}

		if !resp.HasMore {
			break
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}

	return strings.TrimSpace(b.String()), nil
}

// queryAll pages through a database query, invoking collect for every page.
func (s *Service) queryAll(
	ctx context.Context,
	databaseID string,
	filter notionapi.Filter,
	collect func(notionapi.Page),
) error {
	req := &notionapi.DatabaseQueryRequest{
		Filter:   filter,
		PageSize: 100,
	}

	for {
		resp, err := s.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
		if err != nil {
			return err
		}

		for _, page := range resp.Results {
			collect(page)
		}

		if !resp.HasMore {
			return nil
		}
		req.StartCursor = resp.NextCursor
	}
}
