package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/jpcarmona/atenea/internal/domain"
)

// AddTask creates a task page and returns its page ID.
func (s *Service) AddTask(ctx context.Context, task domain.TaskPayload) (string, error) {
	if task.Name == "" {
		return "", fmt.Errorf("%w: task name", domain.ErrEmptyContent)
	}

	props := notionapi.Properties{
		"Task name": titleProp(task.Name),
	}

	// A specific time wins over a bare date when the model produced both.
	due := task.DueDate
	if task.DueDateTime != "" {
		due = task.DueDateTime
	}
	if due != "" {
		p, err := dateProp(due)
		if err != nil {
			return "", fmt.Errorf("invalid due date: %w", err)
		}
		props["Due date"] = p
	}

	if task.Priority != "" {
		props["Priority"] = selectProp(task.Priority)
	}
	if task.Urgent {
		props["Urgent"] = checkboxProp(true)
	}
	if task.Important {
		props["Important"] = checkboxProp(true)
	}
	if task.AreaID != "" {
		props["Area"] = relationProp(task.AreaID)
	}
	if task.ProjectID != "" {
		props["Project"] = relationProp(task.ProjectID)
	}
	if task.RepeatCycle != "" && task.RepeatEvery > 0 {
		props["Repeat cycle"] = selectProp(task.RepeatCycle)
		props["Repeat every"] = numberProp(float64(task.RepeatEvery))
	}
	if task.GoogleEventID != "" {
		props["Google Event ID"] = richTextProp(task.GoogleEventID)
	}

	page, err := s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(s.cfg.TasksDatabaseID),
		},
		Properties: props,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created", "page_id", page.ID.String(), "name", task.Name)
	return page.ID.String(), nil
}

// UpdateTask applies the given field changes to a task page. Nil fields are
// left untouched.
func (s *Service) UpdateTask(ctx context.Context, taskID string, updates domain.TaskUpdates) error {
	if taskID == "" {
		return fmt.Errorf("%w: empty task page ID", domain.ErrInvalidID)
	}

	props := notionapi.Properties{}

	if updates.Name != nil {
		props["Task name"] = titleProp(*updates.Name)
	}

	due := updates.DueDate
	if updates.DueDateTime != nil {
		due = updates.DueDateTime
	}
	if due != nil {
		p, err := dateProp(*due)
		if err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
		props["Due date"] = p
	}

	if updates.Done != nil {
		status := "To do"
		if *updates.Done {
			status = "Done"
		}
		props["Status"] = statusProp(status)
	}
	if updates.Priority != nil {
		props["Priority"] = selectProp(*updates.Priority)
	}
	if updates.Urgent != nil {
		props["Urgent"] = checkboxProp(*updates.Urgent)
	}
	if updates.Important != nil {
		props["Important"] = checkboxProp(*updates.Important)
	}
	if updates.GoogleEventID != nil {
		props["Google Event ID"] = richTextProp(*updates.GoogleEventID)
	}

	if len(props) == 0 {
		return nil
	}

	_, err := s.client.Page.Update(ctx, notionapi.PageID(taskID), &notionapi.PageUpdateRequest{
		Properties: props,
	})
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", taskID, err)
	}

	s.logger.Info("task updated", "page_id", taskID)
	return nil
}

// ArchiveTask archives a task page.
func (s *Service) ArchiveTask(ctx context.Context, taskID string) error {
	if taskID == "" {
		return fmt.Errorf("%w: empty task page ID", domain.ErrInvalidID)
	}

	_, err := s.client.Page.Update(ctx, notionapi.PageID(taskID), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{},
		Archived:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to archive task %s: %w", taskID, err)
	}

	s.logger.Info("task archived", "page_id", taskID)
	return nil
}

// AddContact creates a contact page and returns its page ID.
func (s *Service) AddContact(ctx context.Context, contact domain.ContactPayload) (string, error) {
	if contact.Name == "" {
		return "", fmt.Errorf("%w: contact name", domain.ErrEmptyContent)
	}

	props := notionapi.Properties{
		"Name": titleProp(contact.Name),
	}

	if contact.Groups != "" {
		props["Groups"] = selectProp(contact.Groups)
	}
	if contact.Company != "" {
		props["Company"] = richTextProp(contact.Company)
	}
	if contact.Email != "" {
		props["Email"] = emailProp(contact.Email)
	}
	if contact.Birthday != "" {
		p, err := dateProp(contact.Birthday)
		if err != nil {
			return "", fmt.Errorf("invalid birthday: %w", err)
		}
		props["Birthday"] = p
	}
	if contact.Notes != "" {
		props["Notes"] = richTextProp(contact.Notes)
	}
	if contact.Favorite {
		props["Favorite"] = checkboxProp(true)
	}

	page, err := s.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(s.cfg.ContactsDatabaseID),
		},
		Properties: props,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create contact: %w", err)
	}

	s.logger.Info("contact created", "page_id", page.ID.String(), "name", contact.Name)
	return page.ID.String(), nil
}

// UpdateContact applies the given field changes to a contact page.
func (s *Service) UpdateContact(ctx context.Context, contactID string, updates domain.ContactUpdates) error {
	if contactID == "" {
		return fmt.Errorf("%w: empty contact page ID", domain.ErrInvalidID)
	}

	props := notionapi.Properties{}

	if updates.Name != nil {
		props["Name"] = titleProp(*updates.Name)
	}
	if updates.Groups != nil {
		props["Groups"] = selectProp(*updates.Groups)
	}
	if updates.Company != nil {
		props["Company"] = richTextProp(*updates.Company)
	}
	if updates.Email != nil {
		props["Email"] = emailProp(*updates.Email)
	}
	if updates.Birthday != nil {
		p, err := dateProp(*updates.Birthday)
		if err != nil {
			return fmt.Errorf("invalid birthday: %w", err)
		}
		props["Birthday"] = p
	}
	if updates.Notes != nil {
		props["Notes"] = richTextProp(*updates.Notes)
	}
	if updates.Favorite != nil {
		props["Favorite"] = checkboxProp(*updates.Favorite)
	}

	if len(props) == 0 {
		return nil
	}

	_, err := s.client.Page.Update(ctx, notionapi.PageID(contactID), &notionapi.PageUpdateRequest{
		Properties: props,
	})
	if err != nil {
		return fmt.Errorf("failed to update contact %s: %w", contactID, err)
	}

	s.logger.Info("contact updated", "page_id", contactID)
	return nil
}

// ArchiveContact archives a contact page.
func (s *Service) ArchiveContact(ctx context.Context, contactID string) error {
	if contactID == "" {
		return fmt.Errorf("%w: empty contact page ID", domain.ErrInvalidID)
	}

	_, err := s.client.Page.Update(ctx, notionapi.PageID(contactID), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{},
		Archived:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to archive contact %s: %w", contactID, err)
	}

	s.logger.Info("contact archived", "page_id", contactID)
	return nil
}
