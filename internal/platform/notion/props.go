package notion

import (
	"fmt"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/jpcarmona/atenea/internal/domain"
)

// Property readers. Notion leaves unset properties out of the page object or
// types them differently across databases, so every reader tolerates missing
// and mismatched properties by returning the zero value.

func titleOf(props notionapi.Properties, name string) string {
	p, ok := props[name].(*notionapi.TitleProperty)
	if !ok {
		return ""
	}
	return plainText(p.Title)
}

func richTextOf(props notionapi.Properties, name string) string {
	p, ok := props[name].(*notionapi.RichTextProperty)
	if !ok {
		return ""
	}
	return plainText(p.RichText)
}

func selectOf(props notionapi.Properties, name string) string {
	p, ok := props[name].(*notionapi.SelectProperty)
	if !ok {
		return ""
	}
	return p.Select.Name
}

func checkboxOf(props notionapi.Properties, name string) bool {
	p, ok := props[name].(*notionapi.CheckboxProperty)
	if !ok {
		return false
	}
	return p.Checkbox
}

func emailOf(props notionapi.Properties, name string) string {
	p, ok := props[name].(*notionapi.EmailProperty)
	if !ok {
		return ""
	}
	return p.Email
}

func dateOf(props notionapi.Properties, name string) string {
	p, ok := props[name].(*notionapi.DateProperty)
	if !ok || p.Date == nil || p.Date.Start == nil {
		return ""
	}
	return formatDate(time.Time(*p.Date.Start))
}

func formulaStringOf(props notionapi.Properties, name string) string {
	p, ok := props[name].(*notionapi.FormulaProperty)
	if !ok {
		return ""
	}
	return p.Formula.String
}

func plainText(parts []notionapi.RichText) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.PlainText)
	}
	return b.String()
}

// blockText extracts the visible text of a block. Unsupported block types
// render as empty and are skipped.
func blockText(block notionapi.Block) string {
	switch b := block.(type) {
	case *notionapi.ParagraphBlock:
		return plainText(b.Paragraph.RichText)
	case *notionapi.Heading1Block:
		return plainText(b.Heading1.RichText)
	case *notionapi.Heading2Block:
		return plainText(b.Heading2.RichText)
	case *notionapi.Heading3Block:
		return plainText(b.Heading3.RichText)
	case *notionapi.BulletedListItemBlock:
		return "- " + plainText(b.BulletedListItem.RichText)
	case *notionapi.NumberedListItemBlock:
		return "- " + plainText(b.NumberedListItem.RichText)
	case *notionapi.ToDoBlock:
		marker := "[ ] "
		if b.ToDo.Checked {
			marker = "[x] "
		}
		return marker + plainText(b.ToDo.RichText)
	case *notionapi.QuoteBlock:
		return plainText(b.Quote.RichText)
	default:
		return ""
	}
}

// Property builders for page writes.

func titleProp(content string) notionapi.Property {
	return notionapi.TitleProperty{
		Title: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

func richTextProp(content string) notionapi.Property {
	return notionapi.RichTextProperty{
		RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

func selectProp(name string) notionapi.Property {
	return notionapi.SelectProperty{Select: notionapi.Option{Name: name}}
}

func statusProp(name string) notionapi.Property {
	return notionapi.StatusProperty{Status: notionapi.Option{Name: name}}
}

func checkboxProp(checked bool) notionapi.Property {
	return notionapi.CheckboxProperty{Checkbox: checked}
}

func emailProp(email string) notionapi.Property {
	return notionapi.EmailProperty{Email: email}
}

func numberProp(n float64) notionapi.Property {
	return notionapi.NumberProperty{Number: n}
}

func relationProp(pageID string) notionapi.Property {
	return notionapi.RelationProperty{
		Relation: []notionapi.Relation{{ID: notionapi.PageID(pageID)}},
	}
}

func dateProp(value string) (notionapi.Property, error) {
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	d := notionapi.Date(t)
	return notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}}, nil
}

// parseDate accepts the two date shapes the model produces: a plain date or
// an RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", domain.ErrInvalidFormat, value)
}

// formatDate keeps the time component only when it carries information.
func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// birthdayFacts derives the age and days until the next birthday from a
// plain birthday date. A missing or unparsable birthday yields zeros.
func birthdayFacts(birthday string, now time.Time) (age, daysUntil int) {
	if birthday == "" {
		return 0, 0
	}
	born, err := time.Parse("2006-01-02", birthday)
	if err != nil {
		return 0, 0
	}

	age = now.Year() - born.Year()
	next := time.Date(now.Year(), born.Month(), born.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if next.Before(today) {
		next = next.AddDate(1, 0, 0)
	} else if next.After(today) {
		// Birthday later this year: the current age has not incremented yet.
		age--
	}
	daysUntil = int(next.Sub(today).Hours() / 24)
	return age, daysUntil
}
