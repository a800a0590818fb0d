package prompt

import (
	"strings"
	"time"
)

// OutputAction says what the host should do with a generated result.
type OutputAction string

const (
	// ActionReplace replaces the selected text with the result.
	ActionReplace OutputAction = "replace"
	// ActionInsert inserts the result after the selection.
	ActionInsert OutputAction = "insert"
	// ActionClipboard copies the result to the clipboard.
	ActionClipboard OutputAction = "clipboard"
)

// Template is one AI transform the user can trigger from the toolbar. The
// template lifecycle (creation, editing, persistence) is owned by the host's
// settings store; the generation path reads only Prompt, Model, Temperature,
// and MaxTokens.
type Template struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Category     string       `json:"category" yaml:"category"`
	Prompt       string       `json:"prompt" yaml:"prompt"`
	OutputAction OutputAction `json:"outputAction" yaml:"outputAction"`
	Model        string       `json:"model,omitempty" yaml:"model,omitempty"`             // optional per-template override
	Temperature  *float32     `json:"temperature,omitempty" yaml:"temperature,omitempty"` // optional per-template override
	MaxTokens    int          `json:"maxTokens,omitempty" yaml:"maxTokens,omitempty"`     // optional per-template override
	IsBuiltin    bool         `json:"isBuiltin" yaml:"isBuiltin"`
}

// Context supplies the placeholder values for one rendering. Title defaults
// to empty; Date and Time default to the current date/time computed at call
// time.
type Context struct {
	Selection string
	Title     string
	Date      string
	Time      string
}

const (
	dateLayout = "1/2/2006"
	timeLayout = "3:04:05 PM"
)

// Render substitutes every occurrence of {{selection}}, {{title}}, {{date}},
// and {{time}} in tmpl with the corresponding context value. Token matching
// is literal and case-sensitive; all other text, including stray braces, is
// left untouched. Substitution is a single pass: values containing {{...}}
// tokens of their own are inserted verbatim and never re-expanded.
func Render(tmpl string, context Context) string {
	date := context.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	timeOfDay := context.Time
	if timeOfDay == "" {
		timeOfDay = time.Now().Format(timeLayout)
	}

	rendered := strings.ReplaceAll(tmpl, "{{selection}}", context.Selection)
	rendered = strings.ReplaceAll(rendered, "{{title}}", context.Title)
	rendered = strings.ReplaceAll(rendered, "{{date}}", date)
	rendered = strings.ReplaceAll(rendered, "{{time}}", timeOfDay)

	return rendered
}
