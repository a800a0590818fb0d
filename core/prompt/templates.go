package prompt

// Builtins returns the default template catalog. Hosts merge user-defined
// templates on top; builtin entries are recognizable via IsBuiltin so a
// settings UI can block deletion.
func Builtins() []Template {
	return []Template{
		{
			ID:           "translate",
			Name:         "Translate",
			Category:     "Translation",
			Prompt:       "Please translate the following text into English, return only the translation without any explanation:\n\n{{selection}}",
			OutputAction: ActionReplace,
			IsBuiltin:    true,
		},
		{
			ID:           "summarize",
			Name:         "Summarize",
			Category:     "Text",
			Prompt:       "Summarize the key points of the following text concisely:\n\n{{selection}}",
			OutputAction: ActionInsert,
			IsBuiltin:    true,
		},
		{
			ID:           "explain",
			Name:         "Explain",
			Category:     "Text",
			Prompt:       "Explain the following text in plain, accessible language:\n\n{{selection}}",
			OutputAction: ActionInsert,
			IsBuiltin:    true,
		},
		{
			ID:           "improve-writing",
			Name:         "Improve writing",
			Category:     "Writing",
			Prompt:       "Improve the writing quality of the following text, making it clearer, smoother, and more professional. Return only the improved text:\n\n{{selection}}",
			OutputAction: ActionReplace,
			IsBuiltin:    true,
		},
		{
			ID:           "fix-grammar",
			Name:         "Fix grammar",
			Category:     "Writing",
			Prompt:       "Fix the grammar and spelling mistakes in the following text. Return only the corrected text:\n\n{{selection}}",
			OutputAction: ActionReplace,
			IsBuiltin:    true,
		},
		{
			ID:           "expand",
			Name:         "Expand",
			Category:     "Writing",
			Prompt:       "Expand the following text with more detail and explanation:\n\n{{selection}}",
			OutputAction: ActionInsert,
			IsBuiltin:    true,
		},
		{
			ID:           "simplify",
			Name:         "Simplify",
			Category:     "Text",
			Prompt:       "Simplify the following text so it is shorter and easier to understand:\n\n{{selection}}",
			OutputAction: ActionReplace,
			IsBuiltin:    true,
		},
	}
}

// Find returns the template with the given id from templates, or false when
// absent.
func Find(templates []Template, id string) (Template, bool) {
	for _, template := range templates {
		if template.ID == id {
			return template, true
		}
	}
	return Template{}, false
}
