// Package parse decodes structured data out of model output. Models asked
// for JSON routinely wrap it in Markdown code fences or emit slightly broken
// syntax (single quotes, trailing commas); parsing strips the fences and
// falls back to JSON repair before giving up.
package parse
