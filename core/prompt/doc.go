// Package prompt holds the prompt-template model, the placeholder renderer,
// and the built-in template catalog. Rendering is deliberately not a
// templating language: four literal tokens, one substitution pass, no
// escaping and no recursion.
package prompt
