// Package console runs entity dialogs interactively in a terminal using
// survey prompts. The PromptDriver seam lets tests script answers.
package console
