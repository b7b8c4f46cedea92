// Package render implements the content transforms applied during data
// migrations: HTML sanitization, entity unescaping and Markdown rendering.
package render

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// Service holds the sanitization policies. Policies are built once; the
// Sanitize calls themselves are safe for concurrent use.
type Service struct {
	strict  *bluemonday.Policy
	relaxed *bluemonday.Policy
}

// NewService creates a transform service with a zero-tolerance strict
// policy and a relaxed policy permitting common user-generated formatting.
func NewService() *Service {
	return &Service{
		strict:  bluemonday.StrictPolicy(),
		relaxed: bluemonday.UGCPolicy(),
	}
}

// SanitizeStrict strips all markup, keeping only text content.
func (s *Service) SanitizeStrict(text string) string {
	return s.strict.Sanitize(text)
}

// SanitizeRelaxed keeps common formatting tags and removes scripts,
// styles and event handlers.
func (s *Service) SanitizeRelaxed(markup string) string {
	return s.relaxed.Sanitize(markup)
}

// UnescapeEntities resolves HTML entities to their characters.
func (s *Service) UnescapeEntities(text string) string {
	return html.UnescapeString(text)
}

// RenderMarkdown renders Markdown source to HTML. The output is not safe
// on its own; callers sanitize it afterwards.
func (s *Service) RenderMarkdown(text string) string {
	return string(blackfriday.Run([]byte(text)))
}
