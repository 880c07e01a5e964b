package model

import "strings"

// Note is a single user note stored in the local database
type Note struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	UpdatedAt string `json:"updatedAt"`
}

// DisplayTitle returns the title to show in lists, falling back to the
// first line of the body for untitled notes
func (n Note) DisplayTitle() string {
	title := strings.TrimSpace(n.Title)
	if title != "" {
		return title
	}
	body := strings.TrimSpace(n.Body)
	if body == "" {
		return "Untitled"
	}
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		body = body[:idx]
	}
	const maxLen = 48
	if len(body) > maxLen {
		return body[:maxLen]
	}
	return body
}
