package netclient

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxMessageBytes = 1024

// messageFromBody turns a response body into a readable error message.
// Load balancers and proxies in front of the control plane answer with HTML
// error pages; those get reduced to their title (or body text) so the typed
// error carries something a human can act on. Plain payloads pass through
// unchanged.
func messageFromBody(contentType, body string) string {
	if !isHTML(contentType, body) {
		return truncateMessage(body)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return truncateMessage(body)
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return truncateMessage(title)
	}
	if text := strings.TrimSpace(doc.Find("body").Text()); text != "" {
		return truncateMessage(strings.Join(strings.Fields(text), " "))
	}
	return truncateMessage(body)
}

func isHTML(contentType, body string) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	trimmed := strings.TrimSpace(body)
	return strings.HasPrefix(strings.ToLower(trimmed), "<!doctype html") ||
		strings.HasPrefix(strings.ToLower(trimmed), "<html")
}

func truncateMessage(s string) string {
	if len(s) > maxMessageBytes {
		return s[:maxMessageBytes]
	}
	return s
}
