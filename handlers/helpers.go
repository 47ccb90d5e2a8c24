package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

// apiError writes a JSON error body with the given status.
func apiError(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, map[string]any{"error": message})
}

// formString returns the trimmed form value.
func formString(e *core.RequestEvent, name string) string {
	return strings.TrimSpace(e.Request.FormValue(name))
}

// formFloat parses a float form value, returning fallback on empty or
// unparseable input.
func formFloat(e *core.RequestEvent, name string, fallback float64) float64 {
	raw := formString(e, name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

// formInt parses an integer form value, returning fallback on empty or
// unparseable input.
func formInt(e *core.RequestEvent, name string, fallback int) int {
	raw := formString(e, name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// formBool treats "true", "on", "1" and "yes" as true.
func formBool(e *core.RequestEvent, name string) bool {
	switch strings.ToLower(formString(e, name)) {
	case "true", "on", "1", "yes", "y":
		return true
	}
	return false
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// writeDownload writes file bytes with a Content-Disposition attachment header.
func writeDownload(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(body)
	return err
}
