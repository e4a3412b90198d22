// Package views holds the HTML pages served by the trip planner.
package views

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options offered on the plan-trip form.
var (
	TravelingWithOptions = []string{"solo", "with a partner", "with friends", "with kids", "with pets"}
	LodgingOptions       = []string{"campsites", "cabins", "lodges", "hotels", "bed & breakfasts", "RVs"}
	AdventureOptions     = []string{"hiking", "swimming", "bird-watching", "guided tours", "kayaking", "stargazing"}
)

// Templates parses every page. Page names are the file names, e.g. "view-trip.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}).ParseFS(templateFS, "templates/*.html")
}
