// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package directory

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

// NoLocationsText is rendered in place of an empty grid.
const NoLocationsText = "No locations found."

// Element ids of the page document.
const (
	LoadingRegionID   = "loading"
	ErrorRegionID     = "error-message"
	ContainerRegionID = "locations-container"
)

var templates = template.Must(template.New("directory").Parse(`
{{- define "location" -}}
<a class="location-card" href="{{.Href}}">
  <h3 class="location-name">{{.Name}}</h3>
  {{- if or .City .StateAbbreviation}}
  <p class="location-place">{{.City}}{{if and .City .StateAbbreviation}}, {{end}}{{.StateAbbreviation}}</p>
  {{- end}}
  {{- if .Status.Text}}
  <span class="location-status {{.Status.Class}}">{{.Status.Text}}</span>
  {{- end}}
</a>
{{- end -}}

{{- define "empty" -}}
<p class="no-locations" style="grid-column: 1 / -1;">{{.}}</p>
{{- end -}}

{{- define "fragments" -}}
{{- range .}}{{template "location" .}}
{{end -}}
{{- end -}}

{{- define "page" -}}
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Locations</title>
</head>
<body>
  <div id="loading" class="loading"{{if not .Loading}} hidden{{end}}>Loading locations...</div>
  <div id="error-message" class="error-message"{{if not .Error}} hidden{{end}}>{{.Error}}</div>
  <div id="locations-container" class="locations-grid">{{.Content}}</div>
</body>
</html>
{{end -}}
`))

// RenderRecords renders one card per record, or the empty placeholder.
func RenderRecords(records []RenderedRecord) (template.HTML, error) {
	var buf bytes.Buffer
	name, data := "fragments", any(records)
	if len(records) == 0 {
		name, data = "empty", NoLocationsText
	}
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // G203: html/template output is already escaped
}

// RenderPage writes the full document for v.
func RenderPage(w io.Writer, v View) error {
	if err := templates.ExecuteTemplate(w, "page", v); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
