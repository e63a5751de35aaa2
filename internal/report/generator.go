// Package report renders the dashboard view as text, JSON, YAML or HTML.
package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/finanai/internal/currencyutils"
	"fjacquet/finanai/internal/dashboard"
	"fjacquet/finanai/internal/finerrors"
	"fjacquet/finanai/internal/logging"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatHTML}

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money":      currencyutils.FormatAmount,
	"percent":    currencyutils.FormatPercent,
	"label":      CategoryLabel,
	"trendText":  TrendText,
	"trendClass": TrendClass,
	"sorted":     SortedBreakdown,
	"icon":       SeverityIcon,
	"isoDate":    func(v *dashboard.View) string { return v.GeneratedAt.Format("2006-01-02 15:04") },
}).Parse(htmlTemplateSource))

// Generator renders dashboard views.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new Generator.
func NewGenerator(logger logging.Logger) *Generator {
	return &Generator{logger: logger.WithField(logging.FieldComponent, "report")}
}

// Generate renders view in the given format.
func (g *Generator) Generate(view *dashboard.View, format string) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("view cannot be nil")
	}

	var out []byte
	var err error
	switch strings.ToLower(format) {
	case FormatText:
		out = []byte(renderText(view))
	case FormatJSON:
		out, err = json.MarshalIndent(view, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(view)
	case FormatHTML:
		var buf bytes.Buffer
		err = htmlTemplate.Execute(&buf, view)
		out = buf.Bytes()
	default:
		return nil, &finerrors.UnsupportedFormatError{Kind: "report format", Format: format, Expected: Formats}
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to render report",
			logging.Field{Key: logging.FieldFormat, Value: format})
		return nil, fmt.Errorf("failed to render %s report: %w", format, err)
	}
	return out, nil
}
