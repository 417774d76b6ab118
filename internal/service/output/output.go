package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format represents command output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates format values.
func ParseFormat(v string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(v))) {
	case "", FormatTable, "text":
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", v)
	}
}

// Input describes the record stream a result was computed from.
type Input struct {
	Lines   int `json:"lines" yaml:"lines"`
	Records int `json:"records" yaml:"records"`
}

// Meta describes how a result was produced.
type Meta struct {
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Unit        string `json:"unit" yaml:"unit"`
	Source      string `json:"source" yaml:"source"`
	Input       *Input `json:"input,omitempty" yaml:"input,omitempty"`
}

// Failure is the error part of an envelope. Line is the 1-based input line
// that stopped the run, when there is one.
type Failure struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
}

// Envelope is the machine-output payload.
type Envelope struct {
	Meta  Meta     `json:"meta" yaml:"meta"`
	Data  any      `json:"data" yaml:"data"`
	Error *Failure `json:"error,omitempty" yaml:"error,omitempty"`
}

// BuildEnvelope constructs a response envelope stamped with the current time.
func BuildEnvelope(meta Meta, data any, failure *Failure) Envelope {
	if meta.GeneratedAt == "" {
		meta.GeneratedAt = time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
	}
	return Envelope{Meta: meta, Data: data, Error: failure}
}

// RenderPayload renders payload in json/yaml format.
func RenderPayload(payload Envelope, format Format) (string, error) {
	switch format {
	case FormatJSON:
		bytes, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal json: %w", err)
		}
		return string(bytes), nil
	case FormatYAML:
		bytes, err := yaml.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("marshal yaml: %w", err)
		}
		return strings.TrimRight(string(bytes), "\n"), nil
	default:
		return "", fmt.Errorf("render payload only supports json/yaml")
	}
}

// WriteOutput writes text and a trailing newline to w, and to outputPath
// when set.
func WriteOutput(w io.Writer, text string, outputPath string) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// RenderTable renders key/value rows as aligned plain text.
func RenderTable(title string, rows [][2]string) string {
	width := 0
	for _, row := range rows {
		if len(row[0]) > width {
			width = len(row[0])
		}
	}
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%-*s  %s\n", width, row[0], row[1])
	}
	return strings.TrimRight(b.String(), "\n")
}
