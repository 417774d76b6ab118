package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mekedron/logtrip/internal/service/output"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]output.Format{
		"":      output.FormatTable,
		"TABLE": output.FormatTable,
		"text":  output.FormatTable,
		"json":  output.FormatJSON,
		" yml ": output.FormatYAML,
	}
	for in, want := range cases {
		got, err := output.ParseFormat(in)
		if err != nil {
			t.Fatalf("parse %q: unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %q, got %q", in, want, got)
		}
	}
	if _, err := output.ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestBuildEnvelope(t *testing.T) {
	env := output.BuildEnvelope(output.Meta{Unit: "km", Source: "json", Input: &output.Input{Lines: 3, Records: 2}}, map[string]any{"distance": 111.2}, nil)
	if env.Meta.Unit != "km" || env.Meta.Source != "json" {
		t.Fatalf("unexpected meta %+v", env.Meta)
	}
	if !strings.HasSuffix(env.Meta.GeneratedAt, "Z") {
		t.Fatalf("expected generated_at to end with Z, got %q", env.Meta.GeneratedAt)
	}
	if env.Error != nil {
		t.Fatalf("expected no error payload, got %+v", env.Error)
	}

	stamped := output.BuildEnvelope(output.Meta{GeneratedAt: "2021-06-01T10:00:00Z"}, nil, nil)
	if stamped.Meta.GeneratedAt != "2021-06-01T10:00:00Z" {
		t.Fatalf("expected generated_at to be kept, got %q", stamped.Meta.GeneratedAt)
	}
}

func TestRenderPayload(t *testing.T) {
	env := output.BuildEnvelope(output.Meta{Unit: "km", Source: "log", Input: &output.Input{Lines: 5, Records: 2}}, map[string]any{"ok": true}, nil)

	jsonPayload, err := output.RenderPayload(env, output.FormatJSON)
	if err != nil {
		t.Fatalf("render json failed: %v", err)
	}
	for _, want := range []string{"\"ok\": true", "\"lines\": 5", "\"records\": 2"} {
		if !strings.Contains(jsonPayload, want) {
			t.Fatalf("expected %s in json payload, got %s", want, jsonPayload)
		}
	}
	if strings.Contains(jsonPayload, "\"error\"") {
		t.Fatalf("expected no error key, got %s", jsonPayload)
	}

	yamlPayload, err := output.RenderPayload(env, output.FormatYAML)
	if err != nil {
		t.Fatalf("render yaml failed: %v", err)
	}
	if !strings.Contains(yamlPayload, "unit: km") {
		t.Fatalf("expected yaml payload to include unit, got %s", yamlPayload)
	}
	if strings.HasSuffix(yamlPayload, "\n") {
		t.Fatalf("expected yaml payload without trailing newline")
	}

	if _, err := output.RenderPayload(env, output.FormatTable); err == nil {
		t.Fatal("expected table format to be rejected")
	}
}

func TestRenderPayloadFailure(t *testing.T) {
	env := output.BuildEnvelope(output.Meta{Unit: "km", Source: "json"}, nil, &output.Failure{Code: "LOGTRIP_INVALID_RECORD", Message: "line 3: bad", Line: 3})
	payload, err := output.RenderPayload(env, output.FormatJSON)
	if err != nil {
		t.Fatalf("render json failed: %v", err)
	}
	for _, want := range []string{"\"code\": \"LOGTRIP_INVALID_RECORD\"", "\"line\": 3"} {
		if !strings.Contains(payload, want) {
			t.Fatalf("expected %s in payload, got %s", want, payload)
		}
	}
	if strings.Contains(payload, "\"input\"") {
		t.Fatalf("expected no input stats on failure, got %s", payload)
	}
}

func TestWriteOutputAlsoWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "total.txt")
	buf := &bytes.Buffer{}
	if err := output.WriteOutput(buf, "111.2", path); err != nil {
		t.Fatalf("write output: %v", err)
	}
	if buf.String() != "111.2\n" {
		t.Fatalf("unexpected stdout %q", buf.String())
	}
	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if string(saved) != "111.2\n" {
		t.Fatalf("unexpected file content %q", saved)
	}
}

func TestRenderTableAlignsKeys(t *testing.T) {
	got := output.RenderTable("Trip", [][2]string{{"records", "3"}, {"distance", "222.4 km"}})
	want := "Trip\nrecords   3\ndistance  222.4 km"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
