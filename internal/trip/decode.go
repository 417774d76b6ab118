package trip

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mekedron/logtrip/internal/domain"
	"github.com/mekedron/logtrip/internal/geo"
)

// Decoder turns one input line into a position. The boolean result is false
// for lines that carry no record and must be skipped.
type Decoder func(line []byte) (domain.Position, bool, error)

// Source names a line format.
type Source string

const (
	SourceJSON Source = "json"
	SourceLog  Source = "log"
)

const positionEntryType = "POSITION"

// ParseSource validates source values. Empty input selects JSON.
func ParseSource(v string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(v))) {
	case "", SourceJSON:
		return SourceJSON, nil
	case SourceLog:
		return SourceLog, nil
	default:
		return "", fmt.Errorf("unsupported source %q", v)
	}
}

// Decoder returns the line decoder for s.
func (s Source) Decoder() Decoder {
	if s == SourceLog {
		return DecodeLog
	}
	return DecodeJSON
}

// DecodeJSON decodes a line holding one JSON object with numeric latitude
// and longitude fields. Other fields are ignored.
func DecodeJSON(line []byte) (domain.Position, bool, error) {
	if !utf8.Valid(line) {
		return domain.Position{}, false, fmt.Errorf("%w: invalid UTF-8", ErrDecode)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(line, &fields); err != nil {
		return domain.Position{}, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if fields == nil {
		return domain.Position{}, false, fmt.Errorf("%w: got null", ErrDecode)
	}

	lat, err := numberField(fields, "latitude")
	if err != nil {
		return domain.Position{}, false, err
	}
	lon, err := numberField(fields, "longitude")
	if err != nil {
		return domain.Position{}, false, err
	}

	pos := domain.Position{Lat: lat, Lon: lon}
	if !geo.Valid(pos) {
		return domain.Position{}, false, fmt.Errorf("%w: latitude %v, longitude %v", ErrOutOfRange, lat, lon)
	}
	return pos, true, nil
}

func numberField(fields map[string]json.RawMessage, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("%w: %s is %s", ErrInvalidField, name, raw)
	}
	return value, nil
}

// LogEntry is one line of a vessel log:
//
//	<logdate> <skdate> <label words...> <TYPE> <value...>
//
// TYPE is the first word longer than four characters made only of ASCII
// capitals.
type LogEntry struct {
	LogDate string
	SKDate  string
	Label   string
	Type    string
	Value   string
}

// ParseLogLine splits a vessel log line into its fields. It reports false
// when the line has no type word.
func ParseLogLine(line string) (LogEntry, bool) {
	fields := strings.Split(strings.TrimSpace(line), " ")
	if len(fields) < 3 {
		return LogEntry{}, false
	}
	entry := LogEntry{LogDate: fields[0], SKDate: fields[1]}
	label := make([]string, 0, len(fields))
	for i := 2; i < len(fields); i++ {
		if isTypeWord(fields[i]) {
			entry.Label = strings.TrimSpace(strings.Join(label, " "))
			entry.Type = fields[i]
			entry.Value = strings.TrimSpace(strings.Join(fields[i+1:], " "))
			return entry, true
		}
		label = append(label, fields[i])
	}
	return LogEntry{}, false
}

func isTypeWord(field string) bool {
	if len(field) <= 4 {
		return false
	}
	for i := 0; i < len(field); i++ {
		if field[i] < 'A' || field[i] > 'Z' {
			return false
		}
	}
	return true
}

// DecodeLog decodes POSITION entries of a vessel log. Every other line,
// blank lines included, is skipped.
func DecodeLog(line []byte) (domain.Position, bool, error) {
	entry, ok := ParseLogLine(string(line))
	if !ok || entry.Type != positionEntryType {
		return domain.Position{}, false, nil
	}
	return DecodeJSON([]byte(entry.Value))
}
