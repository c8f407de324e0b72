package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/weiawesome/uidgen/internal/kind"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an output encoding for a list of identifiers.
type Format string

const (
	FormatRaw     Format = "raw"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatMsgpack Format = "msgpack"
)

type formatInfo struct {
	ext         string
	contentType string
}

var formats = map[Format]formatInfo{
	FormatRaw:     {"txt", "text/plain; charset=utf-8"},
	FormatJSON:    {"json", "application/json"},
	FormatYAML:    {"yaml", "application/yaml"},
	FormatTOML:    {"toml", "application/toml"},
	FormatMsgpack: {"msgpack", "application/msgpack"},
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatRaw, FormatJSON, FormatYAML, FormatTOML, FormatMsgpack}
}

// FormatNames returns Formats as strings, for flag enums.
func FormatNames() []string {
	out := make([]string, 0, len(formats))
	for _, f := range Formats() {
		out = append(out, string(f))
	}
	return out
}

// ParseFormat accepts a format name; empty means raw.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatRaw, nil
	}
	if _, ok := formats[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
	return f, nil
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string { return formats[f].ext }

// FormatForExt maps a file extension, without the dot, back to its format.
func FormatForExt(ext string) (Format, bool) {
	for _, f := range Formats() {
		if formats[f].ext == ext {
			return f, true
		}
	}
	return "", false
}

// ContentType returns the MIME type written alongside exports.
func (f Format) ContentType() string { return formats[f].contentType }

// Binary reports whether the rendering is not printable text.
func (f Format) Binary() bool { return f == FormatMsgpack }

type tomlDoc struct {
	IDs []string `toml:"ids"`
}

// Render encodes ids in format f. Raw is newline-joined without a trailing
// newline; JSON is an array indented by two spaces.
func Render(f Format, ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}

	switch f {
	case FormatRaw, "":
		return []byte(strings.Join(ids, "\n")), nil
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ids); err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
	case FormatYAML:
		out, err := yaml.Marshal(ids)
		if err != nil {
			return nil, fmt.Errorf("render yaml: %w", err)
		}
		return out, nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(tomlDoc{IDs: ids}); err != nil {
			return nil, fmt.Errorf("render toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatMsgpack:
		out, err := msgpack.Marshal(ids)
		if err != nil {
			return nil, fmt.Errorf("render msgpack: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// SuggestFileName returns "{kind}-export-{YYYYMMDDhhmmss}.{ext}" in now's
// location.
func SuggestFileName(k kind.Kind, f Format, now time.Time) string {
	if f == "" {
		f = FormatRaw
	}
	return fmt.Sprintf("%s-export-%s.%s", k, now.Format("20060102150405"), f.Ext())
}
