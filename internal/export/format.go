package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var ErrUnknownFormat = errors.New("export: unknown format")

type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatMsgPack Format = "msgpack"
	FormatSVG     Format = "svg"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatCSV, FormatMsgPack, FormatSVG}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatCSV, FormatMsgPack, FormatSVG:
		return f, nil
	case "mp", "mpk":
		return FormatMsgPack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) Extension() string {
	if f == FormatMsgPack {
		return "mpk"
	}
	return string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatMsgPack:
		return "application/msgpack"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

// Write encodes doc to w. SVG output uses the default camera.
func Write(w io.Writer, f Format, doc *Document) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatCSV:
		return WriteCSV(w, doc.Points())
	case FormatMsgPack:
		return msgpack.NewEncoder(w).Encode(doc)
	case FormatSVG:
		_, err := io.WriteString(w, CloudToSVG(doc.Points(), nil, DefaultSVGSize, DefaultSVGSize))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Read decodes a JSON or MessagePack document.
func Read(r io.Reader, f Format) (*Document, error) {
	var doc Document
	switch f {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
	case FormatMsgPack:
		if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: cannot read %q documents", ErrUnknownFormat, string(f))
	}
	return &doc, nil
}
