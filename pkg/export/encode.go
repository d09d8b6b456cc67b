package export

import (
	"encoding/base64"
	"strings"

	"github.com/matzehuels/artwork/pkg/errors"
)

// ResponseType selects how exported bytes are represented.
type ResponseType string

const (
	String      ResponseType = "string"
	Base64      ResponseType = "base64"
	Binary      ResponseType = "binary"
	ArrayBuffer ResponseType = "arrayBuffer"
	DataURI     ResponseType = "dataUri"
)

// ParseResponseType resolves a response type name. The empty string maps to
// the zero value, which means "use the format default".
func ParseResponseType(s string) (ResponseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "string", "text":
		return String, nil
	case "base64":
		return Base64, nil
	case "binary":
		return Binary, nil
	case "arraybuffer", "bytes", "raw":
		return ArrayBuffer, nil
	case "datauri", "data-uri", "datauristring":
		return DataURI, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown response type %q", s)
}

// Output is one encoded export result. Exactly one of Text and Data is
// populated: Data for ArrayBuffer, Text otherwise.
type Output struct {
	MIME string       `json:"mime"`
	Type ResponseType `json:"type"`
	Text string       `json:"text,omitempty"`
	Data []byte       `json:"data,omitempty"`
}

// Bytes returns the raw payload regardless of representation.
func (o Output) Bytes() ([]byte, error) {
	switch o.Type {
	case ArrayBuffer:
		return o.Data, nil
	case Base64:
		return base64.StdEncoding.DecodeString(o.Text)
	case Binary:
		return BinaryBytes(o.Text), nil
	case DataURI:
		i := strings.Index(o.Text, ";base64,")
		if !strings.HasPrefix(o.Text, "data:") || i < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "malformed data URI")
		}
		return base64.StdEncoding.DecodeString(o.Text[i+len(";base64,"):])
	default:
		return []byte(o.Text), nil
	}
}

// Encode maps a byte buffer to the requested representation. Unknown
// response types fall back to a data URI.
func Encode(mime string, buf []byte, rt ResponseType) Output {
	switch rt {
	case String:
		return Output{MIME: mime, Type: String, Text: string(buf)}
	case Base64:
		return Output{MIME: mime, Type: Base64, Text: base64.StdEncoding.EncodeToString(buf)}
	case Binary:
		return Output{MIME: mime, Type: Binary, Text: binaryString(buf)}
	case ArrayBuffer:
		return Output{MIME: mime, Type: ArrayBuffer, Data: append([]byte(nil), buf...)}
	default:
		return Output{MIME: mime, Type: DataURI, Text: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf)}
	}
}

// binaryString maps each byte to the code point of the same value, so the
// result survives transports that only carry text.
func binaryString(buf []byte) string {
	var sb strings.Builder
	sb.Grow(len(buf))
	for _, b := range buf {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}

// BinaryBytes reverses the Binary representation.
func BinaryBytes(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, byte(r))
	}
	return out
}
