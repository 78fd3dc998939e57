package decoder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEncoding is returned by ForName for names outside the decoder set.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Decoder turns raw upload bytes into text for one character encoding.
type Decoder interface {
	// Name is the canonical encoding name reported to clients.
	Name() string
	Decode(content []byte) (string, error)
}

// DecodeError reports the first byte a decoder could not accept.
type DecodeError struct {
	Encoding string
	Offset   int
	Byte     byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("'%s' codec can't decode byte 0x%02x in position %d", e.Encoding, e.Byte, e.Offset)
}

var aliases = map[string]string{
	"utf-8":      UTF8Name,
	"utf8":       UTF8Name,
	"latin-1":    Latin1Name,
	"latin1":     Latin1Name,
	"iso-8859-1": Latin1Name,
	"iso8859-1":  Latin1Name,
	"ascii":      ASCIIName,
	"us-ascii":   ASCIIName,
}

// ForName returns the decoder registered under name or one of its aliases
func ForName(name string) (Decoder, error) {
	canonical, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	switch canonical {
	case UTF8Name:
		return &UTF8Decoder{}, nil
	case Latin1Name:
		return &Latin1Decoder{}, nil
	default:
		return &ASCIIDecoder{}, nil
	}
}

// Names lists the canonical names of every supported encoding.
func Names() []string {
	return []string{UTF8Name, Latin1Name, ASCIIName}
}
