package decoder

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const UTF8Name = "utf-8"

// UTF8Decoder accepts only well-formed UTF-8. Surrogate code points and
// truncated sequences are rejected.
type UTF8Decoder struct{}

func (d *UTF8Decoder) Name() string {
	return UTF8Name
}

func (d *UTF8Decoder) Decode(content []byte) (string, error) {
	out, _, err := transform.Bytes(encoding.UTF8Validator, content)
	if err == nil {
		return string(out), nil
	}

	if !errors.Is(err, encoding.ErrInvalidUTF8) {
		return "", err
	}

	offset := invalidOffset(content)

	return "", &DecodeError{Encoding: UTF8Name, Offset: offset, Byte: content[offset]}
}

// invalidOffset locates the first byte that does not start a valid rune.
func invalidOffset(content []byte) int {
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}

	return 0
}
