package decoder

import (
	"golang.org/x/text/encoding/charmap"
)

const Latin1Name = "latin-1"

// Latin1Decoder maps every byte b to the code point U+00b, so it never fails
// and works as the last link of a fallback chain.
type Latin1Decoder struct{}

func (d *Latin1Decoder) Name() string {
	return Latin1Name
}

func (d *Latin1Decoder) Decode(content []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return "", err
	}

	return string(out), nil
}
