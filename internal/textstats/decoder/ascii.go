package decoder

const ASCIIName = "ascii"

// ASCIIDecoder is the strict 7-bit decoder. Unlike latin-1 it can fail, which
// makes it useful as a restrictive last fallback.
type ASCIIDecoder struct{}

func (d *ASCIIDecoder) Name() string {
	return ASCIIName
}

func (d *ASCIIDecoder) Decode(content []byte) (string, error) {
	for i, b := range content {
		if b >= 0x80 {
			return "", &DecodeError{Encoding: ASCIIName, Offset: i, Byte: b}
		}
	}

	return string(content), nil
}
