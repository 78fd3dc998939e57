package textstats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"textstats/internal/textstats/decoder"
)

// UnsupportedEncodingMessage is the client-facing text of ErrUnsupportedEncoding.
const UnsupportedEncodingMessage = "Unsupported file encoding"

// ErrUnsupportedEncoding is returned when no decoder in the chain accepts the content.
var ErrUnsupportedEncoding = errors.New("unsupported file encoding")

// DefaultEncodings is the fallback chain used when none is configured.
var DefaultEncodings = []string{decoder.UTF8Name, decoder.Latin1Name}

// CreateDecoder is factory function to create decoders by encoding name
func CreateDecoder(name string) (decoder.Decoder, error) {
	return decoder.ForName(name)
}

// Processor computes word and character statistics for uploaded files.
// It holds no mutable state and is safe for concurrent use.
type Processor struct {
	decoders []decoder.Decoder
}

// New builds a Processor whose fallback chain tries encodings in order.
// With no arguments DefaultEncodings is used.
func New(encodings ...string) (*Processor, error) {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}

	decoders := make([]decoder.Decoder, 0, len(encodings))

	for _, name := range encodings {
		d, err := CreateDecoder(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create decoder chain: %w", err)
		}

		decoders = append(decoders, d)
	}

	return &Processor{decoders: decoders}, nil
}

// Encodings returns the canonical names of the fallback chain in order.
func (p *Processor) Encodings() []string {
	names := make([]string, 0, len(p.decoders))
	for _, d := range p.decoders {
		names = append(names, d.Name())
	}

	return names
}

// Decode tries each decoder of the chain and returns the text produced by the
// first one that succeeds, along with its name.
func (p *Processor) Decode(content []byte) (string, string, error) {
	for _, d := range p.decoders {
		text, err := d.Decode(content)
		if err == nil {
			return text, d.Name(), nil
		}
	}

	return "", "", fmt.Errorf("%w (tried %s)", ErrUnsupportedEncoding, strings.Join(p.Encodings(), ", "))
}

// Analyze decodes content and computes its statistics. The only error it
// returns wraps ErrUnsupportedEncoding.
func (p *Processor) Analyze(filename string, content []byte) (UploadResult, error) {
	start := time.Now()

	text, encoding, err := p.Decode(content)
	if err != nil {
		return UploadResult{}, err
	}

	words := Tokenize(Normalize(text))

	result := UploadResult{
		Filename:       filename,
		Encoding:       encoding,
		NumWords:       len(words),
		NumUniqueWords: CountUnique(words),
		NumCharacters:  CountCharacters(text),
	}
	result.ExecutionTime = time.Since(start).Seconds()

	return result, nil
}
