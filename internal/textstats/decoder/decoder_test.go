package decoder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTF8Decoder(t *testing.T) {
	tests := []struct {
		name           string
		content        []byte
		expected       string
		expectError    bool
		expectedOffset int
	}{
		{name: "empty", content: []byte{}, expected: ""},
		{name: "ascii", content: []byte("plain text"), expected: "plain text"},
		{name: "multibyte", content: []byte("naïve café ✓"), expected: "naïve café ✓"},
		{name: "byte order mark kept", content: []byte("\xef\xbb\xbfhi"), expected: "\ufeffhi"},
		{name: "literal replacement character", content: []byte("\xef\xbf\xbd"), expected: "\ufffd"},
		{name: "latin-1 byte", content: []byte("caf\xe9"), expectError: true, expectedOffset: 3},
		{name: "truncated sequence", content: []byte("ok\xe2\x9c"), expectError: true, expectedOffset: 2},
		{name: "surrogate", content: []byte("\xed\xa0\x80"), expectError: true, expectedOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &UTF8Decoder{}
			text, err := d.Decode(tt.content)

			if tt.expectError {
				var decodeErr *DecodeError
				require.True(t, errors.As(err, &decodeErr))
				assert.Equal(t, UTF8Name, decodeErr.Encoding)
				assert.Equal(t, tt.expectedOffset, decodeErr.Offset)
				assert.Contains(t, err.Error(), "'utf-8' codec can't decode")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestLatin1Decoder(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	text, err := (&Latin1Decoder{}).Decode(all)
	require.NoError(t, err)

	runes := []rune(text)
	require.Len(t, runes, 256)

	for i, r := range runes {
		if r != rune(i) {
			t.Fatalf("byte 0x%02x decoded to U+%04X", i, r)
		}
	}

	text, err = (&Latin1Decoder{}).Decode([]byte("caf\xe9"))
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", text)
}

func TestASCIIDecoder(t *testing.T) {
	text, err := (&ASCIIDecoder{}).Decode([]byte("hello\tworld"))
	require.NoError(t, err)
	assert.Equal(t, "hello\tworld", text)

	_, err = (&ASCIIDecoder{}).Decode([]byte("caf\xc3\xa9"))

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 3, decodeErr.Offset)
	assert.Equal(t, byte(0xc3), decodeErr.Byte)
}

func TestForName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"utf-8", UTF8Name},
		{"UTF8", UTF8Name},
		{" latin-1 ", Latin1Name},
		{"ISO-8859-1", Latin1Name},
		{"latin1", Latin1Name},
		{"ascii", ASCIIName},
		{"US-ASCII", ASCIIName},
	}

	for _, tt := range tests {
		d, err := ForName(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, d.Name())
	}

	_, err := ForName("ebcdic")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
	assert.Contains(t, err.Error(), "ebcdic")
}

func TestNames(t *testing.T) {
	for _, name := range Names() {
		d, err := ForName(name)
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}
}
