package buffer

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode converts raw file bytes to a UTF-8 string.
// A UTF-16 byte order mark selects UTF-16 decoding; a UTF-8 byte order mark
// is stripped; anything else is taken as UTF-8.
func Decode(data []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	return string(out), nil
}
