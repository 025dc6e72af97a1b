package project

import "bytes"

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// isBinary guesses whether content is not text: a NUL byte or more than
// 10% control characters in the first 8KB. UTF-16 content with a byte order
// mark is text.
func isBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	if bytes.HasPrefix(content, bomUTF16LE) || bytes.HasPrefix(content, bomUTF16BE) {
		return false
	}

	sample := content[:min(len(content), 8192)]
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			nonText++
		}
	}
	return float64(nonText)/float64(len(sample)) > 0.1
}
