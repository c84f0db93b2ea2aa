package markdown

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// DecodeLossy converts file content to text. A leading byte-order mark and invalid
// UTF-8 bytes are dropped, so undecodable files are still scanned.
func DecodeLossy(content []byte) string {
	valid := strings.ToValidUTF8(string(content), "")
	decoded, err := unicode.UTF8BOM.NewDecoder().String(valid)
	if err != nil {
		return valid
	}
	return decoded
}
