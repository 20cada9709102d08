package embed

import (
	"encoding/base64"
	"strings"
)

const mhtmlLineLength = 76

// base64Lines encodes payload as MIME base64 with 76-character lines.
func base64Lines(payload []byte) string {
	encoded := base64.StdEncoding.EncodeToString(payload)
	var b strings.Builder
	for len(encoded) > mhtmlLineLength {
		b.WriteString(encoded[:mhtmlLineLength])
		b.WriteByte('\n')
		encoded = encoded[mhtmlLineLength:]
	}
	b.WriteString(encoded)
	return b.String()
}
