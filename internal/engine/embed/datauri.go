package embed

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// DataURI encodes content as a data URI. Text types are URL-escaped, everything
// else is base64 encoded.
func DataURI(content []byte, contentType string) string {
	if strings.HasPrefix(strings.ToLower(contentType), "text") {
		return "data:" + contentType + "," + url.QueryEscape(string(content))
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(content)
}
