package base64

import "strings"

// GetContentType extracts the MIME type from a data URL such as
// "data:image/png;base64,...". It returns "" when the input is not a
// base64 data URL.
func GetContentType(file string) string {
	rest, ok := strings.CutPrefix(file, "data:")
	if !ok {
		return ""
	}

	contentType, _, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return ""
	}

	return contentType
}
