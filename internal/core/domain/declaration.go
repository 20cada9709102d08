package domain

// Declaration is a dependency reference extracted from one source line.
type Declaration struct {
	// Path is the raw referenced path as written, without any query suffix.
	Path string
	// Query is the optional query suffix of a CSS import, including the leading '?'.
	Query string
}
