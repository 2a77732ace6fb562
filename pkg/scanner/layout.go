package scanner

// isLayout reports whether c separates tokens.
func isLayout(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isLineEnd reports whether c ends an input line. A CR immediately followed
// by LF is counted once, on the LF.
func isLineEnd(c byte, la int) bool {
	return c == '\n' || (c == '\r' && la != '\n')
}
