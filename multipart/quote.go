package multipart

import "strings"

// Quote escapes s for use inside a quoted-string (RFC 822, 3.3): '\', CR and
// '"' are preceded by a backslash. Other characters, line feed included, are
// left alone.
func Quote(s string) string {
	if !strings.ContainsAny(s, "\\\r\"") {
		return s
	}
	sb := &strings.Builder{}
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '\r', '"':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
