package forge

import "strings"

// SanitizeObjectName maps a free-form name onto a valid object identifier:
// ASCII letters, digits, '_' and '-' pass through, everything else becomes
// '_'. Deterministic, so the same plan always yields the same paths.
func SanitizeObjectName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// NormalizeFolder trims the candidate, falls back to defaultFolder when
// empty, forces a leading separator, and forces the canonical /Game root:
// anything outside it is overridden to defaultFolder.
func NormalizeFolder(candidate, defaultFolder string) string {
	f := strings.TrimSpace(candidate)
	if f == "" {
		f = defaultFolder
	}
	if !strings.HasPrefix(f, "/") {
		f = "/" + f
	}
	if !strings.HasPrefix(f, "/Game") {
		f = defaultFolder
	}
	return f
}
