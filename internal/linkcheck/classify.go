package linkcheck

import "strings"

// Classify decides whether raw needs an existence check. Angle brackets are unwrapped
// before the anchor and scheme tests, so <#intro> and <https://x> are never local.
func Classify(raw string) SkipReason {
	if strings.TrimSpace(raw) == "" {
		return SkipEmpty
	}
	target := unwrap(raw)
	if strings.HasPrefix(target, "#") {
		return SkipAnchor
	}
	if HasScheme(target) {
		return SkipExternal
	}
	return SkipNone
}

// ShouldSkip reports whether raw is not a candidate for a local existence check.
func ShouldSkip(raw string) bool {
	return Classify(raw) != SkipNone
}

// unwrap trims raw and strips one pair of surrounding angle brackets.
func unwrap(raw string) string {
	target := strings.TrimSpace(raw)
	if len(target) >= 2 && strings.HasPrefix(target, "<") && strings.HasSuffix(target, ">") {
		target = strings.TrimSpace(target[1 : len(target)-1])
	}
	return target
}

// HasScheme reports whether target starts with a URI scheme: an ASCII letter followed
// by letters, digits, '+', '-' or '.', then ':'. Tabs and line breaks are ignored the
// way URL parsers do, so a target split across lines is still recognized.
func HasScheme(target string) bool {
	target = strings.NewReplacer("\t", "", "\r", "", "\n", "").Replace(target)
	colon := strings.IndexByte(target, ':')
	if colon <= 0 || !isASCIILetter(target[0]) {
		return false
	}
	for i := 1; i < colon; i++ {
		c := target[i]
		if !isASCIILetter(c) && !('0' <= c && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
