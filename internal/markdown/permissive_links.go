package markdown

import "strings"

// extractPermissiveLinks finds inline links, images and reference definitions whose
// destination contains whitespace outside fenced blocks, indented blocks and code spans.
func extractPermissiveLinks(body []byte) []Link {
	out := make([]Link, 0)
	fence := ""
	for line := range strings.SplitSeq(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if marker := fenceMarker(trimmed); marker != "" {
			switch fence {
			case "":
				fence = marker
			case marker:
				fence = ""
			}
			continue
		}
		if fence != "" || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			continue
		}

		clean := stripInlineCodeSpans(line)
		for _, loc := range linkPattern.FindAllStringSubmatchIndex(clean, -1) {
			target := clean[loc[2]:loc[3]]
			if !isPermissiveOnly(target) {
				continue
			}
			kind := LinkKindInline
			if clean[loc[0]] == '!' {
				kind = LinkKindImage
			}
			out = append(out, Link{Kind: kind, Destination: target})
		}
		if dest, ok := referenceDefinition(trimmed); ok && isPermissiveOnly(dest) {
			out = append(out, Link{Kind: LinkKindReferenceDefinition, Destination: dest})
		}
	}
	return out
}

func fenceMarker(trimmed string) string {
	switch {
	case strings.HasPrefix(trimmed, "```"):
		return "```"
	case strings.HasPrefix(trimmed, "~~~"):
		return "~~~"
	default:
		return ""
	}
}

// isPermissiveOnly reports whether goldmark would reject target as a destination. A
// target wrapped in angle brackets is valid CommonMark and already reported, and a
// target followed by a quoted title is a destination plus title, not a spaced path.
func isPermissiveOnly(target string) bool {
	trimmed := strings.TrimSpace(target)
	if strings.HasPrefix(trimmed, "<") || strings.ContainsAny(trimmed, "\"'") {
		return false
	}
	return strings.ContainsAny(trimmed, " \t")
}

// referenceDefinition parses `[label]: destination "title"`. Footnote definitions
// (`[^1]: ...`) are not link definitions.
func referenceDefinition(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "[^") {
		return "", false
	}
	_, rest, ok := strings.Cut(trimmed, "]:")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	for _, sep := range []string{` "`, ` '`} {
		if before, _, found := strings.Cut(rest, sep); found {
			rest = before
			break
		}
	}
	rest = strings.TrimSpace(rest)
	return rest, rest != ""
}

func stripInlineCodeSpans(s string) string {
	if !strings.Contains(s, "`") {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '`' {
			out.WriteByte(s[i])
			i++
			continue
		}

		run := 1
		for i+run < len(s) && s[i+run] == '`' {
			run++
		}
		marker := s[i : i+run]
		closeRel := strings.Index(s[i+run:], marker)
		if closeRel == -1 {
			// Unclosed code span; keep the backticks.
			out.WriteString(marker)
			i += run
			continue
		}
		i += run + closeRel + run
	}
	return out.String()
}
