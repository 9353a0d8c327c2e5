package blogkit

import (
	"regexp"
	"strings"
)

// ParsedFile is a raw markdown file split into its frontmatter record and
// body. Frontmatter values are string, []string, or map[string]string (the
// nested image object); the validator classifies them against the schema.
type ParsedFile struct {
	Frontmatter map[string]any
	Content     string
}

// parseState tags the line classifier's current position inside the
// frontmatter block.
type parseState int

const (
	stateExpectKey parseState = iota
	stateMultilineScalar
	stateArray
	stateNestedObject
)

var reKeyLine = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*):\s?(.*)$`)

// ParseFrontmatter splits raw file text into a frontmatter record and a
// markdown body. The block is delimited by a `---` line at file start and a
// second `---` line; if no opening delimiter is present the whole file is
// body. The parser is deliberately permissive: hand-edited or slightly
// malformed frontmatter degrades to best-effort values instead of failing.
func ParseFrontmatter(raw string) ParsedFile {
	lines := strings.Split(raw, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return ParsedFile{Frontmatter: map[string]any{}, Content: strings.TrimSpace(raw)}
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			closing = i
			break
		}
	}
	block := lines[1:]
	body := ""
	if closing >= 0 {
		block = lines[1:closing]
		body = strings.TrimSpace(strings.Join(lines[closing+1:], "\n"))
	}

	fm := map[string]any{}
	state := stateExpectKey

	var key string       // field being accumulated
	var scalar []string  // multi-line scalar lines
	var items []string   // array items
	var nested map[string]string

	flush := func() {
		switch state {
		case stateArray:
			fm[key] = items
		case stateMultilineScalar:
			fm[key] = strings.Join(scalar, "\n")
		case stateNestedObject:
			fm[key] = nested
		}
		scalar = nil
		items = nil
		nested = nil
		state = stateExpectKey
	}

	for i := 0; i < len(block); i++ {
		line := block[i]
		trimmed := strings.TrimSpace(line)

		switch state {
		case stateExpectKey:
			m := reKeyLine.FindStringSubmatch(line)
			if m == nil {
				continue // stray line outside any field, skip it
			}
			key = m[1]
			value := strings.TrimSpace(m[2])
			switch {
			case key == "image" && value == "":
				nested = map[string]string{}
				state = stateNestedObject
			case value == "" || value == `"` || value == "'" || strings.HasPrefix(value, "-"):
				// Open a multi-line field; array vs scalar is decided by
				// the first continuation line.
				state = stateMultilineScalar
				if strings.HasPrefix(value, "-") {
					items = append(items, unquote(strings.TrimSpace(strings.TrimPrefix(value, "-"))))
					state = stateArray
				}
			default:
				fm[key] = unquote(value)
			}

		case stateMultilineScalar, stateArray:
			if reKeyLine.MatchString(line) && !strings.HasPrefix(line, " ") {
				flush()
				i--
				continue
			}
			if strings.HasPrefix(trimmed, "-") {
				items = append(items, unquote(strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))))
				state = stateArray
				continue
			}
			if trimmed == "" {
				continue
			}
			scalar = append(scalar, unquote(trimmed))

		case stateNestedObject:
			if strings.HasPrefix(line, "  ") {
				if m := reKeyLine.FindStringSubmatch(trimmed); m != nil {
					nested[m[1]] = unquote(strings.TrimSpace(m[2]))
					continue
				}
			}
			flush()
			i--
		}
	}
	if state != stateExpectKey {
		flush()
	}

	return ParsedFile{Frontmatter: fm, Content: body}
}

// unquote strips one pair of surrounding single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
