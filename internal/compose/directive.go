package compose

import (
	"bytes"
	"fmt"
	"strings"
)

// directiveToken is the literal prefix of an include directive.
const directiveToken = "@include("

// Directive is a single @include(<relative-path>) occurrence inside a
// fragment, recorded with the byte span it must be replaced at.
type Directive struct {
	// Target is the raw relative path argument, forward slashes.
	Target string

	// Start and End delimit the directive token in the source text,
	// Start pointing at '@' and End just past the closing ')'.
	Start int
	End   int

	// Line is the 1-based source line the directive appears on.
	Line int
}

// scanDirectives finds every include directive in src, in source order.
//
// Directives inside fenced code blocks (``` or ~~~ fences) are skipped
// unless honorFences is true, so guides can show the directive syntax
// literally. Inline code spans are not tracked; a directive on a line
// inside single backticks is still honored.
//
// Returns ErrMalformedDirective (wrapped with the line number) when a
// directive token has no closing parenthesis on the same line, or when
// its argument is empty, absolute, or otherwise not usable as a
// relative path.
func scanDirectives(src []byte, honorFences bool) ([]Directive, error) {
	var out []Directive

	inFence := false
	fenceMarker := byte(0)

	offset := 0
	line := 0

	for offset <= len(src) {
		end := bytes.IndexByte(src[offset:], '\n')
		if end == -1 {
			end = len(src)
		} else {
			end += offset
		}

		line++
		text := src[offset:end]

		if marker, ok := fenceLine(text); ok {
			switch {
			case !inFence:
				inFence = true
				fenceMarker = marker
			case marker == fenceMarker:
				inFence = false
			}
		} else if !inFence || honorFences {
			found, err := scanLine(text, offset, line)
			if err != nil {
				return nil, err
			}

			out = append(out, found...)
		}

		offset = end + 1
	}

	return out, nil
}

// scanLine extracts directives from a single line starting at base offset.
func scanLine(text []byte, base int, line int) ([]Directive, error) {
	var out []Directive

	idx := 0
	for idx < len(text) {
		rel := bytes.Index(text[idx:], []byte(directiveToken))
		if rel == -1 {
			break
		}

		start := idx + rel
		argStart := start + len(directiveToken)

		closing := bytes.IndexByte(text[argStart:], ')')
		if closing == -1 {
			return nil, fmt.Errorf("%w: missing ')' (line %d)", ErrMalformedDirective, line)
		}

		target := string(text[argStart : argStart+closing])

		err := validateTarget(target, line)
		if err != nil {
			return nil, err
		}

		out = append(out, Directive{
			Target: target,
			Start:  base + start,
			End:    base + argStart + closing + 1,
			Line:   line,
		})

		idx = argStart + closing + 1
	}

	return out, nil
}

// validateTarget rejects arguments that cannot be a relative file path.
func validateTarget(target string, line int) error {
	trimmed := strings.TrimSpace(target)

	switch {
	case trimmed == "":
		return fmt.Errorf("%w: empty path (line %d)", ErrMalformedDirective, line)
	case trimmed != target:
		return fmt.Errorf("%w: path has surrounding whitespace %q (line %d)", ErrMalformedDirective, target, line)
	case strings.HasPrefix(target, "/"):
		return fmt.Errorf("%w: absolute path %q (line %d)", ErrMalformedDirective, target, line)
	case strings.ContainsAny(target, "\\\x00\n\r\t("):
		return fmt.Errorf("%w: disallowed character in path %q (line %d)", ErrMalformedDirective, target, line)
	}

	return nil
}

// fenceLine reports whether a line opens or closes a fenced code block,
// returning the fence marker character.
func fenceLine(text []byte) (byte, bool) {
	trimmed := bytes.TrimLeft(text, " ")
	if len(trimmed) < 3 {
		return 0, false
	}

	marker := trimmed[0]
	if marker != '`' && marker != '~' {
		return 0, false
	}

	if trimmed[1] != marker || trimmed[2] != marker {
		return 0, false
	}

	return marker, true
}
