// Package frontmatter parses a restricted YAML subset used for markdown
// fragment metadata blocks.
//
// The supported grammar is intentionally minimal to keep parsing
// deterministic and avoid the complexity of full YAML:
//
//	---
//	title: Design System
//	description: Token and component conventions
//	files:
//	  - docs.md
//	  - examples.md
//	tags: [conventions, tokens]
//	---
//
// Scalar values are strings (optionally quoted with single or double
// quotes). Lists contain only strings, either inline or as indented
// block items. Features explicitly not supported: nested maps,
// multi-line strings, anchors, aliases, floats, and nested lists.
package frontmatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Delimiter is the fence line that opens and closes a metadata block.
const Delimiter = "---"

const maxLines = 100 // Metadata blocks are small; more lines means a broken file.

// Block maps metadata keys to values in source order of appearance.
type Block map[string]Value

// ValueKind describes the supported metadata shapes.
type ValueKind uint8

// ValueKind values enumerate the supported shapes.
const (
	ValueString ValueKind = iota
	ValueList
)

// Value is a validated metadata value: a string scalar or a string list.
type Value struct {
	Kind   ValueKind
	String string   // set when Kind == ValueString
	List   []string // set when Kind == ValueList
}

// GetString returns the string value for key.
// Returns ("", false) if key is missing or not a string.
func (b Block) GetString(key string) (string, bool) {
	v, ok := b[key]
	if !ok || v.Kind != ValueString {
		return "", false
	}

	return v.String, true
}

// GetList returns the string slice for key.
// Returns (nil, false) if key is missing or not a list.
func (b Block) GetList(key string) ([]string, bool) {
	v, ok := b[key]
	if !ok || v.Kind != ValueList {
		return nil, false
	}

	return v.List, true
}

// Parse extracts a metadata block from the head of src, returning the
// block and the remaining body bytes (tail). Input without an opening
// delimiter on its first line is treated as having no metadata: Parse
// returns (nil, src, nil) untouched.
//
// An empty block ("---\n---\n") is valid and returns an empty map. The
// tail starts immediately after the closing delimiter line with leading
// blank lines trimmed, matching how authors visually separate metadata
// from the body.
func Parse(src []byte) (Block, []byte, error) {
	first, rest, ok := cutLine(src)
	if !ok || string(first) != Delimiter {
		return nil, src, nil
	}

	block := make(Block)
	lines := 0

	var pendingKey string

	for {
		line, next, ok := cutLine(rest)
		if !ok {
			return nil, nil, fmt.Errorf("frontmatter: missing closing %q", Delimiter)
		}

		rest = next

		if string(line) == Delimiter {
			if pendingKey != "" {
				if _, started := block[pendingKey]; !started {
					return nil, nil, fmt.Errorf("frontmatter: key %q has no value", pendingKey)
				}
			}

			return block, trimLeadingBlank(rest), nil
		}

		lines++
		if lines > maxLines {
			return nil, nil, fmt.Errorf("frontmatter: exceeds %d lines", maxLines)
		}

		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			item, err := parseListItem(line, lines)
			if err != nil {
				return nil, nil, err
			}

			if pendingKey == "" {
				return nil, nil, fmt.Errorf("frontmatter line %d: list item without key", lines)
			}

			v := block[pendingKey]
			v.Kind = ValueList
			v.List = append(v.List, item)
			block[pendingKey] = v

			continue
		}

		if pendingKey != "" {
			if _, started := block[pendingKey]; !started {
				return nil, nil, fmt.Errorf("frontmatter: key %q has no value", pendingKey)
			}

			pendingKey = ""
		}

		key, value, err := parseEntry(line, lines)
		if err != nil {
			return nil, nil, err
		}

		if _, exists := block[key]; exists {
			return nil, nil, fmt.Errorf("frontmatter line %d: duplicate key %q", lines, key)
		}

		if value == nil {
			// Block list follows on indented lines.
			pendingKey = key

			continue
		}

		block[key] = *value
	}
}

// Strip returns src without its leading metadata block, if any.
// Malformed metadata is returned as-is so callers that only want the
// body never fail on metadata problems.
func Strip(src []byte) []byte {
	_, tail, err := Parse(src)
	if err != nil {
		return src
	}

	return tail
}

// parseEntry parses a "key: value" line. A nil Value with no error
// means the value is a block list continued on following lines.
func parseEntry(line []byte, num int) (string, *Value, error) {
	keyRaw, restRaw, ok := bytes.Cut(line, []byte{':'})
	if !ok {
		return "", nil, fmt.Errorf("frontmatter line %d: missing ':'", num)
	}

	key := string(bytes.TrimSpace(keyRaw))
	if key == "" {
		return "", nil, fmt.Errorf("frontmatter line %d: empty key", num)
	}

	if strings.ContainsAny(key, " \t") {
		return "", nil, fmt.Errorf("frontmatter line %d: whitespace in key %q", num, key)
	}

	value := bytes.TrimSpace(restRaw)
	if len(value) == 0 {
		return key, nil, nil
	}

	if value[0] == '[' {
		if value[len(value)-1] != ']' {
			return "", nil, fmt.Errorf("frontmatter line %d: unterminated list", num)
		}

		list, err := parseInlineList(value, num)
		if err != nil {
			return "", nil, err
		}

		return key, &Value{Kind: ValueList, List: list}, nil
	}

	str, err := parseString(value, num)
	if err != nil {
		return "", nil, err
	}

	return key, &Value{Kind: ValueString, String: str}, nil
}

func parseInlineList(value []byte, num int) ([]string, error) {
	inner := bytes.TrimSpace(value[1 : len(value)-1])
	if len(inner) == 0 {
		return []string{}, nil
	}

	parts := bytes.Split(inner, []byte{','})

	items := make([]string, 0, len(parts))

	for _, part := range parts {
		item := bytes.TrimSpace(part)
		if len(item) == 0 {
			return nil, fmt.Errorf("frontmatter line %d: empty list item", num)
		}

		parsed, err := parseString(item, num)
		if err != nil {
			return nil, err
		}

		items = append(items, parsed)
	}

	return items, nil
}

func parseListItem(line []byte, num int) (string, error) {
	trimmed := bytes.TrimLeft(line, " ")
	if bytes.ContainsRune(line[:len(line)-len(trimmed)], '\t') {
		return "", fmt.Errorf("frontmatter line %d: tabs are not allowed", num)
	}

	if len(trimmed) < 2 || trimmed[0] != '-' || trimmed[1] != ' ' {
		return "", fmt.Errorf("frontmatter line %d: expected list item", num)
	}

	item := bytes.TrimSpace(trimmed[2:])
	if len(item) == 0 {
		return "", fmt.Errorf("frontmatter line %d: empty list item", num)
	}

	return parseString(item, num)
}

func parseString(value []byte, num int) (string, error) {
	if len(value) > 0 && value[0] == '"' {
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", fmt.Errorf("frontmatter line %d: unterminated quoted string", num)
		}

		parsed, err := strconv.Unquote(string(value))
		if err != nil {
			return "", fmt.Errorf("frontmatter line %d: invalid quoted string", num)
		}

		return parsed, nil
	}

	if len(value) > 0 && value[0] == '\'' {
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", fmt.Errorf("frontmatter line %d: unterminated quoted string", num)
		}

		return string(value[1 : len(value)-1]), nil
	}

	return string(value), nil
}

// cutLine splits off the first line of src without its newline.
// Returns ok=false when src is empty.
func cutLine(src []byte) (line []byte, rest []byte, ok bool) {
	if len(src) == 0 {
		return nil, nil, false
	}

	idx := bytes.IndexByte(src, '\n')
	if idx == -1 {
		return trimCR(src), nil, true
	}

	return trimCR(src[:idx]), src[idx+1:], true
}

func trimCR(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}

	return line
}

func trimLeadingBlank(tail []byte) []byte {
	for len(tail) > 0 {
		if tail[0] == '\n' {
			tail = tail[1:]

			continue
		}

		if len(tail) >= 2 && tail[0] == '\r' && tail[1] == '\n' {
			tail = tail[2:]

			continue
		}

		break
	}

	return tail
}
