package cmd

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned for a line with an unbalanced double quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// IsCommand reports whether line is a slash command.
func IsCommand(line string) bool {
	return strings.HasPrefix(line, "/") && len(strings.TrimSpace(line)) > 1
}

// ParseLine splits a command line into its name and arguments. Arguments are
// separated by whitespace; double quotes group words into one argument and
// are removed.
func ParseLine(line string) (string, []string, error) {
	fields, err := splitArgs(strings.TrimSpace(line))
	if err != nil {
		return "", nil, err
	}
	if len(fields) == 0 {
		return "", nil, nil
	}
	return fields[0], fields[1:], nil
}

func splitArgs(s string) ([]string, error) {
	var (
		fields  []string
		current strings.Builder
		inQuote bool
		inField bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			inField = true
		case unicode.IsSpace(r) && !inQuote:
			if inField {
				fields = append(fields, current.String())
				current.Reset()
				inField = false
			}
		default:
			current.WriteRune(r)
			inField = true
		}
	}
	if inQuote {
		return nil, ErrUnterminatedQuote
	}
	if inField {
		fields = append(fields, current.String())
	}
	return fields, nil
}
