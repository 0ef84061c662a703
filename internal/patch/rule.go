// Package patch applies declarative text edits to configuration files.
package patch

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
)

// Mode selects how a rule changes its target file.
type Mode string

const (
	// ModeSubstitute rewrites the file with pattern matches replaced.
	ModeSubstitute Mode = "substitute"
	// ModeAppend appends the replacement text on every run.
	ModeAppend Mode = "append"
)

// Occurrence limits how many matches a substitute rule replaces.
type Occurrence string

const (
	OccurrenceAll   Occurrence = "all"
	OccurrenceFirst Occurrence = "first"
)

// Rule describes one edit. For append rules Replacement is the payload and
// Pattern is unused. Replacement is inserted literally; "$1" is not expanded.
type Rule struct {
	Name        string     `yaml:"name"`
	Path        string     `yaml:"path"`
	Mode        Mode       `yaml:"mode"`
	Pattern     string     `yaml:"pattern,omitempty"`
	Replacement string     `yaml:"replacement"`
	Occurrence  Occurrence `yaml:"occurrence,omitempty"`
}

// Validate performs rule-level validation
func (r *Rule) Validate() error {
	if r.Path == "" {
		return errors.New("path field is required and cannot be empty")
	}

	switch r.Mode {
	case ModeAppend:
		if r.Replacement == "" {
			return errors.New("append rule must provide replacement text")
		}
		return nil
	case ModeSubstitute:
	default:
		return fmt.Errorf("invalid mode '%s': must be one of: substitute, append", r.Mode)
	}

	if r.Pattern == "" {
		return errors.New("substitute rule must provide a pattern")
	}
	if _, err := regexp.Compile(r.Pattern); err != nil {
		return fmt.Errorf("invalid regex pattern '%s': %w", r.Pattern, err)
	}

	switch r.Occurrence {
	case "", OccurrenceAll, OccurrenceFirst:
	default:
		return fmt.Errorf("invalid occurrence '%s': must be one of: all, first", r.Occurrence)
	}

	return nil
}

// Render returns the content the target should hold after the rule runs.
// It never touches the filesystem.
func (r *Rule) Render(content []byte) ([]byte, error) {
	switch r.Mode {
	case ModeAppend:
		out := make([]byte, 0, len(content)+len(r.Replacement)+2)
		out = append(out, content...)
		out = append(out, r.appendChunk(content)...)
		return out, nil
	case ModeSubstitute:
		return r.substitute(content)
	default:
		return nil, fmt.Errorf("invalid mode '%s'", r.Mode)
	}
}

func (r *Rule) substitute(content []byte) ([]byte, error) {
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern '%s': %w", r.Pattern, err)
	}

	replacement := []byte(r.Replacement)
	if r.Occurrence != OccurrenceFirst {
		return re.ReplaceAllLiteral(content, replacement), nil
	}

	loc := re.FindIndex(content)
	if loc == nil {
		return content, nil
	}

	var out bytes.Buffer
	out.Grow(len(content) - (loc[1] - loc[0]) + len(replacement))
	out.Write(content[:loc[0]])
	out.Write(replacement)
	out.Write(content[loc[1]:])
	return out.Bytes(), nil
}

// appendChunk is the text an append rule adds after existing content: the
// payload on its own line, terminated by a newline.
func (r *Rule) appendChunk(existing []byte) []byte {
	var chunk bytes.Buffer
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		chunk.WriteByte('\n')
	}
	chunk.WriteString(r.Replacement)
	if len(r.Replacement) > 0 && r.Replacement[len(r.Replacement)-1] != '\n' {
		chunk.WriteByte('\n')
	}
	return chunk.Bytes()
}
