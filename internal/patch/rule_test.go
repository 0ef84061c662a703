package patch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		errMsg  string
		input   Rule
		wantErr bool
	}{
		{
			name:  "valid substitute",
			input: Rule{Path: "/etc/x", Mode: ModeSubstitute, Pattern: "md5", Replacement: "sha512"},
		},
		{
			name:  "valid append",
			input: Rule{Path: "/etc/x", Mode: ModeAppend, Replacement: "line"},
		},
		{
			name:    "missing path",
			input:   Rule{Mode: ModeAppend, Replacement: "line"},
			wantErr: true,
			errMsg:  "path field is required",
		},
		{
			name:    "unknown mode",
			input:   Rule{Path: "/etc/x", Mode: "replace"},
			wantErr: true,
			errMsg:  "invalid mode 'replace'",
		},
		{
			name:    "append without payload",
			input:   Rule{Path: "/etc/x", Mode: ModeAppend},
			wantErr: true,
			errMsg:  "append rule must provide replacement text",
		},
		{
			name:    "substitute without pattern",
			input:   Rule{Path: "/etc/x", Mode: ModeSubstitute},
			wantErr: true,
			errMsg:  "substitute rule must provide a pattern",
		},
		{
			name:    "bad regex",
			input:   Rule{Path: "/etc/x", Mode: ModeSubstitute, Pattern: "(["},
			wantErr: true,
			errMsg:  "invalid regex pattern",
		},
		{
			name:    "bad occurrence",
			input:   Rule{Path: "/etc/x", Mode: ModeSubstitute, Pattern: "a", Occurrence: "last"},
			wantErr: true,
			errMsg:  "invalid occurrence 'last'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRenderSubstituteAllReplacesEveryOccurrence(t *testing.T) {
	t.Parallel()

	rule := Rule{Path: "/p", Mode: ModeSubstitute, Pattern: "md5", Replacement: "sha512"}
	input := "password required pam_unix.so md5 shadow\n# md5 is weak; see md5sum(1)\n"

	got, err := rule.Render([]byte(input))
	require.NoError(t, err)

	want := "password required pam_unix.so sha512 shadow\n# sha512 is weak; see sha512sum(1)\n"
	assert.Equal(t, want, string(got))
	assert.Equal(t, 0, strings.Count(string(got), "md5"))
}

func TestRenderSubstituteIsCaseSensitive(t *testing.T) {
	t.Parallel()

	rule := Rule{Path: "/p", Mode: ModeSubstitute, Pattern: "md5", Replacement: "sha512"}

	got, err := rule.Render([]byte("MD5 Md5 md5"))
	require.NoError(t, err)
	assert.Equal(t, "MD5 Md5 sha512", string(got))
}

func TestRenderSubstituteFirstOnlyReplacesFirstMatch(t *testing.T) {
	t.Parallel()

	rule := Rule{
		Path:        "/p",
		Mode:        ModeSubstitute,
		Pattern:     `PS1='.*'`,
		Replacement: "NEW",
		Occurrence:  OccurrenceFirst,
	}
	input := "a\nPS1='one'\nb\nPS1='two'\n"

	got, err := rule.Render([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "a\nNEW\nb\nPS1='two'\n", string(got))
}

func TestRenderSubstituteMatchStaysOnOneLine(t *testing.T) {
	t.Parallel()

	rule := Rule{Path: "/p", Mode: ModeSubstitute, Pattern: `PS1='.*'`, Replacement: "X", Occurrence: OccurrenceFirst}

	got, err := rule.Render([]byte("PS1='[\\u@\\h \\W]\\$ '\nalias x='y'\n"))
	require.NoError(t, err)
	assert.Equal(t, "X\nalias x='y'\n", string(got))
}

func TestRenderSubstituteReplacementIsLiteral(t *testing.T) {
	t.Parallel()

	rule := Rule{Path: "/p", Mode: ModeSubstitute, Pattern: "(a)", Replacement: `$1 \033`}

	got, err := rule.Render([]byte("xay"))
	require.NoError(t, err)
	assert.Equal(t, `x$1 \033y`, string(got))
}

func TestRenderSubstituteNoMatchReturnsIdenticalContent(t *testing.T) {
	t.Parallel()

	rule := Rule{Path: "/p", Mode: ModeSubstitute, Pattern: "#   VisualHostKey no", Replacement: "VisualHostKey yes", Occurrence: OccurrenceFirst}
	input := []byte("Host *\n#   ForwardAgent no\n")

	got, err := rule.Render(input)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestRenderAppend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		payload string
		want    string
	}{
		{name: "empty file", input: "", payload: "ENCRYPT_METHOD sha512", want: "ENCRYPT_METHOD sha512\n"},
		{name: "trailing newline", input: "A 1\n", payload: "B 2", want: "A 1\nB 2\n"},
		{name: "missing trailing newline", input: "A 1", payload: "B 2", want: "A 1\nB 2\n"},
		{name: "payload with newline", input: "A 1\n", payload: "B 2\n", want: "A 1\nB 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule := Rule{Path: "/p", Mode: ModeAppend, Replacement: tt.payload}
			got, err := rule.Render([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
