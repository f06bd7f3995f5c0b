package ini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveAllComments(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    []string
		changed int
	}{
		{
			name:    "full and trailing comments",
			lines:   []string{"; full\n", "a=1; trail\n"},
			want:    []string{"a=1\n"},
			changed: 2,
		},
		{
			name:    "consecutive comment lines",
			lines:   []string{"[A]\n", ";one\n", ";two\n", "; three\n", "0=x\n"},
			want:    []string{"[A]\n", "0=x\n"},
			changed: 3,
		},
		{
			name:    "whitespace before trailing comment is trimmed",
			lines:   []string{"Name=Weather Control\t ;note\n"},
			want:    []string{"Name=Weather Control\n"},
			changed: 1,
		},
		{
			name:    "unterminated last line gains a newline",
			lines:   []string{"0=x ;c"},
			want:    []string{"0=x\n"},
			changed: 1,
		},
		{
			name:    "crlf kept",
			lines:   []string{"0=x ; c\r\n", "; gone\r\n"},
			want:    []string{"0=x\r\n"},
			changed: 2,
		},
		{
			name:    "indented comment becomes blank",
			lines:   []string{"  ; indented\n"},
			want:    []string{"\n"},
			changed: 1,
		},
		{
			name:    "no comments",
			lines:   []string{"[A]\n", "\n", "0=x\n"},
			want:    []string{"[A]\n", "\n", "0=x\n"},
			changed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newEditor(tt.lines...)
			assert.Equal(t, tt.changed, ed.RemoveAllComments())
			assert.Equal(t, tt.want, ed.Document().Lines())
		})
	}
}

func TestRemoveAllCommentsUndoesCommentSegment(t *testing.T) {
	ed := scenario()
	r, err := ed.FindSectionRange("A")
	assert.NoError(t, err)
	assert.NoError(t, ed.CommentSegment(r))
	ed.RemoveAllComments()
	assert.Equal(t, []string{"[B]\n", "0=z\n"}, ed.Document().Lines())
}
