package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "placeholder", want: LevelPlaceholder},
		{in: "@comment", want: LevelComment},
		{in: "DELETE", want: LevelDelete},
		{in: "0", want: LevelPlaceholder},
		{in: "@2", want: LevelDelete},
		{in: "7", want: Level(7)},
		{in: "-1", wantErr: true},
		{in: "purge", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "placeholder", LevelPlaceholder.String())
	assert.Equal(t, "comment", LevelComment.String())
	assert.Equal(t, "delete", LevelDelete.String())
	assert.Equal(t, "delete", Level(5).String())
}

func TestRange(t *testing.T) {
	r := Range{Start: 2, End: 5}
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))
	assert.Equal(t, "[2,5)", r.String())
}
