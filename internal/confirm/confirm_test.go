package confirm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_Answers(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Delete\n", true},
		{"delete\n", true},
		{"d\n", true},
		{"y\n", true},
		{"yes", true},
		{"\n", false},
		{"", false},
		{"n\n", false},
		{"cancel\n", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.in), func(t *testing.T) {
			var out bytes.Buffer
			got, err := DeleteItem(Prompt{In: strings.NewReader(tt.in), Out: &out})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete Item")
			assert.Contains(t, out.String(), "[Cancel/Delete]")
		})
	}
}

func TestAlways(t *testing.T) {
	ok, err := DeleteItem(Always{})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = Always{}.Confirm("t", "m", nil)
	assert.Error(t, err)
}

func TestPrompt_NoActions(t *testing.T) {
	_, err := Prompt{In: strings.NewReader(""), Out: &bytes.Buffer{}}.Confirm("t", "m", nil)
	assert.Error(t, err)
}
