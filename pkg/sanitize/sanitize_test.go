package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text is kept", "Backend Dev", "Backend Dev"},
		{"tags are stripped", "<b>Backend</b> <script>alert(1)</script>Dev", "Backend Dev"},
		{"entities are unescaped", "R&amp;D", "R&D"},
		{"surrounding space is trimmed", "  Design \n", "Design"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Text(tc.in))
		})
	}
}

func TestLines(t *testing.T) {
	got := Lines([]string{"Go experience", "  ", "<i></i>", "SQL"})
	assert.Equal(t, []string{"Go experience", "SQL"}, got)
}
