package mtl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"p", "p"},
		{"true", "⊤"},
		{"false", "⊥"},
		{"!p", "!(p)"},
		{"p && q || r", "((p && q) || r)"},
		{"p || q && r", "(p || (q && r))"},
		{"p U q", "(p U q)"},
		{"p U[0, 2] q", "(p U[0, 2] q)"},
		{"p U[0,2] q", "(p U[0, 2] q)"},
		{"p ~U(1, inf) q", "(p ~U(1, ∞) q)"},
		{"p ~U(1, ∞) q", "(p ~U(1, ∞) q)"},
		{"a U b U c", "(a U (b U c))"},
		{"a U b && c", "((a U b) && c)"},
		{"!a U b", "(!(a) U b)"},
		{"F[1, 2] p", "(⊤ U[1, 2] p)"},
		{"G p", "(⊥ ~U p)"},
		{"G[0, 2) (p || q)", "(⊥ ~U[0, 2) (p || q))"},
		{"F (p || q)", "(⊤ U (p || q))"},
		{"(p)", "p"},
		{"Fast && Go", "(Fast && Go)"},
	}
	for _, test := range tests {
		f, err := Parse(test.input)
		require.NoError(t, err, "input %q", test.input)
		assert.Equal(t, test.want, f.String(), "input %q", test.input)
	}
}

func TestParse_Errors(t *testing.T) {
	inputs := []string{
		"",
		"p &&",
		"(p",
		"p U",
		"p ~ q",
		"p U[0 2] q",
		"p U[x, 2] q",
		"p U[1, ] q",
		"p q",
		"U",
	}
	for _, input := range inputs {
		_, err := Parse(input)
		require.Error(t, err, "input %q", input)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "input %q", input)
	}
}

func TestParseError_Position(t *testing.T) {
	_, err := Parse("p && ")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 5, parseErr.Position)
	assert.Contains(t, parseErr.Error(), "position 5")
}
