package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Senior Go/Backend Engineer!  ", "senior go backend engineer"},
		{"C++, SQL & REST-API", "c sql rest api"},
		{"Köln — Straße", "köln straße"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.in), "input %q", tt.in)
	}
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "Staff Engineer, Infra", CollapseSpace("  Staff \t Engineer,\n Infra "))
	assert.Equal(t, "", CollapseSpace(" \n\t "))
}

func TestTokens(t *testing.T) {
	assert.Nil(t, Tokens(""))
	assert.Equal(t, []string{"go", "postgres"}, Tokens("go postgres"))
}
