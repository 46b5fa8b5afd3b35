package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_LowercasesAndStripsPunctuation(t *testing.T) {
	tokens := Normalize("The CAT sat, on the MAT!")
	assert.Equal(t, []string{"cat", "sat", "mat"}, tokens)
}

func TestNormalize_DropsStopwordsAndShortTokens(t *testing.T) {
	tokens := Normalize("a b of it x7 go")
	assert.Equal(t, []string{"x7", "go"}, tokens)
}

func TestNormalize_KeepsInternalHyphenAndApostrophe(t *testing.T) {
	tokens := Normalize("well-known -edge- rock'n'roll don't")
	assert.Equal(t, []string{"well-known", "edge", "rock'n'roll", "don't"}, tokens)
}

func TestNormalize_StemsPluralsAndPossessives(t *testing.T) {
	tokens := Normalize("cats dogs the cat's class")
	assert.Equal(t, []string{"cat", "dog", "cat", "class"}, tokens)
}

func TestNormalize_Empty(t *testing.T) {
	assert.Empty(t, Normalize(""))
	assert.Empty(t, Normalize("!!! ... ???"))
	assert.Empty(t, Normalize("the and of"))
}
