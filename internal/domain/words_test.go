package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGuess(t *testing.T) {
	assert.Equal(t, "cat", NormalizeGuess("  CAT "))
	assert.Equal(t, "flower", NormalizeGuess("Flower"))
	assert.Equal(t, "cafe", NormalizeGuess("Café"))
	assert.Equal(t, "arbol", NormalizeGuess("  Árbol"))
	assert.Equal(t, "", NormalizeGuess("   "))
}

func TestWordList_Pick(t *testing.T) {
	wl := NewWordList([]string{"moon"})
	for i := 0; i < 5; i++ {
		assert.Equal(t, "moon", wl.Pick())
	}
}

func TestWordList_DefaultsWhenEmpty(t *testing.T) {
	wl := NewWordList(nil)
	assert.Contains(t, DefaultWords, wl.Pick())
}
