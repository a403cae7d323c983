package hotels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSimilarity_ExactMatchIgnoresCaseAndSpace(t *testing.T) {
	assert.Equal(t, 1.0, NameSimilarity("  Grand Hotel Central ", "grand hotel central"))
}

func TestNameSimilarity_SubstringScoresHigh(t *testing.T) {
	assert.Equal(t, 0.8, NameSimilarity("Marriott", "Marriott Downtown"))
	assert.Equal(t, 0.8, NameSimilarity("Hilton Garden Inn Airport", "Hilton Garden Inn"))
}

func TestNameSimilarity_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, NameSimilarity("", "Ritz"))
	assert.Equal(t, 0.0, NameSimilarity("Ritz", ""))
	assert.Equal(t, 0.0, NameSimilarity("", ""))
}

func TestNameSimilarity_GenericWordsCarryNoWeight(t *testing.T) {
	// Only generic lodging words in common, so the token overlap is empty.
	assert.Equal(t, 0.0, NameSimilarity("Sunrise Hotel", "Moonlight Hotel"))
}

func TestNameSimilarity_SharedTokensGetBonus(t *testing.T) {
	// Two meaningful tokens in common earns the overlap bonus.
	score := NameSimilarity("Royal Garden Hotel", "Royal Garden Resort")
	assert.Greater(t, score, 0.8)
	assert.LessOrEqual(t, score, 1.0)
}

func TestNameSimilarity_NeverExceedsOne(t *testing.T) {
	score := NameSimilarity("Alpha Beta Gamma Delta", "Alpha Beta Gamma Delta Hotel")
	assert.LessOrEqual(t, score, 1.0)
}

func TestNameSimilarity_PartialOverlap(t *testing.T) {
	score := NameSimilarity("Blue Lagoon Resort", "Blue Horizon Inn")
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 0.8)
}
