package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpice(t *testing.T) {
	assert.Equal(t, "🟢", SpiceEmoji(0))
	assert.Equal(t, "🟢", SpiceEmoji(-2))
	assert.Equal(t, "🔥", SpiceEmoji(4))
	assert.Equal(t, "🔥", SpiceEmoji(9))

	assert.Equal(t, "🟢", SpiceMeter(0))
	assert.Equal(t, "🟡", SpiceMeter(1))
	assert.Equal(t, "🔴🔴🔴", SpiceMeter(3))
}

func TestDifficultyEmoji(t *testing.T) {
	for score, want := range map[int]string{0: "😊", 1: "😊", 2: "😊", 3: "🤔", 4: "🤔", 5: "😰", 8: "😰"} {
		assert.Equal(t, want, DifficultyEmoji(score), "score %d", score)
	}
}

func TestAllergenEmoji(t *testing.T) {
	assert.Equal(t, "🥜", AllergenEmoji(" Peanuts "))
	assert.Equal(t, "🌰", AllergenEmoji("tree_nuts"))
	assert.Equal(t, "🐟", AllergenEmoji("fish"))
	assert.Equal(t, "⚠️", AllergenEmoji("mystery"))
}

func TestDietary(t *testing.T) {
	assert.Equal(t, "☪️", DietaryEmoji("halal"))
	assert.Equal(t, "🌾❌", DietaryEmoji("gluten_free"))
	assert.Equal(t, "🏷️", DietaryEmoji("keto"))
	assert.Equal(t, "gluten free", DietaryLabel("gluten_free"))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "₩12,000", Won(12000))
	assert.Equal(t, "₩0", Won(0))
	assert.Equal(t, "450", Number(450))
	assert.Equal(t, "1,234", Number(1234))
	assert.Equal(t, "22.5", Number(22.5))
	assert.Equal(t, 93, Percent(0.93))
	assert.Equal(t, 0, Percent(0))
	assert.Equal(t, 100, Percent(1))
}
