package recurring

import (
	"testing"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewAIClassifierUsesConfiguredModel(t *testing.T) {
	c := NewAIClassifier("test-key", "gemini-1.5-pro", logging.NewMockLogger())
	assert.Equal(t, "gemini-1.5-pro", c.modelName)
}

func TestNewAIClassifierDefaultsModel(t *testing.T) {
	c := NewAIClassifier("test-key", "", logging.NewMockLogger())
	assert.Equal(t, DefaultModel, c.modelName)
}

func TestAIClassifierKeywordShortCircuit(t *testing.T) {
	// A merchant the keyword tables recognize never reaches the API, so
	// no key is needed.
	c := NewAIClassifier("", "", logging.NewMockLogger())
	assert.Equal(t, models.RecurringSubscription, c.Classify("NETFLIX"))
}

func TestAIClassifierDegradesWithoutKey(t *testing.T) {
	c := NewAIClassifier("", "", logging.NewMockLogger())
	assert.Equal(t, models.RecurringOther, c.Classify("Unknown Merchant Ltd"))
}
