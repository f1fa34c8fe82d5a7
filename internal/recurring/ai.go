package recurring

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AIClassifier tries the keyword tables first and falls back to the
// Gemini API for merchants no table matches. Results are cached per
// merchant so repeated detection runs do not re-query the API. The
// client is created lazily on first fallback; when no API key is
// configured the classifier degrades to keyword-only behavior.
type AIClassifier struct {
	keyword   *KeywordClassifier
	apiKey    string
	modelName string
	logger    logging.Logger

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
	cache  map[string]string
}

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// NewAIClassifier wraps the keyword classifier with a Gemini fallback
// using the given model. An empty model falls back to DefaultModel.
func NewAIClassifier(apiKey, model string, logger logging.Logger) *AIClassifier {
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &AIClassifier{
		keyword:   NewKeywordClassifier(),
		apiKey:    apiKey,
		modelName: model,
		logger:    logger,
		cache:     make(map[string]string),
	}
}

// Classify returns the recurring type for a merchant. Any Gemini failure
// falls back to OTHER so detection never blocks on the API.
func (c *AIClassifier) Classify(merchant string) string {
	if txnType := c.keyword.Classify(merchant); txnType != models.RecurringOther {
		return txnType
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.cache[merchant]; ok {
		return cached
	}

	txnType, err := c.classifyWithGemini(merchant)
	if err != nil {
		c.logger.Debug("Gemini classification unavailable",
			logging.Field{Key: logging.FieldMerchant, Value: merchant},
			logging.Field{Key: logging.FieldError, Value: err.Error()})
		return models.RecurringOther
	}
	c.cache[merchant] = txnType
	return txnType
}

// ensureClient initializes the Gemini client on first use. Callers must
// hold c.mu.
func (c *AIClassifier) ensureClient() error {
	if c.client != nil {
		return nil
	}
	if c.apiKey == "" {
		return fmt.Errorf("no Gemini API key configured")
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(c.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.client = client
	c.model = client.GenerativeModel(c.modelName)
	return nil
}

func (c *AIClassifier) classifyWithGemini(merchant string) (string, error) {
	if err := c.ensureClient(); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Classify the following recurring payment recipient:
Merchant: %s

Assign exactly one of these types:
SUBSCRIPTION, EMI, SALARY, RENT, UTILITY, OTHER

Respond with the type name only.`, merchant)

	resp, err := c.model.GenerateContent(context.Background(), genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	answer := strings.ToUpper(strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])))
	switch answer {
	case models.RecurringSubscription, models.RecurringEMI, models.RecurringSalary,
		models.RecurringRent, models.RecurringUtility, models.RecurringOther:
		c.logger.Info("Gemini classified merchant",
			logging.Field{Key: logging.FieldMerchant, Value: merchant},
			logging.Field{Key: logging.FieldType, Value: answer})
		return answer, nil
	}
	return "", fmt.Errorf("unrecognized type from Gemini: %q", answer)
}
