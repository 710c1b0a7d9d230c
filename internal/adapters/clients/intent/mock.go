package intent

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/ports"
)

// Compile-time check that Mock implements ports.IntentSource.
var _ ports.IntentSource = (*Mock)(nil)

// mockPatterns maps common Hebrew verb phrases to tools. Order matters:
// "סמן שקניתי" must win over the bare "קניתי" pattern.
var mockPatterns = []struct {
	re   *regexp.Regexp
	tool string
}{
	{regexp.MustCompile(`תוסיף\s+([^\d\s]+)`), domain.ToolAddItem},
	{regexp.MustCompile(`צריך\s+([^\d\s]+)`), domain.ToolAddItem},
	{regexp.MustCompile(`תוריד\s+([^\d\s]+)`), domain.ToolReduceQuantity},
	{regexp.MustCompile(`סמן\s+שקניתי\s+([^\d\s]+)`), domain.ToolMarkBought},
	{regexp.MustCompile(`קניתי\s+([^\d\s]+)`), domain.ToolMarkBought},
	{regexp.MustCompile(`^([^\d\s]+)$`), domain.ToolAddItem},
}

// Mock is a deterministic intent source for development and tests. It
// pattern-matches a handful of Hebrew phrasings, reports full confidence,
// and flags its interpretations so the confidence gate is skipped.
type Mock struct {
	logger *slog.Logger
}

// NewMock creates a Mock source.
func NewMock(logger *slog.Logger) *Mock {
	return &Mock{logger: logger}
}

// Interpret implements ports.IntentSource without network access. Text that
// matches no pattern fails with a validation error asking for a rephrase,
// the same terminal outcome an empty model response produces.
func (m *Mock) Interpret(ctx context.Context, text string) (*domain.Interpretation, error) {
	trimmed := strings.TrimSpace(text)

	for _, p := range mockPatterns {
		match := p.re.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}

		m.logger.InfoContext(ctx, "mock intent matched",
			slog.String("operation", "Interpret"),
			slog.String("tool", p.tool),
		)
		return &domain.Interpretation{
			ToolCalls: []domain.ToolCall{{
				Name:      p.tool,
				Arguments: map[string]any{"item_name": match[1]},
			}},
			Confidence:    1.0,
			Deterministic: true,
		}, nil
	}

	return nil, domain.Validation(domain.MsgNoToolCalls, domain.SuggestRephrase)
}
