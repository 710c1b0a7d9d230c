package intent

import "github.com/baskit-app/baskit/internal/domain"

// Chat-completions wire shapes. Tool-call arguments arrive as a JSON string
// that is decoded separately.
type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []chatMessage    `json:"messages"`
	Tools       []toolDefinition `json:"tools"`
	ToolChoice  string           `json:"tool_choice"`
	Temperature float64          `json:"temperature"`
	MaxTokens   int              `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			ToolCalls []struct {
				Type     string `json:"type"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

type toolDefinition struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

type toolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

const systemPrompt = "אתה עוזר קניות בעברית. " +
	"תפקידך לעזור למשתמשים לנהל את רשימות הקניות שלהם. " +
	"השתמש בכלים שסופקו לך כדי לבצע פעולות."

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func integerProp(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func booleanProp(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func params(properties map[string]any, required ...string) map[string]any {
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func fn(name, desc string, parameters map[string]any) toolDefinition {
	return toolDefinition{
		Type: "function",
		Function: toolFunction{
			Name:        name,
			Description: desc,
			Parameters:  parameters,
		},
	}
}

// toolDefinitions declares the closed tool set offered to the model. The
// names and argument schemas mirror what the dispatcher accepts.
var toolDefinitions = []toolDefinition{
	fn(domain.ToolAddItem, "הוסף פריט לרשימת קניות", params(map[string]any{
		"item_name": stringProp("שם הפריט בעברית"),
		"quantity":  integerProp("כמות הפריט"),
		"unit":      stringProp("יחידת המידה"),
		"list_name": stringProp("שם הרשימה (אופציונלי)"),
	}, "item_name")),
	fn(domain.ToolUpdateQuantity, "עדכן כמות של פריט קיים", params(map[string]any{
		"item_name": stringProp("שם הפריט בעברית"),
		"quantity":  integerProp("הכמות החדשה"),
		"unit":      stringProp("יחידת המידה"),
		"list_name": stringProp("שם הרשימה (אופציונלי)"),
	}, "item_name", "quantity")),
	fn(domain.ToolIncrementQuantity, "הגדל את הכמות של פריט", params(map[string]any{
		"item_name": stringProp("שם הפריט בעברית"),
		"step":      integerProp("בכמה להגדיל"),
		"list_name": stringProp("שם הרשימה (אופציונלי)"),
	}, "item_name")),
	fn(domain.ToolReduceQuantity, "הקטן את הכמות של פריט", params(map[string]any{
		"item_name": stringProp("שם הפריט בעברית"),
		"step":      integerProp("בכמה להקטין"),
		"list_name": stringProp("שם הרשימה (אופציונלי)"),
	}, "item_name")),
	fn(domain.ToolRemoveItem, "הסר פריט מהרשימה", params(map[string]any{
		"item_name": stringProp("שם הפריט בעברית"),
		"list_name": stringProp("שם הרשימה (אופציונלי)"),
	}, "item_name")),
	fn(domain.ToolMarkBought, "סמן פריט כנקנה", params(map[string]any{
		"item_name": stringProp("שם הפריט בעברית"),
		"is_bought": booleanProp("האם הפריט נקנה"),
		"list_name": stringProp("שם הרשימה (אופציונלי)"),
	}, "item_name")),
	fn(domain.ToolCreateList, "צור רשימת קניות חדשה", params(map[string]any{
		"list_name": stringProp("שם הרשימה בעברית"),
	}, "list_name")),
	fn(domain.ToolDeleteList, "מחק רשימת קניות", params(map[string]any{
		"list_name":   stringProp("שם הרשימה בעברית"),
		"hard_delete": booleanProp("מחיקה סופית במקום מחיקה רכה"),
	}, "list_name")),
	fn(domain.ToolShowList, "הצג את תוכן הרשימה", params(map[string]any{
		"list_name":      stringProp("שם הרשימה (אופציונלי)"),
		"include_bought": booleanProp("לכלול פריטים שנקנו"),
	})),
	fn(domain.ToolSetDefaultList, "קבע רשימה כברירת מחדל", params(map[string]any{
		"list_name": stringProp("שם הרשימה בעברית"),
	}, "list_name")),
}
