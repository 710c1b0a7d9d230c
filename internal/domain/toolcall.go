package domain

// Tool names accepted by the dispatcher. The set is closed: the dispatch
// table is validated against AllTools at construction time, and a call with
// any other name fails with ErrTool.
const (
	ToolAddItem           = "add_item"
	ToolUpdateQuantity    = "update_quantity"
	ToolIncrementQuantity = "increment_quantity"
	ToolReduceQuantity    = "reduce_quantity"
	ToolRemoveItem        = "remove_item"
	ToolMarkBought        = "mark_bought"
	ToolCreateList        = "create_list"
	ToolDeleteList        = "delete_list"
	ToolShowList          = "show_list"
	ToolSetDefaultList    = "set_default_list"
)

// AllTools lists every supported tool name in dispatch-table order.
var AllTools = []string{
	ToolAddItem,
	ToolUpdateQuantity,
	ToolIncrementQuantity,
	ToolReduceQuantity,
	ToolRemoveItem,
	ToolMarkBought,
	ToolCreateList,
	ToolDeleteList,
	ToolShowList,
	ToolSetDefaultList,
}

// ToolCall is a single named, argument-carrying request produced by the
// intent source. Arguments arrive as a decoded JSON object; numeric values
// are float64 per encoding/json.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Interpretation is the intent source's reading of one user utterance:
// an ordered batch of tool calls plus a confidence score in [0, 1].
// Deterministic is set by mock/stub sources whose output is not subject to
// the confidence gate.
type Interpretation struct {
	ToolCalls     []ToolCall
	Confidence    float64
	Deterministic bool
}
