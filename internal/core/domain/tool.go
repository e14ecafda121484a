package domain

import "encoding/json"

// ToolDescriptor describes a named callable operation exposed by an
// agent. Descriptors are fetched from an agent's tool listing and
// presented to the planning model as selectable functions.
type ToolDescriptor struct {
	// Name is the tool's unique name within its agent.
	Name string

	// Description tells the planning model what the tool does.
	Description string

	// InputSchema is the JSON Schema for the tool's arguments.
	InputSchema json.RawMessage
}

// ToolCall is a model-selected tool invocation: a function name plus
// a JSON argument payload. It is used once per query and discarded
// after dispatch.
type ToolCall struct {
	// Name is the selected tool name.
	Name string

	// Arguments is the raw JSON argument payload as produced by the
	// model. It must be validated before dispatch.
	Arguments string
}
