// Package envelope builds the bridge's fixed two-shape MCP response
// envelope (spec §6): every tool call returns either a success result
// (content plus optional structuredContent) or an error result (content
// carrying a taxonomy code, message and suggestions, isError=true).
//
// Grounded on the teacher's cmd/purify-mcp/main.go, which builds every
// tool response through mcp.NewToolResultText /
// mcp.NewToolResultError; this package centralizes that same
// construction so every tool in toolrouter produces an identically
// shaped envelope instead of hand-rolling one per handler.
package envelope

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/use-agent/browserbridge/berrors"
)

// Success builds a non-error result. text is the human-readable body;
// structured, when non-nil, is attached as the result's
// StructuredContent for clients that parse it directly instead of the
// text body.
func Success(text string, structured any) *mcp.CallToolResult {
	result := mcp.NewToolResultText(text)
	if structured != nil {
		result.StructuredContent = structured
	}
	return result
}

// Error builds an error result from a berrors.Error, rendering its
// code, message and suggestions into the text body so a caller reading
// only content still gets the full picture. Per spec §4.3,
// structuredContent MUST be absent on error results — callers branch on
// isError/content alone.
func Error(err error) *mcp.CallToolResult {
	berr, ok := err.(*berrors.Error)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %s", err.Error()))
	}

	text := fmt.Sprintf("Error: [%s] %s", berr.Code, berr.Message)
	for _, s := range berr.Suggestions {
		text += "\n- " + s
	}

	return mcp.NewToolResultError(text)
}

// MarshalJSON returns the raw JSON form of a structured payload, or
// "{}" when v cannot be marshalled. It is not part of the envelope
// itself.
func MarshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
