package driven

import (
	"context"
	"encoding/json"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

// AgentSession is an established connection to one agent process.
// A session speaks a request/response tool protocol: every call
// carries a tool name plus a structured argument payload and returns
// a structured payload or an error.
type AgentSession interface {
	// ListTools returns the agent's tool descriptors.
	ListTools(ctx context.Context) ([]domain.ToolDescriptor, error)

	// CallTool invokes the named tool and returns its structured
	// result payload. Tool-reported failures come back as errors.
	CallTool(ctx context.Context, name string, args map[string]any) (json.RawMessage, error)

	// Close terminates the session and the agent process.
	Close() error
}

// AgentLauncher starts agent processes and connects to them.
type AgentLauncher interface {
	// Launch starts the named agent as a subprocess, performs the
	// initialisation handshake, and returns the live session.
	Launch(ctx context.Context, agent string) (AgentSession, error)
}
