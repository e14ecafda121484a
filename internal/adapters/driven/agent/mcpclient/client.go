// Package mcpclient connects the coordinator to its agent processes.
// Each agent runs as a subprocess speaking MCP over stdio; launching
// performs the initialisation handshake and a tool listing, mirroring
// the agent side in internal/agents.
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Version reported in the MCP handshake.
const Version = "0.1.0"

// Ensure the adapter implements its ports.
var (
	_ driven.AgentLauncher = (*Launcher)(nil)
	_ driven.AgentSession  = (*Session)(nil)
)

// Launcher starts agent subprocesses and connects to them over stdio.
type Launcher struct {
	command string
	args    []string
}

// NewLauncher creates a launcher that runs `command args... agent <name>`
// for each agent. With an empty command the current executable is
// re-run, which is the standard single-binary deployment.
func NewLauncher(command string, args ...string) (*Launcher, error) {
	if command == "" {
		self, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolving executable: %w", err)
		}
		command = self
	}
	return &Launcher{command: command, args: args}, nil
}

// Launch starts the named agent as a subprocess, performs the
// initialisation handshake, and lists its tools once to verify the
// connection. There is no retry; a failed launch is terminal.
func (l *Launcher) Launch(ctx context.Context, agent string) (driven.AgentSession, error) {
	args := append(append([]string{}, l.args...), "agent", agent)
	cmd := exec.Command(l.command, args...)
	cmd.Stderr = os.Stderr // agent logs pass through

	logger.Info("Starting agent %q: %s %s", agent, l.command, strings.Join(args, " "))

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "askdoc-coordinator",
		Version: Version,
	}, nil)

	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s agent: %w", agent, err)
	}

	s := &Session{agent: agent, session: session}
	tools, err := s.ListTools(ctx)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("listing %s agent tools: %w", agent, err)
	}

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
	}
	logger.Info("Connected to %s agent. Tools: %s", agent, strings.Join(names, ", "))

	return s, nil
}

// Session is a live MCP connection to one agent process.
type Session struct {
	agent   string
	session *mcp.ClientSession
}

// ListTools returns the agent's tool descriptors.
func (s *Session) ListTools(ctx context.Context) ([]domain.ToolDescriptor, error) {
	result, err := s.session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s agent: list tools: %w", s.agent, err)
	}

	descriptors := make([]domain.ToolDescriptor, 0, len(result.Tools))
	for _, tool := range result.Tools {
		schema, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("%s agent: encoding schema for %s: %w", s.agent, tool.Name, err)
		}
		descriptors = append(descriptors, domain.ToolDescriptor{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schema,
		})
	}
	return descriptors, nil
}

// CallTool invokes the named tool and returns its structured result
// payload. Tool-reported failures come back as errors.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	result, err := s.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return nil, fmt.Errorf("%s agent: call %s: %w", s.agent, name, err)
	}

	if result.IsError {
		return nil, fmt.Errorf("%s agent: %s failed: %s", s.agent, name, contentText(result.Content))
	}

	payload, err := json.Marshal(result.StructuredContent)
	if err != nil {
		return nil, fmt.Errorf("%s agent: encoding %s result: %w", s.agent, name, err)
	}
	return payload, nil
}

// Close terminates the session and the agent process.
func (s *Session) Close() error {
	return s.session.Close()
}

// contentText flattens text content blocks into one message.
func contentText(blocks []mcp.Content) string {
	var parts []string
	for _, block := range blocks {
		if text, ok := block.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	if len(parts) == 0 {
		return "unknown error"
	}
	return strings.Join(parts, "; ")
}
