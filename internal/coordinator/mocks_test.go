package coordinator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
)

type toolCall struct {
	name string
	args map[string]any
}

type mockSession struct {
	agent    string
	launcher *mockLauncher
	tools    []domain.ToolDescriptor
	listErr  error
	results  map[string]json.RawMessage
	callErrs map[string]error
	calls    []toolCall
	closed   bool
	closeErr error
}

func (m *mockSession) ListTools(context.Context) ([]domain.ToolDescriptor, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.tools, nil
}

func (m *mockSession) CallTool(_ context.Context, name string, args map[string]any) (json.RawMessage, error) {
	m.calls = append(m.calls, toolCall{name: name, args: args})
	if err, ok := m.callErrs[name]; ok {
		return nil, err
	}
	if result, ok := m.results[name]; ok {
		return result, nil
	}
	return nil, fmt.Errorf("%s agent: unknown tool %s", m.agent, name)
}

func (m *mockSession) Close() error {
	m.closed = true
	if m.launcher != nil {
		m.launcher.closeOrder = append(m.launcher.closeOrder, m.agent)
	}
	return m.closeErr
}

type mockLauncher struct {
	sessions   map[string]*mockSession
	failAgent  string
	launched   []string
	closeOrder []string
}

func (m *mockLauncher) Launch(_ context.Context, agent string) (driven.AgentSession, error) {
	if agent == m.failAgent {
		return nil, fmt.Errorf("launching %s: connection refused", agent)
	}
	m.launched = append(m.launched, agent)
	session, ok := m.sessions[agent]
	if !ok {
		session = &mockSession{agent: agent}
		m.sessions[agent] = session
	}
	session.launcher = m
	return session, nil
}

type mockLLM struct {
	result   *driven.ChatResult
	err      error
	messages []driven.ChatMessage
	options  driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, options driven.ChatOptions) (*driven.ChatResult, error) {
	m.messages = messages
	m.options = options
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &driven.ChatResult{}, nil
}

func (m *mockLLM) ModelName() string { return "mock-planner" }
func (m *mockLLM) Close() error      { return nil }

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
