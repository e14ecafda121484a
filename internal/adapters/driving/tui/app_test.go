package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
)

type mockPipeline struct {
	answer    domain.AnswerResult
	processOK bool
	processed [][]string
	queries   []string
	ready     bool
}

func (m *mockPipeline) Startup(context.Context) error { return nil }

func (m *mockPipeline) ProcessDocuments(_ context.Context, paths []string) bool {
	m.processed = append(m.processed, paths)
	m.ready = m.processOK
	return m.processOK
}

func (m *mockPipeline) AnswerQuery(_ context.Context, query string) domain.AnswerResult {
	m.queries = append(m.queries, query)
	return m.answer
}

func (m *mockPipeline) Ready() bool     { return m.ready }
func (m *mockPipeline) Shutdown() error { return nil }

func newTestApp(t *testing.T, pipeline *mockPipeline, docs []string) *App {
	t.Helper()
	app, err := NewApp(&Ports{Pipeline: pipeline}, docs, 50)
	require.NoError(t, err)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(*App)
}

func typeQuery(app *App, query string) (*App, tea.Cmd) {
	app.input.SetValue(query)
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return model.(*App), cmd
}

func TestNewApp(t *testing.T) {
	t.Run("requires a pipeline", func(t *testing.T) {
		_, err := NewApp(&Ports{}, nil, 50)
		require.Error(t, err)
	})
}

func TestApp_Init(t *testing.T) {
	t.Run("processes startup documents", func(t *testing.T) {
		pipeline := &mockPipeline{processOK: true}
		app := newTestApp(t, pipeline, []string{"doc.txt"})

		cmd := app.Init()
		require.NotNil(t, cmd)
		assert.True(t, app.busy)
		assert.Contains(t, app.status, "Processing 1 document")
	})
}

func TestApp_Update(t *testing.T) {
	t.Run("enter submits the query and appends the answer", func(t *testing.T) {
		pipeline := &mockPipeline{answer: domain.AnswerResult{
			Answer:  "The answer is 42.",
			Context: []string{"chunk"},
		}}
		app := newTestApp(t, pipeline, nil)

		app, cmd := typeQuery(app, "what is the answer?")
		require.NotNil(t, cmd)
		assert.True(t, app.busy)
		require.Len(t, app.entries, 1)
		assert.Equal(t, domain.RoleUser, app.entries[0].role)

		model, _ := app.Update(cmd())
		app = model.(*App)

		assert.Equal(t, []string{"what is the answer?"}, pipeline.queries)
		assert.False(t, app.busy)
		require.Len(t, app.entries, 2)
		assert.Equal(t, domain.RoleAssistant, app.entries[1].role)
		assert.Equal(t, "The answer is 42.", app.entries[1].content)
		assert.False(t, app.entries[1].failed)
	})

	t.Run("empty input is ignored", func(t *testing.T) {
		app := newTestApp(t, &mockPipeline{}, nil)

		app, cmd := typeQuery(app, "   ")
		assert.Nil(t, cmd)
		assert.False(t, app.busy)
		assert.Empty(t, app.entries)
	})

	t.Run("queries are rejected while busy", func(t *testing.T) {
		pipeline := &mockPipeline{}
		app := newTestApp(t, pipeline, nil)
		app.busy = true

		app, cmd := typeQuery(app, "question")
		assert.Nil(t, cmd)
		assert.Empty(t, app.entries)
	})

	t.Run("soft failures are marked", func(t *testing.T) {
		pipeline := &mockPipeline{answer: domain.AnswerResult{
			Answer:  "System is not ready. Please process documents first.",
			Context: []string{},
			Failed:  true,
		}}
		app := newTestApp(t, pipeline, nil)

		app, cmd := typeQuery(app, "too early?")
		model, _ := app.Update(cmd())
		app = model.(*App)

		require.Len(t, app.entries, 2)
		assert.True(t, app.entries[1].failed)
	})

	t.Run("processing success updates status", func(t *testing.T) {
		app := newTestApp(t, &mockPipeline{processOK: true}, []string{"doc.txt"})

		model, _ := app.Update(processedMsg{ok: true})
		app = model.(*App)

		assert.False(t, app.busy)
		assert.Contains(t, app.status, "Ready")
	})

	t.Run("processing failure suggests retry", func(t *testing.T) {
		app := newTestApp(t, &mockPipeline{}, []string{"doc.txt"})

		model, _ := app.Update(processedMsg{ok: false})
		app = model.(*App)

		assert.Contains(t, app.status, "ctrl+r")
	})

	t.Run("ctrl+r reprocesses documents", func(t *testing.T) {
		pipeline := &mockPipeline{processOK: true}
		app := newTestApp(t, pipeline, []string{"a.txt", "b.pdf"})

		model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
		app = model.(*App)
		require.NotNil(t, cmd)
		assert.True(t, app.busy)

		cmd()
		require.Len(t, pipeline.processed, 1)
		assert.Equal(t, []string{"a.txt", "b.pdf"}, pipeline.processed[0])
	})

	t.Run("ctrl+s toggles source display", func(t *testing.T) {
		app := newTestApp(t, &mockPipeline{}, nil)
		app.entries = []entry{{role: domain.RoleAssistant, content: "hi", context: []string{"src chunk"}}}

		model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
		app = model.(*App)
		assert.True(t, app.showContext)
		assert.Contains(t, app.viewport.View(), "Sources (1)")

		model, _ = app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
		app = model.(*App)
		assert.False(t, app.showContext)
	})

	t.Run("history is rendered into the transcript", func(t *testing.T) {
		app := newTestApp(t, &mockPipeline{}, nil)

		model, _ := app.Update(historyLoadedMsg{messages: []domain.Message{
			{Role: domain.RoleUser, Content: "old question"},
			{Role: domain.RoleAssistant, Content: "old answer"},
		}})
		app = model.(*App)

		require.Len(t, app.entries, 2)
		assert.Contains(t, app.viewport.View(), "old question")
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longer text", 3))
}
