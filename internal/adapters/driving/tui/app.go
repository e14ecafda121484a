package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// staleCheckInterval is how often the watcher's staleness flag is
// polled while a watch is active.
const staleCheckInterval = 2 * time.Second

// entry is one line of the transcript.
type entry struct {
	role    string
	content string
	context []string
	failed  bool
}

// Messages exchanged with the async commands.
type (
	historyLoadedMsg struct{ messages []domain.Message }
	processedMsg     struct{ ok bool }
	answerMsg        struct{ result domain.AnswerResult }
	staleTickMsg     struct{}
)

// App is the chat interface following the Elm architecture. It
// implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *Styles

	input    textinput.Model
	viewport viewport.Model

	entries     []entry
	docs        []string
	historyCap  int
	showContext bool
	busy        bool
	status      string
	stale       bool

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates the chat interface. docs are the files to ingest on
// startup and on ctrl+r; historyLimit bounds how much prior
// conversation is loaded.
func NewApp(ports *Ports, docs []string, historyLimit int) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Ask a question about your documents"
	input.Focus()
	input.CharLimit = 0

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     DefaultStyles(),
		input:      input,
		viewport:   viewport.New(0, 0),
		docs:       docs,
		historyCap: historyLimit,
		status:     "Starting...",
	}, nil
}

// Init loads prior history, kicks off document processing, and starts
// the staleness poll.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, a.loadHistoryCmd()}
	if len(a.docs) > 0 {
		a.busy = true
		a.status = fmt.Sprintf("Processing %d document(s)...", len(a.docs))
		cmds = append(cmds, a.processDocsCmd())
	}
	if a.ports.Watch != nil {
		cmds = append(cmds, staleTick())
	}
	return tea.Batch(cmds...)
}

// Update handles key events and the async pipeline results.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case historyLoadedMsg:
		for _, m := range msg.messages {
			a.entries = append(a.entries, entry{role: m.Role, content: m.Content, context: m.Context})
		}
		a.refresh()
		return a, nil

	case processedMsg:
		a.busy = false
		a.stale = false
		if msg.ok {
			a.status = "Ready. Ask away."
		} else {
			a.status = "Document processing failed. Check the logs and press ctrl+r to retry."
		}
		return a, a.rewatchCmd()

	case answerMsg:
		a.busy = false
		a.status = "Ready."
		a.entries = append(a.entries, entry{
			role:    domain.RoleAssistant,
			content: msg.result.Answer,
			context: msg.result.Context,
			failed:  msg.result.Failed,
		})
		a.refresh()
		a.viewport.GotoBottom()
		return a, nil

	case staleTickMsg:
		if a.ports.Watch != nil && a.ports.Watch.Stale() {
			a.stale = true
		}
		return a, staleTick()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit

	case "ctrl+r":
		if a.busy || len(a.docs) == 0 {
			return a, nil
		}
		a.busy = true
		a.status = fmt.Sprintf("Reprocessing %d document(s)...", len(a.docs))
		return a, a.processDocsCmd()

	case "ctrl+s":
		a.showContext = !a.showContext
		a.refresh()
		return a, nil

	case "enter":
		query := strings.TrimSpace(a.input.Value())
		if query == "" || a.busy {
			return a, nil
		}
		a.input.Reset()
		a.busy = true
		a.status = "Thinking..."
		a.entries = append(a.entries, entry{role: domain.RoleUser, content: query})
		a.refresh()
		a.viewport.GotoBottom()
		return a, a.answerCmd(query)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the transcript, input box, and status line.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	title := a.styles.Title.Render("askdoc")
	transcript := a.styles.Transcript.Render(a.viewport.View())
	input := a.styles.InputBox.Render(a.input.View())

	status := a.styles.Status.Render(a.status)
	if a.stale {
		status = a.styles.Warning.Render("Source documents changed on disk. Press ctrl+r to reprocess. ") + status
	}
	help := a.styles.Status.Render("enter: ask • ctrl+s: sources • ctrl+r: reprocess • ctrl+c: quit")

	return title + "\n" + transcript + "\n" + input + "\n" + status + "\n" + help
}

func (a *App) resize() {
	frameW, frameH := a.styles.Transcript.GetFrameSize()
	_, inputH := a.styles.InputBox.GetFrameSize()
	reserved := 1 + inputH + 1 + 2 // title, input frame and line, status, help
	h := a.height - reserved - frameH
	if h < 3 {
		h = 3
	}
	a.viewport.Width = maxInt(20, a.width-frameW)
	a.viewport.Height = h
	a.input.Width = maxInt(20, a.width-frameW-len(a.input.Prompt))
}

// refresh re-renders the transcript into the viewport.
func (a *App) refresh() {
	if len(a.entries) == 0 {
		a.viewport.SetContent("No messages yet. Ask a question to get started.")
		return
	}

	var b strings.Builder
	for i, e := range a.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch e.role {
		case domain.RoleUser:
			b.WriteString(a.styles.You.Render("You: "))
			b.WriteString(e.content)
		default:
			b.WriteString(a.styles.Assistant.Render("askdoc: "))
			if e.failed {
				b.WriteString(a.styles.Failure.Render(e.content))
			} else {
				b.WriteString(e.content)
			}
			if a.showContext && len(e.context) > 0 {
				b.WriteString("\n")
				b.WriteString(a.styles.Context.Render(renderContext(e.context)))
			}
		}
	}
	a.viewport.SetContent(b.String())
}

// renderContext formats source chunks under an answer.
func renderContext(chunks []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  Sources (%d):", len(chunks)))
	for i, chunk := range chunks {
		b.WriteString(fmt.Sprintf("\n  [%d] %s", i+1, truncate(chunk, 200)))
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func (a *App) loadHistoryCmd() tea.Cmd {
	if a.ports.History == nil {
		return nil
	}
	return func() tea.Msg {
		messages, err := a.ports.History.Recent(a.ctx, a.historyCap)
		if err != nil {
			logger.Warn("Loading chat history: %v", err)
			return historyLoadedMsg{}
		}
		return historyLoadedMsg{messages: messages}
	}
}

func (a *App) processDocsCmd() tea.Cmd {
	return func() tea.Msg {
		return processedMsg{ok: a.ports.Pipeline.ProcessDocuments(a.ctx, a.docs)}
	}
}

// rewatchCmd resets the watch set after a processing pass.
func (a *App) rewatchCmd() tea.Cmd {
	if a.ports.Watch == nil || len(a.docs) == 0 {
		return nil
	}
	return func() tea.Msg {
		if err := a.ports.Watch.Watch(a.docs); err != nil {
			logger.Warn("Watching documents: %v", err)
		}
		return nil
	}
}

func (a *App) answerCmd(query string) tea.Cmd {
	return func() tea.Msg {
		result := a.ports.Pipeline.AnswerQuery(a.ctx, query)
		a.persist(query, result)
		return answerMsg{result: result}
	}
}

// persist appends the exchange to the history store, best effort.
func (a *App) persist(query string, result domain.AnswerResult) {
	if a.ports.History == nil || result.Failed {
		return
	}
	now := time.Now().UTC()
	pair := []domain.Message{
		{ID: uuid.NewString(), Role: domain.RoleUser, Content: query, CreatedAt: now},
		{ID: uuid.NewString(), Role: domain.RoleAssistant, Content: result.Answer, Context: result.Context, CreatedAt: now},
	}
	for _, m := range pair {
		if err := a.ports.History.Append(a.ctx, m); err != nil {
			logger.Warn("Saving chat history: %v", err)
			return
		}
	}
}

func staleTick() tea.Cmd {
	return tea.Tick(staleCheckInterval, func(time.Time) tea.Msg {
		return staleTickMsg{}
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
