// Package coordinator orchestrates the ingestion, retrieval, and
// answer agents. It owns the agent sessions, the readiness flag, and
// the planning step that picks a retrieval tool for each query.
//
// Every failure inside a single query or document-processing call is
// caught here and converted to a plain-text message; nothing
// propagates to the front-end as a structured fault.
package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// planMaxTokens caps the planning completion; tool selection never
// needs a long response.
const planMaxTokens = 500

// plannerPrompt restricts the model to tool selection.
const plannerPrompt = "You are a planning agent. Your job is to decide which tool to use to help answer the user's question." +
	" You must select the most appropriate tool based on the tool descriptions provided." +
	" Return only a tool call. Do not answer the question directly."

// User-visible messages for the soft-failure paths.
const (
	notReadyMessage = "System is not ready. Please process documents first."
	busyMessage     = "Another request is already being processed. Please wait for it to finish."
	noToolMessage   = "The model chose not to use a tool. I can only answer questions by retrieving information from the documents."
	badArgsMessage  = "I tried to use a tool to answer your question, but there was an internal error with the tool's arguments."
	badToolMessage  = "The model selected a tool I don't recognise, so I could not retrieve any context."
)

var _ driving.PipelineService = (*Coordinator)(nil)

// Coordinator runs the three-agent pipeline. The mutex enforces one
// in-flight pipeline invocation at a time.
type Coordinator struct {
	launcher driven.AgentLauncher
	llm      driven.LLMService

	mu sync.Mutex

	sessionMu sync.RWMutex
	ingestion driven.AgentSession
	retrieval driven.AgentSession
	answer    driven.AgentSession
	ready     bool
}

// New creates a coordinator over the given agent launcher and
// planning model.
func New(launcher driven.AgentLauncher, llm driven.LLMService) (*Coordinator, error) {
	if launcher == nil || llm == nil {
		return nil, fmt.Errorf("%w: launcher and llm are required", domain.ErrInvalidInput)
	}
	return &Coordinator{launcher: launcher, llm: llm}, nil
}

// Startup launches the agents in a fixed order: ingestion, retrieval,
// answer. There are no retries; the first failure aborts, closing any
// agent already started.
func (c *Coordinator) Startup(ctx context.Context) error {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	logger.Info("Starting agents")

	ingestion, err := c.launcher.Launch(ctx, "ingestion")
	if err != nil {
		return fmt.Errorf("launching ingestion agent: %w", err)
	}

	retrieval, err := c.launcher.Launch(ctx, "retrieval")
	if err != nil {
		ingestion.Close()
		return fmt.Errorf("launching retrieval agent: %w", err)
	}

	answer, err := c.launcher.Launch(ctx, "answer")
	if err != nil {
		retrieval.Close()
		ingestion.Close()
		return fmt.Errorf("launching answer agent: %w", err)
	}

	c.ingestion = ingestion
	c.retrieval = retrieval
	c.answer = answer

	logger.Info("All agents are running and connected")
	return nil
}

// ProcessDocuments runs ingestion then indexing over the given files
// and reports whether the pipeline is ready for queries afterwards.
// Any failure leaves the coordinator not ready.
func (c *Coordinator) ProcessDocuments(ctx context.Context, filePaths []string) bool {
	if !c.mu.TryLock() {
		logger.Warn("Document processing rejected: %v", domain.ErrPipelineBusy)
		return false
	}
	defer c.mu.Unlock()

	c.setReady(false)

	ingestion := c.session("ingestion")
	if ingestion == nil {
		logger.Error("Agents are not running; call Startup first")
		return false
	}

	logger.Section("Ingestion")
	logger.Info("Processing %d file(s)", len(filePaths))
	payload, err := ingestion.CallTool(ctx, "process_files", map[string]any{
		"file_paths": filePaths,
	})
	if err != nil {
		logger.Error("Ingestion failed: %v", err)
		return false
	}

	var ingest domain.IngestReport
	if err := json.Unmarshal(payload, &ingest); err != nil {
		logger.Error("Ingestion returned an unreadable result: %v", err)
		return false
	}
	if ingest.Status != domain.StatusSuccess {
		logger.Error("Error during ingestion: %s", ingest.Message)
		return false
	}
	logger.Info("Ingestion created %d chunks", ingest.ChunksCreated)

	logger.Section("Indexing")
	payload, err = c.session("retrieval").CallTool(ctx, "build_index", nil)
	if err != nil {
		logger.Error("Indexing failed: %v", err)
		return false
	}

	var index domain.IndexReport
	if err := json.Unmarshal(payload, &index); err != nil {
		logger.Error("Indexing returned an unreadable result: %v", err)
		return false
	}
	if index.Status != domain.StatusSuccess {
		logger.Error("Error during indexing: %s", index.Message)
		return false
	}
	logger.Info("Index built with %d vectors", index.VectorsIndexed)

	c.setReady(true)
	logger.Info("System is ready for Q&A")
	return true
}

// AnswerQuery runs the three-step query pipeline: plan a retrieval
// tool, call it for context, then ask the answer agent for the final
// response. All failures come back as plain-text answers with empty
// context.
func (c *Coordinator) AnswerQuery(ctx context.Context, query string) domain.AnswerResult {
	if !c.mu.TryLock() {
		logger.Warn("Query rejected: %v", domain.ErrPipelineBusy)
		return failedResult(busyMessage)
	}
	defer c.mu.Unlock()

	if !c.Ready() {
		logger.Warn("Query %q rejected: %v", query, domain.ErrNotReady)
		return failedResult(notReadyMessage)
	}

	call, result, ok := c.planRetrieval(ctx, query)
	if !ok {
		return result
	}

	chunks, result, ok := c.dispatchRetrieval(ctx, call)
	if !ok {
		return result
	}

	return c.generateAnswer(ctx, query, chunks)
}

// failedResult wraps a user-visible failure message so front-ends can
// tell it apart from a model response without inspecting the text.
func failedResult(answer string) domain.AnswerResult {
	return domain.AnswerResult{Answer: answer, Context: []string{}, Failed: true}
}

// planRetrieval asks the model to select one of the retrieval agent's
// tools. On any soft failure it returns ok=false and the user-visible
// result to hand back.
func (c *Coordinator) planRetrieval(ctx context.Context, query string) (domain.ToolCall, domain.AnswerResult, bool) {
	fail := func(answer string) (domain.ToolCall, domain.AnswerResult, bool) {
		return domain.ToolCall{}, failedResult(answer), false
	}

	tools, err := c.session("retrieval").ListTools(ctx)
	if err != nil {
		logger.Error("Listing retrieval tools failed: %v", err)
		return fail(fmt.Sprintf("An error occurred during the planning phase: %v", err))
	}

	logger.Section("Planning")
	logger.Info("Asking %s to select a retrieval tool", c.llm.ModelName())
	result, err := c.llm.Chat(ctx, []driven.ChatMessage{
		{Role: domain.RoleSystem, Content: plannerPrompt},
		{Role: domain.RoleUser, Content: query},
	}, driven.ChatOptions{
		MaxTokens: planMaxTokens,
		Tools:     tools,
	})
	if err != nil {
		logger.Error("Planning failed: %v", err)
		return fail(fmt.Sprintf("An error occurred during the planning phase: %v", err))
	}

	if len(result.ToolCalls) == 0 {
		logger.Warn("Planning: %v", domain.ErrNoToolCall)
		return fail(noToolMessage)
	}

	call := result.ToolCalls[0]
	logger.Info("Tool selected: %s | Args: %s", call.Name, call.Arguments)
	return call, domain.AnswerResult{}, true
}

// retrievalDispatch is the allowlist of retrieval tools the planner
// may invoke, each mapped to an extractor for its result payload.
// Validating the name here keeps a hallucinated tool from reaching
// the agent.
var retrievalDispatch = map[string]func(payload json.RawMessage) ([]string, error){
	"retrieve": func(payload json.RawMessage) ([]string, error) {
		var out struct {
			Chunks []string `json:"chunks"`
		}
		if err := json.Unmarshal(payload, &out); err != nil {
			return nil, err
		}
		return out.Chunks, nil
	},
}

// dispatchRetrieval validates the planned call against the dispatch
// table, invokes it, and extracts the context chunks.
func (c *Coordinator) dispatchRetrieval(ctx context.Context, call domain.ToolCall) ([]string, domain.AnswerResult, bool) {
	fail := func(answer string) ([]string, domain.AnswerResult, bool) {
		return nil, failedResult(answer), false
	}

	extract, known := retrievalDispatch[call.Name]
	if !known {
		logger.Error("Planner selected unknown tool %q: %v", call.Name, domain.ErrUnknownTool)
		return fail(badToolMessage)
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		logger.Error("Model provided invalid JSON arguments: %s", call.Arguments)
		return fail(badArgsMessage)
	}

	logger.Section("Retrieval")
	logger.Info("Calling retrieval agent tool %q", call.Name)
	payload, err := c.session("retrieval").CallTool(ctx, call.Name, args)
	if err != nil {
		logger.Error("Retrieval failed: %v", err)
		return fail(fmt.Sprintf("An error occurred while retrieving context: %v", err))
	}

	chunks, err := extract(payload)
	if err != nil {
		logger.Error("Retrieval returned an unreadable result: %v", err)
		return fail(fmt.Sprintf("An error occurred while retrieving context: %v", err))
	}

	if len(chunks) == 0 {
		logger.Warn("Retrieval agent returned no context")
	} else {
		logger.Info("Retrieved %d context chunks", len(chunks))
	}
	return chunks, domain.AnswerResult{}, true
}

// generateAnswer asks the answer agent for the final response.
func (c *Coordinator) generateAnswer(ctx context.Context, query string, chunks []string) domain.AnswerResult {
	if chunks == nil {
		chunks = []string{}
	}

	logger.Section("Answering")
	logger.Info("Calling answer agent to generate the final answer")
	payload, err := c.session("answer").CallTool(ctx, "generate_answer", map[string]any{
		"query":   query,
		"context": chunks,
	})
	if err != nil {
		logger.Error("Answer generation failed: %v", err)
		return failedResult(fmt.Sprintf("An error occurred while generating the final answer: %v", err))
	}

	var out struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		logger.Error("Answer agent returned an unreadable result: %v", err)
		return failedResult(fmt.Sprintf("An error occurred while generating the final answer: %v", err))
	}

	logger.Info("Final answer generated")
	return domain.AnswerResult{Answer: out.Answer, Context: chunks}
}

// Ready reports whether ingestion and indexing have both succeeded
// since startup.
func (c *Coordinator) Ready() bool {
	c.sessionMu.RLock()
	defer c.sessionMu.RUnlock()
	return c.ready
}

func (c *Coordinator) setReady(ready bool) {
	c.sessionMu.Lock()
	c.ready = ready
	c.sessionMu.Unlock()
}

// session returns the named agent session.
func (c *Coordinator) session(agent string) driven.AgentSession {
	c.sessionMu.RLock()
	defer c.sessionMu.RUnlock()
	switch agent {
	case "ingestion":
		return c.ingestion
	case "retrieval":
		return c.retrieval
	case "answer":
		return c.answer
	}
	return nil
}

// Shutdown closes the agent sessions in reverse startup order. Errors
// are collected rather than aborting, so every agent gets a close.
func (c *Coordinator) Shutdown() error {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	logger.Info("Shutting down all agents")
	c.ready = false

	var errs []error
	for _, s := range []struct {
		name    string
		session driven.AgentSession
	}{
		{"answer", c.answer},
		{"retrieval", c.retrieval},
		{"ingestion", c.ingestion},
	} {
		if s.session == nil {
			continue
		}
		if err := s.session.Close(); err != nil {
			logger.Warn("Closing %s agent: %v", s.name, err)
			errs = append(errs, fmt.Errorf("closing %s agent: %w", s.name, err))
		}
	}
	c.answer, c.retrieval, c.ingestion = nil, nil, nil

	logger.Info("Cleanup complete")
	return errors.Join(errs...)
}
