// Package answer implements the answer agent: an MCP stdio server
// that synthesises a final response from a query and retrieved context
// using the hosted language model.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/askdoc-cli/internal/core/domain"
	"github.com/custodia-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdoc-cli/internal/logger"
)

// Version is the agent's MCP server version.
const Version = "0.1.0"

// systemPrompt constrains the model to the supplied context. The
// refusal instruction is what keeps empty context from producing a
// fabricated answer.
const systemPrompt = "You are an expert Q&A assistant. Your task is to answer the user's question based *only* on the provided context." +
	" If the information is not present in the context, you must state that you cannot answer the question with the given information." +
	" Do not use any external knowledge. Be concise and directly address the question."

// Server is the answer agent.
type Server struct {
	llm    driven.LLMService
	server *mcp.Server
}

// NewServer creates an answer agent over the given language model.
func NewServer(llm driven.LLMService) (*Server, error) {
	if llm == nil {
		return nil, fmt.Errorf("%w: llm service is required", domain.ErrInvalidInput)
	}

	s := &Server{
		llm: llm,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "askdoc-answer",
			Version: Version,
		}, nil),
	}
	s.registerTools()

	return s, nil
}

// Run serves the agent over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("Answer agent starting")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// GenerateAnswerInput is the input schema for the generate_answer tool.
type GenerateAnswerInput struct {
	Query   string   `json:"query" jsonschema:"the original question from the user"`
	Context []string `json:"context" jsonschema:"relevant text chunks retrieved from the documents"`
}

// GenerateAnswerOutput is the output schema for the generate_answer tool.
type GenerateAnswerOutput struct {
	Answer string `json:"answer"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_answer",
		Description: "Generate a final, user-facing answer to the query based on the retrieved context",
	}, s.handleGenerateAnswer)
}

// handleGenerateAnswer asks the model for a completion grounded in the
// supplied chunks. Model failures surface as tool errors rather than
// success-shaped strings, so the caller can branch on them.
func (s *Server) handleGenerateAnswer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateAnswerInput,
) (*mcp.CallToolResult, GenerateAnswerOutput, error) {
	logger.Info("Generating answer for query %q", input.Query)

	userMessage := fmt.Sprintf(
		"Here is the context retrieved from the documents:\n\nCONTEXT:\n%s\n\n"+
			"Based on the context above, please answer the following question:\n\nQUESTION: %s",
		strings.Join(input.Context, domain.ChunkSeparator),
		input.Query,
	)

	result, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: domain.RoleSystem, Content: systemPrompt},
		{Role: domain.RoleUser, Content: userMessage},
	}, driven.ChatOptions{})
	if err != nil {
		return nil, GenerateAnswerOutput{}, fmt.Errorf("generating answer: %w", err)
	}

	logger.Info("Answer generated")
	return nil, GenerateAnswerOutput{Answer: result.Content}, nil
}
