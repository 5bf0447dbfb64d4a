package agent

import (
	"context"
	"log/slog"
	"sync"

	"booking-concierge/internal/pkg/config"
	"booking-concierge/internal/pkg/errs"
	"booking-concierge/internal/usecase"

	"github.com/sashabaranov/go-openai"
)

const (
	// maxToolRounds bounds how many model/tool round trips a single turn may take.
	maxToolRounds = 6
	// maxHistoryMessages bounds the per-user conversation memory.
	maxHistoryMessages = 40
)

// Concierge is the OpenAI-backed conversational agent. It keeps an in-memory
// history per user and exposes the availability and booking operations to the
// model as callable tools.
type Concierge struct {
	client *openai.Client
	model  string
	tools  map[string]tool
	defs   []openai.Tool
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string][]openai.ChatCompletionMessage
}

func NewConcierge(
	cfg config.AgentConfig,
	availability usecase.AvailabilityUseCase,
	booking usecase.BookingUseCase,
	logger *slog.Logger,
) *Concierge {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	tools := newToolset(availability, booking)
	defs := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, t.definition)
	}

	return &Concierge{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    cfg.Model,
		tools:    tools,
		defs:     defs,
		logger:   logger,
		sessions: make(map[string][]openai.ChatCompletionMessage),
	}
}

// Reply answers a direct user message.
func (c *Concierge) Reply(ctx context.Context, userID, message string) (string, error) {
	return c.converse(ctx, userID, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
}

// ReplyToEvent answers a system-originated note, e.g. a webhook delivery
// already rephrased for the model.
func (c *Concierge) ReplyToEvent(ctx context.Context, userID, systemNote string) (string, error) {
	return c.converse(ctx, userID, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemNote,
	})
}

func (c *Concierge) converse(ctx context.Context, userID string, incoming openai.ChatCompletionMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, maxHistoryMessages+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	messages = append(messages, c.history(userID)...)
	messages = append(messages, incoming)

	for round := 0; round < maxToolRounds; round++ {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
			Tools:    c.defs,
		})
		if err != nil {
			return "", errs.Wrap(err, "chat completion failed")
		}
		if len(resp.Choices) == 0 {
			return "", errs.New("empty chat completion response")
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			c.remember(userID, incoming, msg)
			return msg.Content, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			result := c.dispatch(ctx, call)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return "", errs.Newf("tool loop did not settle after %d rounds", maxToolRounds)
}

func (c *Concierge) dispatch(ctx context.Context, call openai.ToolCall) string {
	t, ok := c.tools[call.Function.Name]
	if !ok {
		c.logger.Warn("model requested unknown tool", "tool", call.Function.Name)
		return toolError("Herramienta desconocida: "+call.Function.Name, "")
	}
	c.logger.Debug("executing tool", "tool", call.Function.Name)
	return t.run(ctx, call.Function.Arguments)
}

func (c *Concierge) history(userID string) []openai.ChatCompletionMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	session := c.sessions[userID]
	out := make([]openai.ChatCompletionMessage, len(session))
	copy(out, session)
	return out
}

// remember stores the incoming message and the final assistant reply.
// Intermediate tool exchanges are not kept, so stored history never contains
// dangling tool calls.
func (c *Concierge) remember(userID string, incoming, reply openai.ChatCompletionMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	session := append(c.sessions[userID], incoming, reply)
	if len(session) > maxHistoryMessages {
		session = session[len(session)-maxHistoryMessages:]
	}
	c.sessions[userID] = session
}
