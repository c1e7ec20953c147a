// ABOUTME: Multi-turn coach conversation kept in memory for one session.
// ABOUTME: A turn is committed to history only when the reply arrives.
package coach

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/openai/openai-go/v2"
	"github.com/sirupsen/logrus"
)

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one line of the transcript.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Chat is a conversation with the coach persona.
type Chat struct {
	client   *Client
	greeting Message

	mu      sync.Mutex
	history []Message
}

// NewChat starts a conversation greeting userName.
func (c *Client) NewChat(userName string) *Chat {
	return &Chat{
		client:   c,
		greeting: Message{Role: RoleAssistant, Text: chatGreeting(userName)},
	}
}

// Transcript returns the greeting followed by every committed turn.
func (ch *Chat) Transcript() []Message {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	out := make([]Message, 0, len(ch.history)+1)
	out = append(out, ch.greeting)
	return append(out, ch.history...)
}

// Send posts text and returns the coach's reply. While a reply is pending,
// further sends fail with ErrBusy.
func (ch *Chat) Send(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: message is empty", ErrInvalidInput)
	}
	if err := ch.client.acquire(FeatureChat); err != nil {
		return "", err
	}
	defer ch.client.release(FeatureChat)

	ch.mu.Lock()
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(ch.history)+2)
	messages = append(messages, openai.SystemMessage(chatPersona))
	for _, m := range ch.history {
		switch m.Role {
		case RoleUser:
			messages = append(messages, openai.UserMessage(m.Text))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Text))
		}
	}
	ch.mu.Unlock()
	messages = append(messages, openai.UserMessage(text))

	reply, err := ch.client.complete(ctx, messages, nil)
	if err != nil {
		logrus.WithField("feature", FeatureChat).WithError(err).Warn("coach request failed")
		return "", newFeatureError(FeatureChat, err)
	}

	ch.mu.Lock()
	ch.history = append(ch.history,
		Message{Role: RoleUser, Text: text},
		Message{Role: RoleAssistant, Text: reply},
	)
	ch.mu.Unlock()
	return reply, nil
}
