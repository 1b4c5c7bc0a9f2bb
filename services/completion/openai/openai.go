// Package openaisvc answers assistant questions with the OpenAI chat completion API.
package openaisvc

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/assistant"
)

var errNoChoices = errors.New("openai: empty response")

type completer struct {
	client *openai.Client
	model  string
}

var _ assistant.Completer = (*completer)(nil)

// NewCompleter returns nil when no API key is configured.
func NewCompleter(conf *core.Config) assistant.Completer {
	if conf.Assistant.OpenAIKey == "" {
		return nil
	}

	clientConf := openai.DefaultConfig(conf.Assistant.OpenAIKey)
	if conf.Assistant.OpenAIBaseURL != "" {
		clientConf.BaseURL = conf.Assistant.OpenAIBaseURL
	}
	return &completer{
		client: openai.NewClientWithConfig(clientConf),
		model:  conf.Assistant.OpenAIModel,
	}
}

func (c *completer) Complete(ctx context.Context, req assistant.Request) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: msgs,
	})
	if err != nil {
		return "", errors.Wrap(err, "creating chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}
