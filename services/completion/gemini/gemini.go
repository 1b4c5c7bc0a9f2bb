// Package geminisvc answers assistant questions with the Gemini generateContent REST API.
package geminisvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/assistant"
)

var errNoCandidates = errors.New("gemini: empty response")

type (
	part struct {
		Text string `json:"text"`
	}

	content struct {
		Role  string `json:"role,omitempty"`
		Parts []part `json:"parts"`
	}

	generateRequest struct {
		SystemInstruction *content  `json:"systemInstruction,omitempty"`
		Contents          []content `json:"contents"`
	}

	generateResponse struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}

	errorResponse struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}

	completer struct {
		client  *rest.Client
		key     string
		model   string
		baseURL string
	}
)

var _ assistant.Completer = (*completer)(nil)

// NewCompleter returns nil when no API key is configured.
func NewCompleter(conf *core.Config, client *http.Client) assistant.Completer {
	if conf.Assistant.GeminiKey == "" {
		return nil
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &completer{
		client:  &rest.Client{HTTPClient: client},
		key:     conf.Assistant.GeminiKey,
		model:   conf.Assistant.GeminiModel,
		baseURL: strings.TrimSuffix(conf.Assistant.GeminiBaseURL, "/"),
	}
}

func (c *completer) Complete(ctx context.Context, req assistant.Request) (string, error) {
	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
	}
	if req.System != "" {
		payload.SystemInstruction = &content{Parts: []part{{Text: req.System}}}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "encoding request")
	}

	res, err := c.client.SendWithContext(ctx, rest.Request{
		Method:      rest.Post,
		BaseURL:     fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model),
		Headers:     map[string]string{"Content-Type": "application/json"},
		QueryParams: map[string]string{"key": c.key},
		Body:        body,
	})
	if err != nil {
		return "", errors.Wrap(err, "sending request")
	}
	if res.StatusCode >= http.StatusBadRequest {
		var eRes errorResponse
		if jErr := json.Unmarshal([]byte(res.Body), &eRes); jErr == nil && eRes.Error.Message != "" {
			return "", errors.Errorf("gemini: %d %s", res.StatusCode, eRes.Error.Message)
		}
		return "", errors.Errorf("gemini: status %d", res.StatusCode)
	}

	var gRes generateResponse
	if err = json.Unmarshal([]byte(res.Body), &gRes); err != nil {
		return "", errors.Wrap(err, "decoding response")
	}
	if len(gRes.Candidates) == 0 {
		return "", errNoCandidates
	}

	text := new(strings.Builder)
	for _, p := range gRes.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}
