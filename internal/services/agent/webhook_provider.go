// File: internal/services/agent/webhook_provider.go
package agent

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// WebhookProvider talks to the assistant and upload webhooks over HTTP.
// No client timeout is set: a send that the remote never answers stays
// pending until the context or connection gives out.
type WebhookProvider struct {
	config *Config
	client *http.Client
	logger Logger
}

func NewWebhookProvider(config *Config, logger Logger) (*WebhookProvider, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, &AgentError{Type: ErrTypeConfig, Operation: "config", Message: err.Error()}
	}
	return &WebhookProvider{
		config: config,
		client: &http.Client{},
		logger: logger,
	}, nil
}

// Ask issues the question as a read-only fetch with user_query and
// username query parameters and extracts the reply from the JSON body.
func (p *WebhookProvider) Ask(ctx context.Context, content, username string) (string, error) {
	endpoint, err := url.Parse(p.config.AgentURL)
	if err != nil {
		return "", &AgentError{Type: ErrTypeConfig, Operation: "ask", Message: "invalid agent webhook URL", Cause: err}
	}
	q := endpoint.Query()
	q.Set("user_query", content)
	q.Set("username", username)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", NewNetworkError("ask", "could not build request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("agent webhook request failed", "error", err)
		return "", NewNetworkError("ask", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Error("agent webhook returned non-success status", "status", resp.StatusCode)
		return "", NewStatusError("ask", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewNetworkError("ask", "could not read response body", err)
	}

	reply, err := ExtractReply(body)
	if err != nil {
		p.logger.Error("agent webhook returned unparseable body", "error", err)
		return "", NewDecodeError("ask", err)
	}

	p.logger.Debug("agent reply extracted", "length", len(reply))
	return reply, nil
}

// Upload posts a multipart form with a username field and one file part
// per document. Any success status counts as success.
func (p *WebhookProvider) Upload(ctx context.Context, files []File, username string) error {
	if len(files) == 0 {
		return &AgentError{Type: ErrTypeValidation, Operation: "upload", Message: "no files to upload"}
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("username", username); err != nil {
		return NewNetworkError("upload", "could not build form", err)
	}
	for _, f := range files {
		part, err := form.CreateFormFile("file", f.Name)
		if err != nil {
			return NewNetworkError("upload", "could not build form", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return NewNetworkError("upload", "could not build form", err)
		}
	}
	if err := form.Close(); err != nil {
		return NewNetworkError("upload", "could not finalize form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.UploadURL, &buf)
	if err != nil {
		return NewNetworkError("upload", "could not build request", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("upload webhook request failed", "error", err)
		return NewNetworkError("upload", "request failed", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Error("upload webhook returned non-success status", "status", resp.StatusCode)
		return NewStatusError("upload", resp.StatusCode)
	}

	p.logger.Info("files uploaded", "count", len(files), "username", username)
	return nil
}
