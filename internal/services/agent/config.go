// File: internal/services/agent/config.go
package agent

import "fmt"

// Config holds the two webhook endpoints. Both are externally
// configurable; the defaults match the development setup.
type Config struct {
	// AgentURL answers questions via GET with user_query/username params.
	AgentURL string
	// UploadURL accepts multipart document submissions.
	UploadURL string
}

func DefaultConfig() *Config {
	return &Config{
		AgentURL:  "https://your-n8n-webhook-url.com/webhook/chatv3",
		UploadURL: "http://localhost:5678/webhook-test/upload-files",
	}
}

func (c *Config) Validate() error {
	if c.AgentURL == "" {
		return fmt.Errorf("agent webhook URL is required")
	}
	if c.UploadURL == "" {
		return fmt.Errorf("upload webhook URL is required")
	}
	return nil
}
