// File: internal/services/agent/interface.go
package agent

import "context"

// File is one document selected for upload: raw bytes plus the name the
// upload endpoint should see.
type File struct {
	Name string
	Data []byte
}

// Provider is the boundary to the remote assistant and upload services.
// Implementations normalize every transport or protocol failure into an
// *AgentError; nothing is thrown past this boundary uncaught.
type Provider interface {
	// Ask sends the user's question and returns the assistant's reply text.
	Ask(ctx context.Context, content, username string) (string, error)
	// Upload submits the given files under the given username.
	Upload(ctx context.Context, files []File, username string) error
}

// Logger is the subset of the service logger this package needs.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}
