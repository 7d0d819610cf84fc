// File: internal/storage/interface.go
package storage

// Fixed logical keys. Stable across runs so a later process rehydrates
// exactly where the prior one left off.
const (
	KeyChats         = "chatbot-chats"
	KeyUsername      = "chatbot-username"
	KeyFilesUploaded = "chatbot-files-uploaded"
)

// KV is durable key/value storage. Read reports false when the key has
// never been written. Both operations may fail; callers log and carry on,
// a storage failure never crosses this boundary as a crash.
type KV interface {
	Read(key string) (string, bool, error)
	Write(key, value string) error
}

// Logger is the subset of the service logger this package needs.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
