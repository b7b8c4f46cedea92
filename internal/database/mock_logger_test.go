package database

import (
	"fmt"
	"sync"
)

// logEntry captures a single logged message with its fields
type logEntry struct {
	Message string
	Fields  map[string]interface{}
}

// mockLogger records log calls for assertions in tests
type mockLogger struct {
	mu            sync.Mutex
	infoMessages  []logEntry
	warnMessages  []logEntry
	errorMessages []logEntry
	debugMessages []logEntry
}

func newMockLogger() *mockLogger {
	return &mockLogger{}
}

func (m *mockLogger) LogInfo(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoMessages = append(m.infoMessages, logEntry{Message: msg, Fields: fields})
}

func (m *mockLogger) LogWarn(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnMessages = append(m.warnMessages, logEntry{Message: msg, Fields: fields})
}

func (m *mockLogger) LogError(err error, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	fields := map[string]interface{}{}
	if err != nil {
		fields["error"] = err.Error()
	}
	m.errorMessages = append(m.errorMessages, logEntry{Message: msg, Fields: fields})
	return err
}

func (m *mockLogger) LogErrorf(err error, format string, args ...interface{}) error {
	return m.LogError(err, fmt.Sprintf(format, args...))
}

func (m *mockLogger) LogDebug(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debugMessages = append(m.debugMessages, logEntry{Message: msg, Fields: fields})
}

func (m *mockLogger) LogFatal(err error, context string) {
	// Tests must not exit the process
	m.LogError(err, "FATAL: "+context)
}

func (m *mockLogger) GetInfoMessages() []logEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.infoMessages
}

func (m *mockLogger) GetWarnMessages() []logEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.warnMessages
}

func (m *mockLogger) GetErrorMessages() []logEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorMessages
}

func (m *mockLogger) GetDebugMessages() []logEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.debugMessages
}

func (m *mockLogger) ClearMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoMessages = nil
	m.warnMessages = nil
	m.errorMessages = nil
	m.debugMessages = nil
}
