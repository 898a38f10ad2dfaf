package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error
	Calls    [][]ChatMessage
}

func (m *MockClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	m.Calls = append(m.Calls, messages)
	return m.Response, m.Err
}
