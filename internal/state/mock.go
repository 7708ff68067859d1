package state

// Mock is a test double for Manager.
type Mock struct {
	session *Session
	saves   []Session
	getErr  error
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetSession() (*Session, error) {
	return m.session, m.getErr
}

func (m *Mock) SaveSession(s Session) {
	m.saves = append(m.saves, s)
	m.session = &s
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSession(s *Session) { m.session = s }

func (m *Mock) SetGetError(err error) { m.getErr = err }

func (m *Mock) Saves() []Session { return m.saves }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
