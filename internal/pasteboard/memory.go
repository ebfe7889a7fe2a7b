package pasteboard

import "sync"

// Memory is an in-process Source with deterministic change counting, used
// by engine tests and anywhere a real clipboard is unwanted.
type Memory struct {
	mu      sync.Mutex
	counter uint64
	text    string
	hasText bool
	img     []byte
	hasImg  bool
}

// NewMemory returns an empty in-memory source.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Name() string { return "in-memory" }

func (m *Memory) ChangeCount() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter
}

func (m *Memory) ReadText() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.hasText
}

func (m *Memory) ReadImage() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasImg {
		return nil, false
	}
	return append([]byte(nil), m.img...), true
}

func (m *Memory) WriteText(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.hasText = s, true
	m.img, m.hasImg = nil, false
	m.counter++
}

func (m *Memory) WriteImage(png []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.img, m.hasImg = append([]byte(nil), png...), true
	m.text, m.hasText = "", false
	m.counter++
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.hasText = "", false
	m.img, m.hasImg = nil, false
	m.counter++
}

func (m *Memory) Close() {}
