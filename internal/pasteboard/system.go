package pasteboard

import (
	"bytes"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.design/x/clipboard"
)

// changePollInterval is how often the system source samples the OS
// clipboard to maintain its change counter. This is independent of the
// engine's own poll cadence; it only needs to be at least as fine.
const changePollInterval = 250 * time.Millisecond

type systemSource struct {
	counter atomic.Uint64
	done    chan struct{}

	mu       sync.Mutex
	lastText []byte
	lastImg  []byte
}

// NewSystem returns a Source backed by the OS clipboard, or a headless
// no-op source when no display environment is available (containers,
// headless servers). clipboard.Init is called here rather than in init()
// so sub-commands that never touch the clipboard don't log warnings.
func NewSystem() Source {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return headlessSource{}
	}
	s := &systemSource{done: make(chan struct{})}
	s.lastText = clipboard.Read(clipboard.FmtText)
	s.lastImg = clipboard.Read(clipboard.FmtImage)
	go s.poll()
	return s
}

func (s *systemSource) Name() string { return "system clipboard" }

// poll maintains the change counter by sampling the OS clipboard and
// bumping the counter whenever the content bytes differ from the last
// sample.
func (s *systemSource) poll() {
	t := time.NewTicker(changePollInterval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			text := clipboard.Read(clipboard.FmtText)
			img := clipboard.Read(clipboard.FmtImage)
			s.mu.Lock()
			changed := !bytes.Equal(text, s.lastText) || !bytes.Equal(img, s.lastImg)
			if changed {
				s.lastText = text
				s.lastImg = img
			}
			s.mu.Unlock()
			if changed {
				s.counter.Add(1)
			}
		}
	}
}

func (s *systemSource) ChangeCount() uint64 { return s.counter.Load() }

func (s *systemSource) ReadText() (string, bool) {
	b := clipboard.Read(clipboard.FmtText)
	if b == nil {
		return "", false
	}
	return string(b), true
}

func (s *systemSource) ReadImage() ([]byte, bool) {
	b := clipboard.Read(clipboard.FmtImage)
	if b == nil {
		return nil, false
	}
	return b, true
}

func (s *systemSource) WriteText(text string) {
	clipboard.Write(clipboard.FmtText, []byte(text))
}

func (s *systemSource) WriteImage(png []byte) {
	clipboard.Write(clipboard.FmtImage, png)
}

func (s *systemSource) Clear() {
	clipboard.Write(clipboard.FmtText, nil)
}

func (s *systemSource) Close() { close(s.done) }

// headlessSource never reports changes and discards writes.
type headlessSource struct{}

func (headlessSource) Name() string             { return "headless (no-op)" }
func (headlessSource) ChangeCount() uint64      { return 0 }
func (headlessSource) ReadText() (string, bool) { return "", false }
func (headlessSource) ReadImage() ([]byte, bool) {
	return nil, false
}
func (headlessSource) WriteText(string)   {}
func (headlessSource) WriteImage([]byte)  {}
func (headlessSource) Clear()             {}
func (headlessSource) Close()             {}
