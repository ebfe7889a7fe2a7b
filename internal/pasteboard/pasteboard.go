// Package pasteboard abstracts the system clipboard behind a change-counter
// interface.
//
// The engine never watches the clipboard directly; it polls ChangeCount and
// reads content only when the counter moved. System implements the contract
// on golang.design/x/clipboard, Memory is a deterministic in-process
// implementation for tests, and a headless no-op takes over when no display
// environment is available.
package pasteboard

// Source is the pasteboard the engine observes and writes to.
type Source interface {
	// Name returns a human-readable name for the backing implementation.
	Name() string

	// ChangeCount returns an opaque counter that increases every time the
	// pasteboard content changes, including changes made through this
	// Source's own writes.
	ChangeCount() uint64

	// ReadText returns the current text content, if any.
	ReadText() (string, bool)

	// ReadImage returns the current image content as canonical PNG bytes,
	// if any.
	ReadImage() ([]byte, bool)

	// WriteText replaces the pasteboard content with text.
	WriteText(s string)

	// WriteImage replaces the pasteboard content with PNG bytes.
	WriteImage(png []byte)

	// Clear empties the pasteboard.
	Clear()

	// Close releases any resources held by the source.
	Close()
}
