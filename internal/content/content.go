// Package content defines the clipboard payload value type.
//
// A Content is a tagged union over plain text and a raster image (canonical
// PNG bytes). Serialization uses an explicit kind discriminant plus one
// payload field so that unknown kinds from a newer or corrupted snapshot
// fail decoding of that one record instead of the whole history.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies the payload variant of a Content.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// ImageLabel is the display label for image contents.
const ImageLabel = "[Image]"

// Content is an immutable clipboard payload: either text or PNG image bytes.
// The zero value is an empty text content.
type Content struct {
	kind Kind
	text string
	data []byte
}

// NewText returns a text Content.
func NewText(s string) Content {
	return Content{kind: KindText, text: s}
}

// NewImage returns an image Content holding canonical PNG bytes.
func NewImage(png []byte) Content {
	return Content{kind: KindImage, data: png}
}

// Kind returns the payload variant.
func (c Content) Kind() Kind {
	if c.kind == "" {
		return KindText
	}
	return c.kind
}

// Text returns the text payload. Empty for image contents.
func (c Content) Text() string { return c.text }

// Image returns the PNG payload. Nil for text contents.
func (c Content) Image() []byte { return c.data }

// Equal reports structural equality: same kind, same payload.
func (c Content) Equal(o Content) bool {
	if c.Kind() != o.Kind() {
		return false
	}
	if c.Kind() == KindText {
		return c.text == o.text
	}
	return bytes.Equal(c.data, o.data)
}

// Label returns the human-readable form: the literal text for text contents,
// ImageLabel for images.
func (c Content) Label() string {
	if c.Kind() == KindImage {
		return ImageLabel
	}
	return c.text
}

// envelope is the serialized form. Exactly one payload field is set.
type envelope struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text,omitempty"`
	Data []byte `json:"data,omitempty"` // base64 via encoding/json
}

// MarshalJSON implements json.Marshaler.
func (c Content) MarshalJSON() ([]byte, error) {
	e := envelope{Kind: c.Kind()}
	switch c.Kind() {
	case KindText:
		e.Text = c.text
	case KindImage:
		e.Data = c.data
	}
	return json.Marshal(e)
}

// UnmarshalJSON implements json.Unmarshaler. An unrecognized kind is a
// decode error for this record only.
func (c *Content) UnmarshalJSON(b []byte) error {
	var e envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return fmt.Errorf("content decode: %w", err)
	}
	switch e.Kind {
	case KindText:
		*c = NewText(e.Text)
	case KindImage:
		*c = NewImage(e.Data)
	default:
		return fmt.Errorf("content decode: unrecognized kind %q", e.Kind)
	}
	return nil
}
