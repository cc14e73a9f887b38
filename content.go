package generative

import (
	"fmt"
	"strings"
)

// Roles used in a Content turn. The backend accepts exactly these two
// values; anything else is rejected before a request is sent.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Part is a single piece of a Content turn. Implementations are [Text] and
// [Blob].
type Part interface {
	isPart()
}

// Text is a plain text part.
type Text string

func (Text) isPart() {}

// Blob is a binary part, such as an image, identified by its MIME type.
type Blob struct {
	MIMEType string
	Data     []byte
}

func (Blob) isPart() {}

// ImageData returns a Blob part for raw image bytes. format is the image
// subtype, e.g. "png" or "jpeg".
func ImageData(format string, data []byte) Blob {
	return Blob{
		MIMEType: "image/" + format,
		Data:     data,
	}
}

// Content is one turn of a conversation: a role plus an ordered list of
// parts. Contents are value objects; once placed in a Request they must not
// be mutated.
type Content struct {
	Role  string
	Parts []Part
}

// NewUserContent wraps parts in a single user-role Content turn.
func NewUserContent(parts ...Part) *Content {
	return &Content{Role: RoleUser, Parts: parts}
}

// Joined returns the concatenation of all text parts in the content.
func (c *Content) Joined() string {
	var sb strings.Builder
	for _, p := range c.Parts {
		if t, ok := p.(Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

// normalizeParts validates a variadic parts list and wraps it in a user
// turn. All public entry points funnel prompt input through here so they
// stay single-shaped.
func normalizeParts(parts []Part) (*Content, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("prompt must contain at least one part")
	}
	for i, p := range parts {
		if err := validatePart(p); err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
	}
	return NewUserContent(parts...), nil
}

func validatePart(p Part) error {
	switch v := p.(type) {
	case Text:
		return nil
	case Blob:
		if v.MIMEType == "" {
			return fmt.Errorf("blob part is missing a MIME type")
		}
		if !strings.Contains(v.MIMEType, "/") {
			return fmt.Errorf("malformed MIME type %q", v.MIMEType)
		}
		if len(v.Data) == 0 {
			return fmt.Errorf("blob part has no data")
		}
		return nil
	case nil:
		return fmt.Errorf("nil part")
	default:
		return fmt.Errorf("unsupported part type %T", p)
	}
}
