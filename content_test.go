package generative

import (
	"strings"
	"testing"
)

func TestNormalizeParts(t *testing.T) {
	testCases := []struct {
		name    string
		parts   []Part
		wantErr string
	}{
		{
			name:  "single text part",
			parts: []Part{Text("Hello")},
		},
		{
			name:  "text and image",
			parts: []Part{Text("What is this?"), ImageData("png", []byte{0x89, 0x50})},
		},
		{
			name:    "empty prompt",
			parts:   nil,
			wantErr: "at least one part",
		},
		{
			name:    "nil part",
			parts:   []Part{Text("ok"), nil},
			wantErr: "nil part",
		},
		{
			name:    "blob without mime type",
			parts:   []Part{Blob{Data: []byte{1}}},
			wantErr: "MIME type",
		},
		{
			name:    "blob with malformed mime type",
			parts:   []Part{Blob{MIMEType: "png", Data: []byte{1}}},
			wantErr: "malformed MIME type",
		},
		{
			name:    "blob without data",
			parts:   []Part{Blob{MIMEType: "image/png"}},
			wantErr: "no data",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			content, err := normalizeParts(tc.parts)
			if tc.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tc.wantErr) {
					t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if content.Role != RoleUser {
				t.Errorf("expected user role, got %q", content.Role)
			}
			if len(content.Parts) != len(tc.parts) {
				t.Errorf("parts dropped: expected %d, got %d", len(tc.parts), len(content.Parts))
			}
		})
	}
}

func TestImageData(t *testing.T) {
	blob := ImageData("jpeg", []byte{0xFF, 0xD8})
	if blob.MIMEType != "image/jpeg" {
		t.Errorf("unexpected MIME type: %q", blob.MIMEType)
	}
}

func TestContentJoined(t *testing.T) {
	c := &Content{Parts: []Part{Text("a"), ImageData("png", []byte{1}), Text("b")}}
	if got := c.Joined(); got != "ab" {
		t.Errorf("expected %q, got %q", "ab", got)
	}
}
