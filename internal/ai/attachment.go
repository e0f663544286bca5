package ai

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/inkwell/internal/note"
)

// MaxAttachmentSize is the ceiling for a custom-request attachment.
// Oversized files are rejected before any read or encoding work.
const MaxAttachmentSize = 5 << 20

// ErrAttachmentTooLarge rejects attachments over MaxAttachmentSize.
var ErrAttachmentTooLarge = errors.New("attachment exceeds 5 MB")

// textExts is the fixed set of text and code file extensions whose
// content is folded into the prompt text instead of being sent as a
// binary part.
var textExts = map[string]bool{
	".txt": true, ".md": true, ".csv": true, ".json": true,
	".js": true, ".ts": true, ".html": true, ".css": true,
	".php": true, ".py": true, ".java": true,
}

// Attachment is one file attached to a custom generation request.
// Exactly one attachment is allowed per request. Path keeps the
// original location for previewing; the request itself uses Data.
type Attachment struct {
	Name string
	Path string
	MIME string
	Data []byte
}

// IsImage reports whether the attachment travels as inline binary data.
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.MIME, "image/")
}

// IsText reports whether the attachment's content is folded into the
// prompt text.
func (a *Attachment) IsText() bool {
	return textExts[strings.ToLower(filepath.Ext(a.Name))]
}

// LoadAttachment reads a file for use as a request attachment. The
// size check runs against the file stat, before the content is read.
// Files that are neither a known image type nor a known text extension
// are rejected.
func LoadAttachment(path string) (*Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}
	if info.Size() > MaxAttachmentSize {
		return nil, ErrAttachmentTooLarge
	}
	ext := strings.ToLower(filepath.Ext(path))
	mimeType := mime.TypeByExtension(ext)
	a := &Attachment{Name: filepath.Base(path), Path: path, MIME: mimeType}
	if !a.IsImage() && !a.IsText() {
		return nil, &note.ValidationError{
			Field:  "attachment",
			Reason: fmt.Sprintf("unsupported file type %q", ext),
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}
	a.Data = data
	return a, nil
}
