// Package clipboard publishes the collected buffer to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

const errorWriteClipboardFormat = "writing %d bytes to clipboard: %w"

// ErrUnavailable reports that no clipboard backend exists on this system.
var ErrUnavailable = errors.New("clipboard is not available on this system (install xclip, xsel, or wl-clipboard)")

// Copier copies textual data to the system clipboard.
type Copier interface {
	// Available reports whether Copy can succeed at all; it is checked before any traversal.
	Available() error
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	unsupported func() bool
	writeAll    func(string) error
}

// NewService constructs a clipboard service backed by the system clipboard.
func NewService() *Service {
	return &Service{
		unsupported: func() bool { return clipboard.Unsupported },
		writeAll:    clipboard.WriteAll,
	}
}

// Available returns ErrUnavailable when no clipboard utility was found.
func (service *Service) Available() error {
	if service.unsupported() {
		return ErrUnavailable
	}
	return nil
}

// Copy replaces the clipboard contents with text.
func (service *Service) Copy(text string) error {
	if err := service.Available(); err != nil {
		return err
	}
	if err := service.writeAll(text); err != nil {
		return fmt.Errorf(errorWriteClipboardFormat, len(text), err)
	}
	return nil
}

var _ Copier = (*Service)(nil)
