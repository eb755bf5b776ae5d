package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService provides actions on returned items.
type ResultActionService struct {
	copyText func(string) error
	open     func(string) error
}

// NewResultActionService creates a new result action service using the
// system clipboard and browser.
func NewResultActionService() *ResultActionService {
	return &ResultActionService{
		copyText: clipboard.WriteAll,
		open:     openURL,
	}
}

// CopyMagnet copies the item's magnet link to the system clipboard.
// Items without a magnet fall back to their torrent file link.
func (s *ResultActionService) CopyMagnet(_ context.Context, item *domain.Item) error {
	if item == nil {
		return fmt.Errorf("item is nil")
	}

	link := item.Magnet
	if link == "" {
		link = item.Torrent
	}
	if link == "" {
		return fmt.Errorf("%w: %q has no magnet link", domain.ErrNotFound, item.Name)
	}
	if err := s.copyText(link); err != nil {
		return fmt.Errorf("copying magnet link: %w", err)
	}
	return nil
}

// OpenItem opens the item's page in the default browser.
func (s *ResultActionService) OpenItem(_ context.Context, item *domain.Item) error {
	if item == nil {
		return fmt.Errorf("item is nil")
	}
	if item.URL == "" {
		return fmt.Errorf("%w: %q has no url", domain.ErrNotFound, item.Name)
	}
	return s.open(item.URL)
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", url)
	case osLinux:
		cmd = exec.Command("xdg-open", url)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
