// Package screen defines what the terminal UI's screens implement and the
// services they share.
package screen

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learntype/internal/coaching"
	"github.com/abhisek/learntype/internal/journal"
	"github.com/abhisek/learntype/internal/session"
	"github.com/abhisek/learntype/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is implemented by screens that handle Esc themselves instead
// of letting the app pop them.
type BackHandler interface {
	HandlesBack() bool
}

// Services are shared by every screen.
type Services struct {
	Engine  *session.Engine
	Journal *journal.Journal
	Coach   *coaching.Coach
	Logger  *zap.Logger
}
