package ui

import (
	"ghgrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// browserMsg reports the outcome of opening a repository URL
type browserMsg struct {
	url string
	err error
}

// clearStatusMsg clears the status bar if it still shows message
type clearStatusMsg struct {
	message string
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
