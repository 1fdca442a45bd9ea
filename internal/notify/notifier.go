// Package notify delivers reminder alerts through a pluggable capability.
package notify

import "context"

// Alert is a single reminder notification
type Alert struct {
	Title string
	Body  string
	// Tag identifies the reminder; a new alert with the same tag replaces the old one
	Tag                string
	RequireInteraction bool
	Silent             bool
}

// Notifier is the platform's "can deliver alerts" capability
type Notifier interface {
	// Supported reports whether alerts can be delivered at all
	Supported() bool
	// RequestPermission asks the platform for permission to deliver alerts
	RequestPermission(ctx context.Context) (bool, error)
	ShowAlert(ctx context.Context, alert Alert) error
}

// Unsupported is a Notifier for platforms without alert delivery
type Unsupported struct{}

// Supported always reports false
func (Unsupported) Supported() bool { return false }

// RequestPermission never prompts and always reports false
func (Unsupported) RequestPermission(context.Context) (bool, error) { return false, nil }

// ShowAlert drops the alert
func (Unsupported) ShowAlert(context.Context, Alert) error { return nil }
