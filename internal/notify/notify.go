// Package notify sends desktop notifications.
package notify

import (
	"github.com/gen2brain/beeep"
)

// Notifier delivers a short message outside the terminal.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop sends notifications through the OS notification service.
type Desktop struct {
	AppName string
}

// Notify implements Notifier.
func (d Desktop) Notify(title, message string) error {
	if d.AppName != "" {
		title = d.AppName + ": " + title
	}
	return beeep.Notify(title, message, "")
}

// Nop drops every notification.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(string, string) error { return nil }

// Recorder keeps notifications in memory. Used in tests.
type Recorder struct {
	Sent []Notification
}

// Notification is one recorded notification.
type Notification struct {
	Title   string
	Message string
}

// Notify implements Notifier.
func (r *Recorder) Notify(title, message string) error {
	r.Sent = append(r.Sent, Notification{Title: title, Message: message})
	return nil
}
