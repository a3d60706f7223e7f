package notify

import (
	"fmt"

	"github.com/hochfrequenz/actions-janitor/internal/janitor"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotifyInfo NotificationType = iota
	NotifySuccess
	NotifyWarning
	NotifyError
)

// Notification represents a notification to be sent
type Notification struct {
	Title      string
	Message    string
	Type       NotificationType
	Repository string // Optional repository reference
}

// Notifier is the interface for sending notifications
type Notifier interface {
	Send(n Notification) error
}

// MultiNotifier sends to multiple notifiers
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a notifier that sends to all provided notifiers
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Send sends the notification to all notifiers
func (m *MultiNotifier) Send(n Notification) error {
	var lastErr error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(n); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// NoopNotifier does nothing (for testing or disabled notifications)
type NoopNotifier struct{}

func (NoopNotifier) Send(n Notification) error { return nil }

// FromReport builds a cleanup summary notification
func FromReport(report *janitor.Report) Notification {
	n := Notification{
		Repository: report.Repo.String(),
		Type:       NotifySuccess,
	}

	if report.DryRun {
		n.Title = fmt.Sprintf("Dry run for %s", report.Repo)
		n.Message = fmt.Sprintf("%d run(s) would be deleted across %d workflow(s), %d orphan(s)",
			report.Summary.Skipped, len(report.Workflows), len(report.Orphans))
		n.Type = NotifyInfo
		return n
	}

	n.Title = fmt.Sprintf("Cleanup finished for %s", report.Repo)
	n.Message = fmt.Sprintf("deleted %d, failed %d across %d workflow(s), %d orphan(s)",
		report.Summary.Deleted, report.Summary.Failed, len(report.Workflows), len(report.Orphans))
	if report.Summary.Failed > 0 {
		n.Type = NotifyWarning
	}
	return n
}
