package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
	"github.com/hochfrequenz/actions-janitor/internal/executor"
	"github.com/hochfrequenz/actions-janitor/internal/janitor"
)

func TestSlackMessage_Build(t *testing.T) {
	msg := SlackMessage{
		Text: "Cleanup finished",
		Attachments: []SlackAttachment{
			{
				Color: "good",
				Title: "octo/hello",
				Text:  "deleted 12, failed 0",
			},
		},
	}

	payload, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	if len(payload) == 0 {
		t.Error("Payload should not be empty")
	}
}

func TestSlackNotifier_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewSlackNotifier(server.URL)
	err := notifier.Send(Notification{
		Title:   "Test",
		Message: "Test message",
		Type:    NotifyInfo,
	})

	if err != nil {
		t.Errorf("Send failed: %v", err)
	}
}

func TestNotificationTypeColors(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want string
	}{
		{NotifySuccess, "good"},
		{NotifyWarning, "warning"},
		{NotifyError, "danger"},
		{NotifyInfo, "#439FE0"},
	}

	for _, tt := range tests {
		got := SlackColor(tt.typ)
		if got != tt.want {
			t.Errorf("SlackColor(%v) = %s, want %s", tt.typ, got, tt.want)
		}
	}
}

func TestFromReport(t *testing.T) {
	report := &janitor.Report{
		Repo:    domain.RepoRef{Owner: "octo", Name: "hello"},
		Summary: executor.Summary{Deleted: 12, Failed: 2},
	}

	n := FromReport(report)
	if n.Type != NotifyWarning {
		t.Errorf("Type = %v, want warning when deletions failed", n.Type)
	}
	if n.Repository != "octo/hello" {
		t.Errorf("Repository = %q", n.Repository)
	}
	if !strings.Contains(n.Message, "deleted 12") || !strings.Contains(n.Message, "failed 2") {
		t.Errorf("Message = %q", n.Message)
	}
}

func TestFromReport_DryRun(t *testing.T) {
	report := &janitor.Report{
		Repo:    domain.RepoRef{Owner: "octo", Name: "hello"},
		DryRun:  true,
		Summary: executor.Summary{Skipped: 4},
	}

	n := FromReport(report)
	if n.Type != NotifyInfo {
		t.Errorf("Type = %v, want info for dry run", n.Type)
	}
	if !strings.Contains(n.Message, "4 run(s) would be deleted") {
		t.Errorf("Message = %q", n.Message)
	}
}
