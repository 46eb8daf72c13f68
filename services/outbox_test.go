package services

import (
	"testing"
)

func TestOutboxDelivers(t *testing.T) {
	sender := &fakeSender{}
	outbox := newTestOutbox(sender)

	outbox.Enqueue(Message{To: []string{"a@example.edu"}, Subject: "hello", Body: "hi"})
	outbox.Enqueue(Message{To: []string{"b@example.edu"}, Subject: "again", Body: "hi"})
	outbox.Close()

	if got := len(sender.messages()); got != 2 {
		t.Fatalf("expected 2 delivered messages, got %d", got)
	}
}

func TestOutboxRetriesTransientFailure(t *testing.T) {
	sender := &fakeSender{failures: 2}
	outbox := newTestOutbox(sender)

	outbox.Enqueue(Message{To: []string{"a@example.edu"}, Subject: "retry me", Body: "hi"})
	outbox.Close()

	msgs := sender.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected delivery on the third attempt, got %d messages", len(msgs))
	}
}

func TestOutboxSwallowsPermanentFailure(t *testing.T) {
	sender := &fakeSender{failures: 999}
	outbox := newTestOutbox(sender)

	// Enqueue must not fail or panic even when delivery never succeeds.
	outbox.Enqueue(Message{To: []string{"a@example.edu"}, Subject: "doomed", Body: "hi"})
	outbox.Close()

	if got := len(sender.messages()); got != 0 {
		t.Fatalf("expected no deliveries, got %d", got)
	}
}

func TestOutboxIgnoresEmptyRecipients(t *testing.T) {
	sender := &fakeSender{}
	outbox := newTestOutbox(sender)

	outbox.Enqueue(Message{Subject: "nobody home"})
	outbox.Close()

	if got := len(sender.messages()); got != 0 {
		t.Fatalf("expected message without recipients to be dropped, got %d", got)
	}
}
