package service

import (
	"errors"
	"testing"
)

func TestAddAndListReminder(t *testing.T) {
	t.Parallel()
	s := NewReminders(newTestDB(t))

	id, err := s.Add("user", "Take pill", "09:00")
	if err != nil {
		t.Fatalf("add reminder: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected non-zero id")
	}

	reminders, err := s.List("user")
	if err != nil {
		t.Fatalf("list reminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(reminders))
	}
	r := reminders[0]
	if r.Name != "Take pill" || r.Time != "09:00" || r.Completed {
		t.Fatalf("unexpected reminder: %+v", r)
	}
}

func TestAddReminderValidation(t *testing.T) {
	t.Parallel()
	s := NewReminders(newTestDB(t))

	if _, err := s.Add("user", "", "09:00"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
	if _, err := s.Add("user", "Take pill", "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank time, got %v", err)
	}
}

func TestListRemindersOrderedByTime(t *testing.T) {
	t.Parallel()
	s := NewReminders(newTestDB(t))

	for _, r := range [][2]string{{"evening walk", "19:00"}, {"take pill", "09:00"}, {"lunch", "12:30"}} {
		if _, err := s.Add("user", r[0], r[1]); err != nil {
			t.Fatalf("add %q: %v", r[0], err)
		}
	}

	reminders, err := s.List("user")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	times := []string{}
	for _, r := range reminders {
		times = append(times, r.Time)
	}
	want := []string{"09:00", "12:30", "19:00"}
	for i := range want {
		if times[i] != want[i] {
			t.Fatalf("unexpected order: got %v want %v", times, want)
		}
	}
}

func TestListRemindersPartitioned(t *testing.T) {
	t.Parallel()
	s := NewReminders(newTestDB(t))

	if _, err := s.Add("alice", "yoga", "07:00"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add("bob", "swim", "08:00"); err != nil {
		t.Fatalf("add: %v", err)
	}

	reminders, err := s.List("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(reminders) != 1 || reminders[0].Name != "yoga" {
		t.Fatalf("expected only alice's reminder, got %+v", reminders)
	}
}

func TestCompleteMissingReminderIsNoop(t *testing.T) {
	t.Parallel()
	s := NewReminders(newTestDB(t))

	if err := s.Complete("user", 42); err != nil {
		t.Fatalf("complete missing id should succeed, got %v", err)
	}
}

func TestCompleteScopedToOwner(t *testing.T) {
	t.Parallel()
	s := NewReminders(newTestDB(t))

	id, err := s.Add("alice", "yoga", "07:00")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// bob cannot complete alice's reminder
	if err := s.Complete("bob", id); err != nil {
		t.Fatalf("complete as other owner: %v", err)
	}
	reminders, err := s.List("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if reminders[0].Completed {
		t.Fatalf("reminder should still be pending")
	}

	if err := s.Complete("alice", id); err != nil {
		t.Fatalf("complete: %v", err)
	}
	reminders, _ = s.List("alice")
	if !reminders[0].Completed {
		t.Fatalf("reminder should be completed")
	}
}

func TestDeleteCompleted(t *testing.T) {
	t.Parallel()
	s := NewReminders(newTestDB(t))

	doneID, err := s.Add("alice", "done task", "08:00")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add("alice", "pending task", "09:00"); err != nil {
		t.Fatalf("add: %v", err)
	}
	otherID, err := s.Add("bob", "bob task", "10:00")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Complete("alice", doneID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.Complete("bob", otherID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	deleted, err := s.DeleteCompleted("alice")
	if err != nil {
		t.Fatalf("delete completed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted row, got %d", deleted)
	}

	remaining, _ := s.List("alice")
	if len(remaining) != 1 || remaining[0].Name != "pending task" {
		t.Fatalf("unexpected remaining reminders: %+v", remaining)
	}

	// bob's completed reminder is untouched
	bobs, _ := s.List("bob")
	if len(bobs) != 1 {
		t.Fatalf("bob's reminders should be unaffected, got %+v", bobs)
	}

	// no-op when nothing is completed
	deleted, err = s.DeleteCompleted("alice")
	if err != nil || deleted != 0 {
		t.Fatalf("expected no-op, got deleted=%d err=%v", deleted, err)
	}
}

func TestPendingExcludesCompleted(t *testing.T) {
	t.Parallel()
	s := NewReminders(newTestDB(t))

	id, err := s.Add("user", "old", "06:00")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.Add("user", "new", "07:00"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Complete("user", id); err != nil {
		t.Fatalf("complete: %v", err)
	}

	pending, err := s.Pending("user")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Name != "new" {
		t.Fatalf("unexpected pending set: %+v", pending)
	}
}
