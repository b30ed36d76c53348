package web

import (
	"strings"
	"testing"
	"time"

	"musicdott/internal/config"
)

func TestCleanup(t *testing.T) {
	jm := NewJobManager()
	cfg := config.DefaultConfig()

	// Create an old completed job (2 hours ago)
	old := jm.CreateJob(cfg)
	jm.UpdateJob(old.ID, func(j *Job) {
		j.Status = StatusCompleted
	})
	// Backdate CompletedAt
	jm.mu.Lock()
	past := time.Now().Add(-2 * time.Hour)
	jm.jobs[old.ID].CompletedAt = &past
	jm.mu.Unlock()

	// Create a recent completed job (5 minutes ago)
	recent := jm.CreateJob(cfg)
	jm.UpdateJob(recent.ID, func(j *Job) {
		j.Status = StatusCompleted
	})

	// Create a running job (should never be cleaned)
	running := jm.CreateJob(cfg)
	jm.UpdateJob(running.ID, func(j *Job) {
		j.Status = StatusRunning
	})

	jm.cleanup()

	if _, err := jm.GetJob(old.ID); err == nil {
		t.Error("old completed job should have been cleaned up")
	}
	if _, err := jm.GetJob(recent.ID); err != nil {
		t.Error("recent completed job should NOT have been cleaned up")
	}
	if _, err := jm.GetJob(running.ID); err != nil {
		t.Error("running job should NOT have been cleaned up")
	}
}

func TestCreateJobUniqueIDs(t *testing.T) {
	jm := NewJobManager()
	cfg := config.DefaultConfig()

	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		job := jm.CreateJob(cfg)
		if ids[job.ID] {
			t.Fatalf("duplicate job ID: %s", job.ID)
		}
		ids[job.ID] = true
	}
}

func TestJobIDFormat(t *testing.T) {
	jm := NewJobManager()
	cfg := config.DefaultConfig()

	job := jm.CreateJob(cfg)
	if !strings.HasPrefix(job.ID, "job_") {
		t.Errorf("job ID should start with 'job_', got %q", job.ID)
	}
}

func TestUpdateJobTimestamps(t *testing.T) {
	jm := NewJobManager()
	cfg := config.DefaultConfig()
	job := jm.CreateJob(cfg)

	// Pending → Running should set StartedAt
	jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusRunning
	})
	j, _ := jm.GetJob(job.ID)
	if j.StartedAt == nil {
		t.Error("StartedAt should be set when status changes to running")
	}

	// Running → Completed should set CompletedAt
	jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusCompleted
	})
	j, _ = jm.GetJob(job.ID)
	if j.CompletedAt == nil {
		t.Error("CompletedAt should be set when status changes to completed")
	}
}

func TestUpdateJobNotFound(t *testing.T) {
	jm := NewJobManager()
	err := jm.UpdateJob("nonexistent", func(j *Job) {})
	if err == nil {
		t.Error("UpdateJob should return error for nonexistent job")
	}
}

func TestGetJobReturnsCopy(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(config.DefaultConfig())

	got, err := jm.GetJob(job.ID)
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the returned job must not touch the stored one.
	got.Status = StatusFailed
	got.Warnings = append(got.Warnings, "local edit")

	stored, err := jm.GetJob(job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != StatusPending {
		t.Errorf("stored status = %s, want pending", stored.Status)
	}
	if len(stored.Warnings) != 0 {
		t.Errorf("stored warnings = %v, want none", stored.Warnings)
	}
}

func TestSubscribeDeliversSnapshots(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(config.DefaultConfig())

	ch := jm.Subscribe(job.ID)
	jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusRunning
		j.Warnings = append(j.Warnings, "first")
	})

	update := <-ch

	// A later mutation must not show through the already-delivered update.
	jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusFailed
		j.Warnings[0] = "rewritten"
	})

	if update.Status != StatusRunning {
		t.Errorf("delivered status = %s, want running", update.Status)
	}
	if update.Warnings[0] != "first" {
		t.Errorf("delivered warning = %q, want %q", update.Warnings[0], "first")
	}

	jm.Unsubscribe(job.ID, ch)
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	jm := NewJobManager()
	cfg := config.DefaultConfig()
	job := jm.CreateJob(cfg)

	ch := jm.Subscribe(job.ID)

	jm.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusRunning
	})

	select {
	case update := <-ch:
		if update.Status != StatusRunning {
			t.Errorf("expected status running, got %s", update.Status)
		}
	case <-time.After(time.Second):
		t.Error("timed out waiting for update")
	}

	jm.Unsubscribe(job.ID, ch)
}
