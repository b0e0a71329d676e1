package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "mediconnect" }

func TestScheduleAppointmentReminderEnqueues(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	runAt := time.Now().Add(24 * time.Hour)
	if err := client.ScheduleAppointmentReminder(context.Background(), uuid.New(), runAt); err != nil {
		t.Fatalf("ScheduleAppointmentReminder: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer rdb.Close()

	scheduled, err := rdb.ZCard(context.Background(), "asynq:{mediconnect}:scheduled").Result()
	if err != nil {
		t.Fatalf("inspect scheduled set: %v", err)
	}
	if scheduled != 1 {
		t.Errorf("scheduled set has %d entries, want 1", scheduled)
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{redisURL: ""}); err == nil {
		t.Error("expected error for missing redis url")
	}
}

func TestAppointmentReminderTaskCodec(t *testing.T) {
	id := uuid.New().String()

	task, err := NewAppointmentReminderTask(AppointmentReminderPayload{AppointmentID: id})
	if err != nil {
		t.Fatalf("NewAppointmentReminderTask: %v", err)
	}
	if task.Type() != TaskAppointmentReminder {
		t.Errorf("task type = %q, want %q", task.Type(), TaskAppointmentReminder)
	}

	payload, err := ParseAppointmentReminderPayload(task)
	if err != nil {
		t.Fatalf("ParseAppointmentReminderPayload: %v", err)
	}
	if payload.AppointmentID != id {
		t.Errorf("appointmentId = %q, want %q", payload.AppointmentID, id)
	}

	garbage := asynq.NewTask(TaskAppointmentReminder, []byte("not json"))
	if _, err := ParseAppointmentReminderPayload(garbage); err == nil {
		t.Error("expected error for malformed payload")
	}
}
