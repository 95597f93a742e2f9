package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	due := time.Date(2024, 3, 1, 17, 45, 0, 0, time.FixedZone("CET", 3600))

	task := NewTask(4, "Buy milk", PriorityMedium, due)

	assert.Equal(t, int64(4), task.OwnerID)
	assert.Equal(t, "Buy milk", task.Description)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), task.DueDate)
	assert.Zero(t, task.ID)
}

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{"valid task", Task{OwnerID: 1, Description: "Valid", Priority: PriorityHigh}, true},
		{"missing owner", Task{Description: "Valid", Priority: PriorityHigh}, false},
		{"empty description", Task{OwnerID: 1, Priority: PriorityHigh}, false},
		{"unknown priority", Task{OwnerID: 1, Description: "Valid", Priority: "Urgent"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.IsValid())
		})
	}
}

func TestTask_Complete(t *testing.T) {
	task := NewTask(1, "Pay rent", PriorityHigh, time.Now())
	assert.False(t, task.IsCompleted())

	done := task.Complete()
	assert.True(t, done.IsCompleted())
	assert.False(t, task.IsCompleted(), "Complete returns a copy")

	assert.True(t, done.Complete().IsCompleted())
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	assert.True(t, NewTask(1, "late", PriorityLow, now.AddDate(0, 0, -1)).IsOverdue(now))
	assert.False(t, NewTask(1, "today", PriorityLow, now).IsOverdue(now))
	assert.False(t, NewTask(1, "late but done", PriorityLow, now.AddDate(0, 0, -1)).Complete().IsOverdue(now))
}

func TestTask_String(t *testing.T) {
	task := NewTask(1, "Buy milk", PriorityLow, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "Buy milk | Low | 2024-01-01 | Pending", task.String())
	assert.Equal(t, "Buy milk | Low | 2024-01-01 | Completed", task.Complete().String())
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input    string
		expected Priority
		ok       bool
	}{
		{"High", PriorityHigh, true},
		{"medium", PriorityMedium, true},
		{"  LOW ", PriorityLow, true},
		{"Urgent", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, ok := ParsePriority(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPriority_RankAndNext(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Equal(t, 3, Priority("Urgent").Rank())

	p := PriorityHigh
	for range Priorities() {
		p = p.Next()
	}
	assert.Equal(t, PriorityHigh, p, "Next cycles back to High")
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("completed")
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, st)
	assert.True(t, st.IsTerminal())

	st, ok = ParseStatus("Pending")
	assert.True(t, ok)
	assert.False(t, st.IsTerminal())

	_, ok = ParseStatus("Done")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
	_, err = ParseDate("tomorrow")
	assert.Error(t, err)
}

func TestParseTaskOrder(t *testing.T) {
	for input, expected := range map[string]TaskOrder{
		"":         OrderCreated,
		"created":  OrderCreated,
		"due":      OrderDue,
		"priority": OrderPriority,
	} {
		order, ok := ParseTaskOrder(input)
		assert.True(t, ok, input)
		assert.Equal(t, expected, order)
	}

	_, ok := ParseTaskOrder("alphabetical")
	assert.False(t, ok)
}

func TestUser_String(t *testing.T) {
	assert.Equal(t, "alice", User{ID: 1, Username: "alice", PasswordHash: "x"}.String())
}
