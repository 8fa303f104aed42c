package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{raw: "todo", want: StatusTodo},
		{raw: "in_progress", want: StatusInProgress},
		{raw: "completed", want: StatusCompleted},
		{raw: "done", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "TODO", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("high")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 3, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 0, Priority("other").Rank())
}

func TestTask_Summary(t *testing.T) {
	task := Task{Title: "Write report", Priority: PriorityHigh, Status: StatusInProgress}
	assert.Equal(t, "[HIGH] Write report - in_progress", task.Summary())
}

func TestTask_CloneDoesNotShareDescription(t *testing.T) {
	orig := Task{ID: 1, Title: "a", Description: strPtr("desc")}
	c := orig.Clone()
	*c.Description = "changed"
	assert.Equal(t, "desc", *orig.Description)
}

func TestNewTask_WithDefaults(t *testing.T) {
	n := NewTask{Title: "x"}.WithDefaults()
	assert.Equal(t, StatusTodo, n.Status)
	assert.Equal(t, PriorityMedium, n.Priority)

	n = NewTask{Title: "x", Status: StatusCompleted, Priority: PriorityLow}.WithDefaults()
	assert.Equal(t, StatusCompleted, n.Status)
	assert.Equal(t, PriorityLow, n.Priority)
}

func TestNewTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      NewTask
		wantErr bool
	}{
		{name: "minimal", in: NewTask{Title: "T"}},
		{name: "max title", in: NewTask{Title: strings.Repeat("a", 200)}},
		{name: "multibyte title counts runes", in: NewTask{Title: strings.Repeat("é", 200)}},
		{name: "empty title", in: NewTask{Title: ""}, wantErr: true},
		{name: "long title", in: NewTask{Title: strings.Repeat("a", 201)}, wantErr: true},
		{name: "max description", in: NewTask{Title: "t", Description: strPtr(strings.Repeat("d", 1000))}},
		{name: "long description", in: NewTask{Title: "t", Description: strPtr(strings.Repeat("d", 1001))}, wantErr: true},
		{name: "bad status", in: NewTask{Title: "t", Status: "blocked"}, wantErr: true},
		{name: "bad priority", in: NewTask{Title: "t", Priority: "urgent"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskPatch_ValidateOnlyPresentFields(t *testing.T) {
	assert.NoError(t, TaskPatch{}.Validate())

	empty := ""
	assert.ErrorIs(t, TaskPatch{Title: &empty}.Validate(), ErrValidation)

	bad := Status("nope")
	assert.ErrorIs(t, TaskPatch{Status: &bad}.Validate(), ErrValidation)

	assert.NoError(t, TaskPatch{Description: OptionalString{Set: true}}.Validate())
	assert.ErrorIs(t, TaskPatch{Description: Some(strings.Repeat("x", 1001))}.Validate(), ErrValidation)
}

func TestTaskPatch_Apply(t *testing.T) {
	base := Task{ID: 7, Title: "old", Description: strPtr("keep"), Status: StatusTodo, Priority: PriorityLow}

	t.Run("empty patch changes nothing", func(t *testing.T) {
		assert.Equal(t, base, TaskPatch{}.Apply(base))
	})

	t.Run("partial patch", func(t *testing.T) {
		done := StatusCompleted
		got := TaskPatch{Status: &done}.Apply(base)
		assert.Equal(t, StatusCompleted, got.Status)
		assert.Equal(t, "old", got.Title)
		assert.Equal(t, "keep", *got.Description)
		assert.Equal(t, PriorityLow, got.Priority)
	})

	t.Run("explicit null clears description", func(t *testing.T) {
		got := TaskPatch{Description: OptionalString{Set: true}}.Apply(base)
		assert.Nil(t, got.Description)
	})

	t.Run("new description", func(t *testing.T) {
		title := "new"
		high := PriorityHigh
		got := TaskPatch{Title: &title, Description: Some("fresh"), Priority: &high}.Apply(base)
		assert.Equal(t, "new", got.Title)
		assert.Equal(t, "fresh", *got.Description)
		assert.Equal(t, PriorityHigh, got.Priority)
	})
}
