package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvent_Dates(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		label string
		want  string
	}{
		{"single day", day(2024, time.June, 2), day(2024, time.June, 2), "", "2 June 2024"},
		{"no end date", day(2024, time.June, 2), time.Time{}, "", "2 June 2024"},
		{"same month", day(2024, time.June, 1), day(2024, time.June, 2), "", "1 - 2 June 2024"},
		{"across months", day(2024, time.June, 30), day(2024, time.July, 1), "", "30 June - 1 July 2024"},
		{"across years", day(2024, time.December, 30), day(2025, time.January, 2), "", "30 December 2024 - 2 January 2025"},
		{"label wins", day(2024, time.June, 1), day(2024, time.June, 30), "June 2024", "June 2024"},
		{"blank label ignored", day(2024, time.June, 1), day(2024, time.June, 30), "  ", "1 - 30 June 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &Event{StartsOn: tt.start, EndsOn: tt.end, DatesLabel: tt.label}
			assert.Equal(t, tt.want, ev.Dates())
		})
	}
}

func TestEvent_Validate(t *testing.T) {
	ev := &Event{}
	err := ev.Validate()
	require.ErrorIs(t, err, ErrValidation)
	ve := err.(*ValidationError)
	assert.True(t, ve.Has("title", CodeBlank))
	assert.True(t, ve.Has("starts_on", CodeBlank))

	ev = &Event{Title: "Workshop", StartsOn: day(2024, time.June, 2), EndsOn: day(2024, time.June, 1)}
	err = ev.Validate()
	require.Error(t, err)
	assert.True(t, err.(*ValidationError).Has("ends_on", CodeInvalid))

	ev.EndsOn = day(2024, time.June, 3)
	require.NoError(t, ev.Validate())
}

func TestMember_Validate(t *testing.T) {
	m := &Member{FirstName: "Ada", LastName: "Lovelace", Email: "not-an-email"}
	err := m.Validate()
	require.Error(t, err)
	assert.True(t, err.(*ValidationError).Has("email", CodeInvalid))

	m.Email = "ada@example.com"
	require.NoError(t, m.Validate())
}

func TestFeedback_Validate(t *testing.T) {
	for _, rating := range []int{0, 6, -1} {
		require.ErrorIs(t, (&Feedback{Rating: rating}).Validate(), ErrValidation)
	}
	for rating := MinFeedbackRating; rating <= MaxFeedbackRating; rating++ {
		require.NoError(t, (&Feedback{Rating: rating}).Validate())
	}
}

func TestAttendance_Status(t *testing.T) {
	assert.Equal(t, AttendanceUnknown, Attendance{}.Status())
	assert.False(t, Attendance{}.Recorded())
	assert.Equal(t, AttendanceAttended, Attendance{Attended: boolPtr(true)}.Status())
	assert.Equal(t, AttendanceAbsent, Attendance{Attended: boolPtr(false), Note: "ill"}.Status())
}

func TestInvitation_Path(t *testing.T) {
	inv := NewEventInvitation("tok-123", "reg-1", "ev-1", day(2024, time.June, 1))
	assert.Equal(t, "/invitations/tok-123", inv.Path())
	assert.Equal(t, InvitableEvent, inv.InvitableType)
}

func TestPaginationParams_Window(t *testing.T) {
	assert.Equal(t, [2]int{0, 7}, pair(PaginationParams{}.Window(7)))
	assert.Equal(t, [2]int{2, 4}, pair(PaginationParams{Page: 2, PageSize: 2}.Window(7)))
	assert.Equal(t, [2]int{7, 7}, pair(PaginationParams{Page: 9, PageSize: 2}.Window(7)))
}

func pair(a, b int) [2]int { return [2]int{a, b} }
