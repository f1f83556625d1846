package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub/internal/flow"
	"schoolhub/internal/logger"
	"schoolhub/internal/receipts"
	"schoolhub/internal/validation"
)

func TestCreateExam(t *testing.T) {
	clock := &manualClock{}
	svc := NewTeacherService(testTimings, clock.schedule, nil, logger.Discard())

	assert.ErrorIs(t, svc.CreateExam(ExamInput{Title: "  "}), flow.ErrGuardRejected)
	assert.Zero(t, clock.len())

	var verr *validation.ValidationError
	assert.ErrorAs(t, svc.CreateExam(ExamInput{Title: "Midterm", Date: "next tuesday"}), &verr)

	require.NoError(t, svc.CreateExam(ExamInput{Title: " Midterm ", Subject: "Physics", Date: "2024-04-12"}))
	clock.drain(t)

	exams := svc.State().Exams
	require.Len(t, exams, 1)
	assert.Equal(t, "Midterm", exams[0].Title)
	assert.True(t, receipts.Valid(receipts.PrefixExam, exams[0].Code))
}

func TestSendMessage(t *testing.T) {
	tests := []struct {
		name        string
		announcer   *recordingAnnouncer
		audience    string
		wantEmailed bool
	}{
		{name: "without email", audience: AudienceStudents},
		{name: "emailed to staff", announcer: &recordingAnnouncer{}, audience: AudienceStaff, wantEmailed: true},
		{name: "email failure still sends", announcer: &recordingAnnouncer{err: errors.New("ses down")}, audience: AudienceAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &manualClock{}
			var announce Announcer
			if tt.announcer != nil {
				announce = tt.announcer
			}
			svc := NewTeacherService(testTimings, clock.schedule, announce, logger.Discard())

			require.NoError(t, svc.SendMessage(MessageInput{Audience: tt.audience, Text: "Field trip on Friday"}))
			assert.ErrorIs(t, svc.SendMessage(MessageInput{Text: "again"}), flow.ErrBusy)
			clock.step(t)

			st := svc.State()
			assert.Equal(t, flow.Succeeded, st.Message.Status)
			require.Len(t, st.Outbox, 1)
			assert.Equal(t, tt.audience, st.Outbox[0].Audience)
			if tt.wantEmailed {
				assert.Equal(t, len(Recipients(tt.audience)), st.Outbox[0].Emailed)
			} else {
				assert.Zero(t, st.Outbox[0].Emailed)
			}
		})
	}
}

func TestSendBlankMessageIsRejected(t *testing.T) {
	clock := &manualClock{}
	svc := NewTeacherService(testTimings, clock.schedule, nil, logger.Discard())

	assert.ErrorIs(t, svc.SendMessage(MessageInput{Text: " \n\t "}), flow.ErrGuardRejected)
	assert.Zero(t, clock.len())
	assert.Empty(t, svc.State().Outbox)
}

func TestRecipients(t *testing.T) {
	all := Recipients(AudienceAll)
	students := Recipients(AudienceStudents)
	staff := Recipients(AudienceStaff)

	assert.NotEmpty(t, students)
	assert.NotEmpty(t, staff)
	assert.Len(t, all, len(students)+len(staff))
}
