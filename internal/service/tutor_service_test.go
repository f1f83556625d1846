package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub/internal/advisory"
	"schoolhub/internal/logger"
	"schoolhub/internal/models"
)

func newTestTutor(gen advisory.Generator) *TutorService {
	return NewTutorService(advisory.New(gen, logger.Discard()), logger.Discard())
}

func TestTutorOpenInjectsWelcome(t *testing.T) {
	tutor := newTestTutor(&scriptedGenerator{text: "ok"})

	st := tutor.Open("Physics Fundamentals")
	assert.True(t, st.Open)
	require.Len(t, st.Messages, 1)
	assert.Equal(t, models.ChatRoleAssistant, st.Messages[0].Role)
	assert.Contains(t, st.Messages[0].Text, "Physics Fundamentals")
}

func TestTutorBlankMessage(t *testing.T) {
	gen := &scriptedGenerator{text: "ok"}
	tutor := newTestTutor(gen)
	tutor.Open("Maths")

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := tutor.Send(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Len(t, tutor.State().Messages, 1)
	assert.Zero(t, gen.callCount())
}

func TestTutorReplyAlternates(t *testing.T) {
	tests := []struct {
		name         string
		gen          *scriptedGenerator
		wantText     string
		wantDegraded bool
	}{
		{name: "answer", gen: &scriptedGenerator{text: "Force equals mass times acceleration."}, wantText: "Force equals mass times acceleration."},
		{name: "service failure", gen: &scriptedGenerator{err: errors.New("503")}, wantText: advisory.TutorFallback, wantDegraded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tutor := newTestTutor(tt.gen)
			tutor.Open("Physics")

			turn, err := tutor.Send(context.Background(), "What is Newton's second law?")
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, turn.Message.Text)
			assert.Equal(t, tt.wantDegraded, turn.Degraded)

			msgs := tutor.State().Messages
			require.Len(t, msgs, 3)
			assert.Equal(t, models.ChatRoleUser, msgs[1].Role)
			assert.Equal(t, models.ChatRoleAssistant, msgs[2].Role)
			assert.Equal(t, 1, tt.gen.callCount())
		})
	}
}

func TestTutorWithoutSession(t *testing.T) {
	tutor := newTestTutor(&scriptedGenerator{text: "ok"})
	_, err := tutor.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoTutorSession)

	tutor.Open("History")
	tutor.Close()
	assert.False(t, tutor.State().Open)
	_, err = tutor.Send(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoTutorSession)
}

func TestTutorReopenStartsFresh(t *testing.T) {
	tutor := newTestTutor(&scriptedGenerator{text: "ok"})
	tutor.Open("History")
	_, err := tutor.Send(context.Background(), "hello")
	require.NoError(t, err)

	tutor.Close()
	st := tutor.Open("History")
	assert.Len(t, st.Messages, 1)
}

// blockingTutor holds replies until released
type blockingTutor struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingTutor) TutorReply(context.Context, string, []models.ChatMessage, string, string) advisory.Reply {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return advisory.Reply{Text: "late"}
}

func TestTutorPendingAndTeardown(t *testing.T) {
	bt := &blockingTutor{started: make(chan struct{}), release: make(chan struct{})}
	tutor := NewTutorService(bt, logger.Discard())
	tutor.Open("Chemistry")

	done := make(chan error, 1)
	go func() {
		_, err := tutor.Send(context.Background(), "first")
		done <- err
	}()
	<-bt.started

	assert.True(t, tutor.State().Pending)
	_, err := tutor.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrReplyPending)

	tutor.Close()
	close(bt.release)
	assert.ErrorIs(t, <-done, ErrNoTutorSession)
	assert.False(t, tutor.State().Open)
}
