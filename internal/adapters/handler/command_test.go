package handler

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/port"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRegistry struct {
	mock.Mock
	cmd port.Command
}

func (m *MockRegistry) Get(cmd string) (port.Command, error) {
	args := m.Called(cmd)
	return m.cmd, args.Error(1)
}

func (m *MockRegistry) Register(handler port.Command) {
	m.cmd = handler
	m.Called(handler)
}

func (m *MockRegistry) ListCommands() []string {
	m.Called()
	return []string{"foo", "bar"}
}

func (m *MockRegistry) Describe() []domain.CommandInfo {
	m.Called()
	return nil
}

type MockCmdHandler struct{ mock.Mock }

func (m *MockCmdHandler) Respond(ctx context.Context, timeout time.Duration, msg *domain.Message) error {
	args := m.Called(ctx, timeout, msg)
	return args.Error(0)
}

func (m *MockCmdHandler) GetCommand() string {
	return ""
}

func (m *MockCmdHandler) GetHelp() string {
	return ""
}

type fakeAuthorizer struct {
	allowed bool
}

func (f *fakeAuthorizer) IsAuthorized(_ context.Context, _ int64) bool {
	return f.allowed
}

type fakeTracker struct {
	allowed bool
	tracked int
}

func (f *fakeTracker) Track(_ context.Context, _ int64) bool {
	f.tracked++
	return f.allowed
}

func (f *fakeTracker) GetUsed(_ int64) int {
	return f.tracked
}

func (f *fakeTracker) GetLimit() int {
	return 0
}

func makeUpdate(txt string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			Text: txt,
			Chat: models.Chat{ID: 100},
			From: &models.User{ID: 200, Username: "bob", FirstName: "bob"},
		},
	}
}

func TestCommandHandler_Handle(t *testing.T) {
	type testcase struct {
		name        string
		update      *models.Update
		unallowed   bool
		overLimit   bool
		mockSetup   func(r *MockRegistry, ch *MockCmdHandler)
		wantCalled  bool
		wantTracked int
		wantMsg     *domain.Message
	}

	tests := []testcase{
		{
			name:   "no message in update",
			update: &models.Update{},
			mockSetup: func(_ *MockRegistry, _ *MockCmdHandler) {
				// No call
			},
		},
		{
			name:   "unknown command",
			update: makeUpdate("/unknown"),
			mockSetup: func(r *MockRegistry, _ *MockCmdHandler) {
				r.On("Get", "/unknown").Return(nil, errors.New("no handler"))
			},
		},
		{
			name:   "known command, Respond called successfully",
			update: makeUpdate("/hello"),
			mockSetup: func(r *MockRegistry, ch *MockCmdHandler) {
				r.On("Get", "/hello").Return(ch, nil)
				ch.On("Respond", mock.Anything, mock.Anything,
					mock.AnythingOfType("*domain.Message")).Return(nil)
			},
			wantCalled:  true,
			wantTracked: 1,
			wantMsg: &domain.Message{
				ID:       1,
				ChatID:   100,
				Username: "@bob",
				Text:     "/hello",
			},
		},
		{
			name:   "mention and case are normalized",
			update: makeUpdate("/Meeting@cmdbot from 2015-12-01T09:00"),
			mockSetup: func(r *MockRegistry, ch *MockCmdHandler) {
				r.On("Get", "/meeting").Return(ch, nil)
				ch.On("Respond", mock.Anything, mock.Anything,
					mock.AnythingOfType("*domain.Message")).Return(nil)
			},
			wantCalled:  true,
			wantTracked: 1,
			wantMsg: &domain.Message{
				ID:       1,
				ChatID:   100,
				Username: "@bob",
				Text:     "/meeting from 2015-12-01T09:00",
			},
		},
		{
			name:   "known command, Respond returns error",
			update: makeUpdate("/fail"),
			mockSetup: func(r *MockRegistry, ch *MockCmdHandler) {
				r.On("Get", "/fail").Return(ch, nil)
				ch.On("Respond", mock.Anything, mock.Anything,
					mock.AnythingOfType("*domain.Message")).Return(errors.New("fail"))
			},
			wantCalled:  true,
			wantTracked: 1,
		},
		{
			name:      "unauthorized chat",
			update:    makeUpdate("/hello"),
			unallowed: true,
			mockSetup: func(r *MockRegistry, ch *MockCmdHandler) {
				r.On("Get", "/hello").Return(ch, nil)
			},
		},
		{
			name:      "daily limit exceeded",
			update:    makeUpdate("/hello"),
			overLimit: true,
			mockSetup: func(r *MockRegistry, ch *MockCmdHandler) {
				r.On("Get", "/hello").Return(ch, nil)
			},
			wantTracked: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := new(MockRegistry)
			handler := new(MockCmdHandler)
			reg.cmd = handler
			tc.mockSetup(reg, handler)

			tracker := &fakeTracker{allowed: !tc.overLimit}
			ch := NewCommand(reg, &fakeAuthorizer{allowed: !tc.unallowed}, tracker, 3*time.Second)
			ch.Handle(t.Context(), nil, tc.update)

			// as the Respond() call is a goroutine, wait for finish
			time.Sleep(100 * time.Millisecond)

			reg.AssertExpectations(t)
			assert.Equal(t, tc.wantTracked, tracker.tracked)
			if !tc.wantCalled {
				assert.Empty(t, handler.Calls)
				return
			}

			if tc.wantMsg == nil {
				handler.AssertCalled(t, "Respond", mock.Anything, mock.Anything,
					mock.AnythingOfType("*domain.Message"))
				return
			}

			handler.AssertCalled(t, "Respond", mock.Anything, 3*time.Second,
				mock.MatchedBy(func(msg *domain.Message) bool {
					return assert.ObjectsAreEqual(tc.wantMsg, msg)
				}),
			)
		})
	}
}

func TestHandleCaptionFallback(t *testing.T) {
	reg := new(MockRegistry)
	handler := new(MockCmdHandler)
	reg.cmd = handler
	reg.On("Get", "/chat").Return(handler, nil)
	handler.On("Respond", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	update := makeUpdate("")
	update.Message.Caption = "/chat what is this"

	NewCommand(reg, nil, nil, time.Second).Handle(t.Context(), nil, update)
	time.Sleep(100 * time.Millisecond)

	handler.AssertCalled(t, "Respond", mock.Anything, time.Second,
		mock.MatchedBy(func(msg *domain.Message) bool { return msg.Text == "/chat what is this" }))
}

func Test_getUserNameOrFirstName(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		expected string
	}{
		{
			name:     "username present",
			user:     &models.User{Username: "alice", FirstName: "Alice"},
			expected: "@alice",
		},
		{
			name:     "empty username, fallback to first name",
			user:     &models.User{Username: "", FirstName: "Bob"},
			expected: "Bob",
		},
		{
			name:     "no sender",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, getUserNameOrFirstName(tc.user))
		})
	}
}
