package command

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/interpreter"
	"context"
	"fmt"
	"strings"
	"time"
)

const meetingTimeFormat = "2006-01-02 15:04"

type MeetingModel struct {
	From      time.Time
	To        time.Time
	Title     string
	Organizer string
	Duration  time.Duration
	Scheduled bool
}

// Meeting schedules a time slot: /meeting from <time> to <time> title <words>.
type Meeting struct{}

func NewMeeting() *Meeting {
	return &Meeting{}
}

type meetingAction struct {
	organizer string
}

func (m *Meeting) Command(message *domain.Message) *interpreter.Command[MeetingModel] {
	c := interpreter.New[MeetingModel]("/meeting", &meetingAction{organizer: message.Username},
		interpreter.WithSynopsis("Schedule a meeting, e.g. /meeting from 2015-12-01T09:00 to 2015-12-01T10:30 title standup"))

	c.AddParameter(interpreter.NewParameter("from", parseMeetingFrom,
		interpreter.WithHeader("start of the meeting"),
		interpreter.WithDetail("start time as YYYY-MM-DDTHH:MM, e.g. 2015-12-01T09:00")))
	c.AddParameter(interpreter.NewParameter("to", parseMeetingTo,
		interpreter.WithHeader("end of the meeting"),
		interpreter.WithDetail("end time as YYYY-MM-DDTHH:MM, must be after from")))
	c.AddParameter(interpreter.NewParameter("title", parseMeetingTitle,
		interpreter.WithHeader("what the meeting is about"),
		interpreter.WithDetail("free text up to the next parameter, defaults to \"meeting\"")))

	return c
}

func parseMeetingFrom(model *MeetingModel, value string) error {
	t, err := interpreter.ParseTimestamp("from", value)
	if err != nil {
		return err
	}

	model.From = t
	return nil
}

func parseMeetingTo(model *MeetingModel, value string) error {
	t, err := interpreter.ParseTimestamp("to", value)
	if err != nil {
		return err
	}

	model.To = t
	return nil
}

func parseMeetingTitle(model *MeetingModel, value string) error {
	title, err := interpreter.RequireText("title", value)
	if err != nil {
		return err
	}

	model.Title = title
	return nil
}

func (a *meetingAction) Validate(model *MeetingModel) error {
	switch {
	case model.From.IsZero():
		return interpreter.NewValidationError("a meeting needs a start, add from <time>")
	case model.To.IsZero():
		return interpreter.NewValidationError("a meeting needs an end, add to <time>")
	case !model.From.Before(model.To):
		return interpreter.NewValidationError("meeting must end after it starts: %s is not before %s",
			model.From.Format(meetingTimeFormat), model.To.Format(meetingTimeFormat))
	}

	return nil
}

func (a *meetingAction) Run(_ context.Context, model *MeetingModel) error {
	if strings.TrimSpace(model.Title) == "" {
		model.Title = "meeting"
	}

	model.Organizer = a.organizer
	model.Duration = model.To.Sub(model.From)
	model.Scheduled = true

	return nil
}

func (m *Meeting) Reply(model *MeetingModel) string {
	reply := fmt.Sprintf("scheduled %q from %s to %s (%s)",
		model.Title, model.From.Format(meetingTimeFormat), model.To.Format(meetingTimeFormat), model.Duration)
	if model.Organizer != "" {
		reply += " by " + model.Organizer
	}

	return reply
}
