package ticketing

import (
	"testing"

	"github.com/eventpass/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates event with derived slug and placeholder flier", func(t *testing.T) {
		event, err := NewEvent(ownerID, "Tech Summit 2026", "2026-09-15", "18:00", "City Hall")

		require.NoError(t, err)
		assert.Equal(t, "Tech Summit 2026", event.Title)
		assert.Equal(t, "tech-summit-2026", event.Slug)
		assert.Equal(t, PlaceholderFlierURL, event.FlierURL)
		assert.False(t, event.DisableRegistration)
		assert.Empty(t, event.Attendees)
		assert.Equal(t, 1, event.GetVersion())
	})

	t.Run("fails with nil owner", func(t *testing.T) {
		event, err := NewEvent(uuid.Nil, "Gala", "2026-09-15", "18:00", "City Hall")

		assert.Error(t, err)
		assert.Nil(t, event)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		event, err := NewEvent(ownerID, "  ", "2026-09-15", "18:00", "City Hall")

		assert.Error(t, err)
		assert.Nil(t, event)
		assert.Contains(t, err.Error(), "title cannot be empty")
	})

	t.Run("fails with punctuation-only title", func(t *testing.T) {
		event, err := NewEvent(ownerID, "!!!", "2026-09-15", "18:00", "City Hall")

		assert.Error(t, err)
		assert.Nil(t, event)
		assert.Contains(t, err.Error(), "letter or digit")
	})

	t.Run("fails with malformed date", func(t *testing.T) {
		event, err := NewEvent(ownerID, "Gala", "15/09/2026", "18:00", "City Hall")

		assert.Error(t, err)
		assert.Nil(t, event)
	})

	t.Run("fails with impossible calendar date", func(t *testing.T) {
		event, err := NewEvent(ownerID, "Gala", "2026-02-30", "18:00", "City Hall")

		assert.Error(t, err)
		assert.Nil(t, event)
	})

	t.Run("fails with empty venue", func(t *testing.T) {
		event, err := NewEvent(ownerID, "Gala", "2026-09-15", "18:00", "")

		assert.Error(t, err)
		assert.Nil(t, event)
	})
}

func TestEventRegisterAttendee(t *testing.T) {
	newTestEvent := func(t *testing.T) *Event {
		t.Helper()
		event, err := NewEvent(uuid.New(), "Gala", "2026-09-15", "18:00", "City Hall")
		require.NoError(t, err)
		return event
	}

	t.Run("registers attendee with generated passcode", func(t *testing.T) {
		event := newTestEvent(t)

		attendee, err := event.RegisterAttendee("Ada Lovelace", "ada@example.com", "+44 20 1234 5678")

		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", attendee.Name)
		assert.Equal(t, "ada@example.com", attendee.Email)
		assert.Len(t, attendee.Passcode, PasscodeLength)
		assert.False(t, attendee.IsPresent)
		assert.Len(t, event.Attendees, 1)
		assert.Equal(t, 2, event.GetVersion())
	})

	t.Run("rejects duplicate email without modifying the list", func(t *testing.T) {
		event := newTestEvent(t)
		_, err := event.RegisterAttendee("Ada", "ada@example.com", "")
		require.NoError(t, err)
		versionBefore := event.GetVersion()

		attendee, err := event.RegisterAttendee("Other Ada", "ada@example.com", "")

		assert.ErrorIs(t, err, shared.ErrAlreadyRegistered)
		assert.Nil(t, attendee)
		assert.Len(t, event.Attendees, 1)
		assert.Equal(t, versionBefore, event.GetVersion())
	})

	t.Run("duplicate check is case-sensitive", func(t *testing.T) {
		event := newTestEvent(t)
		_, err := event.RegisterAttendee("Ada", "ada@example.com", "")
		require.NoError(t, err)

		_, err = event.RegisterAttendee("Ada", "Ada@example.com", "")

		require.NoError(t, err)
		assert.Len(t, event.Attendees, 2)
	})

	t.Run("keeps attendees in arrival order", func(t *testing.T) {
		event := newTestEvent(t)

		_, err := event.RegisterAttendee("Ada", "ada@example.com", "")
		require.NoError(t, err)
		_, err = event.RegisterAttendee("Grace", "grace@example.com", "")
		require.NoError(t, err)

		require.Len(t, event.Attendees, 2)
		assert.Equal(t, "ada@example.com", event.Attendees[0].Email)
		assert.Equal(t, "grace@example.com", event.Attendees[1].Email)
	})

	t.Run("distinct attendees get distinct passcodes", func(t *testing.T) {
		event := newTestEvent(t)

		first, err := event.RegisterAttendee("Ada", "ada@example.com", "")
		require.NoError(t, err)
		second, err := event.RegisterAttendee("Grace", "grace@example.com", "")
		require.NoError(t, err)

		assert.NotEqual(t, first.Passcode, second.Passcode)
	})

	t.Run("rejects registration when closed", func(t *testing.T) {
		event := newTestEvent(t)
		require.NoError(t, event.CloseRegistration())

		attendee, err := event.RegisterAttendee("Ada", "ada@example.com", "")

		assert.ErrorIs(t, err, shared.ErrRegistrationClosed)
		assert.Nil(t, attendee)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		event := newTestEvent(t)

		_, err := event.RegisterAttendee("Ada", "not-an-email", "")

		assert.Error(t, err)
		assert.Empty(t, event.Attendees)
	})
}

func TestEventCloseRegistration(t *testing.T) {
	event, err := NewEvent(uuid.New(), "Gala", "2026-09-15", "18:00", "City Hall")
	require.NoError(t, err)

	require.NoError(t, event.CloseRegistration())
	assert.True(t, event.DisableRegistration)

	err = event.CloseRegistration()
	assert.Error(t, err)
}

func TestEventAssignSlug(t *testing.T) {
	event, err := NewEvent(uuid.New(), "Gala", "2026-09-15", "18:00", "City Hall")
	require.NoError(t, err)
	version := event.GetVersion()

	t.Run("accepts a suffixed slug without bumping the version", func(t *testing.T) {
		require.NoError(t, event.AssignSlug("gala-2"))
		assert.Equal(t, "gala-2", event.Slug)
		assert.Equal(t, version, event.GetVersion())
	})

	t.Run("rejects anything that is not already slug-shaped", func(t *testing.T) {
		assert.Error(t, event.AssignSlug(""))
		assert.Error(t, event.AssignSlug("Not A Slug"))
		assert.Equal(t, "gala-2", event.Slug)
	})
}

func TestEventFlier(t *testing.T) {
	event, err := NewEvent(uuid.New(), "Gala", "2026-09-15", "18:00", "City Hall")
	require.NoError(t, err)

	t.Run("placeholder sentinel means no flier", func(t *testing.T) {
		assert.False(t, event.HasFlier())
		assert.Equal(t, NoFlierMessage, event.DisplayFlierURL())
	})

	t.Run("real URL is passed through", func(t *testing.T) {
		url := "https://storage.example.com/v1/storage/buckets/fliers/files/abc123/view?project=evp&mode=admin"
		event.SetFlierURL(url)

		assert.True(t, event.HasFlier())
		assert.Equal(t, url, event.DisplayFlierURL())
	})

	t.Run("empty URL falls back to the sentinel", func(t *testing.T) {
		event.SetFlierURL("")

		assert.Equal(t, PlaceholderFlierURL, event.FlierURL)
	})
}

func TestEventMarkPresent(t *testing.T) {
	event, err := NewEvent(uuid.New(), "Gala", "2026-09-15", "18:00", "City Hall")
	require.NoError(t, err)
	attendee, err := event.RegisterAttendee("Ada", "ada@example.com", "")
	require.NoError(t, err)

	t.Run("marks attendee present by passcode", func(t *testing.T) {
		require.NoError(t, event.MarkPresent(attendee.Passcode))

		found := event.FindAttendeeByPasscode(attendee.Passcode)
		require.NotNil(t, found)
		assert.True(t, found.IsPresent)
	})

	t.Run("marking twice is a no-op", func(t *testing.T) {
		versionBefore := event.GetVersion()

		require.NoError(t, event.MarkPresent(attendee.Passcode))

		assert.Equal(t, versionBefore, event.GetVersion())
	})

	t.Run("unknown passcode fails", func(t *testing.T) {
		err := event.MarkPresent("zzz")

		assert.ErrorIs(t, err, shared.ErrInvalidPasscode)
	})
}

func TestFindAttendeeByPasscode(t *testing.T) {
	event, err := NewEvent(uuid.New(), "Gala", "2026-09-15", "18:00", "City Hall")
	require.NoError(t, err)
	attendee, err := event.RegisterAttendee("Ada", "ada@example.com", "")
	require.NoError(t, err)

	assert.NotNil(t, event.FindAttendeeByPasscode(attendee.Passcode))
	assert.Nil(t, event.FindAttendeeByPasscode("nope"))
}
