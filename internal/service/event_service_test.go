package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BjornOnGit/adec-web/internal/calendar"
	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
)

func setupEventDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Event{}, &domain.EventRegistration{}))
	return db
}

func newEventService(t *testing.T, db *gorm.DB) EventService {
	t.Helper()
	return NewEventService(repository.NewEventRepository(db))
}

func TestCreateEvent_InvalidDate(t *testing.T) {
	svc := newEventService(t, setupEventDB(t))

	_, err := svc.CreateEvent(1, &domain.CreateEventRequest{
		Title:     "Annual Meetup",
		EventDate: "next tuesday",
	})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestEventOwnership(t *testing.T) {
	svc := newEventService(t, setupEventDB(t))

	event, err := svc.CreateEvent(1, &domain.CreateEventRequest{
		Title:     "Annual Meetup",
		EventDate: "2026-09-12T18:00:00Z",
	})
	require.NoError(t, err)

	_, err = svc.UpdateEvent(event.ID, 2, &domain.CreateEventRequest{
		Title:     "Hijacked",
		EventDate: "2026-09-12T18:00:00Z",
	})
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = svc.DeleteEvent(event.ID, 2)
	assert.ErrorIs(t, err, common.ErrForbidden)

	err = svc.DeleteEvent(event.ID, 1)
	assert.NoError(t, err)

	_, err = svc.GetEvent(event.ID, 1)
	assert.ErrorIs(t, err, common.ErrEventNotFound)
}

func TestEventRegistration(t *testing.T) {
	svc := newEventService(t, setupEventDB(t))

	event, err := svc.CreateEvent(1, &domain.CreateEventRequest{
		Title:     "Workshop",
		EventDate: "2026-10-01T09:00:00Z",
		Capacity:  2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Register(event.ID, 2))
	assert.ErrorIs(t, svc.Register(event.ID, 2), common.ErrAlreadyRegistered)

	require.NoError(t, svc.Register(event.ID, 3))
	assert.ErrorIs(t, svc.Register(event.ID, 4), common.ErrEventFull)

	got, err := svc.GetEvent(event.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.RegisteredCount)
	assert.True(t, got.IsRegistered)

	require.NoError(t, svc.Unregister(event.ID, 2))
	require.NoError(t, svc.Register(event.ID, 4), "freed capacity is reusable")
}

func TestCalendarMonth_PlacesEventsOnCells(t *testing.T) {
	svc := newEventService(t, setupEventDB(t))

	// January 2024 renders one leading cell (Dec 31 2023) before day 1
	_, err := svc.CreateEvent(1, &domain.CreateEventRequest{
		Title:     "New Year Social",
		EventDate: "2024-01-15T19:00:00Z",
	})
	require.NoError(t, err)
	_, err = svc.CreateEvent(1, &domain.CreateEventRequest{
		Title:     "Year End Review",
		EventDate: "2023-12-31T10:00:00Z",
	})
	require.NoError(t, err)

	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	cal, err := svc.CalendarMonth(2024, time.January, 1, now)
	require.NoError(t, err)
	assert.Equal(t, 2024, cal.Year)
	assert.Equal(t, 1, cal.Month)
	assert.Equal(t, calendar.Month{Year: 2023, Month: time.December}, cal.Prev)
	assert.Equal(t, calendar.Month{Year: 2024, Month: time.February}, cal.Next)
	require.Len(t, cal.Days, 35)

	// Leading padding cell carries the December event
	lead := cal.Days[0]
	assert.False(t, lead.InMonth)
	assert.Equal(t, 31, lead.Day.Day)
	require.Len(t, lead.Events, 1)
	assert.Equal(t, "Year End Review", lead.Events[0].Title)

	var jan15 *CalendarDay
	for i := range cal.Days {
		if cal.Days[i].InMonth && cal.Days[i].Day.Day == 15 {
			jan15 = &cal.Days[i]
			break
		}
	}
	require.NotNil(t, jan15)
	assert.True(t, jan15.Today)
	require.Len(t, jan15.Events, 1)
	assert.Equal(t, "New Year Social", jan15.Events[0].Title)

	// Every other cell is empty
	total := 0
	for _, day := range cal.Days {
		total += len(day.Events)
	}
	assert.Equal(t, 2, total)
}

func TestMyRegistrations_SoonestFirst(t *testing.T) {
	svc := newEventService(t, setupEventDB(t))

	later, err := svc.CreateEvent(1, &domain.CreateEventRequest{
		Title:     "Gala",
		EventDate: "2026-12-05T19:00:00Z",
	})
	require.NoError(t, err)
	sooner, err := svc.CreateEvent(1, &domain.CreateEventRequest{
		Title:     "Workshop",
		EventDate: "2026-10-01T09:00:00Z",
	})
	require.NoError(t, err)
	_, err = svc.CreateEvent(1, &domain.CreateEventRequest{
		Title:     "Not attending",
		EventDate: "2026-11-01T09:00:00Z",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Register(later.ID, 7))
	require.NoError(t, svc.Register(sooner.ID, 7))

	mine, err := svc.MyRegistrations(7)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Workshop", mine[0].Title)
	assert.Equal(t, "Gala", mine[1].Title)
	assert.True(t, mine[0].IsRegistered)
}

func TestListMine_CreatorScoped(t *testing.T) {
	svc := newEventService(t, setupEventDB(t))

	_, err := svc.CreateEvent(1, &domain.CreateEventRequest{
		Title:     "Gala",
		EventDate: "2026-12-05T19:00:00Z",
	})
	require.NoError(t, err)
	_, err = svc.CreateEvent(1, &domain.CreateEventRequest{
		Title:     "Workshop",
		EventDate: "2026-10-01T09:00:00Z",
	})
	require.NoError(t, err)
	_, err = svc.CreateEvent(2, &domain.CreateEventRequest{
		Title:     "Someone else's",
		EventDate: "2026-11-01T09:00:00Z",
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Workshop", mine[0].Title)
	assert.Equal(t, "Gala", mine[1].Title)

	theirs, err := svc.ListMine(2)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "Someone else's", theirs[0].Title)
}
