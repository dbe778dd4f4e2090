package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleFeed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//test//EN
BEGIN:VEVENT
UID:single-1
SUMMARY:Design Review
DESCRIPTION:Quarterly review
DTSTART:20241111T100000Z
DTEND:20241111T110000Z
END:VEVENT
BEGIN:VEVENT
UID:weekly-1
SUMMARY:Standup
DTSTART:20241111T090000Z
DTEND:20241111T091500Z
RRULE:FREQ=WEEKLY;COUNT=4
END:VEVENT
BEGIN:VEVENT
UID:allday-1
SUMMARY:Company Holiday
DTSTART;VALUE=DATE:20241112
DTEND;VALUE=DATE:20241113
END:VEVENT
END:VCALENDAR
`

func testClient(t *testing.T) *Client {
	t.Helper()
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		cacheDir:   t.TempDir(),
		location:   time.UTC,
		logger:     zap.NewNop(),
	}
}

func TestParseFeed(t *testing.T) {
	c := testClient(t)

	events, err := c.parseFeed(FetchResult{
		Source: Source{ID: "feed-0", URL: "https://example.com/cal.ics"},
		Body:   []byte(sampleFeed),
	})
	require.NoError(t, err)
	require.Len(t, events, 3)

	byUID := map[string]parsedEvent{}
	for _, e := range events {
		byUID[e.UID] = e
	}

	single := byUID["single-1"]
	assert.Equal(t, "Design Review", single.Summary)
	assert.Equal(t, "Quarterly review", single.Description)
	assert.False(t, single.AllDay)
	assert.Empty(t, single.RawRRule)

	weekly := byUID["weekly-1"]
	assert.Equal(t, "FREQ=WEEKLY;COUNT=4", weekly.RawRRule)

	allday := byUID["allday-1"]
	assert.True(t, allday.AllDay)
}

func TestParseFeedEmptyBody(t *testing.T) {
	c := testClient(t)

	_, err := c.parseFeed(FetchResult{Source: Source{ID: "feed-0"}})
	assert.Error(t, err)
}

func TestExpandWindow(t *testing.T) {
	c := testClient(t)

	parsed, err := c.parseFeed(FetchResult{
		Source: Source{ID: "feed-0"},
		Body:   []byte(sampleFeed),
	})
	require.NoError(t, err)

	from := time.Date(2024, 11, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 11, 24, 23, 59, 59, 0, time.UTC)

	events := c.expand(parsed, from, to)

	var standups, reviews, holidays int
	for _, e := range events {
		switch e.Title {
		case "Standup":
			standups++
			assert.Equal(t, "FREQ=WEEKLY;COUNT=4", e.RecurrenceRule)
			assert.Equal(t, 15, e.DurationMinutes())
		case "Design Review":
			reviews++
		case "Company Holiday":
			holidays++
			assert.True(t, e.AllDay)
		}
	}

	// Two weeks of a weekly standup, one single event, one all-day holiday.
	assert.Equal(t, 2, standups)
	assert.Equal(t, 1, reviews)
	assert.Equal(t, 1, holidays)

	for _, e := range events {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "feed-0", e.CalendarID)
	}
}

func TestExpandWindowExcludesOutOfRange(t *testing.T) {
	c := testClient(t)

	parsed, err := c.parseFeed(FetchResult{
		Source: Source{ID: "feed-0"},
		Body:   []byte(sampleFeed),
	})
	require.NoError(t, err)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, c.expand(parsed, from, to))
}

func TestFetchAllUsesConditionalCache(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	c := testClient(t)
	c.sources = []Source{{ID: "feed-0", URL: srv.URL}}

	first := c.FetchAll(context.Background())
	require.Len(t, first, 1)
	assert.False(t, first[0].FromCache)

	second := c.FetchAll(context.Background())
	require.Len(t, second, 1)
	assert.True(t, second[0].FromCache)
	assert.Equal(t, first[0].Body, second[0].Body)

	assert.Equal(t, 2, requests)
}

func TestFetchAllSkipsFailedFeedWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(t)
	c.sources = []Source{{ID: "feed-0", URL: srv.URL}}

	assert.Empty(t, c.FetchAll(context.Background()))
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://example.com/...", redactURL("https://example.com/private/token123.ics?key=s3cret"))
	assert.Equal(t, "(redacted)", redactURL("not a url"))
}
