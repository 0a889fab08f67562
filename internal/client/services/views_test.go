package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViews(api *fakeAPI) *Views {
	return NewViews(NewEntryService(api), NewAgentService(api), NewAnalyticsService(api))
}

func TestViews_Dashboard(t *testing.T) {
	api := newFakeAPI().
		respond("GET", "/analytics/summary", `{"total_entries":1}`).
		respond("GET", "/entries/", "["+entryJSON+"]")

	d, err := newViews(api).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, d.Summary.TotalEntries)
	require.Len(t, d.Recent, 1)

	var sawLimit bool
	for _, c := range api.calls {
		if c.Path == "/entries/" {
			sawLimit = c.Query.Get("limit") == "6"
		}
	}
	assert.True(t, sawLimit, "dashboard loads the six most recent entries")
}

func TestViews_DashboardFailsWhenAnyPartFails(t *testing.T) {
	boom := errors.New("boom")
	api := newFakeAPI().
		respond("GET", "/analytics/summary", `{"total_entries":1}`).
		fail("GET", "/entries/", boom)

	_, err := newViews(api).Dashboard(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestViews_Analytics(t *testing.T) {
	api := newFakeAPI().
		respond("GET", "/analytics/summary", `{"total_entries":2}`).
		respond("GET", "/analytics/trends", `{"trends":[{"title":"a"},{"title":"b"}]}`)

	a, err := newViews(api).Analytics(context.Background(), 14)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Summary.TotalEntries)
	assert.Len(t, a.Trends, 2)
}

func TestViews_EntryDetail(t *testing.T) {
	api := newFakeAPI().
		respond("GET", "/entries/3", entryJSON).
		respond("GET", "/agent/followups/3", `[]`)

	d, err := newViews(api).EntryDetail(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Monday", d.Entry.Title)
	assert.Empty(t, d.Followups)

	notFound := errors.New("not found")
	api.fail("GET", "/entries/3", notFound)
	_, err = newViews(api).EntryDetail(context.Background(), 3)
	require.ErrorIs(t, err, notFound)
}
