package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
	"github.com/dmitrijs2005/moodjournal/internal/client/router"
	"github.com/dmitrijs2005/moodjournal/internal/client/session"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

// ---- output & input stubs ----

type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "\n")
}

func captureOutput(t *testing.T) *output {
	t.Helper()
	out := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out.mu.Lock()
		defer out.mu.Unlock()
		out.lines = append(out.lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return out
}

// stubInputs answers text prompts, password prompts and multiline prompts
// from the given queues, in order.
func stubInputs(t *testing.T, texts, passwords, multilines []string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline

	next := func(q *[]string) (string, error) {
		if len(*q) == 0 {
			return "", io.EOF
		}
		v := (*q)[0]
		*q = (*q)[1:]
		return v, nil
	}
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next(&texts) }
	getPassword = func(string, io.Writer) ([]byte, error) {
		v, err := next(&passwords)
		return []byte(v), err
	}
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) { return next(&multilines) }

	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})
}

// ---- fake collaborators ----

type fakeSessions struct {
	mu        sync.Mutex
	token     string
	user      *models.User
	loginErr  error
	signupErr error
	calls     []string
}

func (f *fakeSessions) Login(_ context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "login:"+email+":"+password)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.token = "T1"
	f.user = &models.User{ID: 1, Email: email, Username: "ann"}
	return nil
}

func (f *fakeSessions) Signup(_ context.Context, email, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "signup:"+email+":"+username+":"+password)
	if f.signupErr != nil {
		return f.signupErr
	}
	f.token = "T2"
	f.user = &models.User{ID: 2, Email: email, Username: username}
	return nil
}

func (f *fakeSessions) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "logout")
	f.token, f.user = "", nil
}

func (f *fakeSessions) Snapshot() session.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return session.Session{Token: f.token, User: f.user}
}

func (f *fakeSessions) IsAuthenticated() bool {
	return f.Snapshot().Authenticated()
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

type fakeEntries struct {
	list    []models.Entry
	listErr error
	byID    map[int64]models.Entry

	created   []models.EntryInput
	updated   map[int64]models.EntryUpdate
	deleted   []int64
	lastLimit int
	lastOff   int
}

func newFakeEntries(entries ...models.Entry) *fakeEntries {
	f := &fakeEntries{byID: map[int64]models.Entry{}, updated: map[int64]models.EntryUpdate{}, list: entries}
	for _, e := range entries {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEntries) Create(_ context.Context, in models.EntryInput) (*models.Entry, error) {
	f.created = append(f.created, in)
	return &models.Entry{ID: 100, Title: in.Title, Content: in.Content, MoodLevel: in.MoodLevel, SentimentScore: 0.5}, nil
}

func (f *fakeEntries) GetAll(_ context.Context, limit, offset int) ([]models.Entry, error) {
	f.lastLimit, f.lastOff = limit, offset
	return f.list, f.listErr
}

func (f *fakeEntries) GetByID(_ context.Context, id int64) (*models.Entry, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, errNotFound
	}
	return &e, nil
}

func (f *fakeEntries) Update(_ context.Context, id int64, upd models.EntryUpdate) (*models.Entry, error) {
	f.updated[id] = upd
	e := f.byID[id]
	return &e, nil
}

func (f *fakeEntries) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAgent struct {
	followups []models.Followup
	requested []int64
}

func (f *fakeAgent) RequestFollowup(_ context.Context, id int64) (*models.Followup, error) {
	f.requested = append(f.requested, id)
	return &models.Followup{ID: 1, Prompt: "What made today different?"}, nil
}

func (f *fakeAgent) GetFollowups(context.Context, int64) ([]models.Followup, error) {
	return f.followups, nil
}

func (f *fakeAgent) Companion(context.Context, int64) (*models.Companion, error) {
	return &models.Companion{DetectedEmotions: []string{"calm"}, Reflection: "You sound settled."}, nil
}

func (f *fakeAgent) Patterns(context.Context) (*models.PatternAnalysis, error) {
	return &models.PatternAnalysis{RecurringThemes: []string{"work"}, Insight: "Work shapes your week."}, nil
}

type fakeAnalytics struct {
	summary  models.Summary
	lastDays int
}

func (f *fakeAnalytics) Summary(context.Context) (*models.Summary, error) {
	s := f.summary
	return &s, nil
}

func (f *fakeAnalytics) Trends(_ context.Context, days int) ([]models.TrendPoint, error) {
	f.lastDays = days
	return []models.TrendPoint{{Title: "Monday", MoodLevel: 6}}, nil
}

// ---- app builder ----

type testApp struct {
	*App
	sessions  *fakeSessions
	entries   *fakeEntries
	agent     *fakeAgent
	analytics *fakeAnalytics
	forced    chan struct{}
}

func newTestApp(t *testing.T, loggedIn bool, entries ...models.Entry) *testApp {
	t.Helper()
	sess := &fakeSessions{}
	if loggedIn {
		sess.token = "T1"
		sess.user = &models.User{ID: 1, Email: "a@x.io", Username: "ann"}
	}
	forced := make(chan struct{}, 1)
	ta := &testApp{
		sessions:  sess,
		entries:   newFakeEntries(entries...),
		agent:     &fakeAgent{},
		analytics: &fakeAnalytics{summary: models.Summary{TotalEntries: len(entries), AvgSentiment: 0.3}},
		forced:    forced,
	}
	ta.App = NewApp(Deps{
		Sessions:            sess,
		Router:              router.New(sess, forced, logging.Discard()),
		Entries:             ta.entries,
		Agent:               ta.agent,
		Analytics:           ta.analytics,
		Pinger:              &fakePinger{},
		Logger:              logging.Discard(),
		OnlineCheckInterval: 0,
		In:                  strings.NewReader(""),
		Out:                 io.Discard,
	})
	return ta
}
