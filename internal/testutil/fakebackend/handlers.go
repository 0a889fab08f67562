package fakebackend

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type userResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

type entryResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	SentimentScore float64 `json:"sentiment_score"`
	Keywords       string  `json:"keywords"`
	MoodLevel      int     `json:"mood_level"`
	CreatedAt      string  `json:"created_at"`
}

type followupResponse struct {
	ID        int64  `json:"id"`
	Prompt    string `json:"prompt"`
	CreatedAt string `json:"created_at"`
}

func toEntry(e *entry) entryResponse {
	return entryResponse{
		ID: e.ID, Title: e.Title, Content: e.Content, SentimentScore: e.Sentiment,
		Keywords: e.Keywords, MoodLevel: e.MoodLevel, CreatedAt: naive(e.CreatedAt),
	}
}

func toFollowup(f *followup) followupResponse {
	return followupResponse{ID: f.ID, Prompt: f.Prompt, CreatedAt: naive(f.CreatedAt)}
}

func tokenResponse(c echo.Context, token string) error {
	return c.JSON(http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) signup(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Username == "" || req.Password == "" {
		return detail(c, http.StatusUnprocessableEntity, "email, username and password are required")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return detail(c, http.StatusInternalServerError, "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == req.Email || u.Username == req.Username {
			return detail(c, http.StatusBadRequest, "Email or username already registered")
		}
	}
	u := &user{ID: s.nextIDLocked(), Email: req.Email, Username: req.Username, PasswordHash: hash, CreatedAt: time.Now()}
	s.users[u.ID] = u

	token, err := s.issueLocked(u.ID)
	if err != nil {
		return detail(c, http.StatusInternalServerError, "")
	}
	return tokenResponse(c, token)
}

func (s *Server) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid request body")
	}

	s.mu.Lock()
	var found *user
	for _, u := range s.users {
		if u.Email == req.Email {
			found = u
			break
		}
	}
	s.mu.Unlock()

	if found == nil || !checkPassword(found.PasswordHash, req.Password) {
		return detail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	token, err := s.issueLocked(found.ID)
	if err != nil {
		return detail(c, http.StatusInternalServerError, "")
	}
	return tokenResponse(c, token)
}

func (s *Server) me(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID(c)]
	if !ok {
		return detail(c, http.StatusNotFound, "")
	}
	return c.JSON(http.StatusOK, userResponse{ID: u.ID, Email: u.Email, Username: u.Username, CreatedAt: naive(u.CreatedAt)})
}

func (s *Server) createEntry(c echo.Context) error {
	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		MoodLevel int    `json:"mood_level"`
	}
	if err := c.Bind(&req); err != nil || req.Title == "" || req.Content == "" {
		return detail(c, http.StatusUnprocessableEntity, "title and content are required")
	}
	if req.MoodLevel < 1 || req.MoodLevel > 10 {
		return detail(c, http.StatusUnprocessableEntity, "mood_level must be between 1 and 10")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := &entry{
		ID: s.nextIDLocked(), UserID: userID(c), Title: req.Title, Content: req.Content,
		MoodLevel: req.MoodLevel, CreatedAt: time.Now(),
	}
	e.Sentiment, e.Keywords = analyze(req.Content)
	s.entries[e.ID] = e
	return c.JSON(http.StatusOK, toEntry(e))
}

// ownEntriesLocked returns the caller's entries, newest first.
func (s *Server) ownEntriesLocked(uid int64) []*entry {
	var out []*entry
	for _, e := range s.entries {
		if e.UserID == uid {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Server) listEntries(c echo.Context) error {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.ownEntriesLocked(userID(c))

	out := make([]entryResponse, 0, limit)
	for i := offset; i < len(all) && len(out) < limit; i++ {
		out = append(out, toEntry(all[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// entryLocked finds entry id owned by the caller.
func (s *Server) entryLocked(c echo.Context) (*entry, bool) {
	id, err := pathID(c)
	if err != nil {
		return nil, false
	}
	e, ok := s.entries[id]
	if !ok || e.UserID != userID(c) {
		return nil, false
	}
	return e, true
}

func (s *Server) getEntry(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entryLocked(c)
	if !ok {
		return detail(c, http.StatusNotFound, "")
	}
	return c.JSON(http.StatusOK, toEntry(e))
}

func (s *Server) updateEntry(c echo.Context) error {
	var req struct {
		Title     *string `json:"title"`
		Content   *string `json:"content"`
		MoodLevel *int    `json:"mood_level"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid request body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entryLocked(c)
	if !ok {
		return detail(c, http.StatusNotFound, "")
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Content != nil {
		e.Content = *req.Content
		e.Sentiment, e.Keywords = analyze(e.Content)
	}
	if req.MoodLevel != nil {
		e.MoodLevel = *req.MoodLevel
	}
	return c.JSON(http.StatusOK, toEntry(e))
}

func (s *Server) deleteEntry(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entryLocked(c)
	if !ok {
		return detail(c, http.StatusNotFound, "")
	}
	delete(s.entries, e.ID)
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) requestFollowup(c echo.Context) error {
	var req struct {
		EntryID int64 `json:"entry_id"`
	}
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid request body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[req.EntryID]
	if !ok || e.UserID != userID(c) {
		return detail(c, http.StatusNotFound, "Entry not found")
	}
	f := &followup{ID: s.nextIDLocked(), EntryID: e.ID, Prompt: followupPrompt(e), CreatedAt: time.Now()}
	s.followups = append(s.followups, f)
	return c.JSON(http.StatusOK, toFollowup(f))
}

func (s *Server) listFollowups(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entryLocked(c)
	if !ok {
		return detail(c, http.StatusNotFound, "Entry not found")
	}
	out := []followupResponse{}
	for _, f := range s.followups {
		if f.EntryID == e.ID {
			out = append(out, toFollowup(f))
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) companion(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entryLocked(c)
	if !ok {
		return detail(c, http.StatusNotFound, "Entry not found")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"detected_emotions": emotions(e.Sentiment),
		"themes":            splitKeywords(e.Keywords),
		"your_needs":        []string{"rest"},
		"reflection":        "Thank you for writing about " + strings.ToLower(e.Title) + ".",
		"followup_question": followupPrompt(e),
		"encouragement":     "Keep going, one entry at a time.",
		"timestamp":         naive(time.Now()),
	})
}

func (s *Server) patterns(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.ownEntriesLocked(userID(c))
	if len(all) == 0 {
		return detail(c, http.StatusNotFound, "No entries found for pattern analysis")
	}

	var themes []string
	for _, e := range all {
		themes = append(themes, splitKeywords(e.Keywords)...)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"recurring_emotions": emotions(all[0].Sentiment),
		"recurring_themes":   topWords(themes, 3),
		"recurring_needs":    []string{},
		"insight":            "You have written " + strconv.Itoa(len(all)) + " entries.",
	})
}

func (s *Server) summary(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.ownEntriesLocked(userID(c))

	dist := map[string]int{}
	var total float64
	var words []string
	for _, e := range all {
		dist[strconv.Itoa(e.MoodLevel)]++
		total += e.Sentiment
		words = append(words, splitKeywords(e.Keywords)...)
	}
	avg := 0.0
	if len(all) > 0 {
		avg = total / float64(len(all))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"avg_sentiment":        avg,
		"mood_distribution":    dist,
		"total_entries":        len(all),
		"most_common_keywords": topWords(words, 10),
		"patterns":             []any{},
	})
}

func (s *Server) trends(c echo.Context) error {
	days := queryInt(c, "days", 30)
	since := time.Now().AddDate(0, 0, -days)

	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.ownEntriesLocked(userID(c))

	points := []map[string]any{}
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		if e.CreatedAt.Before(since) {
			continue
		}
		points = append(points, map[string]any{
			"date": naive(e.CreatedAt), "sentiment": e.Sentiment, "mood_level": e.MoodLevel, "title": e.Title,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"trends": points})
}

func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 0 {
		return def
	}
	return v
}
