package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpilot/internal/cache"
	"askpilot/internal/model"
	"askpilot/internal/qa"
)

type fakeSearcher struct {
	calls   int
	summary string
}

func (f *fakeSearcher) Summarize(ctx context.Context, query string, maxResults int) string {
	f.calls++
	return f.summary
}

type fakeDelegate struct {
	gotURLs []string
	answers []qa.Answer
}

func (f *fakeDelegate) AnswerMany(ctx context.Context, urls, questions []string) []qa.Answer {
	f.gotURLs = urls
	return f.answers
}

type fakePublisher struct {
	records []model.QARecord
}

func (f *fakePublisher) Publish(ctx context.Context, record model.QARecord) error {
	f.records = append(f.records, record)
	return nil
}

func newAskFixture(answers []qa.Answer) (*AskService, *fakeSearcher, *fakeDelegate, *fakePublisher) {
	searcher := &fakeSearcher{summary: "search summary"}
	delegate := &fakeDelegate{answers: answers}
	publisher := &fakePublisher{}
	history := NewHistoryService(cache.NewMemoryHistoryStore(), 3, time.Hour)
	svc := NewAskService(searcher, delegate, history, publisher, 5)
	return svc, searcher, delegate, publisher
}

func TestParseURLList(t *testing.T) {
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, ParseURLList("http://a.com, http://b.com"))
	assert.Empty(t, ParseURLList(""))
	assert.Empty(t, ParseURLList("notaurl"))
	assert.Equal(t, []string{"https://c.com"}, ParseURLList("notaurl, https://c.com"))
}

func TestAskDispatchesToURLMode(t *testing.T) {
	answers := []qa.Answer{
		{URL: "http://a.com", Question: "q", Answer: "a1"},
		{URL: "http://b.com", Question: "q", Answer: "a2"},
	}
	svc, searcher, delegate, _ := newAskFixture(answers)

	entries, err := svc.Ask(context.Background(), "alice", "q", "http://a.com, http://b.com")
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.com", "http://b.com"}, delegate.gotURLs)
	assert.Zero(t, searcher.calls)
	require.Len(t, entries, 2)
	assert.Equal(t, "http://a.com", entries[0].Source)
	assert.Equal(t, "a2", entries[1].Answer)
}

func TestAskDispatchesToSearchMode(t *testing.T) {
	for _, raw := range []string{"", "notaurl"} {
		svc, searcher, delegate, _ := newAskFixture(nil)

		entries, err := svc.Ask(context.Background(), "alice", "capital of France", raw)
		require.NoError(t, err)

		assert.Equal(t, 1, searcher.calls)
		assert.Nil(t, delegate.gotURLs)
		require.Len(t, entries, 1)
		assert.Equal(t, "capital of France", entries[0].Question)
		assert.Equal(t, "search summary", entries[0].Answer)
		assert.Empty(t, entries[0].Source)
	}
}

func TestAskAppendsToHistoryCapped(t *testing.T) {
	svc, _, _, _ := newAskFixture(nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Ask(ctx, "alice", "question", "")
		require.NoError(t, err)
	}

	entries, err := svc.history.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestAskPublishesArchiveRecords(t *testing.T) {
	answers := []qa.Answer{{URL: "http://a.com", Question: "q", Answer: "a1"}}
	svc, _, _, publisher := newAskFixture(answers)

	_, err := svc.Ask(context.Background(), "alice", "q", "http://a.com")
	require.NoError(t, err)

	require.Len(t, publisher.records, 1)
	assert.Equal(t, "alice", publisher.records[0].Username)
	assert.Equal(t, "http://a.com", publisher.records[0].Source)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	svc, _, _, _ := newAskFixture(nil)

	_, err := svc.Ask(context.Background(), "alice", "  ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAskURLModeWithNoAnswersStillRefreshesHistory(t *testing.T) {
	svc, _, _, publisher := newAskFixture(nil)

	entries, err := svc.Ask(context.Background(), "alice", "q", "http://a.com")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, publisher.records)
}
