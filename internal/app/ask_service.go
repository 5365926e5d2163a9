package app

import (
	"context"
	"strings"
	"time"

	"askpilot/internal/model"
	"askpilot/internal/qa"
	"askpilot/pkg/log"
)

// Searcher answers general queries from search engine snippets.
type Searcher interface {
	Summarize(ctx context.Context, query string, maxResults int) string
}

// URLAnswerer runs questions against user-supplied URLs.
type URLAnswerer interface {
	AnswerMany(ctx context.Context, urls, questions []string) []qa.Answer
}

// RecordPublisher hands answered entries to the archive pipeline.
type RecordPublisher interface {
	Publish(ctx context.Context, record model.QARecord) error
}

// AskService routes a question to search mode or URL-QA mode and folds
// the outcome into the user's history.
type AskService struct {
	searcher   Searcher
	delegate   URLAnswerer
	history    *HistoryService
	publisher  RecordPublisher
	maxResults int
}

func NewAskService(searcher Searcher, delegate URLAnswerer, history *HistoryService, publisher RecordPublisher, maxResults int) *AskService {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &AskService{
		searcher:   searcher,
		delegate:   delegate,
		history:    history,
		publisher:  publisher,
		maxResults: maxResults,
	}
}

// ParseURLList splits a comma-separated field into URL candidates. A
// token counts as a URL only if it starts with "http" after trimming.
func ParseURLList(raw string) []string {
	var urls []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if strings.HasPrefix(token, "http") {
			urls = append(urls, token)
		}
	}
	return urls
}

// Ask answers the question and returns the entries appended to the
// user's history. With URLs present every successfully answered
// (url, question) pair becomes one sourced entry; otherwise a single
// unsourced entry holds the search summary. Upstream failures never
// surface: they degrade to omitted entries or the search fallback
// message.
func (s *AskService) Ask(ctx context.Context, username, question, rawURLs string) ([]model.HistoryEntry, error) {
	question = strings.TrimSpace(question)
	if username == "" || question == "" {
		return nil, ErrInvalidInput
	}

	if err := s.history.ExpireIfStale(ctx, username); err != nil {
		return nil, err
	}

	var entries []model.HistoryEntry
	askedAt := time.Now()
	if urls := ParseURLList(rawURLs); len(urls) > 0 {
		for _, answer := range s.delegate.AnswerMany(ctx, urls, []string{question}) {
			entries = append(entries, model.HistoryEntry{
				Question: answer.Question,
				Answer:   answer.Answer,
				Source:   answer.URL,
				AskedAt:  askedAt,
			})
		}
	} else {
		entries = append(entries, model.HistoryEntry{
			Question: question,
			Answer:   s.searcher.Summarize(ctx, question, s.maxResults),
			AskedAt:  askedAt,
		})
	}

	if _, err := s.history.AppendAndTrim(ctx, username, entries...); err != nil {
		return nil, err
	}

	s.archive(ctx, username, entries)
	return entries, nil
}

// archive is best effort: a full queue or a down broker must not fail
// the request.
func (s *AskService) archive(ctx context.Context, username string, entries []model.HistoryEntry) {
	if s.publisher == nil {
		return
	}
	for _, entry := range entries {
		record := model.QARecord{
			Username: username,
			Question: entry.Question,
			Answer:   entry.Answer,
			Source:   entry.Source,
		}
		if err := s.publisher.Publish(ctx, record); err != nil {
			log.Warnf("archive publish for %s failed: %v", username, err)
		}
	}
}
