package qa

import (
	"context"

	"askpilot/pkg/log"
)

// AnswerClient is the inference call AnswerMany depends on.
type AnswerClient interface {
	Answer(ctx context.Context, question, contextText string) (string, error)
}

// ContextExtractor turns a URL into context text for the model.
type ContextExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Answer is one successfully answered (url, question) pair.
type Answer struct {
	URL      string `json:"url"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Delegate runs questions against user-supplied URLs.
type Delegate struct {
	client    AnswerClient
	extractor ContextExtractor
}

func NewDelegate(client AnswerClient, extractor ContextExtractor) *Delegate {
	return &Delegate{client: client, extractor: extractor}
}

// AnswerMany extracts each URL's context once and attempts every
// question against it. Pairs where extraction or answering fails are
// silently omitted; there is no partial-error record.
func (d *Delegate) AnswerMany(ctx context.Context, urls, questions []string) []Answer {
	var answers []Answer
	for _, u := range urls {
		contextText, err := d.extractor.Extract(ctx, u)
		if err != nil {
			log.Debugf("skip url %s: %v", u, err)
			continue
		}
		for _, q := range questions {
			answer, err := d.client.Answer(ctx, q, contextText)
			if err != nil {
				log.Debugf("skip question %q for %s: %v", q, u, err)
				continue
			}
			answers = append(answers, Answer{URL: u, Question: q, Answer: answer})
		}
	}
	return answers
}
