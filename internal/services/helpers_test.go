package services

import (
	"context"
	"sync"
)

type providerCall struct {
	prompt string
	params GenerationParams
}

type stubProvider struct {
	mu    sync.Mutex
	fn    func(ctx context.Context, prompt string) (string, error)
	calls []providerCall
}

func respondWith(response string) *stubProvider {
	return &stubProvider{fn: func(context.Context, string) (string, error) { return response, nil }}
}

func failWith(err error) *stubProvider {
	return &stubProvider{fn: func(context.Context, string) (string, error) { return "", err }}
}

func (s *stubProvider) Complete(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, providerCall{prompt: prompt, params: params})
	s.mu.Unlock()
	return s.fn(ctx, prompt)
}

func (s *stubProvider) Name() string  { return "stub" }
func (s *stubProvider) Model() string { return "stub-model" }

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubProvider) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return ""
	}
	return s.calls[len(s.calls)-1].prompt
}

type stubPDFParser struct {
	text string
	err  error
}

func (s *stubPDFParser) ExtractText([]byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubPDFParser) ExtractTextWithMetaData([]byte) (*PDFContent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &PDFContent{Text: s.text, PageCount: 1}, nil
}
