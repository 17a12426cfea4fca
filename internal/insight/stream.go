package insight

import (
	"bufio"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"edascope/internal/errors"
)

// Stream is a lazy, finite, non-restartable sequence of text fragments
// from the model. Recv returns fragments in arrival order and io.EOF when
// the stream is exhausted; Close releases the underlying connection.
// Cancelling the request context aborts a blocked Recv.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// sseStream reads an SSE-framed chat-completions response body. Each
// event line is "data: {json}" with the incremental text at
// choices.0.delta.content; "data: [DONE]" terminates the stream.
type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

func newSSEStream(body io.ReadCloser) *sseStream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &sseStream{body: body, scanner: scanner}
}

// Recv returns the next text fragment. Lines that are not data events or
// carry no delta content are skipped, matching how lenient SSE consumers
// treat keep-alives and role/finish chunks.
func (s *sseStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}

	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		if payload == "[DONE]" {
			s.done = true
			return "", io.EOF
		}

		delta := gjson.Get(payload, "choices.0.delta.content")
		if !delta.Exists() || delta.String() == "" {
			continue
		}
		return delta.String(), nil
	}

	s.done = true
	if err := s.scanner.Err(); err != nil {
		return "", errors.ExternalServiceError("model stream", err)
	}
	return "", io.EOF
}

// Close releases the response body
func (s *sseStream) Close() error {
	s.done = true
	return s.body.Close()
}

// Collect drains a stream and returns the fragments concatenated in
// arrival order. The stream is closed regardless of outcome.
func Collect(stream Stream) (string, error) {
	defer stream.Close()

	var sb strings.Builder
	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(fragment)
	}
}

// MockStream replays fixed fragments, for tests and the mock client
type MockStream struct {
	Fragments []string
	Err       error // returned after the fragments are exhausted, instead of EOF
	pos       int
}

func (m *MockStream) Recv() (string, error) {
	if m.pos >= len(m.Fragments) {
		if m.Err != nil {
			return "", m.Err
		}
		return "", io.EOF
	}
	fragment := m.Fragments[m.pos]
	m.pos++
	return fragment, nil
}

func (m *MockStream) Close() error { return nil }
