package ui

import (
	"io"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"edascope/internal/insight"
)

// handleInsightStream streams model-generated analysis to the page as SSE
// events. Each fragment is forwarded as it arrives; a client disconnect
// cancels the upstream request through the request context. Streams that
// finish cleanly are cached on the session so report downloads embed them.
func (s *Server) handleInsightStream(c *gin.Context) {
	sess, ok := s.currentSession(c)
	if !ok {
		return
	}

	kind, err := insight.ParseKind(c.Query("kind"))
	if err != nil {
		respondError(c, err)
		return
	}

	prompt := insight.BuildPrompt(kind, sess.Dataset, sess.Profile)
	stream, err := s.insights.StreamChat(c.Request.Context(), prompt)
	if err != nil {
		log.Printf("[handleInsightStream] FAILED - %s request: %v", kind, err)
		respondError(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ctx := c.Request.Context()
	var collected strings.Builder
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		fragment, err := stream.Recv()
		if err == io.EOF {
			s.store.PutInsight(sess.ID, sess.Gen, string(kind), collected.String())
			c.SSEvent("done", "")
			return false
		}
		if err != nil {
			log.Printf("[handleInsightStream] Stream error mid-response: %v", err)
			c.SSEvent("error", err.Error())
			return false
		}
		collected.WriteString(fragment)
		c.SSEvent("chunk", fragment)
		return true
	})
}
