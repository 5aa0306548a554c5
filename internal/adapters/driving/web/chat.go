package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"configured": s.ports.Chat.Configured(),
		"timestamp":  time.Now(),
	})
}

func (s *Server) getTranscript(c *gin.Context) {
	transcript := s.ports.Chat.Transcript()
	messages := make([]MessageResponse, len(transcript))
	for i, m := range transcript {
		messages[i] = toMessageResponse(m)
	}

	c.JSON(http.StatusOK, TranscriptResponse{
		Messages:   messages,
		Awaiting:   s.ports.Chat.Awaiting(),
		Configured: s.ports.Chat.Configured(),
		Model:      s.ports.Chat.ModelName(),
	})
}

func (s *Server) submitMessage(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.ports.Chat.Submit(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	resp := TurnResponse{
		User:      toMessageResponse(result.User),
		Assistant: toMessageResponse(result.Assistant),
		Citation:  toCitationResponse(result.Citation),
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
