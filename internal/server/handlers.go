package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/domain"
	"github.com/kapu/kokkai-giin-go/internal/service/kokkai"
	"github.com/kapu/kokkai-giin-go/pkg/errors"
)

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"kokkai": s.searcher.Health(c.Request.Context()),
	})
}

// loadPoliticians returns the canonical collection. A missing or unreadable
// file yields an empty list.
func (s *Server) loadPoliticians() []domain.MemberRecord {
	records, err := s.members.Load(s.cfg.Canonical)
	if err != nil {
		if errors.IsNotExist(err) {
			s.logger.Debug("Canonical collection not found", zap.String("file", s.cfg.Canonical))
		} else {
			s.logger.Warn("Failed to load canonical collection", zap.Error(err))
		}
		return []domain.MemberRecord{}
	}
	return records
}

// GET /api/politicians[?chamber=]
func (s *Server) listPoliticians(c *gin.Context) {
	records := s.loadPoliticians()

	raw := c.Query("chamber")
	if raw == "" {
		c.JSON(http.StatusOK, records)
		return
	}

	chamber, ok := domain.ParseChamber(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid chamber",
		})
		return
	}

	filtered := make([]domain.MemberRecord, 0, len(records))
	for _, record := range records {
		if record.Chamber == chamber {
			filtered = append(filtered, record)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

// GET /api/politicians/:id
func (s *Server) getPolitician(c *gin.Context) {
	id := c.Param("id")

	for _, record := range s.loadPoliticians() {
		if record.ID == id {
			c.JSON(http.StatusOK, record)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{
		"error": "politician not found",
	})
}

// GET /api/speeches
func (s *Server) searchSpeeches(c *gin.Context) {
	result, err := s.searcher.SearchSpeeches(c.Request.Context(), kokkai.SpeechQuery{
		Speaker: c.Query("speaker"),
		From:    c.Query("from_date"),
		Until:   c.Query("until_date"),
		Meeting: c.Query("meeting"),
		Keyword: c.Query("keyword"),
		Page:    kokkai.ParsePage(c.Query("page")),
	})
	if err != nil {
		s.logger.Error("Speech search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}

// GET /api/meetings
func (s *Server) searchMeetings(c *gin.Context) {
	result, err := s.searcher.SearchMeetings(c.Request.Context(), kokkai.MeetingQuery{
		From:          c.Query("from_date"),
		Until:         c.Query("until_date"),
		NameOfHouse:   c.Query("name_of_house"),
		NameOfMeeting: c.Query("name_of_meeting"),
		Page:          kokkai.ParsePage(c.Query("page")),
	})
	if err != nil {
		s.logger.Error("Meeting search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}
