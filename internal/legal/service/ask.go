package service

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qanunai/legal-advisor-backend/internal/legal/pipeline"
	apperrors "github.com/qanunai/legal-advisor-backend/internal/pkg/errors"
	"github.com/qanunai/legal-advisor-backend/internal/pkg/response"
)

// LegalService exposes the question pipeline over HTTP.
type LegalService struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

func NewLegalService(p *pipeline.Pipeline, logger *zap.Logger) *LegalService {
	return &LegalService{
		pipeline: p,
		logger:   logger,
	}
}

func (s *LegalService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ask", s.Ask)
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
	Locale   string `json:"locale"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

func (s *LegalService) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "question is required")
		return
	}

	answer, err := s.pipeline.Answer(c.Request.Context(), req.Question, req.Locale)
	if err != nil {
		kind := apperrors.ExtractKind(err)
		s.logger.Error("ask failed",
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		response.Error(c, kind.HTTPStatus(), kind.String())
		return
	}

	response.Success(c, AskResponse{Answer: answer})
}
