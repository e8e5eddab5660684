package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/fadilmartias/job-matcher/internal/apperror"
	"github.com/fadilmartias/job-matcher/internal/dto"
	"github.com/fadilmartias/job-matcher/internal/middleware"
	"github.com/fadilmartias/job-matcher/internal/model"
	"github.com/fadilmartias/job-matcher/internal/response"
	"github.com/fadilmartias/job-matcher/internal/usecase"
	"github.com/fadilmartias/job-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matchUc     *usecase.MatchingUsecase
	embeddingUc *usecase.EmbeddingUsecase
}

func NewMatchHandler(matchUc *usecase.MatchingUsecase, embeddingUc *usecase.EmbeddingUsecase) *MatchHandler {
	return &MatchHandler{matchUc: matchUc, embeddingUc: embeddingUc}
}

func (h *MatchHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/jobs/:id/matches", h.MatchesForJob)
	app.Get("/candidates/:id/matches", h.MatchesForCandidate)
	app.Put("/documents/:kind/:id/embedding", middleware.RateLimiter(10, time.Minute), h.EnsureEmbedding)
	app.Get("/embeddings", h.ListEmbeddings)
}

func (h *MatchHandler) MatchesForJob(c *fiber.Ctx) error {
	return h.matches(c, model.KindJob)
}

func (h *MatchHandler) MatchesForCandidate(c *fiber.Ctx) error {
	return h.matches(c, model.KindCandidate)
}

func (h *MatchHandler) matches(c *fiber.Ctx, kind model.DocumentKind) error {
	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid document id",
		}, err)
	}

	topK := c.QueryInt("top_k", 0)
	var minSimilarity *float64
	if raw := c.Query("min_similarity"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "invalid min_similarity",
			}, err)
		}
		minSimilarity = &parsed
	}

	result, err := h.matchUc.FindMatchesForDocument(documentID, kind, topK, minSimilarity)
	if err != nil {
		return h.matchError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success find matches",
		Data:    result,
	})
}

func (h *MatchHandler) EnsureEmbedding(c *fiber.Ctx) error {
	kind := model.DocumentKind(c.Params("kind"))
	if !kind.Valid() {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "document kind must be job or candidate",
		})
	}

	documentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid document id",
		}, err)
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if body.Text == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: "text is required",
		})
	}

	emb, err := h.embeddingUc.EnsureEmbedding(c.UserContext(), documentID, kind, body.Text)
	if err != nil {
		return h.matchError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success store embedding",
		Data: dto.EmbeddingDTO{
			ID:           emb.ID,
			DocumentID:   emb.DocumentID,
			DocumentKind: string(emb.DocumentKind),
			Dimension:    len(emb.Vector.Slice()),
			CreatedAt:    emb.CreatedAt,
			UpdatedAt:    emb.UpdatedAt,
		},
	})
}

func (h *MatchHandler) ListEmbeddings(c *fiber.Ctx) error {
	kind := model.DocumentKind(c.Query("kind"))
	if kind != "" && !kind.Valid() {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "document kind must be job or candidate",
		})
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 10)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	embs, total, err := h.embeddingUc.ListEmbeddings(kind, page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list embeddings",
		}, err)
	}

	items := make([]dto.EmbeddingDTO, 0, len(embs))
	for _, emb := range embs {
		items = append(items, dto.EmbeddingDTO{
			ID:           emb.ID,
			DocumentID:   emb.DocumentID,
			DocumentKind: string(emb.DocumentKind),
			Dimension:    len(emb.Vector.Slice()),
			CreatedAt:    emb.CreatedAt,
			UpdatedAt:    emb.UpdatedAt,
		})
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list embeddings",
		Data:    items,
		Pagination: &response.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			TotalItems: total,
			HasMore:    int64(page) < totalPages,
			From:       (page-1)*pageSize + 1,
			To:         (page-1)*pageSize + len(items),
		},
	})
}

func (h *MatchHandler) matchError(c *fiber.Ctx, err error) error {
	var notFound *apperror.SourceEmbeddingNotFoundError
	if errors.As(err, &notFound) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "document has no embedding yet",
		}, err)
	}

	var provider *apperror.EmbeddingProviderError
	if errors.As(err, &provider) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "embedding provider failed",
		}, err)
	}

	var mismatch *apperror.DimensionMismatchError
	if errors.As(err, &mismatch) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusInternalServerError,
			Message: "embedding dimensionality drift detected",
		}, err)
	}

	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: "match request failed",
	}, err)
}
