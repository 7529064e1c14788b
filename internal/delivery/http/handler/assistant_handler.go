package handler

import (
	"jobrank/internal/delivery/http/dto"
	"jobrank/internal/delivery/http/middleware"
	"jobrank/internal/pkg/response"
	"jobrank/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssistantHandler struct {
	uc usecase.AssistantUsecase
}

type assistantRequest struct {
	Text string `json:"text"`
}

func NewAssistantHandler(uc usecase.AssistantUsecase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

func (h *AssistantHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/assistant")
	grp.Post("/query", h.Query)
}

func (h *AssistantHandler) Query(c fiber.Ctx) error {
	var req assistantRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.Query(c.Context(), req.Text)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	resp := dto.AssistantResponse{
		Output:      out.Output,
		FeatureType: out.FeatureType,
	}
	if out.Jobs != nil {
		structured := dto.NewRecommendationResponse(*out.Jobs)
		resp.StructuredData = &structured
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, resp)
}
