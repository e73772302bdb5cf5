package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/pkg/validator"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
)

// SpotHandler - обработчик запросов к коллекции парковочных мест
type SpotHandler struct {
	aggregatorUC *usecase.AggregatorUseCase
	spotUC       *usecase.SpotUseCase
	logger       *zap.Logger
}

// NewSpotHandler - создание нового SpotHandler
func NewSpotHandler(
	aggregatorUC *usecase.AggregatorUseCase,
	spotUC *usecase.SpotUseCase,
	logger *zap.Logger,
) *SpotHandler {
	return &SpotHandler{
		aggregatorUC: aggregatorUC,
		spotUC:       spotUC,
		logger:       logger,
	}
}

// Refresh - цикл агрегации провайдеров вокруг координат пользователя
// @Summary Обновление коллекции парковочных мест
// @Description Опрашивает OSM Overpass и Google Places вокруг координат, нормализует и вливает новые места в коллекцию. Отказ провайдеров не является ошибкой: возвращается текущая коллекция.
// @Tags Spots
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Координаты пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.SpotsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/spots/refresh [post]
func (h *SpotHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	spots, err := h.aggregatorUC.Refresh(c.Context(), req.Lat, req.Lng)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.SpotsResponse{
		Spots: spots,
		Total: len(spots),
	}, &utils.Meta{Total: len(spots)})
}

// List - выборка коллекции с фильтром и сортировкой по удалённости
// @Summary Список парковочных мест
// @Description Возвращает коллекцию; при заданных координатах места отсортированы по удалённости, статус фильтруется параметром status.
// @Tags Spots
// @Produce json
// @Param lat query number false "Широта точки отсчёта"
// @Param lng query number false "Долгота точки отсчёта"
// @Param status query string false "Фильтр по статусу (free, occupied)"
// @Success 200 {object} utils.SuccessResponse{data=dto.SpotsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/spots [get]
func (h *SpotHandler) List(c *fiber.Ctx) error {
	var query dto.ListSpotsQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(query); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	spots := h.spotUC.ListSpots(query)

	return utils.SendSuccess(c, dto.SpotsResponse{
		Spots: spots,
		Total: len(spots),
	}, &utils.Meta{Total: len(spots)})
}

// Add - добавление краудсорсингового места
// @Summary Добавление парковочного места
// @Description Создаёт краудсорсинговое место с локально сгенерированным идентификатором и статусом free.
// @Tags Spots
// @Accept json
// @Produce json
// @Param request body dto.AddSpotRequest true "Координаты и необязательное имя"
// @Success 200 {object} utils.SuccessResponse{data=dto.SpotResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/spots [post]
func (h *SpotHandler) Add(c *fiber.Ctx) error {
	var req dto.AddSpotRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	spot, err := h.spotUC.AddSpot(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.SpotResponse{Spot: spot}, nil)
}

// ReportStatus - пользовательский отчёт о статусе места
// @Summary Отчёт о статусе парковочного места
// @Description Выставляет статус free/occupied и обновляет время отчёта. Статус не откатывается последующими циклами агрегации.
// @Tags Spots
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор места"
// @Param request body dto.ReportStatusRequest true "Новый статус"
// @Success 200 {object} utils.SuccessResponse{data=dto.SpotResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id}/status [post]
func (h *SpotHandler) ReportStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.ReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(req); err != nil {
		return utils.SendError(c, errors.ErrInvalidStatus)
	}

	spot, err := h.spotUC.ReportStatus(id, domain.SpotStatus(req.Status))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.SpotResponse{Spot: spot}, nil)
}

// ToggleFavorite - переключение флага избранного
// @Summary Избранное
// @Description Переключает флаг избранного для места.
// @Tags Spots
// @Produce json
// @Param id path string true "Идентификатор места"
// @Success 200 {object} utils.SuccessResponse{data=dto.SpotResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id}/favorite [post]
func (h *SpotHandler) ToggleFavorite(c *fiber.Ctx) error {
	id := c.Params("id")

	spot, err := h.spotUC.ToggleFavorite(id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.SpotResponse{Spot: spot}, nil)
}
