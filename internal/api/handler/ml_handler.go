package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/influenceai/influence-frontend/internal/api/middleware"
	"github.com/influenceai/influence-frontend/internal/core/domain"
	"github.com/influenceai/influence-frontend/internal/core/ports"
)

// MLHandler proxies the dataset, training, and prediction operations.
type MLHandler struct {
	gateway ports.BackendGateway
}

func NewMLHandler(gateway ports.BackendGateway) *MLHandler {
	return &MLHandler{gateway: gateway}
}

type predictRequest struct {
	Followers int `json:"followers" validate:"min=0"`
	Likes     int `json:"likes" validate:"min=0"`
	Shares    int `json:"shares" validate:"min=0"`
	Comments  int `json:"comments" validate:"min=0"`
}

// Upload forwards an engagement dataset to the backend.
//
// @Summary      Upload an engagement dataset
// @Tags         ml
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV dataset"
// @Success      200   {object}  ports.UploadResult
// @Failure      400   {object}  map[string]string
// @Router       /ml/upload [post]
func (h *MLHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing dataset file")
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable dataset file")
	}
	defer src.Close()

	result, err := h.gateway.UploadDataset(c.Request().Context(), middleware.Token(c), fh.Filename, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Train triggers a training run over an uploaded dataset. The dataset id is
// the transient handle from the preceding upload on the same page.
//
// @Summary      Train the influence models
// @Tags         ml
// @Produce      json
// @Param        dataset_id  query     int  true  "Dataset handle from upload"
// @Success      200         {object}  domain.TrainResult
// @Failure      422         {object}  map[string]string
// @Router       /ml/train [post]
func (h *MLHandler) Train(c echo.Context) error {
	datasetID, err := strconv.ParseInt(c.QueryParam("dataset_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dataset_id must be an integer")
	}

	result, err := h.gateway.Train(c.Request().Context(), middleware.Token(c), datasetID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Predict scores one engagement profile.
//
// @Summary      Predict influence for an engagement profile
// @Tags         ml
// @Accept       json
// @Produce      json
// @Param        body  body      predictRequest  true  "Engagement metrics"
// @Success      200   {object}  domain.PredictionResult
// @Failure      422   {object}  map[string]string
// @Router       /ml/predict [post]
func (h *MLHandler) Predict(c echo.Context) error {
	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return &domain.ValidationError{Detail: err.Error()}
	}

	result, err := h.gateway.Predict(c.Request().Context(), middleware.Token(c), domain.PredictionInput{
		Followers: req.Followers,
		Likes:     req.Likes,
		Shares:    req.Shares,
		Comments:  req.Comments,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ModelMetrics lists evaluation scores of every trained model.
//
// @Summary      Model evaluation metrics
// @Tags         ml
// @Produce      json
// @Success      200  {array}  domain.ModelMetric
// @Router       /ml/model-metrics [get]
func (h *MLHandler) ModelMetrics(c echo.Context) error {
	metrics, err := h.gateway.ModelMetrics(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metrics)
}

// TopInfluencers returns the highest-scoring prediction records.
//
// @Summary      Top-scoring predictions
// @Tags         ml
// @Produce      json
// @Success      200  {array}  domain.PredictionRecord
// @Router       /ml/top-influencers [get]
func (h *MLHandler) TopInfluencers(c echo.Context) error {
	records, err := h.gateway.TopInfluencers(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
