package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabiobedeschi/iiot-userservice/pkg/middleware"
	"github.com/fabiobedeschi/iiot-userservice/pkg/models"
	"github.com/fabiobedeschi/iiot-userservice/pkg/repository"
)

// WasteBinStore is the persistence contract for the waste bin resource.
// Waste bins are plain records with no notification semantics.
type WasteBinStore interface {
	FindAllWasteBins() ([]models.WasteBin, error)
	FindWasteBin(id string) (*models.WasteBin, error)
	UpdateWasteBin(id string, fillLevel int) (*models.WasteBin, error)
}

// WasteBinHandler handles waste-bin HTTP requests.
type WasteBinHandler struct {
	Store WasteBinStore
}

// NewWasteBinHandler creates a new WasteBinHandler.
func NewWasteBinHandler(store WasteBinStore) *WasteBinHandler {
	return &WasteBinHandler{Store: store}
}

// ListWasteBins godoc
// @Summary      List waste bins
// @Tags         waste-bins
// @Produce      json
// @Success      200  {array}   models.WasteBin
// @Failure      500  {object}  map[string]string
// @Router       /waste_bins [get]
func (h *WasteBinHandler) ListWasteBins(c *gin.Context) {
	bins, err := h.Store.FindAllWasteBins()
	if err != nil {
		log.Printf("[API] Error listing waste bins: %v correlation_id=%s", err, middleware.GetCorrelationID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch waste bins"})
		return
	}
	c.JSON(http.StatusOK, bins)
}

// GetWasteBin godoc
// @Summary      Get a waste bin by ID
// @Tags         waste-bins
// @Produce      json
// @Param        id   path      string  true  "Waste bin ID"
// @Success      200  {object}  models.WasteBin
// @Failure      404  {object}  map[string]string
// @Router       /waste_bins/{id} [get]
func (h *WasteBinHandler) GetWasteBin(c *gin.Context) {
	bin, err := h.Store.FindWasteBin(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, bin)
}

// UpdateWasteBin godoc
// @Summary      Update a waste bin's fill level
// @Tags         waste-bins
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Waste bin ID"
// @Param        request  body      models.UpdateWasteBinRequest  true  "Update waste bin request"
// @Success      200      {object}  models.WasteBin
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /waste_bins/{id} [put]
func (h *WasteBinHandler) UpdateWasteBin(c *gin.Context) {
	correlationID := middleware.GetCorrelationID(c)
	binID := c.Param("id")

	var req models.UpdateWasteBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bin, err := h.Store.UpdateWasteBin(binID, *req.FillLevel)
	if err != nil {
		log.Printf("[API] Error updating waste bin: %v correlation_id=%s", err, correlationID)
		h.renderError(c, err)
		return
	}

	log.Printf("[API] Waste bin updated: id=%s fill_level=%d correlation_id=%s", bin.ID, bin.FillLevel, correlationID)
	c.JSON(http.StatusOK, bin)
}

func (h *WasteBinHandler) renderError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "waste bin not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
