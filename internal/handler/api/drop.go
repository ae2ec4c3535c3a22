package api

import (
	"errors"
	"net/http"

	resdto "qomo-drops/internal/handler/dto/response"
	"qomo-drops/internal/handler/middleware"
	"qomo-drops/internal/pkg/errs"
	"qomo-drops/internal/usecase/commands"
	"qomo-drops/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DropHandler struct {
	dropCommands commands.DropCommands
	dropQueries  queries.DropQueries
}

func NewDropHandler(dropCommands commands.DropCommands, dropQueries queries.DropQueries) *DropHandler {
	return &DropHandler{
		dropCommands: dropCommands,
		dropQueries:  dropQueries,
	}
}

// @Summary List drops
// @Description List status of all drops
// @Tags drops
// @Produce json
// @Success 200 {array} resdto.DropStatusResponse
// @Router /api/drops [get]
func (h *DropHandler) List(c *gin.Context) {
	views, err := h.dropQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.DropStatusResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromDropView(view)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get drop status
// @Description Current status of one drop, including the caller's queue position
// @Tags drops
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.DropStatusResponse
// @Failure 404 {object} map[string]string
// @Router /api/drops/{id} [get]
func (h *DropHandler) Get(c *gin.Context) {
	viewerID := middleware.GetViewerID(c)

	view, err := h.dropQueries.GetStatus(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDropView(view))
}

// @Summary View a drop
// @Description Pay-to-reveal: acquire the viewing lock or join the queue
// @Tags drops
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ViewResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/drops/{id}/view [post]
func (h *DropHandler) View(c *gin.Context) {
	viewerID := middleware.GetViewerID(c)
	if viewerID == "" {
		h.renderError(c, errs.ErrMissingViewer)
		return
	}

	out, err := h.dropCommands.View(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromViewOutcome(out))
}

// @Summary Cancel a viewing lock
// @Description Release the caller's lock; the next queued viewer becomes eligible
// @Tags drops
// @Produce json
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/drops/{id}/cancel [post]
func (h *DropHandler) Cancel(c *gin.Context) {
	viewerID := middleware.GetViewerID(c)
	if viewerID == "" {
		h.renderError(c, errs.ErrMissingViewer)
		return
	}

	if err := h.dropCommands.Cancel(c.Request.Context(), c.Param("id"), viewerID); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Buy a drop
// @Description Settle the sale at the current live price
// @Tags drops
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/drops/{id}/buy [post]
func (h *DropHandler) Buy(c *gin.Context) {
	buyerID := middleware.GetViewerID(c)
	if buyerID == "" {
		h.renderError(c, errs.ErrMissingViewer)
		return
	}

	out, err := h.dropCommands.Buy(c.Request.Context(), c.Param("id"), buyerID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseOutcome(out))
}

// @Summary Market comparison
// @Description Marketplace price comparison and product image for one drop
// @Tags drops
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} queries.Comparison
// @Failure 404 {object} map[string]string
// @Router /api/drops/{id}/comparison [get]
func (h *DropHandler) Compare(c *gin.Context) {
	comparison, err := h.dropQueries.Compare(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

// @Summary Reset all drops
// @Description Re-initialize every drop state from the catalog (test/simulation hook)
// @Tags admin
// @Produce json
// @Success 204
// @Router /api/admin/reset [post]
func (h *DropHandler) Reset(c *gin.Context) {
	if err := h.dropCommands.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DropHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrDropNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Drop not found",
		})
	case errors.Is(err, commands.ErrAlreadySold):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Drop already sold",
		})
	case errors.Is(err, commands.ErrLockedByOther):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Drop is locked by another viewer",
		})
	case errors.Is(err, errs.ErrMissingViewer):
		// The viewer middleware guarantees an identity; reaching here means a
		// route was registered without it.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
