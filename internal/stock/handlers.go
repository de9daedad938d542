package stock

import (
	"fmt"
	"net/http"

	"github.com/noah-isme/backend-gudang/internal/common"
)

// Handler exposes stock endpoints.
type Handler struct {
	Service *Service
}

type importRequest struct {
	Items []Record `json:"items" validate:"min=1,dive"`
}

// Import handles POST /api/v1/stock/import.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "stock service not configured", nil)
		return
	}
	var req importRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	for i, rec := range req.Items {
		if rec.Price.Sign() <= 0 {
			common.WriteError(w, common.BadRequest("price must be positive", nil, map[string]any{
				"index": i,
				"name":  rec.Name,
			}))
			return
		}
	}
	if err := h.Service.Import(r.Context(), req.Items); err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%d items imported", len(req.Items)),
	})
}

// Levels handles GET /api/v1/stock.
func (h *Handler) Levels(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "stock service not configured", nil)
		return
	}
	levels, err := h.Service.Levels(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": levels})
}
