package basket

import (
	"errors"
	"net/http"

	"github.com/noah-isme/backend-gudang/internal/common"
)

// Handler exposes the basket pricing endpoint.
type Handler struct {
	Service *Service
}

type computeRequest struct {
	Items []Line `json:"items" validate:"min=1,dive"`
}

// ComputeDiscount handles POST /api/v1/basket/discount.
func (h *Handler) ComputeDiscount(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "basket service not configured", nil)
		return
	}
	var req computeRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	result, err := h.Service.ComputeDiscount(r.Context(), req.Items)
	if err != nil {
		common.WriteError(w, mapComputeError(err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": result})
}

func mapComputeError(err error) error {
	var notFound *ProductNotFoundError
	if errors.As(err, &notFound) {
		return common.NotFound(notFound.Error(), err)
	}
	var insufficient *InsufficientStockError
	if errors.As(err, &insufficient) {
		return &common.AppError{
			Code:       "INSUFFICIENT_STOCK",
			Message:    insufficient.Error(),
			HTTPStatus: http.StatusConflict,
			Err:        err,
			Details: map[string]any{
				"productId": insufficient.ProductID,
				"requested": insufficient.Requested,
				"available": insufficient.Available,
			},
		}
	}
	return err
}
