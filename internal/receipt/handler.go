package receipt

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okarim/tabsplit/pkg/response"
)

// Handler handles HTTP requests for receipt operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new receipt handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for receipt endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateReceipt)
	r.Post("/scan", h.ScanReceipt)
	r.Get("/", h.ListReceipts)
	r.Get("/{receiptId}", h.GetReceipt)
	r.Delete("/{receiptId}", h.DeleteReceipt)

	r.Post("/{receiptId}/split", h.CalculateSplit)
	r.Post("/{receiptId}/split/validate", h.ValidateSplit)
	r.Post("/{receiptId}/split/settle", h.SettleSplit)
	r.Post("/{receiptId}/split/status", h.SetSplitStatus)
	r.Get("/{receiptId}/split/people/{personId}", h.PersonBreakdown)

	return r
}

// CreateReceipt handles POST /receipts
// @Summary      Create a receipt
// @Description  Creates a receipt from manually entered items and totals
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request body CreateReceiptRequest true "Receipt data"
// @Success      201 {object} response.APIResponse{data=ReceiptResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /receipts [post]
func (h *Handler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	var req CreateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if req.Merchant == "" {
		response.BadRequest(w, "Merchant is required")
		return
	}
	if len(req.Items) == 0 {
		response.BadRequest(w, "At least one item is required")
		return
	}
	if req.Total <= 0 {
		response.BadRequest(w, "Total must be positive")
		return
	}

	receipt, err := h.service.CreateReceipt(r.Context(), &req)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusCreated, receipt.ToResponse(nil))
}

// ScanReceipt handles POST /receipts/scan
// @Summary      Scan a receipt image
// @Description  Sends a base64-encoded image to the scanning service and stores the recognized receipt
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        request body ScanReceiptRequest true "Captured image"
// @Success      201 {object} response.APIResponse{data=ReceiptResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      502 {object} response.APIResponse
// @Router       /receipts/scan [post]
func (h *Handler) ScanReceipt(w http.ResponseWriter, r *http.Request) {
	var req ScanReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Image == "" {
		response.BadRequest(w, "Image is required")
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		response.BadRequest(w, "Image must be base64 encoded")
		return
	}

	receipt, err := h.service.ScanReceipt(r.Context(), image)
	if err != nil {
		if errors.Is(err, ErrScanFailed) {
			response.BadRequest(w, err.Error())
			return
		}
		response.Error(w, http.StatusBadGateway, "SCAN_UNAVAILABLE", "Scanning service unavailable")
		return
	}

	response.JSON(w, http.StatusCreated, receipt.ToResponse(nil))
}

// ListReceipts handles GET /receipts
// @Summary      List receipts
// @Description  Returns receipts, newest first
// @Tags         receipts
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]ReceiptResponse}
// @Router       /receipts [get]
func (h *Handler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	receipts, total, err := h.service.ListReceipts(r.Context(), page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list receipts")
		return
	}

	responses := make([]*ReceiptResponse, len(receipts))
	for i, receipt := range receipts {
		responses[i] = receipt.ToResponse(h.service.Shares(r.Context(), receipt))
	}

	totalPages := (total + perPage - 1) / perPage
	response.JSONWithMeta(w, http.StatusOK, responses, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// GetReceipt handles GET /receipts/{receiptId}
// @Summary      Get a receipt
// @Description  Returns a receipt with its split summary, if one exists
// @Tags         receipts
// @Produce      json
// @Param        receiptId path string true "Receipt ID"
// @Success      200 {object} response.APIResponse{data=ReceiptResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /receipts/{receiptId} [get]
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.service.GetReceipt(r.Context(), chi.URLParam(r, "receiptId"))
	if err != nil {
		if errors.Is(err, ErrReceiptNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get receipt")
		return
	}

	response.JSON(w, http.StatusOK, receipt.ToResponse(h.service.Shares(r.Context(), receipt)))
}

// DeleteReceipt handles DELETE /receipts/{receiptId}
// @Summary      Delete a receipt
// @Description  Removes a receipt and its split
// @Tags         receipts
// @Produce      json
// @Param        receiptId path string true "Receipt ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /receipts/{receiptId} [delete]
func (h *Handler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteReceipt(r.Context(), chi.URLParam(r, "receiptId"))
	if err != nil {
		if errors.Is(err, ErrReceiptNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete receipt")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Receipt deleted"})
}

// CalculateSplit handles POST /receipts/{receiptId}/split
// @Summary      Calculate and persist a split
// @Description  Validates the split inputs, computes per-person totals, and stores the result on the receipt
// @Tags         splits
// @Accept       json
// @Produce      json
// @Param        receiptId path string true "Receipt ID"
// @Param        request body CalculateSplitRequest true "Split parameters"
// @Success      200 {object} response.APIResponse{data=ReceiptResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse{data=ValidationResponse}
// @Router       /receipts/{receiptId}/split [post]
func (h *Handler) CalculateSplit(w http.ResponseWriter, r *http.Request) {
	var req CalculateSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	receipt, err := h.service.CalculateSplit(r.Context(), chi.URLParam(r, "receiptId"), &req)
	if err != nil {
		var validation *SplitValidationError
		if errors.As(err, &validation) {
			// Not an error in the HTTP sense: the inputs just don't
			// reconcile yet. Hand the messages back for the UI.
			response.JSON(w, http.StatusUnprocessableEntity, &ValidationResponse{
				Valid:  false,
				Errors: validation.Errors,
			})
			return
		}
		if errors.Is(err, ErrReceiptNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, receipt.ToResponse(h.service.Shares(r.Context(), receipt)))
}

// ValidateSplit handles POST /receipts/{receiptId}/split/validate
// @Summary      Validate split inputs
// @Description  Runs the split validator without persisting anything
// @Tags         splits
// @Accept       json
// @Produce      json
// @Param        receiptId path string true "Receipt ID"
// @Param        request body CalculateSplitRequest true "Split parameters"
// @Success      200 {object} response.APIResponse{data=ValidationResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /receipts/{receiptId}/split/validate [post]
func (h *Handler) ValidateSplit(w http.ResponseWriter, r *http.Request) {
	var req CalculateSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.ValidateSplit(r.Context(), chi.URLParam(r, "receiptId"), &req)
	if err != nil {
		if errors.Is(err, ErrReceiptNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to validate split")
		return
	}

	response.JSON(w, http.StatusOK, &ValidationResponse{Valid: result.Valid, Errors: result.Errors})
}

// SettleSplit handles POST /receipts/{receiptId}/split/settle
// @Summary      Record a payment
// @Description  Adds a payment toward one person's share; the settled amount is clamped to what they owe
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        receiptId path string true "Receipt ID"
// @Param        request body SettleRequest true "Payment"
// @Success      200 {object} response.APIResponse{data=ReceiptResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /receipts/{receiptId}/split/settle [post]
func (h *Handler) SettleSplit(w http.ResponseWriter, r *http.Request) {
	var req SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.PersonID == "" {
		response.BadRequest(w, "Person ID is required")
		return
	}

	receipt, err := h.service.SettleSplit(r.Context(), chi.URLParam(r, "receiptId"), req.PersonID, req.Amount)
	if err != nil {
		h.writeSplitError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, receipt.ToResponse(h.service.Shares(r.Context(), receipt)))
}

// SetSplitStatus handles POST /receipts/{receiptId}/split/status
// @Summary      Set settlement status
// @Description  Forces a person's status; SETTLED snaps their settled amount to the total, PENDING resets it
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        receiptId path string true "Receipt ID"
// @Param        request body SetStatusRequest true "Status"
// @Success      200 {object} response.APIResponse{data=ReceiptResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /receipts/{receiptId}/split/status [post]
func (h *Handler) SetSplitStatus(w http.ResponseWriter, r *http.Request) {
	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.PersonID == "" {
		response.BadRequest(w, "Person ID is required")
		return
	}

	receipt, err := h.service.SetSplitStatus(r.Context(), chi.URLParam(r, "receiptId"), req.PersonID, req.Status)
	if err != nil {
		h.writeSplitError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, receipt.ToResponse(h.service.Shares(r.Context(), receipt)))
}

// PersonBreakdown handles GET /receipts/{receiptId}/split/people/{personId}
// @Summary      Per-person breakdown
// @Description  Returns one person's item amounts and tax/tip shares for the receipt's split
// @Tags         splits
// @Produce      json
// @Param        receiptId path string true "Receipt ID"
// @Param        personId path string true "Person ID"
// @Success      200 {object} response.APIResponse{data=BreakdownResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /receipts/{receiptId}/split/people/{personId} [get]
func (h *Handler) PersonBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.service.PersonBreakdown(r.Context(), chi.URLParam(r, "receiptId"), chi.URLParam(r, "personId"))
	if err != nil {
		h.writeSplitError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, breakdown)
}

func (h *Handler) writeSplitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrReceiptNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNoSplit), errors.Is(err, ErrPersonNotInSplit), errors.Is(err, ErrInvalidStatus):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Failed to update split")
	}
}
