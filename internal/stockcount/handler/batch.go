package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mknoufi/stock-verify-backend/internal/stockcount/batch"
	"github.com/mknoufi/stock-verify-backend/internal/stockcount/service"
	"github.com/mknoufi/stock-verify-backend/pkg/httputil"
	"github.com/mknoufi/stock-verify-backend/pkg/logger"
)

// BatchHandler handles counted batch endpoints
type BatchHandler struct {
	service *service.StockCountService
	logger  *logger.Logger
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(svc *service.StockCountService, log *logger.Logger) *BatchHandler {
	return &BatchHandler{
		service: svc,
		logger:  log,
	}
}

type recordBatchRequest struct {
	BatchID      string   `json:"batch_id"`
	BatchNumber  string   `json:"batch_number"`
	LotNumber    string   `json:"lot_number"`
	SerialNumber string   `json:"serial_number"`
	Location     string   `json:"location"`
	Shelf        string   `json:"shelf"`
	Bin          string   `json:"bin"`
	Section      string   `json:"section"`
	Quantity     float64  `json:"quantity" validate:"gte=0"`
	Unit         string   `json:"unit"`
	MfgDate      string   `json:"mfg_date"`
	ExpiryDate   string   `json:"expiry_date"`
	ReceivedDate string   `json:"received_date"`
	Condition    string   `json:"condition" validate:"omitempty,oneof=good damaged aging expired scratched defective slow_moving non_moving obsolete water_damaged pest_damaged packaging_damaged"`
	Notes        string   `json:"condition_notes"`
	OriginalMRP  float64  `json:"original_mrp" validate:"gte=0"`
	CurrentPrice float64  `json:"current_price" validate:"gte=0"`
	Discount     float64  `json:"discount_applied" validate:"gte=0"`
	Deadline     string   `json:"action_deadline"`
	Photos       []string `json:"photos"`
	CountedBy    string   `json:"counted_by"`
}

func (r *recordBatchRequest) toInput() batch.Input {
	return batch.Input{
		BatchID:      r.BatchID,
		BatchNumber:  r.BatchNumber,
		LotNumber:    r.LotNumber,
		SerialNumber: r.SerialNumber,
		Location:     r.Location,
		Shelf:        r.Shelf,
		Bin:          r.Bin,
		Section:      r.Section,
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		MfgDate:      r.MfgDate,
		ExpiryDate:   r.ExpiryDate,
		ReceivedDate: r.ReceivedDate,
		Condition:    batch.ItemCondition(r.Condition),
		Notes:        r.Notes,
		OriginalMRP:  r.OriginalMRP,
		CurrentPrice: r.CurrentPrice,
		Discount:     r.Discount,
		Deadline:     r.Deadline,
		Photos:       r.Photos,
		CountedBy:    r.CountedBy,
	}
}

// Record records a single counted batch for an item
func (h *BatchHandler) Record(w http.ResponseWriter, r *http.Request) {
	itemCode := chi.URLParam(r, "itemCode")

	var req recordBatchRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	if req.CountedBy == "" {
		req.CountedBy = httputil.GetUsername(r.Context())
	}

	b, err := h.service.RecordBatch(r.Context(), itemCode, req.toInput())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, b)
}

// RecordMulti records several counted batches of one item at once
func (h *BatchHandler) RecordMulti(w http.ResponseWriter, r *http.Request) {
	itemCode := chi.URLParam(r, "itemCode")

	var req struct {
		Batches []recordBatchRequest `json:"batches" validate:"required,min=1,dive"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	inputs := make([]batch.Input, 0, len(req.Batches))
	for i := range req.Batches {
		if req.Batches[i].CountedBy == "" {
			req.Batches[i].CountedBy = httputil.GetUsername(r.Context())
		}
		inputs = append(inputs, req.Batches[i].toInput())
	}

	result, err := h.service.RecordMultiBatch(r.Context(), itemCode, inputs)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, result)
}

// ListByItem lists counted batches for an item
func (h *BatchHandler) ListByItem(w http.ResponseWriter, r *http.Request) {
	itemCode := chi.URLParam(r, "itemCode")

	batches, err := h.service.ListBatches(r.Context(), itemCode)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, batches)
}

// Get gets a counted batch
func (h *BatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	itemCode := chi.URLParam(r, "itemCode")
	batchID := chi.URLParam(r, "batchID")

	b, err := h.service.GetBatch(r.Context(), itemCode, batchID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, b)
}

// Summary aggregates all counted batches of an item
func (h *BatchHandler) Summary(w http.ResponseWriter, r *http.Request) {
	itemCode := chi.URLParam(r, "itemCode")

	summary, err := h.service.ItemSummary(r.Context(), itemCode)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, summary)
}

// Verify marks a counted batch as verified
func (h *BatchHandler) Verify(w http.ResponseWriter, r *http.Request) {
	itemCode := chi.URLParam(r, "itemCode")
	batchID := chi.URLParam(r, "batchID")

	var req struct {
		VerifiedBy string `json:"verified_by"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if req.VerifiedBy == "" {
		req.VerifiedBy = httputil.GetUsername(r.Context())
	}

	if err := h.service.VerifyBatch(r.Context(), itemCode, batchID, req.VerifiedBy); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.NoContent(w)
}

// ListPriority lists batches needing urgent attention across all items
func (h *BatchHandler) ListPriority(w http.ResponseWriter, r *http.Request) {
	batches, err := h.service.ListPriorityBatches(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, batches)
}
