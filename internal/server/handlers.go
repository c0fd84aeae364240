package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkhusainov/checksplit/internal/ingest"
	"github.com/mkhusainov/checksplit/internal/ledger"
	"github.com/mkhusainov/checksplit/internal/models"
	"github.com/mkhusainov/checksplit/internal/receipt"
)

// Handler exposes the ledger's operations over HTTP.
type Handler struct {
	ledger *ledger.Ledger
	ingest ingest.Client
}

// NewHandler constructs the HTTP handler adapter.
func NewHandler(l *ledger.Ledger, ingestClient ingest.Client) *Handler {
	return &Handler{ledger: l, ingest: ingestClient}
}

type addPersonRequest struct {
	Name string `json:"name"`
}

type addFoodItemRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type updateFoodItemRequest struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Quantity *float64 `json:"quantity"`
}

type assignRequest struct {
	PersonIDs   []uuid.UUID `json:"person_ids"`
	FoodItemIDs []uuid.UUID `json:"food_item_ids"`
}

type settingsRequest struct {
	Percentage  *float64 `json:"percentage"`
	PhoneNumber *string  `json:"phone_number"`
}

// AddPerson handles POST /api/people.
func (h *Handler) AddPerson(c *gin.Context) {
	var req addPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	person, err := h.ledger.AddPerson(req.Name)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

// ListPeople handles GET /api/people. Each person is returned with
// derived totals at the current service percentage.
func (h *Handler) ListPeople(c *gin.Context) {
	snap := h.ledger.Snapshot()

	type personView struct {
		ID                        uuid.UUID         `json:"id"`
		Name                      string            `json:"name"`
		Items                     []models.FoodItem `json:"items"`
		TotalAmount               float64           `json:"total_amount"`
		TotalAmountWithPercentage float64           `json:"total_amount_with_percentage"`
	}

	views := make([]personView, len(snap.People))
	for i, p := range snap.People {
		views[i] = personView{
			ID:                        p.ID,
			Name:                      p.Name,
			Items:                     p.Items,
			TotalAmount:               p.TotalAmount(),
			TotalAmountWithPercentage: p.TotalAmountWithPercentage(snap.Percentage),
		}
	}
	c.JSON(http.StatusOK, gin.H{"people": views})
}

// DeletePerson handles DELETE /api/people/:id. Unknown ids are a no-op,
// mirroring the ledger's semantics.
func (h *Handler) DeletePerson(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.ledger.DeletePerson(id)
	c.Status(http.StatusNoContent)
}

// AddFoodItem handles POST /api/items.
func (h *Handler) AddFoodItem(c *gin.Context) {
	var req addFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.ledger.AddFoodItem(req.Name, req.Price)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListFoodItems handles GET /api/items, returning the unassigned pool.
func (h *Handler) ListFoodItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.ledger.FoodItems()})
}

// UpdateFoodItem handles PUT /api/items/:id.
func (h *Handler) UpdateFoodItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.ledger.UpdateFoodItem(id, req.Name, req.Price, req.Quantity)
	c.Status(http.StatusNoContent)
}

// DeleteFoodItem handles DELETE /api/items/:id.
func (h *Handler) DeleteFoodItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.ledger.DeleteFoodItem(id)
	c.Status(http.StatusNoContent)
}

// DeleteFoodItemFromPerson handles DELETE /api/people/:id/items/:itemID.
// It removes the copy from the person's list only; the unassigned pool
// keeps its item.
func (h *Handler) DeleteFoodItemFromPerson(c *gin.Context) {
	personID, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemID")
	if !ok {
		return
	}
	h.ledger.DeleteFoodItemFromPerson(itemID, personID)
	c.Status(http.StatusNoContent)
}

// Assign handles POST /api/assignments: every selected food item is
// assigned to every selected person. The selection sets live with the
// client and arrive in the request body.
func (h *Handler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	assigned := h.ledger.AssignSelection(req.PersonIDs, req.FoodItemIDs)
	c.JSON(http.StatusOK, gin.H{"assigned": assigned})
}

// GetBill handles GET /api/bill, returning the aggregate totals and the
// current settings.
func (h *Handler) GetBill(c *gin.Context) {
	snap := h.ledger.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"total_amount":                 snap.TotalAmount(),
		"total_amount_with_percentage": snap.TotalAmountWithPercentage(),
		"percentage":                   snap.Percentage,
		"phone_number":                 snap.PhoneNumber,
	})
}

// UpdateSettings handles PUT /api/settings. Both fields are optional;
// only the ones present are changed.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Percentage != nil {
		h.ledger.SetPercentage(*req.Percentage)
	}
	if req.PhoneNumber != nil {
		h.ledger.SetPhoneNumber(*req.PhoneNumber)
	}
	c.Status(http.StatusNoContent)
}

// LedgerReceipt handles GET /api/receipt: the whole-group text receipt.
func (h *Handler) LedgerReceipt(c *gin.Context) {
	c.String(http.StatusOK, receipt.FormatLedger(h.ledger.Snapshot()))
}

// PersonReceipt handles GET /api/people/:id/receipt. Rendering needs an
// existing person, so this is the one lookup that answers 404 instead
// of no-op.
func (h *Handler) PersonReceipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	person, found := h.ledger.FindPerson(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
		return
	}
	c.String(http.StatusOK, receipt.FormatPerson(person, h.ledger.Percentage(), h.ledger.PhoneNumber()))
}

// UploadReceiptImage handles POST /api/receipt-image: a multipart form
// with one receipt_image part. On success the parsed items are appended
// to the unassigned pool in response order; on failure the ledger is
// left untouched and the error is surfaced.
func (h *Handler) UploadReceiptImage(c *gin.Context) {
	file, _, err := c.Request.FormFile("receipt_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing receipt_image part"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	items, err := h.ingest.ParseReceipt(c.Request.Context(), image)
	if err != nil {
		slog.Error("receipt parsing failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to parse receipt image"})
		return
	}

	added := h.ledger.AddFoodItems(items)
	slog.Info("receipt items added", "count", len(added))
	c.JSON(http.StatusOK, gin.H{"items": added})
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID reads a UUID path parameter, answering 400 when malformed.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// respondLedgerError maps ledger errors to HTTP statuses. Validation
// failures carry a user-facing reason; anything else is unexpected.
func respondLedgerError(c *gin.Context, err error) {
	var vErr *ledger.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Reason})
		return
	}
	slog.Error("ledger operation failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
