package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orderdesk/internal/core/apperror"
	"orderdesk/internal/core/id"
	"orderdesk/internal/domain/cart"
	"orderdesk/internal/domain/catalog"
	"orderdesk/internal/domain/checkout"
	"orderdesk/internal/infrastructure/http/v1/dto"
	"orderdesk/pkg/logger"
)

// SessionHandler exposes the cart-builder workflow: one session per mounted
// dashboard page, holding the catalog snapshot and the order-in-progress.
type SessionHandler struct {
	*BaseHandler
	registry *cart.Registry
	source   catalog.Source
	checkout *checkout.Service
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(base *BaseHandler, registry *cart.Registry, source catalog.Source, checkoutSvc *checkout.Service) *SessionHandler {
	return &SessionHandler{
		BaseHandler: base,
		registry:    registry,
		source:      source,
		checkout:    checkoutSvc,
	}
}

// Open handles POST /sessions - start a cart session for one page mount.
// The catalog is loaded fully here and snapshotted for the session's life.
func (h *SessionHandler) Open(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OpenSessionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	mode := cart.Mode(req.Mode)

	dir, err := h.source.Load(ctx, mode.CounterpartyKind())
	if err != nil {
		h.Error(c, err)
		return
	}

	sess := h.registry.Open(mode, dir)

	logger.Info(ctx, "cart session opened",
		"session_id", sess.ID.String(),
		"mode", string(mode),
		"products", len(dir.Products))

	var cartView dto.CartResponse
	sess.View(func(ct *cart.Cart) {
		cartView = dto.FromCart(ct)
	})

	c.JSON(http.StatusCreated, dto.SessionResponse{
		SessionID: sess.ID.String(),
		Cart:      cartView,
		Catalog:   dto.FromDirectory(dir),
	})
}

// Get handles GET /sessions/:sessionId - the paginated cart view.
func (h *SessionHandler) Get(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.respondCart(c, sess)
}

// Close handles DELETE /sessions/:sessionId - discard the session.
func (h *SessionHandler) Close(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	h.registry.Close(sess.ID)
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Clear handles POST /sessions/:sessionId/clear - reset the cart.
func (h *SessionHandler) Clear(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := sess.Update(func(ct *cart.Cart) error {
		ct.Reset()
		return nil
	}); err != nil {
		h.Error(c, err)
		return
	}
	h.respondCart(c, sess)
}

// Catalog handles GET /sessions/:sessionId/catalog - the session's snapshot.
func (h *SessionHandler) Catalog(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromDirectory(sess.Directory))
}

// OpenEditor handles GET /sessions/:sessionId/editor - the prefilled line
// editor form. ?productId= opens the add flow; ?tempId= the edit flow.
func (h *SessionHandler) OpenEditor(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	if tempIDParam := c.Query("tempId"); tempIDParam != "" {
		tempID, err := id.Parse(tempIDParam)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid tempId format"))
			return
		}

		var resp *dto.EditorResponse
		sess.View(func(ct *cart.Cart) {
			line, found := ct.Find(tempID)
			if !found {
				return
			}
			product, found := sess.Directory.ProductByID(line.ProductID)
			if !found {
				return
			}
			r := dto.FromEditor(cart.OpenEdit(sess.Mode, product, line), sess.Mode)
			resp = &r
		})
		if resp == nil {
			h.Error(c, apperror.NewNotFound("line item", tempIDParam))
			return
		}
		c.JSON(http.StatusOK, *resp)
		return
	}

	productID := int64(h.ParseIntQuery(c, "productId", 0))
	product, found := sess.Directory.ProductByID(productID)
	if !found {
		h.Error(c, apperror.NewNotFound("product", productID))
		return
	}

	c.JSON(http.StatusOK, dto.FromEditor(cart.OpenAdd(sess.Mode, product), sess.Mode))
}

// AddLine handles POST /sessions/:sessionId/lines - confirm the add flow.
// The line merges into an existing one for the same product: quantities
// sum, the new price wins.
func (h *SessionHandler) AddLine(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.AddLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, found := sess.Directory.ProductByID(req.ProductID)
	if !found {
		h.Error(c, apperror.NewNotFound("product", req.ProductID))
		return
	}

	editor := cart.OpenAdd(sess.Mode, product)
	if req.Quantity != nil {
		editor.SetQuantity(*req.Quantity)
	}
	if req.UnitPrice != nil {
		editor.SetUnitPriceValue(*req.UnitPrice)
	}

	confirmed, err := editor.Confirm()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := sess.Update(func(ct *cart.Cart) error {
		ct.AddOrMerge(product, confirmed.Quantity, confirmed.UnitPrice)
		return nil
	}); err != nil {
		h.Error(c, err)
		return
	}

	h.respondCart(c, sess)
}

// UpdateLine handles PUT /sessions/:sessionId/lines/:tempId - confirm the
// edit flow. Unknown tempIDs leave the cart untouched.
func (h *SessionHandler) UpdateLine(c *gin.Context) {
	sess, tempID, ok := h.sessionLine(c)
	if !ok {
		return
	}

	var req dto.UpdateLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := sess.Update(func(ct *cart.Cart) error {
		line, found := ct.Find(tempID)
		if !found {
			return nil
		}
		product, found := sess.Directory.ProductByID(line.ProductID)
		if !found {
			return nil
		}

		editor := cart.OpenEdit(sess.Mode, product, line)
		editor.SetQuantity(req.Quantity)
		editor.SetUnitPriceValue(*req.UnitPrice)

		confirmed, err := editor.Confirm()
		if err != nil {
			return err
		}

		ct.EditExisting(tempID, confirmed.Quantity, confirmed.UnitPrice)
		return nil
	}); err != nil {
		h.Error(c, err)
		return
	}

	h.respondCart(c, sess)
}

// Increment handles POST /sessions/:sessionId/lines/:tempId/increment.
func (h *SessionHandler) Increment(c *gin.Context) {
	h.lineOp(c, func(ct *cart.Cart, tempID id.ID) {
		ct.IncrementQuantity(tempID)
	})
}

// Decrement handles POST /sessions/:sessionId/lines/:tempId/decrement.
// Quantity never drops below 1.
func (h *SessionHandler) Decrement(c *gin.Context) {
	h.lineOp(c, func(ct *cart.Cart, tempID id.ID) {
		ct.DecrementQuantity(tempID)
	})
}

// SetQuantity handles PUT /sessions/:sessionId/lines/:tempId/quantity.
func (h *SessionHandler) SetQuantity(c *gin.Context) {
	sess, tempID, ok := h.sessionLine(c)
	if !ok {
		return
	}

	var req dto.SetQuantityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := sess.Update(func(ct *cart.Cart) error {
		ct.SetQuantity(tempID, req.Quantity)
		return nil
	}); err != nil {
		h.Error(c, err)
		return
	}

	h.respondCart(c, sess)
}

// RemoveLine handles DELETE /sessions/:sessionId/lines/:tempId.
func (h *SessionHandler) RemoveLine(c *gin.Context) {
	h.lineOp(c, func(ct *cart.Cart, tempID id.ID) {
		ct.Remove(tempID)
	})
}

// SetHeader handles PUT /sessions/:sessionId/header - update selections.
// Each selection must reference the session's catalog snapshot.
func (h *SessionHandler) SetHeader(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.SetHeaderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if req.CounterpartyID != nil {
		if _, found := sess.Directory.CounterpartyByID(*req.CounterpartyID); !found {
			h.Error(c, apperror.NewValidation("unknown counterparty").WithDetail("counterpartyId", *req.CounterpartyID))
			return
		}
	}
	if req.BankID != nil {
		if _, found := sess.Directory.BankByID(*req.BankID); !found {
			h.Error(c, apperror.NewValidation("unknown bank").WithDetail("bankId", *req.BankID))
			return
		}
	}
	if req.Status != nil && !sess.Directory.HasStatus(*req.Status) {
		h.Error(c, apperror.NewValidation("unknown status").WithDetail("status", *req.Status))
		return
	}

	if err := sess.Update(func(ct *cart.Cart) error {
		if req.CounterpartyID != nil {
			ct.SetCounterparty(*req.CounterpartyID)
		}
		if req.BankID != nil {
			ct.SetBank(*req.BankID)
		}
		if req.Status != nil {
			ct.SetStatus(*req.Status)
		}
		if req.OccurredAt != nil {
			ct.SetOccurredAt(*req.OccurredAt)
		}
		return nil
	}); err != nil {
		h.Error(c, err)
		return
	}

	h.respondCart(c, sess)
}

// SetPage handles POST /sessions/:sessionId/page - cart page navigation.
func (h *SessionHandler) SetPage(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	page := h.ParseIntQuery(c, "page", 1)
	if err := sess.Update(func(ct *cart.Cart) error {
		ct.SetPage(page)
		return nil
	}); err != nil {
		h.Error(c, err)
		return
	}

	h.respondCart(c, sess)
}

// Finalize handles POST /sessions/:sessionId/finalize - submit the order.
// On success the cart is reset; on failure it is left untouched for retry.
func (h *SessionHandler) Finalize(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	order, err := h.checkout.Finalize(c.Request.Context(), sess)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromOrder(order))
}

// RegisterRoutes registers the session routes.
func (h *SessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Open)

	sess := rg.Group("/:sessionId")
	{
		sess.GET("", h.Get)
		sess.DELETE("", h.Close)
		sess.POST("/clear", h.Clear)
		sess.POST("/page", h.SetPage)
		sess.GET("/catalog", h.Catalog)
		sess.GET("/editor", h.OpenEditor)
		sess.PUT("/header", h.SetHeader)
		sess.POST("/finalize", h.Finalize)

		sess.POST("/lines", h.AddLine)
		sess.PUT("/lines/:tempId", h.UpdateLine)
		sess.PUT("/lines/:tempId/quantity", h.SetQuantity)
		sess.POST("/lines/:tempId/increment", h.Increment)
		sess.POST("/lines/:tempId/decrement", h.Decrement)
		sess.DELETE("/lines/:tempId", h.RemoveLine)
	}
}

// --- helpers ---

func (h *SessionHandler) session(c *gin.Context) (*cart.Session, bool) {
	sessionID, err := id.Parse(c.Param("sessionId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid session id format"))
		return nil, false
	}

	sess, err := h.registry.Get(sessionID)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return sess, true
}

func (h *SessionHandler) sessionLine(c *gin.Context) (*cart.Session, id.ID, bool) {
	sess, ok := h.session(c)
	if !ok {
		return nil, id.Nil(), false
	}

	tempID, err := id.Parse(c.Param("tempId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid tempId format"))
		return nil, id.Nil(), false
	}
	return sess, tempID, true
}

// lineOp runs a silent line mutation and responds with the cart view.
func (h *SessionHandler) lineOp(c *gin.Context, fn func(*cart.Cart, id.ID)) {
	sess, tempID, ok := h.sessionLine(c)
	if !ok {
		return
	}

	if err := sess.Update(func(ct *cart.Cart) error {
		fn(ct, tempID)
		return nil
	}); err != nil {
		h.Error(c, err)
		return
	}

	h.respondCart(c, sess)
}

func (h *SessionHandler) respondCart(c *gin.Context, sess *cart.Session) {
	var resp dto.CartResponse
	sess.View(func(ct *cart.Cart) {
		resp = dto.FromCart(ct)
	})
	c.JSON(http.StatusOK, resp)
}
