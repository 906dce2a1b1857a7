package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/jewelry-erp/backend/internal/application/partner"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
)

// VendorHandler handles vendor endpoints
type VendorHandler struct {
	lifecycleHandler
	vendorService *partnerapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *partnerapp.VendorService) *VendorHandler {
	return &VendorHandler{
		lifecycleHandler: lifecycleHandler{lifecycle: vendorService},
		vendorService:    vendorService,
	}
}

// Create handles POST /vendors
func (h *VendorHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req partnerapp.VendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vendor)
}

// GetByID handles GET /vendors/:id
func (h *VendorHandler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetByID(c.Request.Context(), p, id, includeDeleted(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// List handles GET /vendors
func (h *VendorHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var query appshared.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	vendors, total, err := h.vendorService.List(c.Request.Context(), p, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, vendors, total, query)
}

// Update handles PUT /vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.VendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	lifecycleHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		lifecycleHandler: lifecycleHandler{lifecycle: customerService},
		customerService:  customerService,
	}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req partnerapp.CustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetByID handles GET /customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), p, id, includeDeleted(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// List handles GET /customers. search matches name and phone.
func (h *CustomerHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var query appshared.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), p, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, customers, total, query)
}

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.CustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}
