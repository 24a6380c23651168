package controllers

import (
	"strconv"

	"github.com/shanmdahanayaka/vehicle-rental-backend/pkg/resp"
	"github.com/shanmdahanayaka/vehicle-rental-backend/services"
	"github.com/shanmdahanayaka/vehicle-rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	Svc *services.BookingService
}

func NewInvoiceController(svc *services.BookingService) *InvoiceController {
	return &InvoiceController{Svc: svc}
}

// POST /staff/bookings/:id/invoice
func (ic *InvoiceController) Generate(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	inv, err := ic.Svc.GenerateInvoice(utils.CurrentUserID(c), uint(id))
	if err != nil { fail(c, err); return }
	resp.Created(c, inv)
}

// GET /staff/invoices?statusId=&page=&limit=
func (ic *InvoiceController) List(c *gin.Context) {
	var statusID *uint
	if s := c.Query("statusId"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			id := uint(n)
			statusID = &id
		}
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := ic.Svc.ListInvoices(statusID, page, limit)
	if err != nil { fail(c, err); return }
	resp.OK(c, out)
}

// GET /staff/invoices/:id — line items in display order plus payments
func (ic *InvoiceController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	inv, err := ic.Svc.InvoiceDetail(uint(id))
	if err != nil { fail(c, err); return }
	resp.OK(c, gin.H{"invoice": inv, "items": inv.Items, "payments": inv.Payments})
}

// POST /staff/invoices/:id/payments
func (ic *InvoiceController) RecordPayment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.RecordPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	p, err := ic.Svc.RecordPayment(utils.CurrentUserID(c), uint(id), &req)
	if err != nil { fail(c, err); return }
	resp.Created(c, p)
}

// GET /staff/invoices/:id/payments
func (ic *InvoiceController) ListPayments(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	items, err := ic.Svc.ListPayments(uint(id))
	if err != nil { fail(c, err); return }
	resp.OK(c, gin.H{"items": items})
}

// POST /staff/invoices/:id/resend
func (ic *InvoiceController) Resend(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := ic.Svc.ResendInvoiceNotice(utils.CurrentUserID(c), uint(id)); err != nil {
		fail(c, err); return
	}
	resp.OK(c, gin.H{"id": id})
}
