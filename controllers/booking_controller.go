package controllers

import (
	"strconv"

	"github.com/shanmdahanayaka/vehicle-rental-backend/pkg/resp"
	"github.com/shanmdahanayaka/vehicle-rental-backend/services"
	"github.com/shanmdahanayaka/vehicle-rental-backend/utils"

	"github.com/gin-gonic/gin"
)

// BookingController is the customer-facing surface; the staff workflow
// lives in WorkflowController.
type BookingController struct {
	Svc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Svc: svc}
}

// POST /bookings
func (bc *BookingController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CreateBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	out, err := bc.Svc.Create(uid, &req)
	if err != nil { fail(c, err); return }
	resp.Created(c, out)
}

// GET /profile/bookings
func (bc *BookingController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := bc.Svc.ListForUser(uid, limit)
	if err != nil { fail(c, err); return }
	resp.OK(c, gin.H{"items": items})
}

// GET /bookings/:id (owner of the booking only)
func (bc *BookingController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	b, err := bc.Svc.DetailForUser(uid, uint(id))
	if err != nil { fail(c, err); return }
	resp.OK(c, b)
}

// POST /bookings/:id/cancel — customers may withdraw while still PENDING
func (bc *BookingController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	if err := bc.Svc.CancelOwn(uid, uint(id)); err != nil {
		fail(c, err); return
	}
	resp.OK(c, gin.H{"id": id, "status": "CANCELLED"})
}
