package controllers

import (
	"strconv"
	"time"

	"github.com/shanmdahanayaka/vehicle-rental-backend/configs"
	"github.com/shanmdahanayaka/vehicle-rental-backend/pkg/resp"
	"github.com/shanmdahanayaka/vehicle-rental-backend/services"
	"github.com/shanmdahanayaka/vehicle-rental-backend/utils"

	"github.com/gin-gonic/gin"
)

// WorkflowController drives a booking through its rental lifecycle.
type WorkflowController struct {
	Svc *services.BookingService
	Cfg *configs.Config
}

func NewWorkflowController(svc *services.BookingService, cfg *configs.Config) *WorkflowController {
	return &WorkflowController{Svc: svc, Cfg: cfg}
}

// GET /staff/bookings?statusId=&from=&to=&page=&limit=
func (wc *WorkflowController) List(c *gin.Context) {
	var statusID *uint
	if s := c.Query("statusId"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			id := uint(n)
			statusID = &id
		}
	}
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = &t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			to = &t
		}
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := wc.Svc.ListForStaff(statusID, from, to, page, limit)
	if err != nil { fail(c, err); return }
	resp.OK(c, out)
}

// GET /staff/bookings/:id
func (wc *WorkflowController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	b, err := wc.Svc.Detail(uint(id))
	if err != nil { fail(c, err); return }
	resp.OK(c, b)
}

// POST /staff/bookings/:id/confirm
func (wc *WorkflowController) Confirm(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.ConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	if err := wc.Svc.Confirm(utils.CurrentUserID(c), uint(id), &req); err != nil {
		fail(c, err); return
	}
	resp.OK(c, gin.H{"id": id, "status": "CONFIRMED"})
}

// POST /staff/bookings/:id/collect — multipart: fields + document files
func (wc *WorkflowController) Collect(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.CollectReq
	if odo := c.PostForm("odometer"); odo != "" {
		n, err := strconv.ParseInt(odo, 10, 64)
		if err != nil {
			resp.BadRequest(c, "invalid odometer"); return
		}
		req.Odometer = &n
	}
	req.FuelLevel = c.PostForm("fuelLevel")
	req.Notes = c.PostForm("notes")

	// optional uploaded documents
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["documents"] {
			url, err := utils.SaveUpload(c, fh, wc.Cfg.UploadDir)
			if err != nil {
				resp.BadRequest(c, err.Error()); return
			}
			req.Documents = append(req.Documents, services.CollectDocIn{
				Name: fh.Filename, URL: url, Size: fh.Size,
			})
		}
	}

	if err := wc.Svc.Collect(utils.CurrentUserID(c), uint(id), &req); err != nil {
		fail(c, err); return
	}
	resp.OK(c, gin.H{"id": id, "status": "COLLECTED", "documents": len(req.Documents)})
}

// POST /staff/bookings/:id/complete
func (wc *WorkflowController) Complete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.CompleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	bd, err := wc.Svc.Complete(utils.CurrentUserID(c), uint(id), &req)
	if err != nil { fail(c, err); return }
	resp.OK(c, gin.H{"id": id, "status": "COMPLETED", "breakdown": bd})
}

// POST /staff/bookings/:id/preview — price a completion without saving
func (wc *WorkflowController) Preview(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req services.CompleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	bd, err := wc.Svc.Preview(uint(id), &req)
	if err != nil { fail(c, err); return }
	resp.OK(c, bd)
}

// POST /staff/bookings/:id/cancel
func (wc *WorkflowController) Cancel(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := wc.Svc.Cancel(utils.CurrentUserID(c), uint(id), req.Reason); err != nil {
		fail(c, err); return
	}
	resp.OK(c, gin.H{"id": id, "status": "CANCELLED"})
}
