package controllers

import (
	"strconv"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/pkg/resp"
	"github.com/shanmdahanayaka/vehicle-rental-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReviewController struct{ DB *gorm.DB }

func NewReviewController(db *gorm.DB) *ReviewController { return &ReviewController{DB: db} }

// GET /vehicles/:id/reviews
func (rc *ReviewController) ListForVehicle(c *gin.Context) {
	vehicleID, _ := strconv.Atoi(c.Param("id"))

	var items []entity.Review
	if err := rc.DB.Where("vehicle_id = ?", vehicleID).
		Order("id DESC").Limit(100).Find(&items).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, gin.H{"items": items})
}

type ReviewIn struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// POST /vehicles/:id/reviews — one review per customer, only after a paid rental
func (rc *ReviewController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	vehicleID, _ := strconv.Atoi(c.Param("id"))

	var req ReviewIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var paidStatus entity.BookingStatus
	if err := rc.DB.Where("status_name = ?", entity.BookingPaid).First(&paidStatus).Error; err != nil {
		resp.ServerError(c, err); return
	}

	var rented int64
	rc.DB.Model(&entity.Booking{}).
		Where("user_id = ? AND vehicle_id = ? AND booking_status_id = ?", uid, vehicleID, paidStatus.ID).
		Count(&rented)
	if rented == 0 {
		resp.Forbidden(c, "only customers with a settled rental can review"); return
	}

	var exist entity.Review
	if err := rc.DB.Where("user_id = ? AND vehicle_id = ?", uid, vehicleID).First(&exist).Error; err == nil {
		resp.BadRequest(c, "already reviewed"); return
	}

	rev := entity.Review{Rating: req.Rating, Comment: req.Comment, UserID: uid, VehicleID: uint(vehicleID)}
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rev).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Vehicle{}).Where("id = ?", vehicleID).
			Updates(map[string]any{
				"rating_sum":   gorm.Expr("rating_sum + ?", req.Rating),
				"review_count": gorm.Expr("review_count + 1"),
			}).Error
	})
	if err != nil {
		resp.ServerError(c, err); return
	}
	resp.Created(c, gin.H{"id": rev.ID})
}
