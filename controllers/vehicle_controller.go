package controllers

import (
	"strconv"
	"time"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/pkg/resp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VehicleController struct{ DB *gorm.DB }

func NewVehicleController(db *gorm.DB) *VehicleController { return &VehicleController{DB: db} }

// ===== Public =====

// GET /vehicles?available=1&featured=1
func (vc *VehicleController) List(c *gin.Context) {
	type row struct {
		ID           uint      `json:"id"`
		Name         string    `json:"name"`
		ImageURL     string    `json:"imageUrl"`
		DayRate      int64     `json:"dayRate"`
		Available    bool      `json:"available"`
		Featured     bool      `json:"featured"`
		RatingSum    int64     `json:"-"`
		ReviewCount  int64     `json:"reviewCount"`
		BookingCount int64     `json:"bookingCount"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	q := vc.DB.Model(&entity.Vehicle{}).
		Select("id, name, image_url, day_rate, available, featured, rating_sum, review_count, booking_count, created_at")
	if c.Query("available") == "1" {
		q = q.Where("available = ?", true)
	}
	if c.Query("featured") == "1" {
		q = q.Where("featured = ?", true)
	}

	var items []row
	if err := q.Order("featured DESC, id DESC").Limit(100).Find(&items).Error; err != nil {
		resp.ServerError(c, err); return
	}

	out := make([]gin.H, 0, len(items))
	for _, it := range items {
		rating := 0.0
		if it.ReviewCount > 0 {
			rating = float64(it.RatingSum) / float64(it.ReviewCount)
		}
		out = append(out, gin.H{
			"id": it.ID, "name": it.Name, "imageUrl": it.ImageURL,
			"dayRate": it.DayRate, "available": it.Available, "featured": it.Featured,
			"rating": rating, "reviewCount": it.ReviewCount, "bookingCount": it.BookingCount,
		})
	}
	resp.OK(c, gin.H{"items": out})
}

// GET /vehicles/:id — detail with packages and policies
func (vc *VehicleController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var v entity.Vehicle
	if err := vc.DB.Preload("Packages", "active = ?", true).Preload("Policies").
		First(&v, id).Error; err != nil {
		resp.NotFound(c, "vehicle not found"); return
	}

	resp.OK(c, gin.H{
		"id": v.ID, "name": v.Name, "plateNumber": v.PlateNumber,
		"description": v.Description, "imageUrl": v.ImageURL,
		"dayRate": v.DayRate, "flatRate": v.FlatRate,
		"available": v.Available, "featured": v.Featured,
		"rating": v.AverageRating(), "reviewCount": v.ReviewCount, "bookingCount": v.BookingCount,
		"packages": v.Packages, "policies": v.Policies,
	})
}

// ===== Staff =====

type VehicleIn struct {
	Name        string `json:"name" binding:"required"`
	PlateNumber string `json:"plateNumber" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	DayRate     int64  `json:"dayRate" binding:"required,min=1"`
	FlatRate    int64  `json:"flatRate" binding:"min=0"`
	Available   *bool  `json:"available"`
	Featured    *bool  `json:"featured"`
}

// POST /staff/vehicles
func (vc *VehicleController) Create(c *gin.Context) {
	var req VehicleIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	v := entity.Vehicle{
		Name: req.Name, PlateNumber: req.PlateNumber,
		Description: req.Description, ImageURL: req.ImageURL,
		DayRate: req.DayRate, FlatRate: req.FlatRate,
		Available: true,
	}
	if req.Available != nil { v.Available = *req.Available }
	if req.Featured != nil { v.Featured = *req.Featured }

	if err := vc.DB.Create(&v).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.Created(c, gin.H{"id": v.ID})
}

// PATCH /staff/vehicles/:id
func (vc *VehicleController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var v entity.Vehicle
	if err := vc.DB.First(&v, id).Error; err != nil {
		resp.NotFound(c, "vehicle not found"); return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		ImageURL    *string `json:"imageUrl"`
		DayRate     *int64  `json:"dayRate"`
		FlatRate    *int64  `json:"flatRate"`
		Available   *bool   `json:"available"`
		Featured    *bool   `json:"featured"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	if req.Name != nil { v.Name = *req.Name }
	if req.Description != nil { v.Description = *req.Description }
	if req.ImageURL != nil { v.ImageURL = *req.ImageURL }
	if req.DayRate != nil { v.DayRate = *req.DayRate }
	if req.FlatRate != nil { v.FlatRate = *req.FlatRate }
	if req.Available != nil { v.Available = *req.Available }
	if req.Featured != nil { v.Featured = *req.Featured }

	if err := vc.DB.Save(&v).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, gin.H{"id": v.ID})
}

type attachReq struct {
	IDs []uint `json:"ids" binding:"required"`
}

// PUT /staff/vehicles/:id/packages — replace the attached package set
func (vc *VehicleController) SetPackages(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var v entity.Vehicle
	if err := vc.DB.First(&v, id).Error; err != nil {
		resp.NotFound(c, "vehicle not found"); return
	}

	var req attachReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var pkgs []entity.Package
	if len(req.IDs) > 0 {
		if err := vc.DB.Find(&pkgs, req.IDs).Error; err != nil {
			resp.ServerError(c, err); return
		}
		if len(pkgs) != len(req.IDs) {
			resp.BadRequest(c, "unknown package id"); return
		}
	}
	if err := vc.DB.Model(&v).Association("Packages").Replace(pkgs); err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, gin.H{"vehicleId": v.ID, "packageCount": len(pkgs)})
}

// PUT /staff/vehicles/:id/policies
func (vc *VehicleController) SetPolicies(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var v entity.Vehicle
	if err := vc.DB.First(&v, id).Error; err != nil {
		resp.NotFound(c, "vehicle not found"); return
	}

	var req attachReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var pols []entity.Policy
	if len(req.IDs) > 0 {
		if err := vc.DB.Find(&pols, req.IDs).Error; err != nil {
			resp.ServerError(c, err); return
		}
		if len(pols) != len(req.IDs) {
			resp.BadRequest(c, "unknown policy id"); return
		}
	}
	if err := vc.DB.Model(&v).Association("Policies").Replace(pols); err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, gin.H{"vehicleId": v.ID, "policyCount": len(pols)})
}
