package controllers

import (
	"strconv"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/pkg/resp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PackageController struct{ DB *gorm.DB }

func NewPackageController(db *gorm.DB) *PackageController { return &PackageController{DB: db} }

// GET /staff/packages
func (pc *PackageController) List(c *gin.Context) {
	var items []entity.Package
	if err := pc.DB.Order("id DESC").Limit(200).Find(&items).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, gin.H{"items": items})
}

type PackageIn struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	BasePrice   int64  `json:"basePrice" binding:"min=0"`
	DayPrice    int64  `json:"dayPrice" binding:"min=0"`
	Active      *bool  `json:"active"`
}

// POST /staff/packages
func (pc *PackageController) Create(c *gin.Context) {
	var req PackageIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}
	if req.BasePrice == 0 && req.DayPrice == 0 {
		resp.BadRequest(c, "package needs a base or per-day price"); return
	}

	p := entity.Package{
		Name: req.Name, Description: req.Description,
		BasePrice: req.BasePrice, DayPrice: req.DayPrice,
		Active: true,
	}
	if req.Active != nil { p.Active = *req.Active }

	if err := pc.DB.Create(&p).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.Created(c, gin.H{"id": p.ID})
}

// PATCH /staff/packages/:id
func (pc *PackageController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var p entity.Package
	if err := pc.DB.First(&p, id).Error; err != nil {
		resp.NotFound(c, "package not found"); return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		BasePrice   *int64  `json:"basePrice"`
		DayPrice    *int64  `json:"dayPrice"`
		Active      *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	if req.Name != nil { p.Name = *req.Name }
	if req.Description != nil { p.Description = *req.Description }
	if req.BasePrice != nil { p.BasePrice = *req.BasePrice }
	if req.DayPrice != nil { p.DayPrice = *req.DayPrice }
	if req.Active != nil { p.Active = *req.Active }

	if err := pc.DB.Save(&p).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, gin.H{"id": p.ID})
}
