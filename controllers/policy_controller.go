package controllers

import (
	"strconv"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/pkg/resp"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PolicyController struct{ DB *gorm.DB }

func NewPolicyController(db *gorm.DB) *PolicyController { return &PolicyController{DB: db} }

// GET /staff/policies
func (pc *PolicyController) List(c *gin.Context) {
	q := pc.DB.Order("id DESC").Limit(200)
	if kind := c.Query("kind"); kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var items []entity.Policy
	if err := q.Find(&items).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, gin.H{"items": items})
}

type PolicyIn struct {
	Kind     string `json:"kind" binding:"required,oneof=cancellation insurance fuel other"`
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Required *bool  `json:"required"`
}

// POST /staff/policies
func (pc *PolicyController) Create(c *gin.Context) {
	var req PolicyIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	p := entity.Policy{Kind: req.Kind, Title: req.Title, Body: req.Body}
	if req.Required != nil { p.Required = *req.Required }

	if err := pc.DB.Create(&p).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.Created(c, gin.H{"id": p.ID})
}

// PATCH /staff/policies/:id
func (pc *PolicyController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var p entity.Policy
	if err := pc.DB.First(&p, id).Error; err != nil {
		resp.NotFound(c, "policy not found"); return
	}

	var req struct {
		Title    *string `json:"title"`
		Body     *string `json:"body"`
		Required *bool   `json:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	if req.Title != nil { p.Title = *req.Title }
	if req.Body != nil { p.Body = *req.Body }
	if req.Required != nil { p.Required = *req.Required }

	if err := pc.DB.Save(&p).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, gin.H{"id": p.ID})
}
