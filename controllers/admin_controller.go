package controllers

import (
	"strconv"
	"time"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/pkg/resp"
	"github.com/shanmdahanayaka/vehicle-rental-backend/services"
	"github.com/shanmdahanayaka/vehicle-rental-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB    *gorm.DB
	Audit *services.AuditService
}

func NewAdminController(db *gorm.DB, audit *services.AuditService) *AdminController {
	return &AdminController{DB: db, Audit: audit}
}

// startOfDay is midnight in t's location, not UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GET /admin/dashboard — headline counts
func (ac *AdminController) Dashboard(c *gin.Context) {
	db := ac.DB

	var totalUsers, totalVehicles, pendingBookings, bookingsToday int64
	var outstanding struct{ Total int64 }

	if err := db.Model(&entity.User{}).Count(&totalUsers).Error; err != nil {
		resp.ServerError(c, err); return
	}
	if err := db.Model(&entity.Vehicle{}).Count(&totalVehicles).Error; err != nil {
		resp.ServerError(c, err); return
	}

	var pendingStatus entity.BookingStatus
	if err := db.Where("status_name = ?", entity.BookingPending).First(&pendingStatus).Error; err == nil {
		db.Model(&entity.Booking{}).
			Where("booking_status_id = ?", pendingStatus.ID).
			Count(&pendingBookings)
	}

	start := startOfDay(time.Now())
	if err := db.Model(&entity.Booking{}).
		Where("created_at >= ?", start).
		Count(&bookingsToday).Error; err != nil {
		resp.ServerError(c, err); return
	}

	db.Model(&entity.Invoice{}).
		Select("COALESCE(SUM(balance), 0) AS total").
		Scan(&outstanding)

	resp.OK(c, gin.H{
		"totalUsers":         totalUsers,
		"totalVehicles":      totalVehicles,
		"pendingBookings":    pendingBookings,
		"bookingsToday":      bookingsToday,
		"outstandingBalance": outstanding.Total,
	})
}

// GET /admin/users?page=&limit=
func (ac *AdminController) Users(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var total int64
	ac.DB.Model(&entity.User{}).Count(&total)

	type row struct {
		ID        uint      `json:"id"`
		Email     string    `json:"email"`
		FirstName string    `json:"firstName"`
		LastName  string    `json:"lastName"`
		Role      string    `json:"role"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"createdAt"`
	}
	var items []row
	if err := ac.DB.Model(&entity.User{}).
		Select("id, email, first_name, last_name, role, status, created_at").
		Order("id DESC").Limit(limit).Offset((page - 1) * limit).
		Find(&items).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, gin.H{"items": items, "page": page, "limit": limit, "total": total})
}

type UpdateUserReq struct {
	Role   *string `json:"role" binding:"omitempty,oneof=USER MANAGER ADMIN SUPER_ADMIN"`
	Status *string `json:"status" binding:"omitempty,oneof=ACTIVE SUSPENDED BANNED"`
}

// PATCH /admin/users/:id — role/status; touching ADMIN-level accounts needs SUPER_ADMIN
func (ac *AdminController) UpdateUser(c *gin.Context) {
	actorID := utils.CurrentUserID(c)
	actorRole := utils.CurrentRole(c)
	id, _ := strconv.Atoi(c.Param("id"))

	var req UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var user entity.User
	if err := ac.DB.First(&user, id).Error; err != nil {
		resp.NotFound(c, "user not found"); return
	}

	// no self-demotion, and ADMIN accounts are SUPER_ADMIN territory
	if user.ID == actorID {
		resp.BadRequest(c, "cannot modify own account"); return
	}
	if entity.RoleRank(user.Role) >= entity.RoleRank(entity.RoleAdmin) &&
		entity.RoleRank(actorRole) < entity.RoleRank(entity.RoleSuperAdmin) {
		resp.Forbidden(c, "forbidden"); return
	}
	if req.Role != nil && entity.RoleRank(*req.Role) >= entity.RoleRank(entity.RoleAdmin) &&
		entity.RoleRank(actorRole) < entity.RoleRank(entity.RoleSuperAdmin) {
		resp.Forbidden(c, "forbidden"); return
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if err := ac.DB.Save(&user).Error; err != nil {
		resp.ServerError(c, err); return
	}

	ac.Audit.Record(actorID, "user.update", "user", user.ID, req)
	resp.OK(c, gin.H{"id": user.ID, "role": user.Role, "status": user.Status})
}

type PermissionOverrideReq struct {
	Key     string `json:"key" binding:"required"`
	Allowed *bool  `json:"allowed" binding:"required"`
}

// PUT /admin/users/:id/permissions — set a user-specific override
func (ac *AdminController) SetPermission(c *gin.Context) {
	actorID := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	var req PermissionOverrideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var user entity.User
	if err := ac.DB.First(&user, id).Error; err != nil {
		resp.NotFound(c, "user not found"); return
	}

	uid := user.ID
	var p entity.Permission
	err := ac.DB.Where("key = ? AND user_id = ?", req.Key, uid).First(&p).Error
	if err != nil {
		p = entity.Permission{Key: req.Key, UserID: &uid, Allowed: *req.Allowed}
		err = ac.DB.Create(&p).Error
	} else {
		p.Allowed = *req.Allowed
		err = ac.DB.Save(&p).Error
	}
	if err != nil {
		resp.ServerError(c, err); return
	}

	ac.Audit.Record(actorID, "permission.set", "user", user.ID, req)
	resp.OK(c, gin.H{"userId": user.ID, "key": p.Key, "allowed": p.Allowed})
}

// GET /admin/users/:id/permissions
func (ac *AdminController) UserPermissions(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var user entity.User
	if err := ac.DB.First(&user, id).Error; err != nil {
		resp.NotFound(c, "user not found"); return
	}

	var overrides []entity.Permission
	ac.DB.Where("user_id = ?", user.ID).Find(&overrides)

	var defaults []entity.Permission
	ac.DB.Where("role = ? AND user_id IS NULL", user.Role).Find(&defaults)

	resp.OK(c, gin.H{"roleDefaults": defaults, "overrides": overrides})
}

// GET /admin/audit?action=&actorId=&page=&limit=
func (ac *AdminController) AuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := ac.DB.Model(&entity.AuditLog{})
	if a := c.Query("action"); a != "" {
		q = q.Where("action = ?", a)
	}
	if a := c.Query("actorId"); a != "" {
		q = q.Where("actor_id = ?", a)
	}

	var total int64
	q.Count(&total)

	var items []entity.AuditLog
	if err := q.Order("id DESC").Limit(limit).Offset((page - 1) * limit).
		Find(&items).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, gin.H{"items": items, "page": page, "limit": limit, "total": total})
}
