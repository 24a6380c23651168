package controllers

import (
	"net/http"
	"strings"

	"github.com/shanmdahanayaka/vehicle-rental-backend/configs"
	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/pkg/resp"
	"github.com/shanmdahanayaka/vehicle-rental-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	DB  *gorm.DB
	Cfg *configs.Config
}

func NewAuthController(db *gorm.DB, cfg *configs.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

func userPayload(u *entity.User) gin.H {
	return gin.H{
		"id": u.ID, "email": u.Email, "firstName": u.FirstName,
		"lastName": u.LastName, "phoneNumber": u.PhoneNumber,
		"address": u.Address, "role": u.Role, "status": u.Status,
	}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var exist entity.User
	if err := a.DB.Where("email = ?", strings.ToLower(req.Email)).First(&exist).Error; err == nil {
		resp.BadRequest(c, "email already registered"); return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil { resp.ServerError(c, err); return }

	user := entity.User{
		Email:       strings.ToLower(req.Email),
		Password:    string(hashed),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        entity.RoleUser,
		Status:      entity.UserActive,
	}

	if err := a.DB.Create(&user).Error; err != nil {
		resp.ServerError(c, err); return
	}

	resp.Created(c, userPayload(&user))
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var user entity.User
	if err := a.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		resp.Unauthorized(c, "invalid credentials"); return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		resp.Unauthorized(c, "invalid credentials"); return
	}
	if user.Status != entity.UserActive {
		resp.Forbidden(c, "account "+strings.ToLower(user.Status)); return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, a.Cfg.JWTSecret, a.Cfg.JWTTTL)
	if err != nil { resp.ServerError(c, err); return }

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"user":  userPayload(&user),
	})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	var user entity.User
	if err := a.DB.First(&user, utils.CurrentUserID(c)).Error; err != nil {
		resp.BadRequest(c, "user not found"); return
	}
	resp.OK(c, userPayload(&user))
}

type UpdateMeRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

// PATCH /auth/me
func (a *AuthController) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error()); return
	}

	var user entity.User
	if err := a.DB.First(&user, utils.CurrentUserID(c)).Error; err != nil {
		resp.BadRequest(c, "user not found"); return
	}

	if req.FirstName != nil { user.FirstName = *req.FirstName }
	if req.LastName != nil { user.LastName = *req.LastName }
	if req.PhoneNumber != nil { user.PhoneNumber = *req.PhoneNumber }
	if req.Address != nil { user.Address = *req.Address }

	if err := a.DB.Save(&user).Error; err != nil {
		resp.ServerError(c, err); return
	}
	resp.OK(c, userPayload(&user))
}
