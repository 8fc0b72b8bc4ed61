package userManagementController

import (
	"log"
	"strconv"
	"strings"
	"time"

	"slotbook/config"
	"slotbook/database"
	"slotbook/middleware"
	"slotbook/models"
	"slotbook/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUserRequest is the validated payload for admin-account creation.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// GetAllUsers lists admin accounts with role/search filters and pagination.
func GetAllUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := database.Database.Db.Model(&models.AdminUser{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if search := c.Query("search"); search != "" {
		// LOWER+LIKE works on every dialect; ILIKE is Postgres-only.
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(username) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting admin users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	var users []models.AdminUser
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		log.Printf("Error fetching admin users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", fiber.Map{
		"users":  users,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetUserByID fetches one admin account.
func GetUserByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.AdminUser
	if err := database.Database.Db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		log.Printf("Error fetching admin user %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully.", user)
}

// CreateUser registers a new admin account with a bcrypt-hashed password.
func CreateUser(c *fiber.Ctx) error {
	admin := middleware.AdminFromContext(c)

	reqData, ok := c.Locals("validatedCreateUser").(*CreateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("username = ?", reqData.Username).First(&models.AdminUser{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username already exists!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleCO
	}

	user := models.AdminUser{
		Username: reqData.Username,
		Password: string(hashedPassword),
		FullName: reqData.FullName,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	utils.LogAudit(c, admin, models.ActionCreateUser, "admin_user",
		strconv.FormatUint(uint64(user.ID), 10), nil,
		fiber.Map{"username": user.Username, "role": user.Role})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully.", user)
}

// UpdateUserRole changes an admin account's role.
func UpdateUserRole(c *fiber.Ctx) error {
	id := c.Params("id")
	admin := middleware.AdminFromContext(c)

	reqData := new(struct {
		Role string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if !models.IsValidAdminRole(reqData.Role) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid role!", nil)
	}

	db := database.Database.Db

	var user models.AdminUser
	if err := db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		log.Printf("Error fetching admin user %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	oldRole := user.Role
	user.Role = reqData.Role
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating role for admin user %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	utils.LogAudit(c, admin, models.ActionUpdateUserRole, "admin_user", id,
		fiber.Map{"role": oldRole}, fiber.Map{"role": user.Role})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully.", user)
}

// DeleteUser removes an admin account. Self-deletion is rejected so the
// last acting admin cannot lock themselves out mid-session.
func DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	admin := middleware.AdminFromContext(c)

	if parsed, err := strconv.ParseUint(id, 10, 32); err == nil && uint(parsed) == admin.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot delete your own account!", nil)
	}

	db := database.Database.Db

	var user models.AdminUser
	if err := db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		log.Printf("Error fetching admin user %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	if err := db.Unscoped().Delete(&user).Error; err != nil {
		log.Printf("Error deleting admin user %s: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	// Invalidate any open sessions of the removed account.
	if err := db.Where("admin_id = ?", user.ID).Delete(&models.AdminSession{}).Error; err != nil {
		log.Printf("Error deleting sessions for admin user %s: %v", id, err)
	}

	utils.LogAudit(c, admin, models.ActionDeleteUser, "admin_user", id, user, nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully.", nil)
}

// GetUserStats summarizes admin accounts by role and recent registrations.
func GetUserStats(c *fiber.Ctx) error {
	var users []models.AdminUser
	if err := database.Database.Db.Select("role, created_at").Find(&users).Error; err != nil {
		log.Printf("Error fetching admin users for stats: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user stats!", nil)
	}

	byRole := map[string]int{
		models.RoleAdmin: 0,
		models.RoleJCO:   0,
		models.RoleCO:    0,
	}
	recent := 0
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	for _, user := range users {
		if user.Role != "" {
			byRole[user.Role]++
		}
		if user.CreatedAt.After(thirtyDaysAgo) {
			recent++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User stats fetched successfully.", fiber.Map{
		"totalUsers":          len(users),
		"byRole":              byRole,
		"recentRegistrations": recent,
	})
}
