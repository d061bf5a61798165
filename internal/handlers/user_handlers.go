package handlers

import (
	"net/http"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/auth"
	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- User Handlers ---
//

// We define a struct to hold the *input* from the user.
// This is separate from 'models.User' because we don't want to
// accept an 'id' or 'role' from the request body.
type RegisterUserInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register is the handler for POST /v1/register
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	// 3. --- Create the User ---
	// Everyone registers as staff. Admins are promoted out of band.
	user := &models.User{
		Role:         models.RoleStaff,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: password.Hash,
	}
	if err := h.Users.Create(c, user); err != nil {
		respondError(c, err)
		return
	}

	// 4. --- Send Success Response ---
	// The 'json:"-"' tag keeps the password hash out of the response.
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered successfully",
		"user":    user,
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/login
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Look Up the User ---
	// Wrong email and wrong password must be indistinguishable.
	user, err := h.Users.GetByEmail(c, input.Email)
	if err != nil {
		if apperror.GetCode(err) == apperror.CodeNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		respondError(c, err)
		return
	}

	// 3. --- Check the Password ---
	password := models.Password{Hash: user.PasswordHash}
	matches, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}
	if !matches {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// 4. --- Issue the Token ---
	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetMe is the handler for GET /v1/me
func (h *Handlers) GetMe(c *gin.Context) {
	user, err := h.Users.GetByID(c, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
