package httpgin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/evently/internal/service"
	"github.com/kirinyoku/evently/internal/service/account"
)

// @Summary  Register a user account
// @Tags     auth
// @Param    req body  RegisterRequest true "payload"
// @Success  201 {object} IDResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "user name or email taken"
// @Router   /auth/register [post]
func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		var birth *time.Time
		if req.BirthDate != "" {
			d, err := parseDate(req.BirthDate)
			if err != nil {
				badRequest(c, "invalid birth_date (YYYY-MM-DD)")
				return
			}
			birth = &d
		}

		id, err := svcs.Account.Register(c.Request.Context(), account.Registration{
			UserName:  req.UserName,
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			BirthDate: birth,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, IDResponse{ID: id})
	}
}

// @Summary  Log in with user name or email
// @Tags     auth
// @Param    req body  LoginRequest true "payload"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} ErrorResponse
// @Router   /auth/login [post]
func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		tok, u, err := svcs.Account.Login(c.Request.Context(), req.Login, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			AccessToken: tok.Token,
			TokenType:   "Bearer",
			ExpiresAt:   tok.ExpiresAt,
			User:        toUserResponse(u),
		})
	}
}

// @Summary  Current user profile
// @Tags     auth
// @Security BearerAuth
// @Success  200 {object} UserResponse
// @Failure  401 {object} ErrorResponse
// @Router   /me [get]
func handleMe(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svcs.Account.Profile(c.Request.Context(), userID(c))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toUserResponse(u))
	}
}
