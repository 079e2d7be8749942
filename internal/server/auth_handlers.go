package server

import (
	"context"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "inkwell-api"
	tokenAudience = "inkwell-client"
	tokenTTL      = 24 * time.Hour
	authCookie    = "auth_token"
)

type signupRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Next     string `json:"next" form:"next"`
}

// issueToken creates a signed JWT for the user.
func (s *Server) issueToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parseToken validates a JWT and returns the user id it carries.
func (s *Server) parseToken(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// tokenFromRequest extracts the JWT from the Authorization header or the
// auth cookie.
func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies(authCookie)
}

// currentUserID returns the authenticated user's id, or (0, false) for an
// anonymous request.
func (s *Server) currentUserID(c *fiber.Ctx) (uint, bool) {
	if uid, ok := c.Locals("userID").(uint); ok && uid != 0 {
		return uid, true
	}
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return 0, false
	}
	return s.parseToken(tokenString)
}

// RequireLogin redirects anonymous callers to the login page with a return
// path, mirroring classic session-based web apps.
func (s *Server) RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := s.currentUserID(c)
		if !ok {
			return c.Redirect("/auth/login?next="+c.Path(), fiber.StatusFound)
		}

		c.Locals("userID", userID)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// LoginPage renders the login form. The next parameter round-trips so a
// successful login can return the caller to the page they wanted.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"form": fiber.Map{"username": "", "password": ""},
		"next": c.Query("next", "/"),
	})
}

// Signup registers a new account and logs it in.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeValidation {
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login authenticates credentials, sets the auth cookie and redirects to the
// requested next path.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeUnauthorized {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	next := req.Next
	if next == "" {
		next = c.Query("next")
	}
	if next != "" && strings.HasPrefix(next, "/") {
		return c.Redirect(next, fiber.StatusFound)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Logout clears the auth cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     authCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.Redirect("/", fiber.StatusFound)
}

func (s *Server) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookie,
		Value:    token,
		Expires:  time.Now().Add(tokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   s.config.Env == "production",
	})
}
