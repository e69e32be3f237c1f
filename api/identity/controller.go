package identity

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
	"github.com/beka-birhanu/vinom-trapmaze/service"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer handles HTTP requests related to authentication.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new AuthServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.registerUser)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
}

// registerUser handles player registration: 400 for invalid input, 409 when the username is taken.
func (c *IdentityServer) registerUser(ctx *gin.Context) {
	var request AuthRequest

	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := c.authService.Register(request.Username, request.Password)
	switch {
	case err == nil:
		ctx.JSON(http.StatusCreated, gin.H{"message": "Player registered", "username": request.Username})
	case errors.Is(err, dmn.ErrUsernameTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case isValidationError(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": invalidField(err)})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while registering"})
	}
}

func isValidationError(err error) bool {
	return invalidField(err) != ""
}

// invalidField names the request field a domain validation error refers to.
func invalidField(err error) string {
	switch {
	case errors.Is(err, dmn.ErrUsernameTooShort),
		errors.Is(err, dmn.ErrUsernameTooLong),
		errors.Is(err, dmn.ErrInvalidUsernameChars):
		return "username"
	case errors.Is(err, dmn.ErrWeakPassword):
		return "password"
	}
	return ""
}

// login handles user login.
func (c *IdentityServer) login(ctx *gin.Context) {
	var request AuthRequest

	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := c.authService.SignIn(request.Username, request.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while signing in"})
		return
	}

	response := &AuthResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Token:    token,
	}
	ctx.JSON(http.StatusOK, response)
}
