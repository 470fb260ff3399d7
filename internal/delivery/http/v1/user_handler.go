package v1

import (
	"errors"
	"go-devnet-backend/internal/delivery/http/middleware"
	"go-devnet-backend/internal/delivery/http/response"
	"go-devnet-backend/internal/domain"
	"go-devnet-backend/pkg/apperror"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authUC domain.AuthUsecase
}

func NewUserHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &UserHandler{authUC: authUC}

	publicUsers := public.Group("/users")
	{
		publicUsers.POST("/register", handler.Register)
		publicUsers.POST("/login", handler.Login)
	}

	protectedUsers := protected.Group("/users")
	{
		protectedUsers.GET("/current", handler.Current)
	}
}

// Register godoc
// @Summary      Register a user
// @Description  Creates an account. The avatar is derived from the email.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        register  body      domain.RegisterInput  true  "Registration details"
// @Success      200       {object}  domain.User
// @Failure      400       {object}  map[string]string
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input domain.RegisterInput
	if err := bindJSON(c, &input); err != nil {
		c.Error(err)
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges email and password for a bearer token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        login  body      domain.LoginInput  true  "Credentials"
// @Success      200    {object}  domain.LoginResult
// @Failure      400    {object}  map[string]string
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input domain.LoginInput
	if err := bindJSON(c, &input); err != nil {
		c.Error(err)
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Current godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CurrentUser
// @Failure      401  {object}  map[string]string
// @Router       /users/current [get]
func (h *UserHandler) Current(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), identity.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// bindJSON decodes the request body into dst. An empty body leaves dst at
// its zero value so that validation reports the missing fields.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.BadRequest("Malformed JSON body")
	}
	return nil
}
