package v1

import (
	"go-devnet-backend/internal/delivery/http/middleware"
	"go-devnet-backend/internal/delivery/http/response"
	"go-devnet-backend/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUC domain.PostUsecase
}

func NewPostHandler(public *gin.RouterGroup, protected *gin.RouterGroup, postUC domain.PostUsecase) {
	handler := &PostHandler{postUC: postUC}

	publicPosts := public.Group("/posts")
	{
		publicPosts.GET("", handler.List)
		publicPosts.GET("/:id", handler.Get)
	}

	protectedPosts := protected.Group("/posts")
	{
		protectedPosts.POST("", handler.Create)
		protectedPosts.DELETE("/:id", handler.Delete)
		protectedPosts.POST("/like/:id", handler.Like)
		protectedPosts.POST("/unlike/:id", handler.Unlike)
	}
}

// List godoc
// @Summary      All posts, newest first
// @Tags         posts
// @Produce      json
// @Success      200  {array}  domain.Post
// @Router       /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postUC.ListPosts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, posts)
}

// Get godoc
// @Summary      Post by id
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.postUC.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// Create godoc
// @Summary      Publish a post
// @Description  Name and avatar default to the author's account values.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post  body      domain.PostInput  true  "Post"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var input domain.PostInput
	if err := bindJSON(c, &input); err != nil {
		c.Error(err)
		return
	}

	post, err := h.postUC.CreatePost(c.Request.Context(), middleware.CurrentIdentity(c), input)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// Delete godoc
// @Summary      Delete own post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  response.Ack
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postUC.DeletePost(c.Request.Context(), middleware.CurrentIdentity(c).ID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.OK(c, http.StatusOK)
}

// Like godoc
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/like/{id} [post]
func (h *PostHandler) Like(c *gin.Context) {
	post, err := h.postUC.LikePost(c.Request.Context(), middleware.CurrentIdentity(c).ID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// Unlike godoc
// @Summary      Remove a like
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/unlike/{id} [post]
func (h *PostHandler) Unlike(c *gin.Context) {
	post, err := h.postUC.UnlikePost(c.Request.Context(), middleware.CurrentIdentity(c).ID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, post)
}
