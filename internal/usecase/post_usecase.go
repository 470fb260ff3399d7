package usecase

import (
	"context"
	"errors"
	"go-devnet-backend/internal/domain"
	"go-devnet-backend/pkg/apperror"
	"go-devnet-backend/pkg/metrics"
	"go-devnet-backend/pkg/validation"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgNoPost        = "No post found with that ID"
	msgAlreadyLiked  = "User already liked this post"
	msgNotLiked      = "You have not yet liked this post"
	msgNotPostAuthor = "User not authorized to delete this post"
)

type postUsecase struct {
	postRepo domain.PostRepository
	validate *validator.Validate
}

func NewPostUsecase(postRepo domain.PostRepository, validate *validator.Validate) domain.PostUsecase {
	return &postUsecase{
		postRepo: postRepo,
		validate: validate,
	}
}

// ListPosts returns all posts, newest first.
func (u *postUsecase) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := u.postRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

func (u *postUsecase) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return u.load(ctx, id)
}

// CreatePost stores a post authored by the caller. A display name or avatar
// sent with the post overrides the caller's account values.
func (u *postUsecase) CreatePost(ctx context.Context, author domain.Identity, input domain.PostInput) (*domain.Post, error) {
	input.Normalize()
	if res := validation.Check(u.validate, input); !res.IsValid {
		return nil, apperror.Validation(res.Errors)
	}

	post := &domain.Post{
		ID:        uuid.NewString(),
		User:      author.ID,
		Text:      input.Text,
		Name:      firstNonEmpty(input.Name, author.Name),
		Avatar:    firstNonEmpty(input.Avatar, author.Avatar),
		Likes:     []domain.Like{},
		CreatedAt: time.Now().UTC(),
	}
	if err := u.postRepo.Create(ctx, post); err != nil {
		return nil, apperror.Internal(err)
	}

	metrics.RecordEvent("post_created")
	return post, nil
}

// DeletePost removes a post owned by userID.
func (u *postUsecase) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := u.load(ctx, postID)
	if err != nil {
		return err
	}

	if post.User != userID {
		return apperror.Forbidden("notauthorized", msgNotPostAuthor)
	}

	if err := u.postRepo.Delete(ctx, post.ID); err != nil {
		return notFoundOr(err, "nopostfound", msgNoPost)
	}

	metrics.RecordEvent("post_deleted")
	return nil
}

// LikePost adds the caller's like at the head of the list. A user holds at
// most one like per post; the repository write is conditional so concurrent
// requests cannot produce a duplicate.
func (u *postUsecase) LikePost(ctx context.Context, userID, postID string) (*domain.Post, error) {
	post, err := u.load(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.LikedBy(userID) {
		return nil, apperror.Conflict("alreadyliked", msgAlreadyLiked)
	}

	liked, err := u.postRepo.AddLike(ctx, post.ID, domain.Like{User: userID, CreatedAt: time.Now().UTC()})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("alreadyliked", msgAlreadyLiked)
		}
		return nil, notFoundOr(err, "nopostfound", msgNoPost)
	}

	metrics.RecordEvent("post_liked")
	return liked, nil
}

func (u *postUsecase) UnlikePost(ctx context.Context, userID, postID string) (*domain.Post, error) {
	post, err := u.load(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !post.LikedBy(userID) {
		return nil, apperror.Conflict("notliked", msgNotLiked)
	}

	unliked, err := u.postRepo.RemoveLike(ctx, post.ID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("notliked", msgNotLiked)
		}
		return nil, notFoundOr(err, "nopostfound", msgNoPost)
	}

	metrics.RecordEvent("post_unliked")
	return unliked, nil
}

// load fetches a post; a malformed id is reported as not found.
func (u *postUsecase) load(ctx context.Context, id string) (*domain.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("nopostfound", msgNoPost)
	}
	post, err := u.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "nopostfound", msgNoPost)
	}
	return post, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
