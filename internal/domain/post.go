package domain

import (
	"context"
	"slices"
	"strings"
	"time"
)

type Post struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"` // most recent first
	CreatedAt time.Time `json:"date"`
}

type Like struct {
	User      string    `json:"user"`
	CreatedAt time.Time `json:"date"`
}

type PostInput struct {
	Text   string `json:"text" validate:"notblank,min=10,max=300"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (in *PostInput) Normalize() {
	in.Text = strings.TrimSpace(in.Text)
	in.Name = strings.TrimSpace(in.Name)
	in.Avatar = strings.TrimSpace(in.Avatar)
}

// LikedBy reports whether userID already holds a like on the post.
func (p *Post) LikedBy(userID string) bool {
	return slices.ContainsFunc(p.Likes, func(l Like) bool { return l.User == userID })
}

type PostRepository interface {
	List(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id string) error
	// AddLike prepends like unless the user already liked the post.
	// Returns ErrConflict when the conditional write matched nothing.
	AddLike(ctx context.Context, postID string, like Like) (*Post, error)
	// RemoveLike drops the user's like. Returns ErrConflict when there
	// was no like to remove.
	RemoveLike(ctx context.Context, postID, userID string) (*Post, error)
}

type PostUsecase interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	CreatePost(ctx context.Context, author Identity, input PostInput) (*Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
	LikePost(ctx context.Context, userID, postID string) (*Post, error)
	UnlikePost(ctx context.Context, userID, postID string) (*Post, error)
}
