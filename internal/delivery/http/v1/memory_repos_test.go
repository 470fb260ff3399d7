package v1_test

import (
	"context"
	"slices"
	"sort"
	"sync"

	"go-devnet-backend/internal/domain"
)

// In-memory repositories backing the router tests.

type memUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]domain.User{}}
}

func (r *memUsers) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrConflict
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUsers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memProfiles struct {
	mu       sync.Mutex
	users    *memUsers
	profiles map[string]domain.Profile // by user id
}

func newMemProfiles(users *memUsers) *memProfiles {
	return &memProfiles{users: users, profiles: map[string]domain.Profile{}}
}

// read returns a copy with the owner populated. Callers hold mu.
func (r *memProfiles) read(p domain.Profile) *domain.Profile {
	if u, err := r.users.GetByID(context.Background(), p.User.ID); err == nil {
		p.User.Name = u.Name
		p.User.Avatar = u.Avatar
	}
	p.Skills = slices.Clone(p.Skills)
	p.Education = slices.Clone(p.Education)
	p.Experience = slices.Clone(p.Experience)
	return &p
}

func (r *memProfiles) handleTaken(handle, ownerID string) bool {
	for _, p := range r.profiles {
		if handle != "" && p.Handle == handle && p.User.ID != ownerID {
			return true
		}
	}
	return false
}

func (r *memProfiles) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.read(p), nil
}

func (r *memProfiles) GetByHandle(_ context.Context, handle string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Handle == handle {
			return r.read(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memProfiles) List(_ context.Context) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Profile{}
	for _, p := range r.profiles {
		out = append(out, *r.read(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memProfiles) Create(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.User.ID]; ok || r.handleTaken(profile.Handle, profile.User.ID) {
		return domain.ErrConflict
	}
	r.profiles[profile.User.ID] = *r.read(*profile)
	*profile = *r.read(*profile)
	return nil
}

func (r *memProfiles) Update(_ context.Context, userID string, fields domain.ProfileFields) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if fields.Handle != nil && r.handleTaken(*fields.Handle, userID) {
		return nil, domain.ErrConflict
	}
	p.Apply(fields)
	r.profiles[userID] = p
	return r.read(p), nil
}

func (r *memProfiles) SaveEntries(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profile.User.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Education = slices.Clone(profile.Education)
	p.Experience = slices.Clone(profile.Experience)
	r.profiles[profile.User.ID] = p
	return nil
}

func (r *memProfiles) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, userID)
	return nil
}

type memPosts struct {
	mu    sync.Mutex
	posts map[string]domain.Post
}

func newMemPosts() *memPosts {
	return &memPosts{posts: map[string]domain.Post{}}
}

func clonePost(p domain.Post) *domain.Post {
	p.Likes = slices.Clone(p.Likes)
	return &p
}

func (r *memPosts) List(_ context.Context) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Post{}
	for _, p := range r.posts {
		out = append(out, *clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPosts) GetByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *memPosts) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = *clonePost(*post)
	return nil
}

func (r *memPosts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memPosts) AddLike(_ context.Context, postID string, like domain.Like) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok || p.LikedBy(like.User) {
		return nil, domain.ErrConflict
	}
	p.Likes = slices.Insert(p.Likes, 0, like)
	r.posts[postID] = p
	return clonePost(p), nil
}

func (r *memPosts) RemoveLike(_ context.Context, postID, userID string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil, domain.ErrConflict
	}
	idx := slices.IndexFunc(p.Likes, func(l domain.Like) bool { return l.User == userID })
	if idx < 0 {
		return nil, domain.ErrConflict
	}
	p.Likes = slices.Delete(p.Likes, idx, idx+1)
	r.posts[postID] = p
	return clonePost(p), nil
}
