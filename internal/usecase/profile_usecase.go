package usecase

import (
	"context"
	"errors"
	"go-devnet-backend/internal/domain"
	"go-devnet-backend/pkg/apperror"
	"go-devnet-backend/pkg/audit"
	"go-devnet-backend/pkg/logger"
	"go-devnet-backend/pkg/metrics"
	"go-devnet-backend/pkg/validation"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgNoProfile    = "There is no profile for this user"
	msgHandleExists = "That handle already exists"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	userRepo    domain.UserRepository
	validate    *validator.Validate
}

func NewProfileUsecase(
	profileRepo domain.ProfileRepository,
	userRepo domain.UserRepository,
	validate *validator.Validate,
) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		validate:    validate,
	}
}

func (u *profileUsecase) GetOwnProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return u.findByUser(ctx, userID)
}

// ListAllProfiles returns every profile. An empty store is not an error.
func (u *profileUsecase) ListAllProfiles(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := u.profileRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, nil
}

func (u *profileUsecase) GetProfileByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, notFoundOr(err, "profile", msgNoProfile)
	}
	return profile, nil
}

// GetProfileByUserID treats a malformed user id like a missing profile.
func (u *profileUsecase) GetProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperror.NotFound("profile", msgNoProfile)
	}
	return u.findByUser(ctx, userID)
}

// UpsertProfile merges present fields into the caller's profile, or creates
// one. On creation the handle must be free; the check happens before the
// insert and the unique index on handle backs it against races.
func (u *profileUsecase) UpsertProfile(ctx context.Context, userID string, input domain.ProfileInput) (*domain.Profile, error) {
	input.Normalize()
	if res := validation.Check(u.validate, input); !res.IsValid {
		return nil, apperror.Validation(res.Errors)
	}

	fields := domain.NewProfileFields(input)

	_, err := u.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		updated, err := u.profileRepo.Update(ctx, userID, fields)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, apperror.Conflict("handle", msgHandleExists)
			}
			return nil, notFoundOr(err, "profile", msgNoProfile)
		}
		metrics.RecordEvent("profile_updated")
		return updated, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, apperror.Internal(err)
	}

	if fields.Handle != nil {
		_, err := u.profileRepo.GetByHandle(ctx, *fields.Handle)
		switch {
		case err == nil:
			return nil, apperror.Conflict("handle", msgHandleExists)
		case !errors.Is(err, domain.ErrNotFound):
			return nil, apperror.Internal(err)
		}
	}

	profile := &domain.Profile{
		ID:         uuid.NewString(),
		User:       domain.ProfileUser{ID: userID},
		Skills:     []string{},
		Education:  []domain.Education{},
		Experience: []domain.Experience{},
		CreatedAt:  time.Now().UTC(),
	}
	profile.Apply(fields)

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("handle", msgHandleExists)
		}
		return nil, apperror.Internal(err)
	}

	metrics.RecordEvent("profile_created")
	return profile, nil
}

func (u *profileUsecase) AddEducation(ctx context.Context, userID string, input domain.EducationInput) (*domain.Profile, error) {
	input.Normalize()
	if res := validation.Check(u.validate, input); !res.IsValid {
		return nil, apperror.Validation(res.Errors)
	}

	from, to, err := parseRange(input.From, input.To)
	if err != nil {
		return nil, err
	}

	profile, err := u.findByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.AddEducation(domain.Education{
		ID:           uuid.NewString(),
		Institute:    input.Institute,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      input.Current,
		Description:  input.Description,
	})

	if err := u.saveEntries(ctx, profile); err != nil {
		return nil, err
	}
	metrics.RecordEvent("education_added")
	return profile, nil
}

// RemoveEducation is a no-op when the id is not in the sequence.
func (u *profileUsecase) RemoveEducation(ctx context.Context, userID, educationID string) (*domain.Profile, error) {
	profile, err := u.findByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.RemoveEducation(educationID) {
		return profile, nil
	}

	if err := u.saveEntries(ctx, profile); err != nil {
		return nil, err
	}
	metrics.RecordEvent("education_removed")
	return profile, nil
}

func (u *profileUsecase) AddExperience(ctx context.Context, userID string, input domain.ExperienceInput) (*domain.Profile, error) {
	input.Normalize()
	if res := validation.Check(u.validate, input); !res.IsValid {
		return nil, apperror.Validation(res.Errors)
	}

	from, to, err := parseRange(input.From, input.To)
	if err != nil {
		return nil, err
	}

	profile, err := u.findByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.AddExperience(domain.Experience{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        from,
		To:          to,
		Current:     input.Current,
		Description: input.Description,
	})

	if err := u.saveEntries(ctx, profile); err != nil {
		return nil, err
	}
	metrics.RecordEvent("experience_added")
	return profile, nil
}

func (u *profileUsecase) RemoveExperience(ctx context.Context, userID, experienceID string) (*domain.Profile, error) {
	profile, err := u.findByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.RemoveExperience(experienceID) {
		return profile, nil
	}

	if err := u.saveEntries(ctx, profile); err != nil {
		return nil, err
	}
	metrics.RecordEvent("experience_removed")
	return profile, nil
}

// DeleteOwnProfileAndAccount removes the profile, then the user. The two
// deletes are independent: if the second fails the profile stays deleted.
func (u *profileUsecase) DeleteOwnProfileAndAccount(ctx context.Context, userID string) error {
	if err := u.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return apperror.Internal(err)
	}

	if err := u.userRepo.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Log.Error("account delete failed after profile delete", "user_id", userID, "error", err)
		return apperror.Internal(err)
	}

	metrics.RecordEvent("account_deleted")
	audit.Default().AccountDeleted(userID)
	return nil
}

func (u *profileUsecase) findByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "profile", msgNoProfile)
	}
	return profile, nil
}

func (u *profileUsecase) saveEntries(ctx context.Context, profile *domain.Profile) error {
	if err := u.profileRepo.SaveEntries(ctx, profile); err != nil {
		return notFoundOr(err, "profile", msgNoProfile)
	}
	return nil
}

func parseRange(fromRaw, toRaw string) (time.Time, *time.Time, error) {
	from, err := validation.ParseDate(fromRaw)
	if err != nil {
		return time.Time{}, nil, apperror.Validation(map[string]string{"from": "From date is invalid"})
	}
	if toRaw == "" {
		return from, nil, nil
	}
	to, err := validation.ParseDate(toRaw)
	if err != nil {
		return time.Time{}, nil, apperror.Validation(map[string]string{"to": "To date is invalid"})
	}
	return from, &to, nil
}

// notFoundOr maps domain.ErrNotFound to a 404 with the given field message
// and anything else to a 500.
func notFoundOr(err error, field, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(field, message)
	}
	return apperror.Internal(err)
}
