package usecase

import (
	"context"
	"errors"
	"fmt"

	"profiler-backend/internal/domain"
	"profiler-backend/pkg/apperror"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	limits      domain.PageLimits
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(profileRepo domain.ProfileRepository, limits domain.PageLimits) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		limits:      limits,
	}
}

func profileNotFound(id string) error {
	return apperror.NotFound(fmt.Sprintf("Profile with ID %s not found", id))
}

func noteNotFound(id, parentKind, parentID string) error {
	return apperror.NotFound(fmt.Sprintf("Note with ID %s not found on %s %s", id, parentKind, parentID))
}

func (uc *profileUsecase) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (uc *profileUsecase) List(ctx context.Context, filter domain.ProfileFilter) ([]domain.Profile, error) {
	filter.Page = filter.Page.Normalize(uc.limits)
	return uc.profileRepo.Fetch(ctx, filter)
}

func (uc *profileUsecase) FindOne(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, profileNotFound(id)
		}
		return nil, err
	}
	return profile, nil
}

func (uc *profileUsecase) Update(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Profile, error) {
	profile, err := uc.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(profile)
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, profileNotFound(id)
		}
		return nil, err
	}
	return profile, nil
}

func (uc *profileUsecase) Remove(ctx context.Context, id string) error {
	if err := uc.profileRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return profileNotFound(id)
		}
		return err
	}
	return nil
}

func (uc *profileUsecase) SearchBySkills(ctx context.Context, skills []string) ([]domain.Profile, error) {
	if len(skills) == 0 {
		return []domain.Profile{}, nil
	}
	return uc.profileRepo.FetchByAnySkill(ctx, skills)
}

func (uc *profileUsecase) FindAvailable(ctx context.Context) ([]domain.Profile, error) {
	return uc.profileRepo.FetchAvailable(ctx)
}

func (uc *profileUsecase) AddNote(ctx context.Context, profileID string, note *domain.ProfileNote) (*domain.ProfileNote, error) {
	note.ProfileID = profileID
	if err := uc.profileRepo.AddNote(ctx, note); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, profileNotFound(profileID)
		}
		return nil, err
	}
	return note, nil
}

func (uc *profileUsecase) DeleteNote(ctx context.Context, profileID, noteID string) error {
	err := uc.profileRepo.DeleteNote(ctx, profileID, noteID)
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	// Tell a missing profile apart from a missing note.
	if _, lookupErr := uc.profileRepo.GetByID(ctx, profileID); lookupErr != nil {
		if errors.Is(lookupErr, domain.ErrNotFound) {
			return profileNotFound(profileID)
		}
		return lookupErr
	}
	return noteNotFound(noteID, "Profile", profileID)
}
