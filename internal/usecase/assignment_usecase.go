package usecase

import (
	"context"
	"errors"
	"fmt"

	"profiler-backend/internal/domain"
	"profiler-backend/pkg/apperror"
)

type assignmentUsecase struct {
	assignmentRepo domain.AssignmentRepository
	profileRepo    domain.ProfileRepository
	clientRepo     domain.ClientRepository
	limits         domain.PageLimits
}

// NewAssignmentUsecase creates a new assignment usecase. The profile and client
// repositories resolve the references an assignment points at.
func NewAssignmentUsecase(
	assignmentRepo domain.AssignmentRepository,
	profileRepo domain.ProfileRepository,
	clientRepo domain.ClientRepository,
	limits domain.PageLimits,
) domain.AssignmentUsecase {
	return &assignmentUsecase{
		assignmentRepo: assignmentRepo,
		profileRepo:    profileRepo,
		clientRepo:     clientRepo,
		limits:         limits,
	}
}

func assignmentNotFound(id string) error {
	return apperror.NotFound(fmt.Sprintf("Assignment with ID %s not found", id))
}

func (uc *assignmentUsecase) resolveProfile(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, profileNotFound(id)
		}
		return nil, err
	}
	return profile, nil
}

func (uc *assignmentUsecase) resolveClient(ctx context.Context, id string) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, clientNotFound(id)
		}
		return nil, err
	}
	return client, nil
}

func (uc *assignmentUsecase) Create(ctx context.Context, in domain.AssignmentInput) (*domain.Assignment, error) {
	if _, err := uc.resolveProfile(ctx, in.ProfileID); err != nil {
		return nil, err
	}
	if _, err := uc.resolveClient(ctx, in.ClientID); err != nil {
		return nil, err
	}

	assignment := &domain.Assignment{
		ProfileID:      &in.ProfileID,
		ClientID:       &in.ClientID,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Status:         in.Status,
		Rate:           in.Rate,
		Feedback:       in.Feedback,
		AdditionalInfo: in.AdditionalInfo,
	}
	if err := uc.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return uc.FindOne(ctx, assignment.ID)
}

func (uc *assignmentUsecase) List(ctx context.Context, filter domain.AssignmentFilter) ([]domain.Assignment, error) {
	filter.Page = filter.Page.Normalize(uc.limits)
	return uc.assignmentRepo.Fetch(ctx, filter)
}

func (uc *assignmentUsecase) FindOne(ctx context.Context, id string) (*domain.Assignment, error) {
	assignment, err := uc.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, assignmentNotFound(id)
		}
		return nil, err
	}
	return assignment, nil
}

// Update re-validates a reference only when the update supplies it.
func (uc *assignmentUsecase) Update(ctx context.Context, id string, update domain.AssignmentUpdate) (*domain.Assignment, error) {
	assignment, err := uc.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.ProfileID != nil {
		if _, err := uc.resolveProfile(ctx, *update.ProfileID); err != nil {
			return nil, err
		}
		assignment.ProfileID = update.ProfileID
	}
	if update.ClientID != nil {
		if _, err := uc.resolveClient(ctx, *update.ClientID); err != nil {
			return nil, err
		}
		assignment.ClientID = update.ClientID
	}
	update.Apply(assignment)

	if err := uc.assignmentRepo.Update(ctx, assignment); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, assignmentNotFound(id)
		}
		return nil, err
	}
	return uc.FindOne(ctx, id)
}

func (uc *assignmentUsecase) Remove(ctx context.Context, id string) error {
	if err := uc.assignmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return assignmentNotFound(id)
		}
		return err
	}
	return nil
}

func (uc *assignmentUsecase) FindActiveAssignments(ctx context.Context) ([]domain.Assignment, error) {
	return uc.assignmentRepo.FetchActive(ctx)
}

func (uc *assignmentUsecase) FindAssignmentsByDateRange(ctx context.Context, start, end domain.Date) ([]domain.Assignment, error) {
	if end.Before(start.Time) {
		return nil, apperror.BadRequest("endDate must not be before startDate")
	}
	return uc.assignmentRepo.FetchByDateRange(ctx, start, end)
}

func (uc *assignmentUsecase) FindAssignmentsByProfile(ctx context.Context, profileID string) ([]domain.Assignment, error) {
	return uc.assignmentRepo.FetchByProfile(ctx, profileID)
}

func (uc *assignmentUsecase) FindAssignmentsByClient(ctx context.Context, clientID string) ([]domain.Assignment, error) {
	return uc.assignmentRepo.FetchByClient(ctx, clientID)
}

func (uc *assignmentUsecase) AddNote(ctx context.Context, assignmentID string, note *domain.AssignmentNote) (*domain.AssignmentNote, error) {
	note.AssignmentID = assignmentID
	if err := uc.assignmentRepo.AddNote(ctx, note); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, assignmentNotFound(assignmentID)
		}
		return nil, err
	}
	return note, nil
}

func (uc *assignmentUsecase) RemoveNote(ctx context.Context, assignmentID, noteID string) error {
	err := uc.assignmentRepo.DeleteNote(ctx, assignmentID, noteID)
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, lookupErr := uc.assignmentRepo.GetByID(ctx, assignmentID); lookupErr != nil {
		if errors.Is(lookupErr, domain.ErrNotFound) {
			return assignmentNotFound(assignmentID)
		}
		return lookupErr
	}
	return noteNotFound(noteID, "Assignment", assignmentID)
}
