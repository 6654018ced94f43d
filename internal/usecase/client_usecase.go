package usecase

import (
	"context"
	"errors"
	"fmt"

	"profiler-backend/internal/domain"
	"profiler-backend/pkg/apperror"
)

type clientUsecase struct {
	clientRepo domain.ClientRepository
	limits     domain.PageLimits
}

// NewClientUsecase creates a new client usecase
func NewClientUsecase(clientRepo domain.ClientRepository, limits domain.PageLimits) domain.ClientUsecase {
	return &clientUsecase{
		clientRepo: clientRepo,
		limits:     limits,
	}
}

func clientNotFound(id string) error {
	return apperror.NotFound(fmt.Sprintf("Client with ID %s not found", id))
}

func (uc *clientUsecase) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// List returns one page of clients and the total number matching the filter.
func (uc *clientUsecase) List(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, int64, error) {
	filter.Page = filter.Page.Normalize(uc.limits)
	return uc.clientRepo.Fetch(ctx, filter)
}

func (uc *clientUsecase) FindOne(ctx context.Context, id string) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, clientNotFound(id)
		}
		return nil, err
	}
	return client, nil
}

func (uc *clientUsecase) Update(ctx context.Context, id string, update domain.ClientUpdate) (*domain.Client, error) {
	client, err := uc.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(client)
	if err := uc.clientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, clientNotFound(id)
		}
		return nil, err
	}
	return client, nil
}

func (uc *clientUsecase) Remove(ctx context.Context, id string) error {
	if err := uc.clientRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return clientNotFound(id)
		}
		return err
	}
	return nil
}

func (uc *clientUsecase) FindByIndustry(ctx context.Context, industry string) ([]domain.Client, error) {
	return uc.clientRepo.FetchByIndustry(ctx, industry)
}

func (uc *clientUsecase) FindActiveClients(ctx context.Context) ([]domain.Client, error) {
	return uc.clientRepo.FetchByStatus(ctx, domain.ClientStatusActive)
}

func (uc *clientUsecase) SearchByLocation(ctx context.Context, location string) ([]domain.Client, error) {
	return uc.clientRepo.FetchByLocation(ctx, location)
}
