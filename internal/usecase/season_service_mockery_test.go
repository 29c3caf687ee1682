package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	seasonmock "github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/mocks/domain/season"
)

func TestSeasonService_Create_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)

	service := NewSeasonService(seasonRepo, &stubTeamRepository{})
	year := 2026

	seasonRepo.
		On("GetByYear", mock.Anything, year).
		Return(season.Season{}, false, nil).
		Once()
	seasonRepo.
		On("Create", mock.Anything, year).
		Return(season.Season{ID: 3, Year: year}, nil).
		Once()

	created, err := service.Create(ctx, &year)
	if err != nil {
		t.Fatalf("create season: %v", err)
	}
	if created.ID != 3 || created.Year != year {
		t.Fatalf("unexpected season: %+v", created)
	}
}

func TestSeasonService_Create_DuplicateYearUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)

	service := NewSeasonService(seasonRepo, &stubTeamRepository{})
	year := 2025

	seasonRepo.
		On("GetByYear", mock.Anything, year).
		Return(season.Season{ID: 1, Year: year}, true, nil).
		Once()

	_, err := service.Create(ctx, &year)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSeasonService_Get_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := seasonmock.NewRepository(t)

	service := NewSeasonService(seasonRepo, &stubTeamRepository{})

	seasonRepo.
		On("GetByID", mock.Anything, int64(42)).
		Return(season.Season{}, false, nil).
		Once()

	_, err := service.Get(ctx, 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
