package service

import (
	"context"
	"fmt"

	"github.com/Peterleoo/Livora/internal/dto"
	"github.com/Peterleoo/Livora/pkg/profile"
)

type IProfileService interface {
	Show(ctx context.Context) (*dto.ProfileResponse, error)
	Update(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	profiles *profile.Store
}

func NewProfileService(profiles *profile.Store) IProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Show(ctx context.Context) (*dto.ProfileResponse, error) {
	p, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return toProfileResponse(p), nil
}

func (s *profileService) Update(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p := profile.Profile{
		City: req.City,
		Preferences: profile.Preferences{
			WorkLocation:  req.WorkLocation,
			BudgetMin:     req.BudgetMin,
			BudgetMax:     req.BudgetMax,
			LifestyleTags: req.LifestyleTags,
			CommuteMethod: req.CommuteMethod,
		},
	}
	if err := s.profiles.Set(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return toProfileResponse(p), nil
}

func toProfileResponse(p profile.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		City:          p.City,
		WorkLocation:  p.Preferences.WorkLocation,
		BudgetMin:     p.Preferences.BudgetMin,
		BudgetMax:     p.Preferences.BudgetMax,
		LifestyleTags: p.Preferences.LifestyleTags,
		CommuteMethod: p.Preferences.CommuteMethod,
	}
}
