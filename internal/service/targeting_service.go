package service

import (
	"fmt"

	"herald/internal/domain"
	"herald/internal/repository"
)

// Target carries exactly one targeting mode: an explicit recipient list,
// the all-active-users flag, or a named segment.
type Target struct {
	UserIDs  []uint `json:"user_ids"`
	AllUsers bool   `json:"all_users"`
	Segment  string `json:"segment"`
}

// TargetingService expands a targeting mode into concrete recipient IDs.
// Read-only; validity of explicit IDs is the caller's responsibility.
type TargetingService struct {
	users *repository.UserRepository
}

func NewTargetingService(users *repository.UserRepository) *TargetingService {
	return &TargetingService{users: users}
}

// Resolve returns the recipient set for a target. More than one mode is a
// validation error; an empty result is ErrNoTargets. An unrecognized segment
// matches zero users rather than erroring, so it also surfaces as
// ErrNoTargets once the set comes back empty.
func (s *TargetingService) Resolve(t Target) ([]uint, error) {
	modes := 0
	if len(t.UserIDs) > 0 {
		modes++
	}
	if t.AllUsers {
		modes++
	}
	if t.Segment != "" {
		modes++
	}
	if modes > 1 {
		return nil, fmt.Errorf("%w: more than one targeting mode given", domain.ErrValidation)
	}
	if modes == 0 {
		return nil, domain.ErrNoTargets
	}

	var (
		ids []uint
		err error
	)
	switch {
	case len(t.UserIDs) > 0:
		ids = t.UserIDs
	case t.AllUsers:
		ids, err = s.users.ActiveIDs()
	default:
		ids, err = s.users.SegmentIDs(t.Segment)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if len(ids) == 0 {
		return nil, domain.ErrNoTargets
	}
	return ids, nil
}
