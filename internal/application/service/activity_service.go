package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wibisana/marketing-tracker/internal/application/port"
	"github.com/wibisana/marketing-tracker/internal/domain/authz"
	"github.com/wibisana/marketing-tracker/internal/domain/entity"
)

// ActivityInput carries the fields a caller supplies for an activity.
type ActivityInput struct {
	Name          string
	ActivityPicID string
	PicIDs        []string
	StartDate     time.Time
	EndDate       time.Time
}

// ActivityService manages activities. Creating and editing activities is a
// Leader operation; everything else in the system only reads them.
type ActivityService interface {
	CreateActivity(ctx context.Context, actorID string, input ActivityInput) (*entity.Activity, error)
	GetActivity(ctx context.Context, id string) (*entity.Activity, error)
	ListActivities(ctx context.Context) ([]*entity.Activity, error)
	UpdateActivity(ctx context.Context, actorID, activityID string, input ActivityInput) (*entity.Activity, error)
}

type activityServiceImpl struct {
	activityRepo port.ActivityRepository
	userRepo     port.UserRepository
	clock        port.Clock
	logger       Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	activityRepo port.ActivityRepository,
	userRepo port.UserRepository,
	clock port.Clock,
	logger Logger,
) ActivityService {
	return &activityServiceImpl{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		clock:        clock,
		logger:       logger,
	}
}

// CreateActivity creates an activity. The designated Activity PIC is always
// part of the membership, added if the caller left them out.
func (s *activityServiceImpl) CreateActivity(ctx context.Context, actorID string, input ActivityInput) (*entity.Activity, error) {
	if err := s.requireLeader(ctx, actorID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	activity := &entity.Activity{
		ID:            uuid.NewString(),
		Name:          input.Name,
		ActivityPicID: input.ActivityPicID,
		PicIDs:        normalizeMembership(input.ActivityPicID, input.PicIDs),
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Error("Failed to create activity", "error", err, "name", input.Name)
		return nil, err
	}

	s.logger.Info("Activity created", "activity_id", activity.ID, "name", activity.Name)
	return activity, nil
}

// GetActivity retrieves an activity by ID
func (s *activityServiceImpl) GetActivity(ctx context.Context, id string) (*entity.Activity, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, fmt.Errorf("%w: %s", authz.ErrUnknownActivity, id)
	}
	return activity, nil
}

// ListActivities returns all activities
func (s *activityServiceImpl) ListActivities(ctx context.Context) ([]*entity.Activity, error) {
	return s.activityRepo.List(ctx)
}

// UpdateActivity edits an activity, keeping the membership invariant
func (s *activityServiceImpl) UpdateActivity(ctx context.Context, actorID, activityID string, input ActivityInput) (*entity.Activity, error) {
	if err := s.requireLeader(ctx, actorID); err != nil {
		return nil, err
	}

	activity, err := s.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	updated := *activity
	updated.Name = input.Name
	updated.ActivityPicID = input.ActivityPicID
	updated.PicIDs = normalizeMembership(input.ActivityPicID, input.PicIDs)
	updated.StartDate = input.StartDate
	updated.EndDate = input.EndDate
	updated.UpdatedAt = s.clock.Now()

	if err := s.activityRepo.Update(ctx, &updated); err != nil {
		s.logger.Error("Failed to update activity", "error", err, "activity_id", activityID)
		return nil, err
	}

	s.logger.Info("Activity updated", "activity_id", activityID, "actor_id", actorID)
	return &updated, nil
}

func (s *activityServiceImpl) requireLeader(ctx context.Context, actorID string) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("resolve actor: %w", err)
	}
	if actor == nil {
		return fmt.Errorf("user not found: %s", actorID)
	}
	if !actor.IsLeader() {
		return fmt.Errorf("%w: user %s may not manage activities", authz.ErrForbidden, actorID)
	}
	return nil
}

// normalizeMembership dedupes the PIC list and guarantees the Activity PIC
// is a member.
func normalizeMembership(activityPicID string, picIDs []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, id := range picIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if activityPicID != "" && !seen[activityPicID] {
		out = append(out, activityPicID)
	}
	return out
}
