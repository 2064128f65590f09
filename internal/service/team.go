package service

import (
	"context"
	"fmt"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"

	"gorm.io/gorm"
)

type TeamService struct{ db *gorm.DB }

func NewTeamService(db *gorm.DB) *TeamService { return &TeamService{db: db} }

func (s *TeamService) List(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	if err := s.db.WithContext(ctx).Order("team_level, name").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) Get(ctx context.Context, id int64) (*model.Team, error) {
	var t model.Team
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound("team", err)
	}
	return &t, nil
}

func (s *TeamService) Create(ctx context.Context, req model.TeamRequest) (*model.Team, error) {
	t := model.Team{Name: req.Name, TeamLevel: req.TeamLevel}
	if req.ParentTeamID != nil {
		if _, err := s.Get(ctx, *req.ParentTeamID); err != nil {
			return nil, err
		}
		t.ParentTeamID = req.ParentTeamID
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		if isDuplicate(err) {
			return nil, conflict("team %q already exists", t.Name)
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}
	logger.Info("team.create", "id", t.ID, "name", t.Name)
	return &t, nil
}

// Update renames or moves a team. A team cannot be moved below itself or
// one of its sub-teams.
func (s *TeamService) Update(ctx context.Context, id int64, req model.TeamRequest) (*model.Team, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ParentTeamID != nil {
		if _, err := s.Get(ctx, *req.ParentTeamID); err != nil {
			return nil, err
		}
		tree, err := teamTree(ctx, s.db)
		if err != nil {
			return nil, err
		}
		if err := tree.CanAttach(id, *req.ParentTeamID); err != nil {
			return nil, fmt.Errorf("team %d under %d: %w", id, *req.ParentTeamID, err)
		}
	}
	err = s.db.WithContext(ctx).Model(t).Updates(map[string]any{
		"name":           req.Name,
		"parent_team_id": req.ParentTeamID,
		"team_level":     req.TeamLevel,
	}).Error
	if err != nil {
		if isDuplicate(err) {
			return nil, conflict("team %q already exists", req.Name)
		}
		return nil, fmt.Errorf("update team: %w", err)
	}
	return s.Get(ctx, id)
}

// Delete removes a team. Members and sub-teams are detached, not deleted.
func (s *TeamService) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Team{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete team: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("team %d: %w", id, ErrNotFound)
		}
		if err := tx.Model(&model.User{}).Where("team_id = ?", id).Update("team_id", nil).Error; err != nil {
			return fmt.Errorf("detach members: %w", err)
		}
		if err := tx.Model(&model.Team{}).Where("parent_team_id = ?", id).Update("parent_team_id", nil).Error; err != nil {
			return fmt.Errorf("detach sub-teams: %w", err)
		}
		logger.Info("team.delete", "id", id)
		return nil
	})
}

// Members lists the active users directly assigned to a team.
func (s *TeamService) Members(ctx context.Context, id int64) ([]model.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	var users []model.User
	if err := s.db.WithContext(ctx).Where("team_id = ? AND is_active = ?", id, true).Order("name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return users, nil
}
