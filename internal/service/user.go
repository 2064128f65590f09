package service

import (
	"context"
	"fmt"
	"time"

	"leadership-dashboard/internal/hierarchy"
	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"

	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	progress *ProgressService
}

func NewUserService(db *gorm.DB, prog *ProgressService) *UserService {
	return &UserService{db: db, progress: prog}
}

// Profile returns a user with the name of their team filled in.
func (s *UserService) Profile(ctx context.Context, id int64) (*model.Profile, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound("user", err)
	}
	names, err := s.teamNames(ctx, []model.User{u})
	if err != nil {
		return nil, err
	}
	p := model.NewProfile(u, teamName(names, u.TeamID))
	return &p, nil
}

// List returns the users visible to actor, ordered by name.
func (s *UserService) List(ctx context.Context, actor Actor) ([]model.Profile, error) {
	ids, all, err := visibleUserIDs(ctx, s.db, actor)
	if err != nil {
		return nil, err
	}
	if !all && !actor.IsLeader() {
		return nil, ErrForbidden
	}
	q := s.db.WithContext(ctx).Order("name, id")
	if !all {
		if len(ids) == 0 {
			return []model.Profile{}, nil
		}
		q = q.Where("id IN ?", ids)
	}
	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return s.profiles(ctx, users)
}

func (s *UserService) Get(ctx context.Context, actor Actor, id int64) (*model.Profile, error) {
	if err := canViewUser(ctx, s.db, actor, id); err != nil {
		return nil, err
	}
	return s.Profile(ctx, id)
}

func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.Profile, error) {
	if !req.Role.Valid() {
		return nil, invalid("unknown role %q", req.Role)
	}
	if err := s.checkRefs(ctx, req.TeamID, req.ParentLeaderID); err != nil {
		return nil, err
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := model.User{
		Email:          normalizeEmail(req.Email),
		PasswordHash:   hash,
		Name:           req.Name,
		Role:           req.Role,
		TeamID:         req.TeamID,
		ParentLeaderID: req.ParentLeaderID,
		IsActive:       true,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isDuplicate(err) {
			return nil, conflict("email %s already registered", u.Email)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	logger.Info("user.create", "uid", u.ID, "role", u.Role)
	return s.Profile(ctx, u.ID)
}

func (s *UserService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.Profile, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound("user", err)
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, invalid("unknown role %q", *req.Role)
		}
		updates["role"] = *req.Role
	}
	if req.TeamID != nil {
		if err := s.checkRefs(ctx, req.TeamID, nil); err != nil {
			return nil, err
		}
		updates["team_id"] = *req.TeamID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&u).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}
	return s.Profile(ctx, id)
}

// Deactivate disables the login of a user. Rows that reference the user are
// kept.
func (s *UserService) Deactivate(ctx context.Context, actor Actor, id int64) error {
	if actor.ID == id {
		return invalid("cannot deactivate yourself")
	}
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivate user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	logger.Info("user.deactivate", "uid", id, "by", actor.ID)
	return nil
}

// SetTargets replaces a user's personal daily/weekly/monthly targets.
func (s *UserService) SetTargets(ctx context.Context, userID int64, t model.PersonalTargets) (*model.Profile, error) {
	for name, v := range map[string]model.MetricValues{"daily": t.Daily, "weekly": t.Weekly, "monthly": t.Monthly} {
		if m, neg := v.Negative(); neg {
			return nil, invalid("%s target for %s must not be negative", name, m)
		}
	}
	res := s.db.WithContext(ctx).Model(&model.User{ID: userID}).Select("personal_targets").
		Updates(&model.User{PersonalTargets: t})
	if res.Error != nil {
		return nil, fmt.Errorf("update targets: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return s.Profile(ctx, userID)
}

// SetMonthlyTargets stores exact monthly targets, which win over any daily
// based approximation. Users may set their own; leaders those of their
// subtree.
func (s *UserService) SetMonthlyTargets(ctx context.Context, actor Actor, userID int64, t model.MetricValues) (*model.Profile, error) {
	if err := canViewUser(ctx, s.db, actor, userID); err != nil {
		return nil, err
	}
	if m, neg := t.Negative(); neg {
		return nil, invalid("monthly target for %s must not be negative", m)
	}
	res := s.db.WithContext(ctx).Model(&model.User{ID: userID}).Select("monthly_targets").
		Updates(&model.User{MonthlyTargets: t})
	if res.Error != nil {
		return nil, fmt.Errorf("update monthly targets: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	logger.Info("user.monthly_targets", "uid", userID, "by", actor.ID)
	return s.Profile(ctx, userID)
}

// SetLeader moves a user under a new leader, or to the top when leaderID is
// nil. Moves that would make a user report to themself or to someone in
// their own subtree fail with ErrCycle.
func (s *UserService) SetLeader(ctx context.Context, actor Actor, userID int64, leaderID *int64) (*model.Profile, error) {
	if !actor.IsAdmin() && actor.Role != model.RoleTopLeader {
		return nil, ErrForbidden
	}
	if _, err := s.Profile(ctx, userID); err != nil {
		return nil, err
	}
	if leaderID != nil {
		var leader model.User
		if err := s.db.WithContext(ctx).First(&leader, *leaderID).Error; err != nil {
			return nil, notFound("leader", err)
		}
		tree, err := leaderTree(ctx, s.db)
		if err != nil {
			return nil, err
		}
		if err := tree.CanAttach(userID, *leaderID); err != nil {
			return nil, fmt.Errorf("user %d under %d: %w", userID, *leaderID, err)
		}
	}
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("parent_leader_id", leaderID).Error
	if err != nil {
		return nil, fmt.Errorf("update leader: %w", err)
	}
	logger.Info("user.leader", "uid", userID, "leader", leaderID, "by", actor.ID)
	return s.Profile(ctx, userID)
}

// RosterEntry is one member of a leader's team with their month progress.
type RosterEntry struct {
	model.Profile
	Depth    int                       `json:"depth"`
	Progress []progress.MetricProgress `json:"progress"`
}

// Roster lists the actor's reporting subtree (everybody for admins) with
// each member's progress for the month containing today.
func (s *UserService) Roster(ctx context.Context, actor Actor, today time.Time) ([]RosterEntry, error) {
	if !actor.IsAdmin() && !actor.IsLeader() {
		return nil, ErrForbidden
	}
	tree, err := leaderTree(ctx, s.db)
	if err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Where("is_active = ?", true).Order("name, id")
	if !actor.IsAdmin() {
		ids := tree.Descendants(actor.ID)
		if len(ids) == 0 {
			return []RosterEntry{}, nil
		}
		q = q.Where("id IN ?", ids)
	}
	var users []model.User
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	profiles, err := s.profiles(ctx, users)
	if err != nil {
		return nil, err
	}
	reports, err := s.progress.perUser(ctx, users, Query{Period: progress.PeriodMonth, Date: today}, today)
	if err != nil {
		return nil, err
	}
	out := make([]RosterEntry, 0, len(users))
	for i, u := range users {
		out = append(out, RosterEntry{
			Profile:  profiles[i],
			Depth:    depth(tree, actor.ID, u.ID),
			Progress: reports[u.ID],
		})
	}
	return out, nil
}

// depth counts the reporting levels between a leader and a member. For
// admins viewing users outside their subtree it is the depth from the root.
func depth(tree *hierarchy.Tree, from, id int64) int {
	d := 0
	seen := map[int64]bool{}
	for cur, ok := tree.Parent(id); ok && !seen[cur]; cur, ok = tree.Parent(cur) {
		d++
		if cur == from {
			return d
		}
		seen[cur] = true
	}
	return d
}

func (s *UserService) checkRefs(ctx context.Context, teamID, leaderID *int64) error {
	if teamID != nil {
		var n int64
		if err := s.db.WithContext(ctx).Model(&model.Team{}).Where("id = ?", *teamID).Count(&n).Error; err != nil {
			return fmt.Errorf("check team: %w", err)
		}
		if n == 0 {
			return invalid("team %d does not exist", *teamID)
		}
	}
	if leaderID != nil {
		var n int64
		if err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", *leaderID).Count(&n).Error; err != nil {
			return fmt.Errorf("check leader: %w", err)
		}
		if n == 0 {
			return invalid("leader %d does not exist", *leaderID)
		}
	}
	return nil
}

func (s *UserService) profiles(ctx context.Context, users []model.User) ([]model.Profile, error) {
	names, err := s.teamNames(ctx, users)
	if err != nil {
		return nil, err
	}
	out := make([]model.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, model.NewProfile(u, teamName(names, u.TeamID)))
	}
	return out, nil
}

func (s *UserService) teamNames(ctx context.Context, users []model.User) (map[int64]string, error) {
	var ids []int64
	for _, u := range users {
		if u.TeamID != nil {
			ids = append(ids, *u.TeamID)
		}
	}
	names := map[int64]string{}
	if len(ids) == 0 {
		return names, nil
	}
	var teams []model.Team
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return names, nil
}

func teamName(names map[int64]string, id *int64) string {
	if id == nil {
		return ""
	}
	return names[*id]
}
