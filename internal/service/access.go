package service

import (
	"context"
	"fmt"

	"leadership-dashboard/internal/hierarchy"
	"leadership-dashboard/internal/model"

	"gorm.io/gorm"
)

type parentLink struct {
	ID     int64
	Parent *int64
}

// leaderTree loads the reporting tree of all users.
func leaderTree(ctx context.Context, db *gorm.DB) (*hierarchy.Tree, error) {
	var rows []parentLink
	err := db.WithContext(ctx).Model(&model.User{}).
		Select("id, parent_leader_id AS parent").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load leader tree: %w", err)
	}
	return buildTree(rows), nil
}

// teamTree loads the team hierarchy.
func teamTree(ctx context.Context, db *gorm.DB) (*hierarchy.Tree, error) {
	var rows []parentLink
	err := db.WithContext(ctx).Model(&model.Team{}).
		Select("id, parent_team_id AS parent").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load team tree: %w", err)
	}
	return buildTree(rows), nil
}

func buildTree(rows []parentLink) *hierarchy.Tree {
	links := make(map[int64]*int64, len(rows))
	for _, r := range rows {
		links[r.ID] = r.Parent
	}
	return hierarchy.New(links)
}

// canViewUser allows the user themself, admins and any leader above them.
func canViewUser(ctx context.Context, db *gorm.DB, actor Actor, userID int64) error {
	if actor.ID == userID || actor.IsAdmin() {
		return nil
	}
	if !actor.IsLeader() {
		return ErrForbidden
	}
	tree, err := leaderTree(ctx, db)
	if err != nil {
		return err
	}
	if !tree.IsDescendant(actor.ID, userID) {
		return ErrForbidden
	}
	return nil
}

// visibleUserIDs lists the users an actor may see besides themself: all for
// admins, the reporting subtree for leaders, nobody otherwise.
func visibleUserIDs(ctx context.Context, db *gorm.DB, actor Actor) ([]int64, bool, error) {
	if actor.IsAdmin() {
		return nil, true, nil
	}
	if !actor.IsLeader() {
		return nil, false, nil
	}
	tree, err := leaderTree(ctx, db)
	if err != nil {
		return nil, false, err
	}
	return tree.Descendants(actor.ID), false, nil
}
