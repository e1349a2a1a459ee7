package moderation

import (
	"fmt"

	"heartsupport/internal/apperr"
	"heartsupport/internal/models"
)

// Machine holds the legal status transitions for one entity type.
type Machine[S ~string] struct {
	entity string
	edges  map[S][]S
}

func NewMachine[S ~string](entity string, edges map[S][]S) *Machine[S] {
	return &Machine[S]{entity: entity, edges: edges}
}

func (m *Machine[S]) Entity() string {
	return m.entity
}

func (m *Machine[S]) Can(from, to S) bool {
	for _, next := range m.edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns an InvalidTransition error when to is not reachable from from.
func (m *Machine[S]) Transition(from, to S) error {
	if m.Can(from, to) {
		return nil
	}
	return apperr.New(apperr.InvalidTransition,
		fmt.Sprintf("Cannot change %s status from %s to %s", m.entity, from, to))
}

func (m *Machine[S]) Terminal(s S) bool {
	return len(m.edges[s]) == 0
}

var (
	Posts = NewMachine("post", map[models.PostStatus][]models.PostStatus{
		models.PostPending: {models.PostApproved, models.PostRejected},
	})

	Reports = NewMachine("report", map[models.ReportStatus][]models.ReportStatus{
		models.ReportPending: {models.ReportResolved, models.ReportDismissed},
	})

	// Admin accounts have no edges and cannot be banned.
	Users = NewMachine("user", map[models.UserStatus][]models.UserStatus{
		models.UserActive: {models.UserBanned},
		models.UserBanned: {models.UserActive},
	})
)
