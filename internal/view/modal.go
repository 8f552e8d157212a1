package view

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/rbacdash/internal/access"
	"github.com/dmitrijs2005/rbacdash/internal/common"
	"github.com/dmitrijs2005/rbacdash/internal/models"
)

type ModalState int

const (
	ModalClosed ModalState = iota
	ModalEditing
	ModalComposing
)

func (s ModalState) String() string {
	switch s {
	case ModalClosed:
		return "closed"
	case ModalEditing:
		return "editing"
	case ModalComposing:
		return "composing"
	default:
		return fmt.Sprintf("modal(%d)", int(s))
	}
}

// Modal is the add/edit dialog. At most one dialog is open at a time: it
// goes from closed to editing an existing user or composing a new one, and
// back to closed on cancel or a successful save.
type Modal struct {
	ctrl   *Controller
	state  ModalState
	target Row
}

func NewModal(ctrl *Controller) *Modal {
	return &Modal{ctrl: ctrl}
}

func (m *Modal) State() ModalState {
	return m.state
}

// Target is the user being edited. It reports false unless editing.
func (m *Modal) Target() (Row, bool) {
	if m.state != ModalEditing {
		return Row{}, false
	}
	return m.target, true
}

// OpenEdit opens the edit dialog for an existing user.
func (m *Modal) OpenEdit(id string) error {
	if m.state != ModalClosed {
		return ErrModalBusy
	}
	if err := m.ctrl.Permissions().Require(access.ActionEdit); err != nil {
		return err
	}
	row, ok := m.ctrl.Find(id)
	if !ok {
		return fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}

	m.state = ModalEditing
	m.target = row
	return nil
}

// OpenCompose opens the add dialog.
func (m *Modal) OpenCompose() error {
	if m.state != ModalClosed {
		return ErrModalBusy
	}
	if err := m.ctrl.Permissions().Require(access.ActionAdd); err != nil {
		return err
	}
	m.state = ModalComposing
	return nil
}

func (m *Modal) Cancel() {
	m.state = ModalClosed
	m.target = Row{}
}

// SaveEdit applies the edit and closes the dialog. On error the dialog
// stays open.
func (m *Modal) SaveEdit(ctx context.Context, roleRef string, active bool) error {
	if m.state != ModalEditing {
		return ErrModalClosed
	}
	if err := m.ctrl.EditRoleStatus(ctx, m.target.ID, roleRef, active); err != nil {
		return err
	}
	m.Cancel()
	return nil
}

// SaveNew adds the drafted user and closes the dialog. On error the dialog
// stays open.
func (m *Modal) SaveNew(ctx context.Context, draft models.UserDraft) (models.User, error) {
	if m.state != ModalComposing {
		return models.User{}, ErrModalClosed
	}
	u, err := m.ctrl.Add(ctx, draft)
	if err != nil {
		return models.User{}, err
	}
	m.Cancel()
	return u, nil
}
