package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/rbacdash/internal/common"
	"github.com/dmitrijs2005/rbacdash/internal/models"
)

// persistedState is the JSON layout of the session slot:
//
//	{"state":{"currentUser":{...}|null},"version":0}
type persistedState struct {
	State struct {
		CurrentUser *models.SessionUser `json:"currentUser"`
	} `json:"state"`
	Version int `json:"version"`
}

func (s *Store) persistSession(ctx context.Context, session *models.SessionUser) {
	var st persistedState
	st.State.CurrentUser = session

	data, err := json.Marshal(st)
	if err != nil {
		s.logger.Error(ctx, "failed to encode session", "error", err)
		return
	}
	if err := s.slots.Set(ctx, s.sessionKey, data); err != nil {
		s.logger.Error(ctx, "failed to persist session", "key", s.sessionKey, "error", err)
	}
}

func (s *Store) restoreSession(ctx context.Context) *models.SessionUser {
	data, err := s.slots.Get(ctx, s.sessionKey)
	if err != nil {
		s.logger.Error(ctx, "failed to read session", "key", s.sessionKey, "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var st persistedState
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn(ctx, "ignoring unparsable session", "key", s.sessionKey, "error", err)
		return nil
	}
	if st.State.CurrentUser != nil {
		s.logger.Info(ctx, "session restored", "user_id", st.State.CurrentUser.ID)
	}
	return st.State.CurrentUser
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}
