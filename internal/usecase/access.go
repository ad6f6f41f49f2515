package usecase

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/findrival/internal/domain/team"
	"github.com/riskibarqy/findrival/internal/domain/user"
)

// accessPolicy decides whether a caller may act on behalf of a team. When
// enforcement is off every call is allowed, anonymous ones included.
type accessPolicy struct {
	enforce bool
}

func (p accessPolicy) requireCaller(caller *user.Principal) error {
	if !p.enforce {
		return nil
	}
	if caller == nil || strings.TrimSpace(caller.UserID) == "" {
		return fmt.Errorf("%w: bearer token is required", ErrUnauthorized)
	}
	return nil
}

func (p accessPolicy) requireOwnerOfAny(caller *user.Principal, teams ...team.Team) error {
	if !p.enforce {
		return nil
	}
	if err := p.requireCaller(caller); err != nil {
		return err
	}
	for _, item := range teams {
		if item.OwnerUID == caller.UserID {
			return nil
		}
	}

	ids := make([]string, 0, len(teams))
	for _, item := range teams {
		ids = append(ids, item.ID)
	}
	return fmt.Errorf("%w: user=%s does not own team=%s", ErrForbidden, caller.UserID, strings.Join(ids, ","))
}
