package client

import (
	"errors"
	"fmt"
	"strings"

	eos "github.com/eoscanada/eos-go"
	"github.com/nspcc-dev/eos-pingdemo/pkg/widget"
)

const (
	methodPing = "ping"

	defaultPermission = "active"

	permissionSeparator = "@"
)

// pingArgs is an argument list of ping(account_name receiver).
type pingArgs struct {
	Receiver eos.AccountName `json:"receiver"`
}

// PingAction builds ping action of the target contract. Receiver is the
// target actor.
func PingAction(t widget.Target) (*eos.Action, error) {
	if t.Contract == "" {
		return nil, errors.New("empty contract name")
	}

	if t.Actor == "" {
		return nil, errors.New("empty actor name")
	}

	auth, err := ParseAuthorization(t.Authorization)
	if err != nil {
		return nil, err
	}

	return &eos.Action{
		Account:       eos.AN(t.Contract),
		Name:          eos.ActN(methodPing),
		Authorization: auth,
		ActionData: eos.NewActionData(pingArgs{
			Receiver: eos.AN(t.Actor),
		}),
	}, nil
}

// ParseAuthorization parses permission levels in "actor@permission" form.
// Permission defaults to "active".
func ParseAuthorization(list []string) ([]eos.PermissionLevel, error) {
	if len(list) == 0 {
		return nil, errors.New("empty authorization list")
	}

	res := make([]eos.PermissionLevel, 0, len(list))

	for i := range list {
		actor, perm, found := strings.Cut(strings.TrimSpace(list[i]), permissionSeparator)
		if !found {
			perm = defaultPermission
		}

		if actor == "" || perm == "" || strings.Contains(perm, permissionSeparator) {
			return nil, fmt.Errorf("invalid permission level #%d: %q", i, list[i])
		}

		res = append(res, eos.PermissionLevel{
			Actor:      eos.AN(actor),
			Permission: eos.PN(perm),
		})
	}

	return res, nil
}
