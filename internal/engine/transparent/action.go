package transparent

import (
	"fmt"
	"strings"
)

// Action selects the provider endpoint a form posts to. The zero value is
// CreateSubscription.
type Action int

const (
	CreateSubscription Action = iota
	UpdateBilling
	CreateTransaction
)

// DefaultAction is used when the caller does not name one.
const DefaultAction = CreateSubscription

var actionPaths = map[Action]string{
	CreateSubscription: "subscription",
	UpdateBilling:      "billing_info",
	CreateTransaction:  "transaction",
}

var actionNames = map[Action]string{
	CreateSubscription: "CreateSubscription",
	UpdateBilling:      "UpdateBilling",
	CreateTransaction:  "CreateTransaction",
}

// Actions lists every supported action in declaration order.
func Actions() []Action {
	return []Action{CreateSubscription, UpdateBilling, CreateTransaction}
}

func (a Action) Valid() bool {
	_, ok := actionPaths[a]
	return ok
}

// Path returns the URL path suffix for a.
func (a Action) Path() (string, error) {
	p, ok := actionPaths[a]
	if !ok {
		return "", newError("Action.Path", ErrUnknownAction, fmt.Sprintf("%d", int(a)))
	}
	return p, nil
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction accepts either the path suffix ("billing_info") or the action
// name ("UpdateBilling"), case-insensitively. An empty string yields
// DefaultAction.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultAction, nil
	}
	for _, a := range Actions() {
		if strings.EqualFold(s, actionPaths[a]) || strings.EqualFold(s, actionNames[a]) {
			return a, nil
		}
	}
	return 0, newError("ParseAction", ErrUnknownAction, fmt.Sprintf("%q", s))
}

// URL builds {base}/transparent/{subdomain}/{action path} for site. The
// environment only matters through the base URL the site reports.
func URL(action Action, site Site) (string, error) {
	path, err := action.Path()
	if err != nil {
		return "", err
	}
	base := strings.TrimRight(site.BaseURL(), "/")
	return base + "/transparent/" + site.Subdomain() + "/" + path, nil
}
