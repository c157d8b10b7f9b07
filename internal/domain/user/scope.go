package user

// ResolveCompanyScope decides which company an action is allowed to target.
// Every role/tenant branch in the handlers funnels through here instead of
// re-implementing the check per action.
//
// Admins may claim any company id, or none at all (empty scope means "all
// companies"). Everyone else is pinned to their own company: a claimed id
// must be absent or equal to it, and an account without a company cannot
// resolve a scope.
func ResolveCompanyScope(role Role, claimedCompanyID string, callerCompanyID *string) (string, error) {
	if role == RoleAdmin {
		return claimedCompanyID, nil
	}

	if callerCompanyID == nil || *callerCompanyID == "" {
		return "", ErrCompanyScopeMissing
	}
	if claimedCompanyID != "" && claimedCompanyID != *callerCompanyID {
		return "", ErrCompanyScopeDenied
	}
	return *callerCompanyID, nil
}
