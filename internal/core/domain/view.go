package domain

// View identifies a navigable page of the frontend.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewUpload    View = "upload"
	ViewTrain     View = "train"
	ViewPredict   View = "predict"
	ViewHistory   View = "history"
	ViewProfile   View = "profile"
	ViewAdmin     View = "admin"
)

// viewRoles is the static role router table: each view names the minimal set
// of roles allowed to reach it. Viewers are restricted to result-only views,
// analysts additionally reach the data and training views, admins reach
// everything including user administration.
var viewRoles = map[View][]Role{
	ViewDashboard: {RoleAnalyst, RoleAdmin},
	ViewUpload:    {RoleAnalyst, RoleAdmin},
	ViewTrain:     {RoleAnalyst, RoleAdmin},
	ViewPredict:   {RoleViewer, RoleAnalyst, RoleAdmin},
	ViewHistory:   {RoleViewer, RoleAnalyst, RoleAdmin},
	ViewProfile:   {RoleViewer, RoleAnalyst, RoleAdmin},
	ViewAdmin:     {RoleAdmin},
}

// CanAccess reports whether role may reach view.
func (v View) CanAccess(role Role) bool {
	for _, r := range viewRoles[v] {
		if r == role {
			return true
		}
	}
	return false
}

// Views returns the ordered set of views reachable by role, in menu order.
func Views(role Role) []View {
	ordered := []View{ViewDashboard, ViewUpload, ViewTrain, ViewPredict, ViewHistory, ViewProfile, ViewAdmin}
	out := make([]View, 0, len(ordered))
	for _, v := range ordered {
		if v.CanAccess(role) {
			out = append(out, v)
		}
	}
	return out
}

// DefaultView is where a role lands after login or after a forbidden
// navigation. Exhaustive over the closed Role set.
func DefaultView(role Role) View {
	switch role {
	case RoleViewer:
		return ViewPredict
	case RoleAnalyst, RoleAdmin:
		return ViewDashboard
	}
	return ViewPredict
}

// Path returns the browser route for a view.
func (v View) Path() string {
	if v == ViewDashboard {
		return "/"
	}
	return "/" + string(v)
}
