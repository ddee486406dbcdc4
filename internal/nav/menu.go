// Package nav derives the visible navigation tree from the session's role
// code. Role resolution is asynchronous, so consumers must distinguish a
// menu that is still loading from one whose role matched no branch; the two
// are separate states here, never conflated with an empty item list.
package nav

// Role codes the backend assigns. Any other value collapses to no access.
const (
	RoleAdmin  = "ADMIN"
	RoleLeader = "LEADER"
	RoleUser   = "USER"
)

// Item is one entry of the navigation tree.
type Item struct {
	Label    string
	Target   string
	Children []Item
}

// State is the menu's resolution state.
type State int

const (
	// StateLoading means the role is not yet known; show a loading
	// indicator, not an empty menu.
	StateLoading State = iota
	// StateReady means the role matched a branch and Items is populated.
	StateReady
	// StateNoAccess means the role is known but matches no branch; show an
	// explicit no-access message.
	StateNoAccess
)

// Menu is the derived navigation tree plus its resolution state.
type Menu struct {
	State State
	Items []Item
}

// fullTree returns the fully populated menu, one node per feature section.
// Built fresh per call so callers can't mutate a shared tree.
func fullTree() []Item {
	return []Item{
		{Label: "Dashboard", Target: "/dashboard"},
		{Label: "Administration", Children: []Item{
			{Label: "Users", Target: "/users"},
			{Label: "Roles", Target: "/roles"},
			{Label: "Assignments", Target: "/assignaments"},
		}},
		{Label: "Events", Children: []Item{
			{Label: "Manage Events", Target: "/events/new"},
			{Label: "Events", Target: "/events"},
		}},
		{Label: "Settings", Children: []Item{
			{Label: "Profile", Target: "/profile/settings"},
			{Label: "Sign Out", Target: "/logout"},
		}},
	}
}

// userSections is the allow-list of top-level sections a USER keeps.
var userSections = map[string]bool{
	"Events":   true,
	"Settings": true,
}

// userEventChildren is the allow-list of Events children a USER keeps:
// members see the event list, never event administration.
var userEventChildren = map[string]bool{
	"/events": true,
}

// Loading returns the menu in its role-not-yet-known state.
func Loading() Menu {
	return Menu{State: StateLoading}
}

// Build derives the menu for a resolved role code. ADMIN and LEADER get the
// full tree; USER gets the allow-listed sections with Events children
// reduced; anything else, including an empty role, gets no access.
func Build(roleCd string) Menu {
	switch roleCd {
	case RoleAdmin, RoleLeader:
		return Menu{State: StateReady, Items: fullTree()}
	case RoleUser:
		var items []Item
		for _, section := range fullTree() {
			if !userSections[section.Label] {
				continue
			}
			if section.Label == "Events" {
				var children []Item
				for _, child := range section.Children {
					if userEventChildren[child.Target] {
						children = append(children, child)
					}
				}
				section.Children = children
			}
			items = append(items, section)
		}
		return Menu{State: StateReady, Items: items}
	default:
		return Menu{State: StateNoAccess}
	}
}
