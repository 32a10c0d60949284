// internal/domain/drawer/entity.go
package drawer

// State is the drawer's two-state machine: Closed (initial) or Open.
// It is per-session and survives across fragment requests.
type State struct {
	Open bool `json:"open"`
}

// View is one rendered drawer fragment plus the page-level side
// effects the thin client script applies. Opening always moves focus
// into the panel and locks page scroll; closing restores scroll.
type View struct {
	HTML        string `json:"html"`
	Open        bool   `json:"open"`
	LockScroll  bool   `json:"lock_scroll"`
	FocusTarget string `json:"focus_target,omitempty"`
	ItemCount   int    `json:"item_count"`
	Subtotal    string `json:"subtotal"`
	OpenDelayMS int    `json:"open_delay_ms,omitempty"`
}

// CloseControlSelector is where keyboard focus lands when the drawer
// opens.
const CloseControlSelector = "[data-drawer-close]"
