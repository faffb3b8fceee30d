// Package listing projects a product snapshot into table rows and the status
// chart. Everything here is a pure function of its inputs.
package listing

import (
	"swapnstay/internal/domain"
)

const na = "N/A"

var badgeColors = map[domain.Status]string{
	domain.StatusAvailable: "success",
	domain.StatusHarvested: "info",
	domain.StatusProcessed: "warning",
	domain.StatusShipped:   "primary",
	domain.StatusDelivered: "success",
	domain.StatusSold:      "neutral",
}

// BadgeColor maps a status to its badge class suffix.
func BadgeColor(s domain.Status) string {
	if c, ok := badgeColors[s]; ok {
		return c
	}
	return "neutral"
}

// ActionKind identifies a row button.
type ActionKind int

const (
	ActionView ActionKind = iota
	ActionEdit
	ActionDelete
	ActionContact
)

func (k ActionKind) String() string {
	switch k {
	case ActionView:
		return "view"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	case ActionContact:
		return "contact"
	}
	return "unknown"
}

// Action is a row button and the route it targets.
type Action struct {
	Kind   ActionKind
	Label  string
	Style  string
	Path   string
	Method string
}

func actionsFor(p domain.Product, viewerID string) []Action {
	base := "/products/" + p.ID
	out := []Action{{Kind: ActionView, Label: "View", Style: "primary", Path: base, Method: "GET"}}
	if viewerID != "" && p.SellerID == viewerID {
		return append(out,
			Action{Kind: ActionEdit, Label: "Edit", Style: "warning", Path: base + "/edit", Method: "POST"},
			Action{Kind: ActionDelete, Label: "Delete", Style: "error", Path: base + "/delete", Method: "POST"},
		)
	}
	return append(out, Action{Kind: ActionContact, Label: "Contact", Style: "success", Path: base + "/contact", Method: "POST"})
}

type Row struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Quantity int      `json:"quantity"`
	Price    string   `json:"price"`
	Location string   `json:"location"`
	Status   string   `json:"status"`
	Badge    string   `json:"badge"`
	Seller   string   `json:"seller"`
	Owned    bool     `json:"owned"`
	Actions  []Action `json:"-"`
}

func orNA(s string) string {
	if s == "" {
		return na
	}
	return s
}

// Rows renders one row per product, in cache order. viewerID is the signed-in
// user's id or empty.
func Rows(products []domain.Product, viewerID string) []Row {
	out := make([]Row, 0, len(products))
	for _, p := range products {
		status := na
		if p.Status.Known() {
			status = string(p.Status)
		}
		out = append(out, Row{
			ID:       p.ID,
			Name:     orNA(p.Name),
			Category: orNA(p.Category),
			Quantity: p.Quantity,
			Price:    p.Price.StringFixed(2),
			Location: orNA(p.Location),
			Status:   status,
			Badge:    BadgeColor(p.Status),
			Seller:   orNA(p.SellerName),
			Owned:    viewerID != "" && p.SellerID == viewerID,
			Actions:  actionsFor(p, viewerID),
		})
	}
	return out
}

// palette is applied to chart segments in order.
var palette = []string{"#10b981", "#3b82f6", "#f59e0b", "#8b5cf6", "#ec4899", "#6b7280"}

// ChartConfig is a Chart.js configuration object.
type ChartConfig struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Data            []int    `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
}

type ChartOptions struct {
	Responsive          bool         `json:"responsive"`
	MaintainAspectRatio bool         `json:"maintainAspectRatio"`
	Plugins             ChartPlugins `json:"plugins"`
}

type ChartPlugins struct {
	Legend struct {
		Position string `json:"position"`
	} `json:"legend"`
}

// Chart builds the doughnut chart for a status distribution.
func Chart(d domain.Distribution) ChartConfig {
	cfg := ChartConfig{
		Type: "doughnut",
		Data: ChartData{
			Labels: d.Labels(),
			Datasets: []ChartDataset{{
				Data:            d.Counts(),
				BackgroundColor: append([]string(nil), palette...),
			}},
		},
		Options: ChartOptions{Responsive: true},
	}
	cfg.Options.Plugins.Legend.Position = "bottom"
	return cfg
}
