package listing

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"swapnstay/internal/domain"
)

func TestRowsSubstituteMissingFields(t *testing.T) {
	rows := Rows([]domain.Product{{ID: "p1", Status: ""}}, "")
	r := rows[0]
	if r.Name != "N/A" || r.Category != "N/A" || r.Location != "N/A" || r.Seller != "N/A" {
		t.Fatalf("missing fields should render N/A: %+v", r)
	}
	if r.Status != "N/A" || r.Badge != "neutral" {
		t.Fatalf("missing status should be N/A/neutral: %+v", r)
	}
	if r.Price != "0.00" {
		t.Fatalf("want 0.00, got %s", r.Price)
	}
}

func TestBadgeColors(t *testing.T) {
	want := map[domain.Status]string{
		"Available": "success", "Harvested": "info", "Processed": "warning",
		"Shipped": "primary", "Delivered": "success", "Sold": "neutral", "Rotten": "neutral",
	}
	for s, c := range want {
		if got := BadgeColor(s); got != c {
			t.Errorf("BadgeColor(%s) = %s, want %s", s, got, c)
		}
	}
	rows := Rows([]domain.Product{{ID: "p", Status: "Rotten"}}, "")
	if rows[0].Status != "N/A" {
		t.Fatalf("unrecognised status should render N/A, got %s", rows[0].Status)
	}
}

func kinds(as []Action) string {
	var out []string
	for _, a := range as {
		out = append(out, a.Kind.String())
	}
	return strings.Join(out, ",")
}

func TestRowActionsDependOnOwnership(t *testing.T) {
	p := domain.Product{ID: "p9", Name: "Maize", SellerID: "u-1", Price: decimal.NewFromInt(8), Status: domain.StatusHarvested}

	own := Rows([]domain.Product{p}, "u-1")[0]
	if !own.Owned || kinds(own.Actions) != "view,edit,delete" {
		t.Fatalf("owner should get view/edit/delete, got %s", kinds(own.Actions))
	}
	if own.Actions[2].Path != "/products/p9/delete" || own.Actions[2].Method != "POST" {
		t.Fatalf("unexpected delete action %+v", own.Actions[2])
	}

	other := Rows([]domain.Product{p}, "u-2")[0]
	if other.Owned || kinds(other.Actions) != "view,contact" {
		t.Fatalf("non-owner should get view/contact, got %s", kinds(other.Actions))
	}

	// demo products have no seller and a signed-out viewer has no id
	anon := Rows([]domain.Product{{ID: "demo1"}}, "")[0]
	if anon.Owned || kinds(anon.Actions) != "view,contact" {
		t.Fatalf("anonymous viewer should never own a row, got %s", kinds(anon.Actions))
	}
	if own.Price != "8.00" || own.Badge != "info" {
		t.Fatalf("unexpected projection %+v", own)
	}
}

func TestChartConfig(t *testing.T) {
	d := domain.Distribution{{Status: "Available", Count: 2}, {Status: "Sold", Count: 1}}
	b, err := json.Marshal(Chart(d))
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{
		`"type":"doughnut"`, `"labels":["Available","Sold"]`, `"data":[2,1]`,
		`"position":"bottom"`, `"#10b981"`, `"maintainAspectRatio":false`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("chart json missing %s: %s", want, s)
		}
	}
}
