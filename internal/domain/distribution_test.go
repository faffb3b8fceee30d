package domain

import (
	"reflect"
	"testing"
)

func TestCountStatuses(t *testing.T) {
	products := []Product{
		{Status: StatusAvailable}, {Status: StatusAvailable}, {Status: StatusSold},
	}
	d := CountStatuses(products)
	want := Distribution{{"Available", 2}, {"Sold", 1}}
	if !reflect.DeepEqual(d, want) {
		t.Fatalf("want %+v, got %+v", want, d)
	}
}

func TestCountStatusesUnknownAndOrder(t *testing.T) {
	products := []Product{
		{Status: StatusSold}, {Status: ""}, {Status: "Rotten"},
		{Status: StatusHarvested}, {Status: StatusSold},
	}
	d := CountStatuses(products)
	if got := d.Labels(); !reflect.DeepEqual(got, []string{"Sold", "Unknown", "Harvested"}) {
		t.Fatalf("labels should follow first occurrence, got %v", got)
	}
	if d.Count(UnknownStatus) != 2 {
		t.Fatalf("missing and unrecognised statuses should share Unknown, got %d", d.Count(UnknownStatus))
	}
	if d.Total() != len(products) {
		t.Fatalf("counts must sum to %d, got %d", len(products), d.Total())
	}
}

func TestCountStatusesEmpty(t *testing.T) {
	d := CountStatuses(nil)
	if len(d) != 0 || d.Total() != 0 {
		t.Fatalf("want empty distribution, got %+v", d)
	}
}
