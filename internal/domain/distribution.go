package domain

// UnknownStatus labels products whose status is missing or unrecognised.
const UnknownStatus = "Unknown"

// Label is the aggregation bucket for s.
func (s Status) Label() string {
	if s.Known() {
		return string(s)
	}
	return UnknownStatus
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Distribution is a per-status count, ordered by first occurrence.
type Distribution []StatusCount

// CountStatuses buckets products by status label.
func CountStatuses(products []Product) Distribution {
	out := Distribution{}
	idx := map[string]int{}
	for _, p := range products {
		label := p.Status.Label()
		i, ok := idx[label]
		if !ok {
			i = len(out)
			idx[label] = i
			out = append(out, StatusCount{Status: label})
		}
		out[i].Count++
	}
	return out
}

func (d Distribution) Count(label string) int {
	for _, sc := range d {
		if sc.Status == label {
			return sc.Count
		}
	}
	return 0
}

func (d Distribution) Total() int {
	n := 0
	for _, sc := range d {
		n += sc.Count
	}
	return n
}

func (d Distribution) Labels() []string {
	out := make([]string, len(d))
	for i, sc := range d {
		out[i] = sc.Status
	}
	return out
}

func (d Distribution) Counts() []int {
	out := make([]int, len(d))
	for i, sc := range d {
		out[i] = sc.Count
	}
	return out
}
