package handlers

import "testing"

func TestMoney(t *testing.T) {
	cases := map[float64]string{
		0:           "₹0.00",
		250:         "₹250.00",
		1234.5:      "₹1,234.50",
		123456.75:   "₹1,23,456.75",
		9999999.999: "₹1,00,00,000.00",
		-42.1:       "-₹42.10",
	}
	for in, want := range cases {
		if got := money(in); got != want {
			t.Errorf("money(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPercentOff(t *testing.T) {
	if got := percentOff(300, 250); got != 17 {
		t.Fatalf("want 17, got %d", got)
	}
	if got := percentOff(200, 250); got != 0 {
		t.Fatalf("price above mrp should be 0, got %d", got)
	}
}

func TestFieldErrAndNth(t *testing.T) {
	if got := fieldErr(nil, "title"); got != "" {
		t.Fatalf("nil errors should be blank, got %q", got)
	}
	if got := fieldErr(map[string]string{"title": "Title is required"}, "title"); got != "Title is required" {
		t.Fatalf("got %q", got)
	}
	if got := nth([]int64{3, 0}, 0); got != "3" {
		t.Fatalf("got %q", got)
	}
	if got := nth([]int64{3, 0}, 1); got != "" {
		t.Fatalf("zero should be blank, got %q", got)
	}
	if got := nth([]float64{249.5}, 0); got != "249.5" {
		t.Fatalf("got %q", got)
	}
	if got := nth([]int{2}, 5); got != "" {
		t.Fatalf("out of range should be blank, got %q", got)
	}
}
