package domain

import "testing"

func TestLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{string(BoardStateBoard), "State Board"},
		{string(BoardCBSE), "CBSE"},
		{string(PayUPI), "UPI"},
		{string(OrderPending), "Pending"},
		{string(RoleAdmin), "Admin"},
		{string(RoleInventoryManager), "Inventory Manager"},
		{"", ""},
	}
	for _, c := range cases {
		if got := label(c.in); got != c.want {
			t.Errorf("label(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOneOf(t *testing.T) {
	if !OneOf(BoardIB, Boards) {
		t.Fatal("IB should be a board")
	}
	if OneOf(Board("GCSE"), Boards) {
		t.Fatal("GCSE is not a board")
	}
}

func TestActiveDefaultsToTrue(t *testing.T) {
	off := false
	if !(Book{}).Active() {
		t.Fatal("missing isActive should read as active")
	}
	if (Book{IsActive: &off}).Active() {
		t.Fatal("explicit false should read as inactive")
	}
}
