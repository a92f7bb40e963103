package entity

import (
	"strconv"
	"testing"
	"time"
)

func TestDefaultCatalogShape(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != 12 {
		t.Fatalf("catalog has %d entries, want 12", len(catalog))
	}
	counts := map[Kind]int{}
	seen := map[string]bool{}
	for _, tpl := range catalog {
		counts[tpl.Kind]++
		key := string(tpl.Kind) + "/" + tpl.Name
		if seen[key] {
			t.Errorf("duplicate catalog entry %s", key)
		}
		seen[key] = true
		if len(tpl.Color) != 7 || tpl.Color[0] != '#' {
			t.Errorf("%s: color %q is not #RRGGBB", key, tpl.Color)
		}
	}
	if counts[KindExpense] != 8 {
		t.Errorf("expense entries = %d, want 8", counts[KindExpense])
	}
	if counts[KindIncome] != 4 {
		t.Errorf("income entries = %d, want 4", counts[KindIncome])
	}
}

func TestDefaultCatalogIsCopy(t *testing.T) {
	c := DefaultCatalog()
	c[0].Name = "Changed"
	if DefaultCatalog()[0].Name != "Food" {
		t.Error("mutating the returned catalog changed the defaults")
	}
}

func TestNewDefaultCategories(t *testing.T) {
	n := 0
	newID := func() string { n++; return strconv.Itoa(n) }
	now := time.Now()

	t.Run("shared scope", func(t *testing.T) {
		cats := NewDefaultCategories("acc-1", SharedScope("grp-1"), newID, now)
		if len(cats) != 12 {
			t.Fatalf("got %d categories, want 12", len(cats))
		}
		for _, c := range cats {
			if c.AccountID != "acc-1" {
				t.Errorf("%s: account %q, want acc-1", c.Name, c.AccountID)
			}
			if got := c.Scope(); got != SharedScope("grp-1") {
				t.Errorf("%s: scope %+v, want shared grp-1", c.Name, got)
			}
			if !c.IsDefault {
				t.Errorf("%s: not marked default", c.Name)
			}
		}
	})

	t.Run("personal scope", func(t *testing.T) {
		cats := NewDefaultCategories("acc-2", PersonalScope("acc-2"), newID, now)
		for _, c := range cats {
			if c.Scope().IsShared() || c.ScopeID != "acc-2" {
				t.Errorf("%s: scope %+v, want personal acc-2", c.Name, c.Scope())
			}
		}
	})
}
