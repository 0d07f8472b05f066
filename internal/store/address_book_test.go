package store

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func TestAddressBookFirstAddIsDefault(t *testing.T) {
	book := NewAddressBook()
	addr := book.Add(AddressInput{Tag: "Home", Street: "12 MG Road"})
	if !addr.IsDefault {
		t.Fatalf("expected first address to be default")
	}
	second := book.Add(AddressInput{Tag: "Work", Street: "Tech Park"})
	if second.IsDefault {
		t.Fatalf("expected second address to keep non-default")
	}
	if err := book.Check(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
}

func TestAddressBookAddDefaultIsExclusive(t *testing.T) {
	book := NewAddressBook()
	first := book.Add(AddressInput{Tag: "Home"})
	second := book.Add(AddressInput{Tag: "Work", IsDefault: true})

	def, ok := book.Default()
	if !ok || def.ID != second.ID {
		t.Fatalf("expected %s to be default, got %+v", second.ID, def)
	}
	got, _ := book.Get(first.ID)
	if got.IsDefault {
		t.Fatalf("expected previous default cleared")
	}
}

func TestAddressBookDeleteDefaultPromotesFirst(t *testing.T) {
	book := NewAddressBook()
	a := book.Add(AddressInput{Tag: "Home"})
	b := book.Add(AddressInput{Tag: "Work"})
	c := book.Add(AddressInput{Tag: "Other", IsDefault: true})

	if err := book.Delete(c.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	def, _ := book.Default()
	if def.ID != a.ID {
		t.Fatalf("expected %s promoted, got %s", a.ID, def.ID)
	}

	if err := book.Delete(a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	def, _ = book.Default()
	if def.ID != b.ID {
		t.Fatalf("expected %s promoted, got %s", b.ID, def.ID)
	}

	if err := book.Delete(b.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := book.Default(); ok {
		t.Fatalf("expected no default on empty book")
	}
}

func TestAddressBookMissingID(t *testing.T) {
	book := NewAddressBook()
	book.Add(AddressInput{Tag: "Home"})
	before := book.List()

	if err := book.SetDefault("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := book.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := book.Edit("missing", AddressPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	after := book.List()
	if len(after) != len(before) || after[0].IsDefault != before[0].IsDefault {
		t.Fatalf("expected no change, got %+v", after)
	}
}

func TestAddressBookEditMergesFields(t *testing.T) {
	book := NewAddressBook()
	a := book.Add(AddressInput{Tag: "Home", Street: "Old", City: "Pune"})
	b := book.Add(AddressInput{Tag: "Work", Street: "Office"})

	edited, err := book.Edit(b.ID, AddressPatch{Street: strPtr("New Office"), IsDefault: boolPtr(true)})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if edited.Street != "New Office" || edited.Tag != constants.AddressTagWork || !edited.IsDefault {
		t.Fatalf("unexpected edited address: %+v", edited)
	}
	got, _ := book.Get(a.ID)
	if got.IsDefault || got.City != "Pune" {
		t.Fatalf("unexpected other address: %+v", got)
	}

	// 取消唯一默认后首个地址兜底成为默认
	if _, err := book.Edit(b.ID, AddressPatch{IsDefault: boolPtr(false)}); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	def, _ := book.Default()
	if def.ID != a.ID {
		t.Fatalf("expected %s default, got %s", a.ID, def.ID)
	}
}

func TestAddressBookUnknownTagFallsBackToOther(t *testing.T) {
	book := NewAddressBook()
	addr := book.Add(AddressInput{Tag: "Beach house"})
	if addr.Tag != constants.AddressTagOther {
		t.Fatalf("expected Other, got %s", addr.Tag)
	}
	addr = book.Add(AddressInput{Tag: "work"})
	if addr.Tag != constants.AddressTagWork {
		t.Fatalf("expected Work, got %s", addr.Tag)
	}
}

func TestAddressBookLoadNormalizes(t *testing.T) {
	book := NewAddressBook()
	book.Load([]models.Address{
		{ID: "b", SortOrder: 2, IsDefault: true},
		{ID: "a", SortOrder: 1, IsDefault: true},
		{ID: "c", SortOrder: 3},
	})
	if err := book.Check(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	list := book.List()
	if list[0].ID != "a" || !list[0].IsDefault {
		t.Fatalf("expected a first and default, got %+v", list)
	}

	book.Load([]models.Address{{ID: "x"}, {ID: "y", SortOrder: 1}})
	def, _ := book.Default()
	if def.ID != "x" {
		t.Fatalf("expected x promoted, got %s", def.ID)
	}
	added := book.Add(AddressInput{Tag: "Home"})
	if added.SortOrder != 2 {
		t.Fatalf("expected sort order 2, got %d", added.SortOrder)
	}
}

func TestAddressBookInvariantUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	book := NewAddressBook()
	ids := make([]string, 0)

	pick := func() string {
		if len(ids) == 0 || rng.Intn(10) == 0 {
			return "missing"
		}
		return ids[rng.Intn(len(ids))]
	}

	for step := 0; step < 2000; step++ {
		switch rng.Intn(4) {
		case 0:
			addr := book.Add(AddressInput{Tag: "Home", Street: fmt.Sprintf("street %d", step), IsDefault: rng.Intn(2) == 0})
			ids = append(ids, addr.ID)
		case 1:
			id := pick()
			if err := book.Delete(id); err == nil {
				for i := range ids {
					if ids[i] == id {
						ids = append(ids[:i], ids[i+1:]...)
						break
					}
				}
			}
		case 2:
			_, _ = book.Edit(pick(), AddressPatch{IsDefault: boolPtr(rng.Intn(2) == 0)})
		case 3:
			_ = book.SetDefault(pick())
		}
		if err := book.Check(); err != nil {
			t.Fatalf("step %d: %v (%+v)", step, err, book.List())
		}
		if book.Len() != len(ids) {
			t.Fatalf("step %d: expected %d addresses, got %d", step, len(ids), book.Len())
		}
	}
}
