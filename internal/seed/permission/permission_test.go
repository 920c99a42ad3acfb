package permission

import (
  "testing"

  "github.com/yardsync-org/yardsync-backend/internal/access"
)

func TestCatalogCoversEveryPage(t *testing.T) {
  catalog := Catalog()
  byType := make(map[string]bool, len(catalog))
  for _, p := range catalog {
    if byType[p.PermissionType] {
      t.Errorf("duplicate catalog entry %q", p.PermissionType)
    }
    byType[p.PermissionType] = true
  }
  for _, page := range access.AllPages {
    if !byType[page] {
      t.Errorf("page %q missing from the permission catalog", page)
    }
  }
  if !byType[access.Wildcard] {
    t.Error("wildcard permission missing from the permission catalog")
  }
  if len(catalog) != len(access.AllPages)+1 {
    t.Errorf("catalog holds %d entries, want %d pages plus the wildcard", len(catalog), len(access.AllPages))
  }
}

func TestCatalogEntriesAreNamed(t *testing.T) {
  for _, p := range Catalog() {
    if p.Name == "" || p.Category == "" {
      t.Errorf("catalog entry %q needs a name and a category", p.PermissionType)
    }
  }
}
