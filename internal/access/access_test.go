package access

import "testing"

func TestAllowedDeniesWhenSignedOut(t *testing.T) {
  for _, page := range AllPages {
    if Allowed(false, page, []string{Wildcard}) {
      t.Errorf("Allowed(signedOut, %q, wildcard) = true, want false", page)
    }
  }
}

func TestAllowedDashboardForAnySignedInIdentity(t *testing.T) {
  if !Allowed(true, PageDashboard, nil) {
    t.Error("dashboard should be allowed with a nil permission set")
  }
  if !Allowed(true, PageDashboard, []string{}) {
    t.Error("dashboard should be allowed with an empty permission set")
  }
  if !Allowed(true, PageDashboard, []string{PageGateGuard}) {
    t.Error("dashboard should be allowed regardless of granted pages")
  }
}

func TestAllowedWildcardGrantsEveryPage(t *testing.T) {
  perms := []string{Wildcard}
  for _, page := range AllPages {
    if !Allowed(true, page, perms) {
      t.Errorf("Allowed(signedIn, %q, wildcard) = false, want true", page)
    }
  }
}

func TestAllowedLiteralMatchOnly(t *testing.T) {
  perms := []string{PageGateGuard}
  if !Allowed(true, PageGateGuard, perms) {
    t.Error("granted page should be allowed")
  }
  for _, page := range AllPages {
    if page == PageGateGuard || page == PageDashboard {
      continue
    }
    if Allowed(true, page, perms) {
      t.Errorf("Allowed(signedIn, %q, [gate-guard]) = true, want false", page)
    }
  }
}

func TestAllowedDefaultRoleGrantsDashboardOnly(t *testing.T) {
  // The seeded default role carries only the dashboard page. A user with no
  // further grants must be denied every other page.
  perms := []string{PageDashboard}
  if !Allowed(true, PageDashboard, perms) {
    t.Error("default role should reach the dashboard")
  }
  if Allowed(true, PageGateGuard, perms) {
    t.Error("default role should not reach gate-guard before a role grant")
  }
}

func TestIsAdminEmailExactMatchOnly(t *testing.T) {
  allowlist := []string{"ops-lead@yard.example", " Site.Admin@yard.example "}

  cases := []struct {
    email string
    want  bool
  }{
    {"ops-lead@yard.example", true},
    {"OPS-LEAD@yard.example", true},
    {"site.admin@yard.example", true},
    // Substring matches must not qualify: containing "admin" is not enough.
    {"administrator@yard.example", false},
    {"admin@other.example", false},
    {"badminton@yard.example", false},
    {"", false},
  }
  for _, c := range cases {
    if got := IsAdminEmail(c.email, allowlist); got != c.want {
      t.Errorf("IsAdminEmail(%q) = %v, want %v", c.email, got, c.want)
    }
  }
}

func TestIsAdminEmailEmptyAllowlist(t *testing.T) {
  if IsAdminEmail("anyone@yard.example", nil) {
    t.Error("empty allowlist should match nobody")
  }
}
