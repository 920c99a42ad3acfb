package access

import (
  "strings"
)

// Page identifiers are the unit of permission granting: each names one screen
// of the yard application. A role holds a flat set of these; the wildcard
// grants every page.
const (
  Wildcard = "*"

  PageDashboard         = "dashboard"
  PageTruckScheduling   = "truck-scheduling"
  PageApprovals         = "approvals"
  PageGateGuard         = "gate-guard"
  PageWeighbridge       = "weighbridge"
  PagePlantTracking     = "plant-tracking"
  PageDockOperations    = "dock-operations"
  PageShiftHandover     = "shift-handover"
  PageMasterData        = "master-data"
  PageRegisterTemplates = "register-templates"
  PageUserManagement    = "user-management"
  PageRoleManagement    = "role-management"
  PageAuditLogs         = "audit-logs"
  PageReports           = "reports"
)

// AllPages lists every grantable page identifier, in display order.
var AllPages = []string{
  PageDashboard,
  PageTruckScheduling,
  PageApprovals,
  PageGateGuard,
  PageWeighbridge,
  PagePlantTracking,
  PageDockOperations,
  PageShiftHandover,
  PageMasterData,
  PageRegisterTemplates,
  PageUserManagement,
  PageRoleManagement,
  PageAuditLogs,
  PageReports,
}

// Allowed decides whether a signed-in identity holding the given permission
// set may open the given page. The rules apply in order:
//
//  1. Not signed in: deny everything.
//  2. The dashboard is open to any signed-in identity.
//  3. A wildcard permission grants every page.
//  4. A literal match grants the page.
//  5. Otherwise deny.
//
// An empty or nil permission set therefore denies every page except the
// dashboard, which is the failure posture when role resolution errors out.
func Allowed(signedIn bool, pageID string, permissions []string) bool {
  if !signedIn {
    return false
  }
  if pageID == PageDashboard {
    return true
  }
  for _, p := range permissions {
    if p == Wildcard {
      return true
    }
    if p == pageID {
      return true
    }
  }
  return false
}

// IsAdminEmail reports whether the email is on the configured admin allowlist.
// Matching is exact (case-insensitive) only: an email merely containing the
// word "admin" does not qualify.
func IsAdminEmail(email string, allowlist []string) bool {
  candidate := strings.ToLower(strings.TrimSpace(email))
  if candidate == "" {
    return false
  }
  for _, entry := range allowlist {
    if strings.ToLower(strings.TrimSpace(entry)) == candidate {
      return true
    }
  }
  return false
}
