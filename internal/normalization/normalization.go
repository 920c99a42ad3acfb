package normalization

import (
  "strings"
)

// ParseInputString trims surrounding whitespace and collapses internal runs of
// whitespace to a single space. Email-like inputs are also lowercased so that
// lookups against unique columns behave consistently.
func ParseInputString(input string) string {
  trimmed := strings.TrimSpace(input)
  if trimmed == "" {
    return ""
  }
  fields := strings.Fields(trimmed)
  joined := strings.Join(fields, " ")
  if strings.Contains(joined, "@") && !strings.Contains(joined, " ") {
    return strings.ToLower(joined)
  }
  return joined
}

// ParseInputStringPtr is ParseInputString for optional fields.
func ParseInputStringPtr(input *string) *string {
  if input == nil {
    return nil
  }
  parsed := ParseInputString(*input)
  return &parsed
}

// ParseVehicleNumber uppercases and strips spaces/dashes so the same plate
// always produces the same key across trucks, weighbridge entries and plant
// tracking records.
func ParseVehicleNumber(input string) string {
  cleaned := strings.ToUpper(strings.TrimSpace(input))
  cleaned = strings.ReplaceAll(cleaned, " ", "")
  cleaned = strings.ReplaceAll(cleaned, "-", "")
  return cleaned
}
