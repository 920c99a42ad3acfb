package normalization

import "testing"

func TestParseInputString(t *testing.T) {
  cases := []struct {
    in   string
    want string
  }{
    {"", ""},
    {"   ", ""},
    {"  Gate  Guard ", "Gate Guard"},
    {"Ops@Co.COM", "ops@co.com"},
    {"  one\ttwo\nthree ", "one two three"},
  }
  for _, c := range cases {
    if got := ParseInputString(c.in); got != c.want {
      t.Errorf("ParseInputString(%q) = %q, want %q", c.in, got, c.want)
    }
  }
}

func TestParseInputStringPtr(t *testing.T) {
  if got := ParseInputStringPtr(nil); got != nil {
    t.Fatalf("ParseInputStringPtr(nil) = %v, want nil", got)
  }
  in := " Hello  World "
  got := ParseInputStringPtr(&in)
  if got == nil || *got != "Hello World" {
    t.Fatalf("ParseInputStringPtr(%q) = %v, want 'Hello World'", in, got)
  }
}

func TestParseVehicleNumber(t *testing.T) {
  cases := []struct {
    in   string
    want string
  }{
    {"ka-01-ab-1234", "KA01AB1234"},
    {" MH 12 CD 9876 ", "MH12CD9876"},
    {"TN09X0001", "TN09X0001"},
  }
  for _, c := range cases {
    if got := ParseVehicleNumber(c.in); got != c.want {
      t.Errorf("ParseVehicleNumber(%q) = %q, want %q", c.in, got, c.want)
    }
  }
}
