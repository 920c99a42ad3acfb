package services

import "testing"

func TestValidateRegisterFields(t *testing.T) {
  good := []RegisterFieldDef{
    {Key: "vehicle_number", Label: "Vehicle Number", DataType: "text", Required: true},
    {Key: "net_weight", Label: "Net Weight", DataType: "number"},
    {Key: "entry_date", Label: "Entry Date", DataType: "date"},
    {Key: "hazardous", Label: "Hazardous", DataType: "boolean"},
  }
  if err := validateRegisterFields(good); err != nil {
    t.Fatalf("validateRegisterFields(good) = %v, want nil", err)
  }
}

func TestValidateRegisterFieldsRejectsEmptySet(t *testing.T) {
  if err := validateRegisterFields(nil); err == nil {
    t.Error("empty field set must not validate")
  }
}

func TestValidateRegisterFieldsRejectsBadDataType(t *testing.T) {
  fields := []RegisterFieldDef{
    {Key: "weight", Label: "Weight", DataType: "float"},
  }
  if err := validateRegisterFields(fields); err == nil {
    t.Error("unknown data type 'float' must not validate")
  }
}

func TestValidateRegisterFieldsRejectsDuplicateKeys(t *testing.T) {
  fields := []RegisterFieldDef{
    {Key: "remarks", Label: "Remarks", DataType: "text"},
    {Key: "remarks", Label: "More Remarks", DataType: "text"},
  }
  if err := validateRegisterFields(fields); err == nil {
    t.Error("duplicate field key must not validate")
  }
}

func TestValidateRegisterFieldsRequiresKeyAndLabel(t *testing.T) {
  fields := []RegisterFieldDef{
    {Key: "", Label: "Weight", DataType: "number"},
  }
  if err := validateRegisterFields(fields); err == nil {
    t.Error("field without a key must not validate")
  }
}
