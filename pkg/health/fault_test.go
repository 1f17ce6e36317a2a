package health

import (
	"strings"
	"testing"
)

func TestFaultNameStandardRange(t *testing.T) {
	tests := []struct {
		code FaultCode
		want string
	}{
		{FaultNoFault, "NO_FAULT"},
		{FaultBatteryLowWarning, "BATTERY_LOW_WARN"},
		{FaultConfigurationError, "CONFIGURATION_ERR"},
		{FaultElementNotCalibratedWarning, "ELEMENT_NOT_CAL_WARN"},
		{FaultInternalBusError, "INTERNAL_BUS_ERR"},
		{FaultMechanismJammedError, "MECHANISM_JAMMED_ERR"},
	}

	for _, tt := range tests {
		if got := tt.code.Name(); got != tt.want {
			t.Errorf("FaultCode(0x%02X).Name() = %q, want %q", uint8(tt.code), got, tt.want)
		}
	}

	if FaultMechanismJammedError != 0x32 {
		t.Errorf("FaultMechanismJammedError = 0x%02X, want 0x32", uint8(FaultMechanismJammedError))
	}
}

func TestFaultNameIsTotal(t *testing.T) {
	seen := make(map[string]bool)
	for v := 0; v <= 0xFF; v++ {
		code := FaultCode(v)
		name := code.Name()
		if name == "" {
			t.Fatalf("FaultCode(0x%02X) has empty name", v)
		}
		if seen[name] {
			t.Errorf("duplicate fault name %q", name)
		}
		seen[name] = true

		ranges := 0
		for _, in := range []bool{code.IsStandard(), code.IsRFU(), code.IsVendorSpecific()} {
			if in {
				ranges++
			}
		}
		if ranges != 1 {
			t.Errorf("FaultCode(0x%02X) belongs to %d ranges", v, ranges)
		}

		switch {
		case code.IsRFU() && !strings.HasPrefix(name, "RFU("):
			t.Errorf("FaultCode(0x%02X).Name() = %q, want RFU placeholder", v, name)
		case code.IsVendorSpecific() && !strings.HasPrefix(name, "VENDOR_SPECIFIC("):
			t.Errorf("FaultCode(0x%02X).Name() = %q, want vendor placeholder", v, name)
		}
	}
}

func TestFaultPlaceholdersCarryValue(t *testing.T) {
	if got := FaultCode(0x33).Name(); got != "RFU(0x33)" {
		t.Errorf("0x33 = %q", got)
	}
	if got := FaultCode(0x7F).Name(); got != "RFU(0x7F)" {
		t.Errorf("0x7F = %q", got)
	}
	if got := FaultCode(0x80).String(); got != "VENDOR_SPECIFIC(0x80)" {
		t.Errorf("0x80 = %q", got)
	}
	if got := FaultCode(0xFF).Name(); got != "VENDOR_SPECIFIC(0xFF)" {
		t.Errorf("0xFF = %q", got)
	}
}

func TestOpcodeTable(t *testing.T) {
	tests := []struct {
		op     Opcode
		name   string
		status bool
		unack  bool
	}{
		{OpCurrentStatus, "CURRENT_STATUS", true, false},
		{OpFaultStatus, "FAULT_STATUS", true, false},
		{OpAttentionGet, "ATTENTION_GET", false, false},
		{OpAttentionSet, "ATTENTION_SET", false, false},
		{OpAttentionSetUnacknowledged, "ATTENTION_SET_UNACKNOWLEDGED", false, true},
		{OpAttentionStatus, "ATTENTION_STATUS", true, false},
		{OpFaultClear, "FAULT_CLEAR", false, false},
		{OpFaultClearUnacknowledged, "FAULT_CLEAR_UNACKNOWLEDGED", false, true},
		{OpFaultGet, "FAULT_GET", false, false},
		{OpFaultTest, "FAULT_TEST", false, false},
		{OpFaultTestUnacknowledged, "FAULT_TEST_UNACKNOWLEDGED", false, true},
		{OpPeriodGet, "PERIOD_GET", false, false},
		{OpPeriodSet, "PERIOD_SET", false, false},
		{OpPeriodSetUnacknowledged, "PERIOD_SET_UNACKNOWLEDGED", false, true},
		{OpPeriodStatus, "PERIOD_STATUS", true, false},
	}

	for _, tt := range tests {
		if !tt.op.IsValid() {
			t.Errorf("%s: IsValid() = false", tt.name)
		}
		if got := tt.op.String(); got != tt.name {
			t.Errorf("Opcode(0x%04X).String() = %q, want %q", uint32(tt.op), got, tt.name)
		}
		if got := tt.op.IsStatus(); got != tt.status {
			t.Errorf("%s: IsStatus() = %v, want %v", tt.name, got, tt.status)
		}
		if got := tt.op.IsUnacknowledged(); got != tt.unack {
			t.Errorf("%s: IsUnacknowledged() = %v, want %v", tt.name, got, tt.unack)
		}
	}

	if Opcode(0xFFFF).IsValid() {
		t.Error("0xFFFF should not be a Health opcode")
	}
	if got := Opcode(0xFFFF).String(); got != "UNKNOWN(0xFFFF)" {
		t.Errorf("unknown opcode String() = %q", got)
	}
}

func TestParseOpcode(t *testing.T) {
	for _, op := range allOpcodes {
		got, ok := ParseOpcode(op.String())
		if !ok || got != op {
			t.Errorf("ParseOpcode(%q) = %v, %v", op.String(), got, ok)
		}
		if !op.IsValid() {
			t.Errorf("%v listed but not valid", op)
		}
	}
	if _, ok := ParseOpcode("FAULT_RESET"); ok {
		t.Error("ParseOpcode accepted an unknown name")
	}
}
