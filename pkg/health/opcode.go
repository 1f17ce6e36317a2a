package health

import "fmt"

// Opcode identifies a Health model message on the mesh.
// Single-octet opcodes occupy 0x00-0x7E, two-octet opcodes 0x8000-0xBFFF.
type Opcode uint32

const (
	// OpCurrentStatus reports the currently registered faults.
	OpCurrentStatus Opcode = 0x04

	// OpFaultStatus reports the registered fault history.
	OpFaultStatus Opcode = 0x05

	// OpAttentionGet requests the Attention Timer state.
	OpAttentionGet Opcode = 0x8004

	// OpAttentionSet sets the Attention Timer and expects an Attention Status.
	OpAttentionSet Opcode = 0x8005

	// OpAttentionSetUnacknowledged sets the Attention Timer without a reply.
	OpAttentionSetUnacknowledged Opcode = 0x8006

	// OpAttentionStatus reports the Attention Timer state.
	OpAttentionStatus Opcode = 0x8007

	// OpFaultClear clears the fault history and expects a Fault Status.
	OpFaultClear Opcode = 0x802F

	// OpFaultClearUnacknowledged clears the fault history without a reply.
	OpFaultClearUnacknowledged Opcode = 0x8030

	// OpFaultGet requests the fault history for a company.
	OpFaultGet Opcode = 0x8031

	// OpFaultTest invokes a self-test and expects a Fault Status.
	OpFaultTest Opcode = 0x8032

	// OpFaultTestUnacknowledged invokes a self-test without a reply.
	OpFaultTestUnacknowledged Opcode = 0x8033

	// OpPeriodGet requests the Health Fast Period Divisor.
	OpPeriodGet Opcode = 0x8034

	// OpPeriodSet sets the Health Fast Period Divisor and expects a Period Status.
	OpPeriodSet Opcode = 0x8035

	// OpPeriodSetUnacknowledged sets the Health Fast Period Divisor without a reply.
	OpPeriodSetUnacknowledged Opcode = 0x8036

	// OpPeriodStatus reports the Health Fast Period Divisor.
	OpPeriodStatus Opcode = 0x8037
)

// String returns the opcode name.
func (o Opcode) String() string {
	switch o {
	case OpCurrentStatus:
		return "CURRENT_STATUS"
	case OpFaultStatus:
		return "FAULT_STATUS"
	case OpAttentionGet:
		return "ATTENTION_GET"
	case OpAttentionSet:
		return "ATTENTION_SET"
	case OpAttentionSetUnacknowledged:
		return "ATTENTION_SET_UNACKNOWLEDGED"
	case OpAttentionStatus:
		return "ATTENTION_STATUS"
	case OpFaultClear:
		return "FAULT_CLEAR"
	case OpFaultClearUnacknowledged:
		return "FAULT_CLEAR_UNACKNOWLEDGED"
	case OpFaultGet:
		return "FAULT_GET"
	case OpFaultTest:
		return "FAULT_TEST"
	case OpFaultTestUnacknowledged:
		return "FAULT_TEST_UNACKNOWLEDGED"
	case OpPeriodGet:
		return "PERIOD_GET"
	case OpPeriodSet:
		return "PERIOD_SET"
	case OpPeriodSetUnacknowledged:
		return "PERIOD_SET_UNACKNOWLEDGED"
	case OpPeriodStatus:
		return "PERIOD_STATUS"
	default:
		return fmt.Sprintf("UNKNOWN(0x%04X)", uint32(o))
	}
}

// IsValid returns true if the opcode belongs to the Health model.
func (o Opcode) IsValid() bool {
	switch o {
	case OpCurrentStatus, OpFaultStatus,
		OpAttentionGet, OpAttentionSet, OpAttentionSetUnacknowledged, OpAttentionStatus,
		OpFaultClear, OpFaultClearUnacknowledged, OpFaultGet, OpFaultTest, OpFaultTestUnacknowledged,
		OpPeriodGet, OpPeriodSet, OpPeriodSetUnacknowledged, OpPeriodStatus:
		return true
	default:
		return false
	}
}

// IsStatus returns true for the opcodes a Health Server sends back.
func (o Opcode) IsStatus() bool {
	switch o {
	case OpCurrentStatus, OpFaultStatus, OpAttentionStatus, OpPeriodStatus:
		return true
	default:
		return false
	}
}

// IsUnacknowledged returns true for request variants that expect no status.
func (o Opcode) IsUnacknowledged() bool {
	switch o {
	case OpAttentionSetUnacknowledged, OpFaultClearUnacknowledged,
		OpFaultTestUnacknowledged, OpPeriodSetUnacknowledged:
		return true
	default:
		return false
	}
}

var allOpcodes = []Opcode{
	OpCurrentStatus, OpFaultStatus,
	OpAttentionGet, OpAttentionSet, OpAttentionSetUnacknowledged, OpAttentionStatus,
	OpFaultClear, OpFaultClearUnacknowledged, OpFaultGet, OpFaultTest, OpFaultTestUnacknowledged,
	OpPeriodGet, OpPeriodSet, OpPeriodSetUnacknowledged, OpPeriodStatus,
}

// ParseOpcode looks an opcode up by its String name.
func ParseOpcode(name string) (Opcode, bool) {
	for _, op := range allOpcodes {
		if op.String() == name {
			return op, true
		}
	}
	return 0, false
}

// ackVariant picks between the acknowledged and unacknowledged opcode.
func ackVariant(ack, unack Opcode, unacknowledged bool) Opcode {
	if unacknowledged {
		return unack
	}
	return ack
}
