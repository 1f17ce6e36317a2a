// Package health implements the Bluetooth Mesh Health Client message layer.
//
// It covers the three Health sub-features (Attention, Fault and Period):
// building outbound request payloads from typed arguments, decoding inbound
// status payloads, rendering them for display and routing status opcodes to
// the matching decoder.
//
// # Wire Format
//
// All multi-byte fields are little-endian. The payload layout of each
// message is fully determined by its opcode:
//
//	ATTENTION_GET, PERIOD_GET          (empty)
//	ATTENTION_SET[_UNACK], _STATUS     seconds:u8
//	FAULT_GET, FAULT_CLEAR[_UNACK]     company_id:u16
//	FAULT_TEST[_UNACK]                 test_id:u8 company_id:u16
//	CURRENT_STATUS, FAULT_STATUS       test_id:u8 company_id:u16 fault:u8*N src_addr:u16
//	PERIOD_SET[_UNACK], PERIOD_STATUS  divider:u8
//
// # Concurrency
//
// Encoders, decoders and the fault table are pure functions. A Dispatcher
// is immutable after construction and may be called from the transport's
// receive goroutine while the command loop keeps encoding requests.
package health
