// Package uart implements the serial framing spoken by the mesh UART modem.
//
// Every exchange with the modem is a frame:
//
//	+------+------+-----+-----+-------------------+--------+
//	| 0xAA | 0x55 | len | cmd | payload[len]      | crc16  |
//	+------+------+-----+-----+-------------------+--------+
//
// len counts payload bytes only (at most MaxPayloadSize). The CRC is
// CRC-16-CCITT (polynomial 0x1021, initial value 0xFFFF) over len, cmd and
// payload, transmitted little-endian.
//
// Mesh traffic travels in MeshMessageRequest and MeshMessageResponse frames
// whose payload is
//
//	instance_index:u8 | sub_index:u8 | opcode (1, 2 or 3 bytes) | parameters
//
// with the opcode in the big-endian Mesh opcode format.
package uart
