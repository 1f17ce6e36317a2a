package uart

import "fmt"

// Command is the frame command byte.
type Command uint8

const (
	CmdPingRequest                  Command = 0x01
	CmdPongResponse                 Command = 0x02
	CmdInitDeviceEvent              Command = 0x03
	CmdCreateInstancesRequest       Command = 0x04
	CmdCreateInstancesResponse      Command = 0x05
	CmdInitNodeEvent                Command = 0x06
	CmdMeshMessageRequest           Command = 0x07
	CmdStartNodeRequest             Command = 0x09
	CmdStartNodeResponse            Command = 0x0B
	CmdFactoryResetRequest          Command = 0x0C
	CmdFactoryResetResponse         Command = 0x0D
	CmdFactoryResetEvent            Command = 0x0E
	CmdMeshMessageResponse          Command = 0x0F
	CmdCurrentStateRequest          Command = 0x10
	CmdCurrentStateResponse         Command = 0x11
	CmdError                        Command = 0x12
	CmdModemFirmwareVersionRequest  Command = 0x13
	CmdModemFirmwareVersionResponse Command = 0x14
)

var commandNames = map[Command]string{
	CmdPingRequest:                  "PING_REQUEST",
	CmdPongResponse:                 "PONG_RESPONSE",
	CmdInitDeviceEvent:              "INIT_DEVICE_EVENT",
	CmdCreateInstancesRequest:       "CREATE_INSTANCES_REQUEST",
	CmdCreateInstancesResponse:      "CREATE_INSTANCES_RESPONSE",
	CmdInitNodeEvent:                "INIT_NODE_EVENT",
	CmdMeshMessageRequest:           "MESH_MESSAGE_REQUEST",
	CmdStartNodeRequest:             "START_NODE_REQUEST",
	CmdStartNodeResponse:            "START_NODE_RESPONSE",
	CmdFactoryResetRequest:          "FACTORY_RESET_REQUEST",
	CmdFactoryResetResponse:         "FACTORY_RESET_RESPONSE",
	CmdFactoryResetEvent:            "FACTORY_RESET_EVENT",
	CmdMeshMessageResponse:          "MESH_MESSAGE_RESPONSE",
	CmdCurrentStateRequest:          "CURRENT_STATE_REQUEST",
	CmdCurrentStateResponse:         "CURRENT_STATE_RESPONSE",
	CmdError:                        "ERROR",
	CmdModemFirmwareVersionRequest:  "MODEM_FIRMWARE_VERSION_REQUEST",
	CmdModemFirmwareVersionResponse: "MODEM_FIRMWARE_VERSION_RESPONSE",
}

// String returns the command name.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(c))
}

// IsKnown reports whether c is a command the modem defines.
func (c Command) IsKnown() bool {
	_, ok := commandNames[c]
	return ok
}

// CarriesMeshMessage reports whether the payload is a mesh message.
func (c Command) CarriesMeshMessage() bool {
	return c == CmdMeshMessageRequest || c == CmdMeshMessageResponse
}
