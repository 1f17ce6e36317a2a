package health

import "fmt"

// FaultCode is a Health fault identifier as carried in Current/Fault Status.
//
// Codes 0x00-0x32 are standardized, 0x33-0x7F are reserved for future use
// and 0x80-0xFF are vendor specific.
type FaultCode uint8

// Fault code range boundaries.
const (
	FaultRFUStart            FaultCode = 0x33
	FaultRFUEnd              FaultCode = 0x7F
	FaultVendorSpecificStart FaultCode = 0x80
	FaultVendorSpecificEnd   FaultCode = 0xFF
)

// Standardized fault codes.
const (
	FaultNoFault FaultCode = iota
	FaultBatteryLowWarning
	FaultBatteryLowError
	FaultSupplyVoltageLowWarning
	FaultSupplyVoltageLowError
	FaultSupplyVoltageHighWarning
	FaultSupplyVoltageHighError
	FaultPowerInterruptedWarning
	FaultPowerInterruptedError
	FaultNoLoadWarning
	FaultNoLoadError
	FaultOverloadWarning
	FaultOverloadError
	FaultOverheatWarning
	FaultOverheatError
	FaultCondensationWarning
	FaultCondensationError
	FaultVibrationWarning
	FaultVibrationError
	FaultConfigurationWarning
	FaultConfigurationError
	FaultElementNotCalibratedWarning
	FaultElementNotCalibratedError
	FaultMemoryWarning
	FaultMemoryError
	FaultSelfTestWarning
	FaultSelfTestError
	FaultInputTooLowWarning
	FaultInputTooLowError
	FaultInputTooHighWarning
	FaultInputTooHighError
	FaultInputNoChangeWarning
	FaultInputNoChangeError
	FaultActuatorBlockedWarning
	FaultActuatorBlockedError
	FaultHousingOpenedWarning
	FaultHousingOpenedError
	FaultTamperWarning
	FaultTamperError
	FaultDeviceMovedWarning
	FaultDeviceMovedError
	FaultDeviceDroppedWarning
	FaultDeviceDroppedError
	FaultOverflowWarning
	FaultOverflowError
	FaultEmptyWarning
	FaultEmptyError
	FaultInternalBusWarning
	FaultInternalBusError
	FaultMechanismJammedWarning
	FaultMechanismJammedError
)

// faultNames is indexed by the standardized fault code.
var faultNames = [...]string{
	FaultNoFault:                     "NO_FAULT",
	FaultBatteryLowWarning:           "BATTERY_LOW_WARN",
	FaultBatteryLowError:             "BATTERY_LOW_ERR",
	FaultSupplyVoltageLowWarning:     "SUPPLY_VOLTAGE_LOW_WARN",
	FaultSupplyVoltageLowError:       "SUPPLY_VOLTAGE_LOW_ERR",
	FaultSupplyVoltageHighWarning:    "SUPPLY_VOLTAGE_HIGH_WARN",
	FaultSupplyVoltageHighError:      "SUPPLY_VOLTAGE_HIGH_ERR",
	FaultPowerInterruptedWarning:     "POWER_INTERRUPTED_WARN",
	FaultPowerInterruptedError:       "POWER_INTERRUPTED_ERR",
	FaultNoLoadWarning:               "NO_LOAD_WARN",
	FaultNoLoadError:                 "NO_LOAD_ERR",
	FaultOverloadWarning:             "OVERLOAD_WARN",
	FaultOverloadError:               "OVERLOAD_ERR",
	FaultOverheatWarning:             "OVERHEAT_WARN",
	FaultOverheatError:               "OVERHEAT_ERR",
	FaultCondensationWarning:         "CONDENSATION_WARN",
	FaultCondensationError:           "CONDENSATION_ERR",
	FaultVibrationWarning:            "VIBRATION_WARN",
	FaultVibrationError:              "VIBRATION_ERR",
	FaultConfigurationWarning:        "CONFIGURATION_WARN",
	FaultConfigurationError:          "CONFIGURATION_ERR",
	FaultElementNotCalibratedWarning: "ELEMENT_NOT_CAL_WARN",
	FaultElementNotCalibratedError:   "ELEMENT_NOT_CAL_ERR",
	FaultMemoryWarning:               "MEMORY_WARN",
	FaultMemoryError:                 "MEMORY_ERR",
	FaultSelfTestWarning:             "SELF_TEST_WARN",
	FaultSelfTestError:               "SELF_TEST_ERR",
	FaultInputTooLowWarning:          "INPUT_TOO_LOW_WARN",
	FaultInputTooLowError:            "INPUT_TOO_LOW_ERR",
	FaultInputTooHighWarning:         "INPUT_TOO_HIGH_WARN",
	FaultInputTooHighError:           "INPUT_TOO_HIGH_ERR",
	FaultInputNoChangeWarning:        "INPUT_NO_CHANGE_WARN",
	FaultInputNoChangeError:          "INPUT_NO_CHANGE_ERR",
	FaultActuatorBlockedWarning:      "ACTUATOR_BLOCKED_WARN",
	FaultActuatorBlockedError:        "ACTUATOR_BLOCKED_ERR",
	FaultHousingOpenedWarning:        "HOUSING_OPENED_WARN",
	FaultHousingOpenedError:          "HOUSING_OPENED_ERR",
	FaultTamperWarning:               "TAMPER_WARN",
	FaultTamperError:                 "TAMPER_ERR",
	FaultDeviceMovedWarning:          "DEVICE_MOVED_WARN",
	FaultDeviceMovedError:            "DEVICE_MOVED_ERR",
	FaultDeviceDroppedWarning:        "DEVICE_DROPPED_WARN",
	FaultDeviceDroppedError:          "DEVICE_DROPPED_ERR",
	FaultOverflowWarning:             "OVERFLOW_WARN",
	FaultOverflowError:               "OVERFLOW_ERR",
	FaultEmptyWarning:                "EMPTY_WARN",
	FaultEmptyError:                  "EMPTY_ERR",
	FaultInternalBusWarning:          "INTERNAL_BUS_WARN",
	FaultInternalBusError:            "INTERNAL_BUS_ERR",
	FaultMechanismJammedWarning:      "MECHANISM_JAMMED_WARN",
	FaultMechanismJammedError:        "MECHANISM_JAMMED_ERR",
}

// IsStandard returns true if the code has a standardized meaning.
func (f FaultCode) IsStandard() bool {
	return f < FaultRFUStart
}

// IsRFU returns true if the code is reserved for future use.
func (f FaultCode) IsRFU() bool {
	return f >= FaultRFUStart && f <= FaultRFUEnd
}

// IsVendorSpecific returns true if the code is assigned by the vendor.
func (f FaultCode) IsVendorSpecific() bool {
	return f >= FaultVendorSpecificStart
}

// Name returns the fault name. It is defined for every byte value:
// reserved and vendor-specific codes get a placeholder carrying the value.
func (f FaultCode) Name() string {
	switch {
	case f.IsStandard():
		return faultNames[f]
	case f.IsRFU():
		return fmt.Sprintf("RFU(0x%02X)", uint8(f))
	default:
		return fmt.Sprintf("VENDOR_SPECIFIC(0x%02X)", uint8(f))
	}
}

// String returns the fault name.
func (f FaultCode) String() string {
	return f.Name()
}
