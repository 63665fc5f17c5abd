package errors

type Code string

const (
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL_ERROR"

	// Manager lifecycle
	CodeNotInitialized     Code = "NOT_INITIALIZED"
	CodeAlreadyInitialized Code = "ALREADY_INITIALIZED"

	// Dispatch
	CodePrinterDelivery Code = "PRINTER_DELIVERY_ERROR"
	CodeSerialization   Code = "SERIALIZATION_ERROR"
	CodeInvalidPrinter  Code = "INVALID_PRINTER"

	// Configuration
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	// Sinks
	CodeSinkWriteError    Code = "SINK_WRITE_ERROR"
	CodePlatformAPIError  Code = "PLATFORM_API_ERROR"
	CodePlatformAuthError Code = "PLATFORM_AUTH_ERROR"
	CodeResourceNotFound  Code = "RESOURCE_NOT_FOUND"
)

func (c Code) String() string {
	return string(c)
}
