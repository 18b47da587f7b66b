package converters

const (
	ErrMsgNilTemporal     = "Temporal parameter cannot be nil or null."
	ErrMsgNotCollection   = "Given parameter is not a slice or array."
	ErrMsgBadJSONDocument = "Bad JSON document, expected valid JSON text"
)

// TemporalLayout is the fixed dd/MM/yyyy output of Temporal.
const TemporalLayout = "02/01/2006"
