package orders

import "strings"

// Order statuses recognized by the platform. Comparison is always on the
// uppercased string; anything unrecognized gets the neutral style.
const (
	StatusPlaced         = "PLACED"
	StatusConfirmed      = "CONFIRMED"
	StatusProcessing     = "PROCESSING"
	StatusShipped        = "SHIPPED"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
	StatusCancelled      = "CANCELLED"
)

// cancellable statuses; cancellability is a pure function of the status.
var cancellable = map[string]bool{
	StatusPlaced:     true,
	StatusProcessing: true,
	StatusConfirmed:  true,
}

func IsCancellable(status string) bool {
	return cancellable[normalizeStatus(status)]
}

// StatusStyle is the display mapping for a status: a CSS class for the badge
// color and an icon name.
type StatusStyle struct {
	Class string
	Icon  string
}

var statusStyles = map[string]StatusStyle{
	StatusPlaced:         {Class: "status-placed", Icon: "clock"},
	StatusConfirmed:      {Class: "status-confirmed", Icon: "check"},
	StatusProcessing:     {Class: "status-processing", Icon: "gear"},
	StatusShipped:        {Class: "status-shipped", Icon: "truck"},
	StatusOutForDelivery: {Class: "status-out-for-delivery", Icon: "map-pin"},
	StatusDelivered:      {Class: "status-delivered", Icon: "package"},
	StatusCancelled:      {Class: "status-cancelled", Icon: "x"},
}

var neutralStyle = StatusStyle{Class: "status-neutral", Icon: "circle"}

func StyleFor(status string) StatusStyle {
	if style, ok := statusStyles[normalizeStatus(status)]; ok {
		return style
	}
	return neutralStyle
}

func normalizeStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}
