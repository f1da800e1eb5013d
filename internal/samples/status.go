package samples

import "strings"

// Sample request statuses recognized by the platform.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusShipped   = "SHIPPED"
	StatusDelivered = "DELIVERED"
)

type StatusStyle struct {
	Class string
	Icon  string
}

var statusStyles = map[string]StatusStyle{
	StatusPending:   {Class: "status-pending", Icon: "clock"},
	StatusApproved:  {Class: "status-approved", Icon: "check"},
	StatusRejected:  {Class: "status-rejected", Icon: "x"},
	StatusShipped:   {Class: "status-shipped", Icon: "truck"},
	StatusDelivered: {Class: "status-delivered", Icon: "package"},
}

var neutralStyle = StatusStyle{Class: "status-neutral", Icon: "circle"}

func StyleFor(status string) StatusStyle {
	if style, ok := statusStyles[strings.ToUpper(strings.TrimSpace(status))]; ok {
		return style
	}
	return neutralStyle
}
