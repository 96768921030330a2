package enums

// OrderStatus labels where an order sits in fulfillment.
//
// Staff may write any string through the status update path; these constants
// only cover the values the storefront renders.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "Paid"
	OrderStatusInProgress OrderStatus = "In progress"
	OrderStatusReady      OrderStatus = "Ready"
	OrderStatusComplete   OrderStatus = "Complete"
)

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// KnownOrderStatuses lists the statuses the storefront knows how to render.
func KnownOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusPaid,
		OrderStatusInProgress,
		OrderStatusReady,
		OrderStatusComplete,
	}
}
