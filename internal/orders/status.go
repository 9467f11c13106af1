package orders

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// Cancellation and delivery are allowed from every non-terminal state;
// Delivered and Cancelled are terminal. Shipping is optional, orders can go
// straight to Delivered.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusShipped: true, StatusDelivered: true, StatusCancelled: true},
	StatusConfirmed: {StatusShipped: true, StatusDelivered: true, StatusCancelled: true},
	StatusShipped:   {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
