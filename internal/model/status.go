package model

// OrderStatus is the wire-level order status enum. The string values are
// case-sensitive and part of the API contract.
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusOrderAccepted  OrderStatus = "Order Accepted"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// forwardTransitions maps each status to the statuses legally reachable from
// it. Cancelled is reachable only from Pending; Delivered and Cancelled are
// terminal.
var forwardTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusOrderAccepted, StatusCancelled},
	StatusOrderAccepted:  {StatusShipped},
	StatusShipped:        {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusOrderAccepted, StatusShipped,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s.
func (s OrderStatus) IsTerminal() bool {
	return len(forwardTransitions[s]) == 0
}

// CanTransition reports whether a transition from s to target is legal.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, next := range forwardTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
