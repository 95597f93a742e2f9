package domain

// TaskOrder selects the ordering of a task listing.
type TaskOrder string

const (
	OrderCreated  TaskOrder = "created"  // creation order (default)
	OrderDue      TaskOrder = "due"      // earliest due date first
	OrderPriority TaskOrder = "priority" // High first, then due date
)

// ParseTaskOrder accepts "", "created", "due" and "priority".
func ParseTaskOrder(s string) (TaskOrder, bool) {
	switch TaskOrder(s) {
	case "", OrderCreated:
		return OrderCreated, true
	case OrderDue:
		return OrderDue, true
	case OrderPriority:
		return OrderPriority, true
	}
	return "", false
}

// TaskFilter narrows a task listing. The owner is always given separately.
type TaskFilter struct {
	Status *Status
	Order  TaskOrder
}
