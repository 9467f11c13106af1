package orders

// All lifecycle events share one topic; the event type rides in the
// envelope and a kafka header.
const TopicOrderEvents = "order.events"

// Partition key = order_id so one order's events keep their order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
