package orders

type State string

const (
	StateDraft     State = "DRAFT" // cart stage
	StatePlaced    State = "PLACED"
	StateCompleted State = "COMPLETED"
	StateCanceled  State = "CANCELED"
)

// WorkflowGroupOrder is the standard commerce-order workflow group. Handlers
// that react to order mutations only act on orders in this group; other
// workflows may reuse the same entity type.
const WorkflowGroupOrder = "commerce_order"

var validNext = map[State]map[State]bool{
	StateDraft:     {StatePlaced: true, StateCanceled: true},
	StatePlaced:    {StateCompleted: true, StateCanceled: true},
	StateCompleted: {},
	StateCanceled:  {},
}

func CanTransition(from, to State) bool {
	return validNext[from][to]
}
