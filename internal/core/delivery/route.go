package delivery

// RouteAction is the outcome of the routing decision for one channel batch.
type RouteAction string

const (
	// RouteExecute runs the batch now against the present principal.
	RouteExecute RouteAction = "execute"
	// RouteBuffer persists the batch until the principal next becomes present.
	RouteBuffer RouteAction = "buffer"
	// RouteNone means there is nothing to route.
	RouteNone RouteAction = "none"
)

// RoutePlanInput contains pre-fetched data for one (account, channel) batch.
type RoutePlanInput struct {
	Account   AccountID
	Principal string
	Channel   Channel
	Commands  []Command
	Present   bool
}

// RoutePlan describes what the shell must do with a batch.
type RoutePlan struct {
	Action    RouteAction
	Principal string
	BufferKey string
	Commands  []Command

	// DeleteIDs are acknowledged remotely after execution. Buffered
	// batches stay queued upstream, so this is empty for RouteBuffer.
	DeleteIDs []CommandID

	// ClearBuffer drops any earlier buffered copy of the channel once the
	// batch has run, so nothing is both executed and still buffered.
	ClearBuffer bool
}

// GenerateRoutePlan decides between immediate execution and buffering.
// This is a pure function - all input data must be pre-fetched.
func GenerateRoutePlan(input RoutePlanInput) RoutePlan {
	plan := RoutePlan{
		Action:    RouteNone,
		Principal: input.Principal,
		BufferKey: BufferKey(input.Account, input.Channel),
		Commands:  input.Commands,
	}
	if len(input.Commands) == 0 {
		return plan
	}

	if input.Present {
		plan.Action = RouteExecute
		plan.DeleteIDs = CommandIDs(input.Commands)
		plan.ClearBuffer = true
		return plan
	}

	plan.Action = RouteBuffer
	return plan
}
