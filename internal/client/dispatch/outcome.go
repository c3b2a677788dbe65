package dispatch

// Request is a submission that passed the draft and in-flight checks
type Request struct {
	ID      string
	Payload string
}

// Outcome is how a request settled
type Outcome interface {
	isOutcome()
	request() Request
}

// Replied is sent when the endpoint answered with a reply
type Replied struct {
	Request Request
	Reply   string
}

func (Replied) isOutcome()         {}
func (o Replied) request() Request { return o.Request }

// Failed is sent for any communication failure
type Failed struct {
	Request Request
	Err     error
}

func (Failed) isOutcome()         {}
func (o Failed) request() Request { return o.Request }
