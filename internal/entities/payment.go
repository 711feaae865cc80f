package entities

// CaptureStatusCompleted is the processor status of a successful capture.
const CaptureStatusCompleted = "COMPLETED"

type Link struct {
	Href   string
	Rel    string
	Method string
}

// PaymentIntent is the processor's authorized-but-not-captured payment.
type PaymentIntent struct {
	ID     string
	Status string
	Links  []Link
}

type CaptureResult struct {
	IntentID string
	Status   string
	// CorrelationID is the internal order id attached to the intent at creation.
	CorrelationID   string
	TransactionID   string
	PayerEmail      string
	AlreadyCaptured bool
}

func (r CaptureResult) Completed() bool {
	return r.Status == CaptureStatusCompleted
}

func (r CaptureResult) PaymentResult() PaymentResult {
	return PaymentResult{
		TransactionID: r.TransactionID,
		Status:        r.Status,
		PayerEmail:    r.PayerEmail,
	}
}
