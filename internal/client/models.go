// ABOUTME: Wire types for the Tally portal proxy API
// ABOUTME: Dashboard snapshot, portal messages, and the success envelope

package client

// Dashboard is the cached result of /api/latest. All fields are optional.
type Dashboard struct {
	Income          *string   `json:"income"`
	NextPaymentDate *string   `json:"nextPaymentDate"`
	BenefitType     *string   `json:"benefitType"`
	Status          *string   `json:"status"`
	Messages        []Message `json:"messages"`
	TableData       *string   `json:"tableData"`
}

// Message is a single portal inbox entry
type Message struct {
	ID      *string `json:"id"`
	Subject *string `json:"subject"`
	Date    *string `json:"date"`
	Body    *string `json:"body"`
}

// StableID returns the id, falling back to the subject, then "unknown"
func (m Message) StableID() string {
	if m.ID != nil {
		return *m.ID
	}
	if m.Subject != nil {
		return *m.Subject
	}
	return "unknown"
}

// loginRequest is the body of POST /api/login
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Deref returns the pointed-to string or fallback when nil
func Deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
