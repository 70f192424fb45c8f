package usecase

import (
	"fmt"

	"cusceda/services/notification/internal/entity"
)

// Order statuses that produce a second, status-change notification.
var terminalOrderStatuses = map[string]bool{
	"Shipped":   true,
	"Delivered": true,
	"Cancelled": true,
}

// BuildCandidates turns one pass worth of events into candidate
// notifications. Message texts double as the dedup key, so they must stay
// stable for a given event.
func BuildCandidates(events entity.Events) []entity.Candidate {
	candidates := make([]entity.Candidate, 0,
		2*len(events.Orders)+len(events.Stock)+len(events.Reviews)+len(events.Signups)+len(events.Contacts))

	for _, o := range events.Orders {
		candidates = append(candidates, entity.Candidate{
			Type:      entity.TypeOrder,
			Message:   fmt.Sprintf("New order %s received.", o.OrderID),
			RelatedID: o.ID,
			At:        o.CreatedAt,
		})
		if terminalOrderStatuses[o.Status] {
			candidates = append(candidates, entity.Candidate{
				Type:      entity.TypeOrder,
				Message:   fmt.Sprintf("Order %s has been %s.", o.OrderID, o.Status),
				RelatedID: o.ID,
				At:        o.UpdatedAt,
			})
		}
	}

	for _, p := range events.Stock {
		candidates = append(candidates, entity.Candidate{
			Type:      entity.TypeStock,
			Message:   fmt.Sprintf("Only %d units left of %s.", p.Stock, p.Name),
			RelatedID: p.ID,
			At:        p.UpdatedAt,
		})
	}

	for _, r := range events.Reviews {
		name := r.ProductName
		if name == "" {
			name = "a product"
		}
		candidates = append(candidates, entity.Candidate{
			Type:      entity.TypeReview,
			Message:   fmt.Sprintf("New review submitted for %s.", name),
			RelatedID: r.ID,
			At:        r.CreatedAt,
		})
	}

	for _, u := range events.Signups {
		name := u.Name
		if name == "" {
			name = "A user"
		}
		candidates = append(candidates, entity.Candidate{
			Type:      entity.TypeUser,
			Message:   fmt.Sprintf("%s just signed up.", name),
			RelatedID: u.ID,
			At:        u.CreatedAt,
		})
	}

	for _, c := range events.Contacts {
		candidates = append(candidates, entity.Candidate{
			Type:      entity.TypeMessage,
			Message:   fmt.Sprintf("New support message from %s.", c.Name),
			RelatedID: c.ID,
			At:        c.CreatedAt,
		})
	}

	return candidates
}
