package service

import (
	"context"
	"strings"

	"github.com/you/eventpass/pkg/logger"
)

type Location struct {
	StreetAddress string  `json:"street_address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// EventDetails is the public view of an event. Remaining capacity is never
// exposed directly; Limit caps how many tickets one registration may buy.
type EventDetails struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Date             string   `json:"date"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	Description      string   `json:"description"`
	IsPaid           bool     `json:"is_paid"`
	Status           string   `json:"status"`
	Location         Location `json:"location"`
	OrganisationName string   `json:"organisation_name"`
	Price            int      `json:"price"`
	TicketTypeName   string   `json:"ticket_type_name"`
	TicketTypeID     uint     `json:"ticket_type_id"`
	Limit            int      `json:"limit"`
	Images           []string `json:"images"`
}

const maxPurchaseLimit = 10

type EventSvc struct {
	events  EventRepository
	pricing *PricingSvc
	images  ImageLister
	log     logger.Logger
}

func NewEventSvc(events EventRepository, pricing *PricingSvc, images ImageLister, log logger.Logger) *EventSvc {
	return &EventSvc{events: events, pricing: pricing, images: images, log: log}
}

func (s *EventSvc) Get(ctx context.Context, eventID string) (*EventDetails, error) {
	ev, err := s.events.ByID(ctx, eventID)
	if err != nil {
		return nil, NewError(CodeStorage, "Failed to fetch event details")
	}

	out := &EventDetails{
		ID:          ev.ID,
		Title:       ev.Title,
		Date:        ev.Date,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
		Description: ev.Description,
		IsPaid:      ev.IsPaid,
		Status:      ev.Status,
		Location: Location{
			StreetAddress: ev.StreetAddress,
			Latitude:      ev.Latitude,
			Longitude:     ev.Longitude,
		},
		OrganisationName: ev.OrganisationName,
		Limit:            ev.Remaining,
	}
	if out.Limit > maxPurchaseLimit {
		out.Limit = maxPurchaseLimit
	}

	// pricing is best effort here; the event page still renders without it
	if price, err := s.pricing.PriceForEvent(ctx, eventID, 0); err == nil {
		out.Price = price.Price
		out.TicketTypeName = price.TicketTypeName
		out.TicketTypeID = price.TicketTypeID
	} else {
		s.log.Warn("event price unavailable", "event_id", eventID, "error", err)
	}

	names, err := s.images.List(ctx, eventID)
	if err != nil {
		s.log.Error("fetch event images failed", "event_id", eventID, "error", err)
	} else {
		images := make([]string, 0, len(names))
		for _, n := range names {
			if strings.HasPrefix(n, "banner.") {
				continue
			}
			images = append(images, n)
		}
		out.Images = images
	}

	return out, nil
}
