// Package event publishes registry changes to interested subscribers.
//
// A registry configured with a Bus publishes one Event per completed change:
//
//	roster.initialized    Init replaced participants or pricing
//	participant.added     AddParticipant stored a participant
//	participant.removed   RemoveParticipant found and removed a participant
//	pricing.updated       SetPricing applied at least one rate
//
// Subscribers receive events on their own goroutine:
//
//	bus := event.NewBus(event.DefaultBusConfig)
//	defer bus.Close()
//
//	bus.Subscribe(func(ctx context.Context, evt event.Event) error {
//	    log.Printf("%s %v", evt.Type, evt.Payload)
//	    return nil
//	}, event.TypeParticipantAdded, event.TypeParticipantRemoved)
//
// Delivery order is preserved per subscription. Handler errors never reach
// the publisher; use BusConfig.OnError to observe them.
package event
