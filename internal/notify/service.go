package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/shuddhindia/storefront-api/internal/kafka"
	"github.com/shuddhindia/storefront-api/internal/orders"
	"github.com/shuddhindia/storefront-api/internal/redisx"
	"github.com/shuddhindia/storefront-api/internal/users"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type UserDirectory interface {
	Get(ctx context.Context, id string) (users.User, error)
}

// Service consumes order lifecycle events and mails the customer.
type Service struct {
	Redis       *redis.Client
	Mailer      Mailer
	Users       UserDirectory
	ServiceName string
}

// HandleOrderEvent is installed as the consumer handler for order.events.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced && env.EventType != orders.EventOrderPaid {
		return nil
	}

	// dedup via Redis on event_id
	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
		seen, _ := redisx.Exists(ctx, s.Redis, dkey)
		if seen {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.mail(ctx, p.UserID, "Your order is confirmed",
			fmt.Sprintf("Thank you for your order!\n\nOrder ID: %s\nTotal: Rs %.2f\n",
				p.OrderID, float64(p.TotalPaise)/100))
	case orders.EventOrderPaid:
		p, err := kafkax.UnwrapPayload[orders.OrderPaidPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.mail(ctx, p.UserID, "Payment received",
			fmt.Sprintf("We received your payment for order %s (payment %s).\n",
				p.OrderID, p.PaymentID))
	}
	return nil
}

func (s *Service) mail(ctx context.Context, userID, subject, body string) error {
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		// user gone is not a reason to redeliver the event
		log.Printf("notify: user %s: %v", userID, err)
		return nil
	}
	if u.Email == "" {
		return nil
	}
	if err := s.Mailer.Send(u.Email, subject, body); err != nil {
		return fmt.Errorf("send mail to %s: %w", u.Email, err)
	}
	return nil
}
