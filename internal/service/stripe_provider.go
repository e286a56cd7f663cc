package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/learnora/backend/config"
	"github.com/learnora/backend/internal/apperr"
)

// CheckoutSession is the provider's checkout handle stored on a payment.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentIntent is the provider's view of a payment after polling.
type PaymentIntent struct {
	Status         string
	AmountReceived float64
	Currency       string
}

// PaymentProvider is the payment collaborator contract. All calls are
// network round-trips; implementations must distinguish a provider-side
// "invalid request" from any other failure.
type PaymentProvider interface {
	CreateProduct(name string) (productRef string, err error)
	CreatePrice(amount float64, productRef string) (priceRef string, err error)
	CreateCheckoutSession(priceRef string) (*CheckoutSession, error)
	RetrieveSessionIntent(sessionID string) (paymentIntentRef string, err error)
	RetrievePaymentIntent(ref string) (*PaymentIntent, error)
}

type stripeProvider struct {
	api        *client.API
	successURL string
	currency   string
}

// NewStripeProvider builds the provider from an explicit API key; the key
// is never installed as package-global state.
func NewStripeProvider(cfg *config.Config) (PaymentProvider, error) {
	if cfg.StripeApiKey == "" {
		log.Warn().Msg("STRIPE_API_KEY is not set. Payment operations will fail.")
	}
	api := &client.API{}
	api.Init(cfg.StripeApiKey, nil)
	return &stripeProvider{
		api:        api,
		successURL: cfg.Payment.SuccessURL,
		currency:   cfg.Payment.Currency,
	}, nil
}

func (p *stripeProvider) CreateProduct(name string) (string, error) {
	product, err := p.api.Products.New(&stripe.ProductParams{
		Name: stripe.String(name),
	})
	if err != nil {
		return "", wrapStripeErr("create product", err)
	}
	return product.ID, nil
}

func (p *stripeProvider) CreatePrice(amount float64, productRef string) (string, error) {
	price, err := p.api.Prices.New(&stripe.PriceParams{
		Currency:   stripe.String(p.currency),
		UnitAmount: stripe.Int64(int64(amount * 100)),
		Product:    stripe.String(productRef),
	})
	if err != nil {
		return "", wrapStripeErr("create price", err)
	}
	return price.ID, nil
}

func (p *stripeProvider) CreateCheckoutSession(priceRef string) (*CheckoutSession, error) {
	session, err := p.api.CheckoutSessions.New(&stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(p.successURL),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceRef),
				Quantity: stripe.Int64(1),
			},
		},
	})
	if err != nil {
		return nil, wrapStripeErr("create checkout session", err)
	}
	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (p *stripeProvider) RetrieveSessionIntent(sessionID string) (string, error) {
	session, err := p.api.CheckoutSessions.Get(sessionID, nil)
	if err != nil {
		return "", wrapStripeErr("retrieve session", err)
	}
	if session.PaymentIntent == nil {
		return "", apperr.ExternalUnknown("session has no payment intent", nil)
	}
	return session.PaymentIntent.ID, nil
}

func (p *stripeProvider) RetrievePaymentIntent(ref string) (*PaymentIntent, error) {
	intent, err := p.api.PaymentIntents.Get(ref, nil)
	if err != nil {
		return nil, wrapStripeErr("retrieve payment intent", err)
	}
	return &PaymentIntent{
		Status:         string(intent.Status),
		AmountReceived: float64(intent.AmountReceived) / 100,
		Currency:       string(intent.Currency),
	}, nil
}

// wrapStripeErr classifies a provider failure: invalid-request errors are
// the caller's fault and surface as such; everything else stays generic
// with no internal detail leaked.
func wrapStripeErr(op string, err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) && sErr.Type == stripe.ErrorTypeInvalidRequest {
		return apperr.ExternalClient(fmt.Sprintf("payment provider rejected %s: %s", op, sErr.Msg), err)
	}
	return apperr.ExternalUnknown("an error occurred", err)
}
