package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/quikbite/quikbite/config"
	"github.com/quikbite/quikbite/payments"
)

const maxWebhookBodyBytes = 65536

func CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	clientSecret, err := settlement.CreateIntent(r.Context(), orderID)
	switch {
	case errors.Is(err, payments.ErrOrderNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
		return
	case errors.Is(err, payments.ErrSellerNotOnboarded):
		http.Error(w, payments.ErrSellerNotOnboarded.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, payments.ErrGateway):
		logrus.Printf("payment intent creation failed, error: %v", err)
		http.Error(w, "payment gateway unavailable", http.StatusBadGateway)
		return
	case err != nil:
		http.Error(w, "failed to create payment intent", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"client_secret": clientSecret,
	})
}

func ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	type request struct {
		PaymentIntentID string `json:"payment_intent_id"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.PaymentIntentID == "" {
		http.Error(w, "payment_intent_id is required", http.StatusBadRequest)
		return
	}

	settled, err := settlement.Confirm(r.Context(), req.PaymentIntentID, "confirmation call")
	switch {
	case errors.Is(err, payments.ErrOrderNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
		return
	case errors.Is(err, payments.ErrGateway):
		logrus.Printf("payment confirmation failed, error: %v", err)
		http.Error(w, "payment gateway unavailable", http.StatusBadGateway)
		return
	case err != nil:
		logrus.Printf("payment confirmation failed, error: %v", err)
		http.Error(w, "failed to confirm payment", http.StatusInternalServerError)
		return
	}

	if !settled {
		http.Error(w, "payment not completed", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"settled": true,
		"message": "Payment confirmed and settled",
	})
}

// PaymentWebhook handles gateway-driven settlement. Delivery is
// at-least-once, so the settlement service treats replays as no-ops.
func PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		http.Error(w, "failed to read payload", http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), config.StripeWebhookSecret)
	if err != nil {
		logrus.Printf("webhook signature verification failed, error: %v", err)
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	switch string(event.Type) {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			http.Error(w, "malformed event payload", http.StatusBadRequest)
			return
		}

		if _, err := settlement.Confirm(r.Context(), intent.ID, "webhook"); err != nil {
			logrus.Printf("webhook settlement failed for intent %s, error: %v", intent.ID, err)
			http.Error(w, "settlement failed", http.StatusInternalServerError)
			return
		}
	default:
		logrus.Printf("ignoring webhook event type %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
}
