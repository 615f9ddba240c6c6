package handlers

import (
	"github.com/quikbite/quikbite/notify"
	"github.com/quikbite/quikbite/orders"
	"github.com/quikbite/quikbite/payments"
	"github.com/quikbite/quikbite/storage"
)

var (
	settlement  *payments.Service
	objectStore storage.ObjectStore
	notifier    notify.Sender
	feeCalc     orders.FeeCalculator
)

// Init wires the collaborators handlers depend on. Called once from main
// before the router starts serving.
func Init(svc *payments.Service, store storage.ObjectStore, sender notify.Sender, fees orders.FeeCalculator) {
	settlement = svc
	objectStore = store
	notifier = sender
	feeCalc = fees
}
