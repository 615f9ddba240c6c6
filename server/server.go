package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/quikbite/quikbite/handlers"
	"github.com/quikbite/quikbite/middlewares"
	"github.com/quikbite/quikbite/models"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes() *Server {
	router := mux.NewRouter()
	authRoutes := router.PathPrefix("/api").Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")
	router.HandleFunc("/register", handlers.Register).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")
	router.HandleFunc("/login", handlers.Login).Methods("POST")
	authRoutes.HandleFunc("/logout", handlers.Logout).Methods("POST")

	// Gateway-driven settlement; authenticated by signature, not JWT.
	router.HandleFunc("/webhooks/payment", handlers.PaymentWebhook).Methods("POST")

	authRoutes.HandleFunc("/areas", handlers.ListAreas).Methods("GET")
	authRoutes.HandleFunc("/categories", handlers.ListCategories).Methods("GET")
	authRoutes.HandleFunc("/restaurants", handlers.ListRestaurants).Methods("GET")
	authRoutes.HandleFunc("/restaurants/{id}/menu", handlers.GetMenuByRestaurant).Methods("GET")
	authRoutes.HandleFunc("/addresses", handlers.AddAddress).Methods("POST")

	authRoutes.HandleFunc("/orders", handlers.CreateOrder).Methods("POST")
	authRoutes.HandleFunc("/orders", handlers.ListOrders).Methods("GET")
	authRoutes.HandleFunc("/orders/{id}", handlers.GetOrderDetail).Methods("GET")
	authRoutes.HandleFunc("/orders/{id}/cancel", handlers.CancelOrder).Methods("POST")
	authRoutes.HandleFunc("/orders/{id}/payment-intent", handlers.CreatePaymentIntent).Methods("POST")
	authRoutes.HandleFunc("/payments/confirm", handlers.ConfirmPayment).Methods("POST")

	// seller n admin
	sellerRoutes := authRoutes.PathPrefix("/seller").Subrouter()
	sellerRoutes.Use(middlewares.RoleBasedMiddleware(models.RoleSeller, models.RoleAdmin))

	sellerRoutes.HandleFunc("/restaurants", handlers.CreateRestaurant).Methods("POST")
	sellerRoutes.HandleFunc("/menu-items", handlers.CreateMenuItem).Methods("POST")
	sellerRoutes.HandleFunc("/menu-items/{id}", handlers.UpdateMenuItem).Methods("PUT")
	sellerRoutes.HandleFunc("/menu-items/{id}/image", handlers.UploadMenuItemImage).Methods("POST")
	sellerRoutes.HandleFunc("/payout-account", handlers.SetPayoutAccount).Methods("PUT")

	// fulfilment transitions come from the kitchen side
	authRoutes.Handle("/orders/{id}/status",
		middlewares.RoleBasedMiddleware(models.RoleSeller, models.RoleAdmin)(http.HandlerFunc(handlers.UpdateOrderStatus))).Methods("PATCH")

	// admin only
	admin := authRoutes.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin))

	admin.HandleFunc("/areas", handlers.CreateArea).Methods("POST")
	admin.HandleFunc("/categories", handlers.CreateCategory).Methods("POST")
	admin.HandleFunc("/sellers", handlers.CreateSeller).Methods("POST")
	admin.HandleFunc("/sellers", handlers.ListSellers).Methods("GET")
	admin.HandleFunc("/sellers/{id}/archive", handlers.ArchiveSeller).Methods("POST")
	admin.HandleFunc("/orders/{id}", handlers.AdminGetOrderDetail).Methods("GET")
	admin.HandleFunc("/reports/category-popularity", handlers.CategoryPopularity).Methods("GET")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(port string) error {
	svr.server = &http.Server{
		Addr:              port,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
