package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getadmin "seftali/http-server/admin/get"
	upadmin "seftali/http-server/admin/update"
	getcart "seftali/http-server/cart/get"
	savecart "seftali/http-server/cart/save"
	submitcart "seftali/http-server/cart/submit"
	upcart "seftali/http-server/cart/update"
	getconsumption "seftali/http-server/consumption/get"
	getcountdown "seftali/http-server/countdown/get"
	getdashboard "seftali/http-server/dashboard/get"
	getdeliveries "seftali/http-server/deliveries/get"
	updeliveries "seftali/http-server/deliveries/update"
	getdraft "seftali/http-server/draft/get"
	export_excel "seftali/http-server/generate-report/export-excel"
	getprofile "seftali/http-server/profile/get"
	getproducts "seftali/http-server/products/get"
	getsales "seftali/http-server/sales/get"
	savesales "seftali/http-server/sales/save"
	upsales "seftali/http-server/sales/update"
	"seftali/http-server/screen"
	getstats "seftali/http-server/stats/get"
	savestock "seftali/http-server/stock/save"
	getvariance "seftali/http-server/variance/get"
	upvariance "seftali/http-server/variance/update"
	getwc "seftali/http-server/working-copy/get"
	startwc "seftali/http-server/working-copy/start"
	submitwc "seftali/http-server/working-copy/submit"
	upwc "seftali/http-server/working-copy/update"
	"seftali/internal/config"
	"seftali/internal/middleware/auth"
	export_service "seftali/internal/service/export-excel"
	"seftali/internal/session"
	"seftali/internal/upstream"
)

func routes(cfg config.Config, log *slog.Logger, client *upstream.Client, sessions *session.Store, exporter *export_service.ExportService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", session.TokenHeader},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// screen session lifecycle
	router.Post("/api/session/start", screen.StartSession(log, sessions))
	router.Post("/api/session/end", screen.EndSession(log, sessions))

	// main customer screen: joined fetch, route info, countdown
	router.Get("/api/dashboard", getdashboard.GetDashboard(log, client, sessions))
	router.Get("/api/profile", getprofile.GetProfile(log, client))
	router.Get("/api/products", getproducts.GetProducts(log, client))
	router.Get("/api/draft", getdraft.GetDraft(log, client))
	router.Get("/api/countdown", getcountdown.GetCountdown(log, sessions))
	router.Get("/api/stats/badges", getstats.GetBadgeCounts(log, client))

	// draft cart
	router.Get("/api/cart", getcart.GetCart(log, sessions))
	router.Post("/api/cart/seed", savecart.SeedCart(log, client, sessions))
	router.Post("/api/cart/items", savecart.AddCartItem(log, sessions))
	router.Post("/api/cart/adjust", upcart.AdjustCartItem(log, sessions))
	router.Post("/api/cart/quantity", upcart.SetCartQuantity(log, sessions))
	router.Delete("/api/cart/items/{productID}", upcart.RemoveCartItem(log, sessions))
	router.Post("/api/cart/submit", submitcart.SubmitCart(log, client, sessions))

	// working copy editor
	router.Post("/api/working-copy/start", startwc.StartWorkingCopy(log, client, sessions))
	router.Get("/api/working-copy", getwc.GetWorkingCopy(log, sessions))
	router.Post("/api/working-copy/quantity", upwc.ChangeQuantity(log, client, sessions))
	router.Post("/api/working-copy/toggle-removed", upwc.ToggleRemoved(log, client, sessions))
	router.Post("/api/working-copy/items", upwc.AddProduct(log, client, sessions))
	router.Post("/api/working-copy/submit", submitwc.SubmitWorkingCopy(log, client, sessions))

	// deliveries
	router.Get("/api/deliveries/pending", getdeliveries.GetPendingDeliveries(log, client))
	router.Get("/api/deliveries/history", getdeliveries.GetDeliveryHistory(log, client))
	router.Post("/api/deliveries/{id}/accept", updeliveries.AcceptDelivery(log, client))
	router.Post("/api/deliveries/{id}/reject", updeliveries.RejectDelivery(log, client))

	// stock self-declaration
	router.Post("/api/stock-declarations", savestock.DeclareStock(log, client))

	// consumption variance review
	router.Get("/api/variance/pending", getvariance.GetPendingVariance(log, client))
	router.Post("/api/variance/apply-reason-bulk", upvariance.ApplyReasonBulk(log, client))
	router.Post("/api/variance/dismiss-bulk", upvariance.DismissBulk(log, client))

	// consumption charts
	router.Get("/api/daily-consumption", getconsumption.GetDailyConsumption(log, client))
	router.Get("/api/daily-consumption/summary", getconsumption.GetConsumptionSummary(log, client))

	// sales screens
	router.Get("/api/sales/customers", getsales.GetCustomers(log, client))
	router.Get("/api/sales/deliveries", getsales.GetDeliveries(log, client))
	router.Post("/api/sales/deliveries", savesales.CreateDelivery(log, client))
	router.Get("/api/sales/orders", getsales.GetOrders(log, client))
	router.Post("/api/sales/orders/{id}/approve", upsales.ApproveOrder(log, client))
	router.Post("/api/sales/orders/{id}/request-edit", upsales.RequestOrderEdit(log, client))
	router.Get("/api/sales/warehouse-draft", getsales.GetWarehouseDraft(log, client))
	router.Post("/api/sales/warehouse-draft/submit", savesales.SubmitWarehouseDraft(log, client))

	// delivery history export
	router.Get("/api/report/deliveries/excel", export_excel.ExportDeliveriesExcel(log, exporter))

	// admin panel
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/health/summary", getadmin.GetHealthSummary(log, client))
	adminRouter.Get("/variance", getadmin.GetVariance(log, client))
	adminRouter.Get("/deliveries", getadmin.GetDeliveries(log, client))
	adminRouter.Get("/warehouse-orders", getadmin.GetWarehouseOrders(log, client))
	adminRouter.Post("/warehouse-orders/{id}/process", upadmin.ProcessWarehouseOrder(log, client))

	router.Mount("/api/admin", adminRouter)

	// static SPA
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Error("frontend directory not found", "path", frontendDir)
		os.Exit(1)
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	router.With(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass)).Handle("/admin/*",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
		}),
	)

	// SPA fallback: any other path serves index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
