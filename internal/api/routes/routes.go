// server/internal/api/routes/routes.go
package routes

import (
	"need-feeder-api-server/config"
	"need-feeder-api-server/internal/api/handlers"
	"need-feeder-api-server/internal/api/middleware"
	"need-feeder-api-server/internal/auth"
	"need-feeder-api-server/internal/matching"
	"need-feeder-api-server/internal/s3"
	"need-feeder-api-server/internal/socket"
	"need-feeder-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps gom các thành phần phụ thuộc của router.
type Deps struct {
	Cfg       config.Config
	Users     store.UserStore
	Ngos      store.NGOStore
	Donations store.DonationStore
	Suggester handlers.UrgencySuggester
	Uploader  *s3.Uploader
	Hub       *socket.Hub
}

// SetupRouter nhận vào các thành phần phụ thuộc và thiết lập các route.
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	matcher := &matching.Engine{Ngos: deps.Ngos}
	radiusKm := deps.Cfg.Matching.DefaultRadiusKm
	if radiusKm <= 0 {
		radiusKm = matching.DefaultRadiusKm
	}

	// Khởi tạo các handlers
	authHandler := &handlers.AuthHandler{Users: deps.Users, Ngos: deps.Ngos}
	ngoHandler := &handlers.NgoHandler{Ngos: deps.Ngos, Users: deps.Users, Matcher: matcher, DefaultRadiusKm: radiusKm}
	donationHandler := &handlers.DonationHandler{
		Donations: deps.Donations,
		Users:     deps.Users,
		Ngos:      deps.Ngos,
		Hub:       deps.Hub,
		Uploader:  deps.Uploader,
		Suggester: deps.Suggester,
	}
	webSocketHandler := &handlers.WebSocketHandler{Hub: deps.Hub}

	apiV1 := router.Group("/api/v1")
	{
		// Route cho WebSocket (token qua query)
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === CÁC ROUTE KHÔNG YÊU CẦU XÁC THỰC ===
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/donor/login", authHandler.DonorLogin)
			authRoutes.POST("/ngo/login", authHandler.NgoLogin)
		}

		// === CÁC ROUTE YÊU CẦU XÁC THỰC (PROTECTED) ===
		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate())
		{
			// NGO directory
			ngos := protected.Group("/ngos")
			{
				ngos.GET("/", ngoHandler.GetVerifiedNgos)
				// Matching quanh vị trí donor, chỉ donor dùng
				nearby := ngos.Group("/nearby")
				nearby.Use(middleware.Authorize(auth.RoleDonor))
				{
					nearby.GET("/", ngoHandler.FindNearby)
				}
				ngos.GET("/:id", ngoHandler.GetNgoByID)
			}

			// Donation management
			donations := protected.Group("/donations")
			{
				donations.GET("/", donationHandler.GetAllDonations)
				donations.GET("/:id", donationHandler.GetDonationByID)

				// Generic setter giữ behavior gốc, cả hai vai trò dùng được
				donations.PUT("/:id/status", donationHandler.UpdateStatus)

				// Route chỉ cho donor
				donorRoutes := donations.Group("/")
				donorRoutes.Use(middleware.Authorize(auth.RoleDonor))
				{
					donorRoutes.POST("/", donationHandler.CreateDonation)
					donorRoutes.GET("/my", donationHandler.GetMyDonations)
					donorRoutes.GET("/suggestions", donationHandler.GetSuggestions)
					donorRoutes.POST("/:id/image", donationHandler.UploadImage)
				}

				// Route chỉ cho NGO
				ngoRoutes := donations.Group("/")
				ngoRoutes.Use(middleware.Authorize(auth.RoleNGO))
				{
					ngoRoutes.GET("/available", donationHandler.GetAvailableDonations)
					ngoRoutes.GET("/accepted", donationHandler.GetMyAcceptedDonations)
					ngoRoutes.POST("/:id/accept", donationHandler.AcceptDonation)
					ngoRoutes.POST("/:id/pickup", donationHandler.ConfirmPickup)
					ngoRoutes.POST("/:id/deliver", donationHandler.ConfirmDelivery)
				}
			}
		}
	}

	return router
}
