// server/cmd/api/main.go
package main

import (
	"log"

	"need-feeder-api-server/config"
	"need-feeder-api-server/internal/api/routes"
	"need-feeder-api-server/internal/auth"
	"need-feeder-api-server/internal/database"
	"need-feeder-api-server/internal/gemini"
	"need-feeder-api-server/internal/s3"
	"need-feeder-api-server/internal/socket"
	"need-feeder-api-server/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Nạp biến môi trường từ .env (nếu có) rồi load config
	godotenv.Load()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	if cfg.JWT.Secret != "" {
		auth.JwtSecret = []byte(cfg.JWT.Secret)
	}

	// 2. Kết nối MongoDB
	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// 3. Seed dữ liệu demo (users, NGOs, donations)
	if err := database.SeedDemoData(db); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	// 4. Khởi tạo stores
	userStore := &store.MongoUserStore{DB: db}
	ngoStore := &store.MongoNGOStore{DB: db}
	donationStore := &store.MongoDonationStore{DB: db}

	// 5. Khởi tạo WebSocket Hub
	wsHub := socket.NewHub()

	// 6. Khởi tạo S3 uploader (tùy chọn, server vẫn chạy nếu thiếu cấu hình)
	var s3Uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		s3Uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
	} else {
		log.Println("S3 bucket not configured, donation image upload disabled")
	}

	// 7. Khởi tạo Gemini suggester
	suggester := gemini.NewSuggester(cfg.Gemini, nil)

	// 8. Truyền tất cả các thành phần cần thiết vào router
	router := routes.SetupRouter(routes.Deps{
		Cfg:       cfg,
		Users:     userStore,
		Ngos:      ngoStore,
		Donations: donationStore,
		Suggester: suggester,
		Uploader:  s3Uploader,
		Hub:       wsHub,
	})

	// 9. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
