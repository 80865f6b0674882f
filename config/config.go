// server/config/config.go
package config

import (
	"github.com/spf13/viper"
)

// --- Các struct con, phản ánh cấu trúc của YAML ---

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type GeminiConfig struct {
	APIKey  string `mapstructure:"apiKey"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"baseURL"`
}

type MatchingConfig struct {
	DefaultRadiusKm float64 `mapstructure:"defaultRadiusKm"`
}

// --- Struct Config chính, bao gồm tất cả các struct con ---

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	S3       S3Config       `mapstructure:"s3"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Matching MatchingConfig `mapstructure:"matching"`
}

// LoadConfig đọc cấu hình từ file và ghi đè bằng các biến môi trường.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	viper.BindEnv("gemini.apiKey", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")
	viper.BindEnv("gemini.baseURL", "GEMINI_BASE_URL")
	viper.BindEnv("matching.defaultRadiusKm", "MATCHING_DEFAULT_RADIUS_KM")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.dbName", "needfeeder")
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("matching.defaultRadiusKm", 5.0)

	// Đọc file config.yaml. Nếu file không tồn tại, Viper sẽ chỉ sử dụng
	// các biến môi trường.
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
