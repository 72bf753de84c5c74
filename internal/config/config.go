package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env    Env
	Minio  MinioConfig
	NATS   NATSConfig
	Server ServerConfig
	Send   SendConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint      string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName    string        `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey     string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey     string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	UseSSL        bool          `envconfig:"MINIO_USE_SSL" default:"false"`
	MaxUploadSize int64         `envconfig:"MINIO_MAX_UPLOAD_SIZE" default:"0"` // 0 = no declared limit
	ProbeTimeout  time.Duration `envconfig:"MINIO_PROBE_TIMEOUT" default:"5s"`
}

type NATSConfig struct {
	URL            string `envconfig:"NATS_URL" required:"true"`
	ClientName     string `envconfig:"NATS_CLIENT_NAME" default:"mediasend"`
	StreamName     string `envconfig:"NATS_STREAM_NAME" default:"ROOM_MESSAGES"`
	MessageSubject string `envconfig:"NATS_MESSAGE_SUBJECT" default:"rooms.messages"`
	EventSubject   string `envconfig:"NATS_EVENT_SUBJECT" default:"rooms.uploads"`
}

type SendConfig struct {
	// EncryptedRooms lists room IDs whose attachments are encrypted client-side.
	EncryptedRooms []string `envconfig:"SEND_ENCRYPTED_ROOMS"`
	// ProceedAfterOversized continues a batch with the files that fit after
	// some were rejected by the size policy; false aborts the whole batch.
	ProceedAfterOversized bool `envconfig:"SEND_PROCEED_AFTER_OVERSIZED" default:"true"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
