package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"sync"
	"syscall"
	"time"

	natsbroker "mediasend/internal/adapters/eventbroker/nats"
	chirouter "mediasend/internal/adapters/handlers/http/chi"
	"mediasend/internal/adapters/handlers/http/chi/v1/upload"
	"mediasend/internal/adapters/storage/minio"
	"mediasend/internal/config"
	"mediasend/internal/core/domain"
	"mediasend/internal/core/service/attachment"
	"mediasend/internal/core/service/mediaconfig"
	"mediasend/internal/core/service/send"
	"mediasend/internal/core/service/thumbnail"
)

func main() {

	roomID := flag.String("room", "", "room to send the files into")
	threadID := flag.String("thread", "", "thread root event ID to scope the sends to")
	replyTo := flag.String("reply-to", "", "event ID the first message replies to")
	flag.Parse()

	if *roomID == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: sender -room <room-id> [-thread <event-id>] [-reply-to <event-id>] <file>...")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//event broker / message sink
	publisher, err := natsbroker.NewPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init nats", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close nats", "error", err)
		}
	}()

	//services
	policy := mediaconfig.NewCache(minioAdapter, logger)
	attach := attachment.NewUploader(minioAdapter, staticOracle(cfg.Send.EncryptedRooms), logger)
	sendService := send.NewSendService(
		attach,
		thumbnail.NewImageDecoder(),
		thumbnail.NewGenerator(logger),
		policy,
		publisher,
		autoConfirmer{logger: logger, continueOversized: cfg.Send.ProceedAfterOversized},
		publisher,
		logger,
	)

	//http
	uploadHandler := upload.NewUploadHandlerV1(sendService, logger)
	router := chirouter.NewRouter(logger, uploadHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	files, err := loadFiles(flag.Args())
	if err != nil {
		logger.Error("failed to read input files", "error", err)
		stop()
	} else {
		var relation *domain.Relation
		if *threadID != "" {
			relation = &domain.Relation{Type: domain.RelationTypeThread, EventID: *threadID}
		}

		if err := sendService.SendFilesToRoom(ctx, files, *roomID, relation, *replyTo); err != nil {
			logger.Error("batch finished with failures", "error", err)
		} else {
			logger.Info("batch sent", "room", *roomID, "files", len(files))
		}
		stop()
	}

	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func loadFiles(paths []string) ([]domain.File, error) {
	files := make([]domain.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		files = append(files, domain.File{
			Name:        filepath.Base(path),
			ContentType: contentType,
			Size:        int64(len(data)),
			Data:        data,
		})
	}
	return files, nil
}

// staticOracle reports rooms listed in the config as encrypted
type staticOracle []string

func (o staticOracle) IsRoomEncrypted(roomID string) bool {
	return slices.Contains(o, roomID)
}

// autoConfirmer answers the confirmation checkpoints without a UI: oversized
// files are logged and the batch behavior follows config, per-file prompts
// always approve the whole batch.
type autoConfirmer struct {
	logger            *slog.Logger
	continueOversized bool
}

func (c autoConfirmer) ConfirmOversized(ctx context.Context, tooBig []domain.File, totalFiles int) (bool, error) {
	for _, file := range tooBig {
		c.logger.Warn("file exceeds the upload size limit", "file", file.DisplayName(), "size", file.Size)
	}
	return c.continueOversized, nil
}

func (c autoConfirmer) ConfirmUpload(ctx context.Context, file domain.File, index, totalFiles int) (bool, bool, error) {
	return true, true, nil
}
