package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gmod-tts/internal/audio"
	"gmod-tts/internal/auth"
	"gmod-tts/internal/cache"
	"gmod-tts/internal/config"
	"gmod-tts/internal/handlers"
	"gmod-tts/internal/logger"
	"gmod-tts/internal/routes"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default command)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg, engines, err := loadVoices(ctx, cfg, log)
	if err != nil {
		log.Error("startup aborted", zap.Error(err))
		return err
	}
	defer func() { _ = engines.Close() }()
	log.Info("voices loaded", zap.Int("count", reg.Len()), zap.Strings("names", reg.Names()))

	audioCache := cache.NewAudioCache(cache.Options{TTL: cfg.TTL(), MaxCount: cfg.AudioMaxCount})
	go audioCache.Run(ctx, cache.SweepInterval(cfg.TTL(), cfg.CleaningIntervalFloor()), log.Named("cache"))

	h, err := handlers.New(handlers.Options{
		Registry: reg,
		Cache:    audioCache,
		Transcoder: audio.NewFFmpeg(audio.FFmpegConfig{
			Path:       cfg.FFmpegPath,
			Format:     cfg.AudioFormat,
			Codec:      cfg.AudioCodec,
			Bitrate:    cfg.AudioBitrate,
			SampleRate: cfg.AudioSampleRate,
			Timeout:    cfg.TranscodeTimeout,
		}),
		RemoteBaseURL:    cfg.RemoteBaseURL,
		SynthesisTimeout: cfg.SynthesisTimeout,
		Logger:           log.Named("tts"),
	})
	if err != nil {
		return err
	}

	authenticator := auth.New(cfg.SecretKey)
	if !authenticator.Enabled() {
		log.Warn("GMOD_TTS_SECRET_KEY is empty, API is open to everyone")
	}

	srv := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: routes.WithCORS(routes.SetupRoutes(routes.Deps{
			Handler:       h,
			Authenticator: authenticator,
			Logger:        log.Named("http"),
			RateLimit:     cfg.RateLimit,
			RateBurst:     cfg.RateBurst,
		})),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.ListenAddr),
			zap.String("remote_base_url", cfg.RemoteBaseURL),
			zap.Duration("audio_ttl", cfg.TTL()),
			zap.Int("audio_max_count", cfg.AudioMaxCount))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
