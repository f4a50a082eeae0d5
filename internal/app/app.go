// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, кэш, репозитории, сервисы,
// обработчики, фильтры и собирает всё в один объект App.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"streak-bot/internal/bot"
	"streak-bot/internal/bot/filters"
	"streak-bot/internal/cache"
	"streak-bot/internal/common"
	"streak-bot/internal/config"
	"streak-bot/internal/db/postgres"
	"streak-bot/internal/features/admin"
	"streak-bot/internal/features/members"
	"streak-bot/internal/features/quiz"
	"streak-bot/internal/features/streak"
	"streak-bot/internal/jobs"
	"streak-bot/internal/server"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	Server    *server.Server
	DB        *pgxpool.Pool
	Redis     *redis.Client // nil, если REDIS_ADDR не задан
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}
	checks := map[string]server.Pinger{"postgres": pool}

	// === 2. Кэш "уже уведомлён" ===
	var (
		notified    cache.NotifiedSet
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		redisSet := cache.NewRedisSet(redisClient, "streak-bot:", cfg.NotifyCacheTTL)
		if err := redisSet.Ping(ctx); err != nil {
			pool.Close()
			redisClient.Close()
			return nil, fmt.Errorf("redis недоступен: %w", err)
		}
		notified = redisSet
		checks["redis"] = redisSet
		log.WithField("addr", cfg.RedisAddr).Info("Кэш уведомлений: Redis")
	} else {
		notified = cache.NewMemorySet(cfg.NotifyCacheCapacity, cfg.NotifyCacheTTL)
		log.WithField("capacity", cfg.NotifyCacheCapacity).Info("Кэш уведомлений: память процесса")
	}

	// === 3. Telegram Bot API ===
	if err := tgbotapi.SetLogger(log.StandardLogger()); err != nil {
		log.WithError(err).Warn("Не удалось подключить логгер Telegram API")
	}
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		pool.Close()
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 4. Репозитории ===
	memberRepo := members.NewRepository(pool)
	streakRepo := streak.NewRepository(pool)
	quizRepo := quiz.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 5. Сервисы ===
	memberService := members.NewService(memberRepo, cfg.AppTimezone)
	streakService := streak.NewService(streakRepo, memberService, notified, cfg)
	quizService := quiz.NewService(quizRepo, cfg)
	adminService := admin.NewService(adminRepo, cfg, memberService, streakService, quizService)

	// === 6. Обработчики ===
	memberHandler := members.NewHandler(memberService, botAPI)
	streakHandler := streak.NewHandler(streakService, botAPI)
	quizHandler := quiz.NewHandler(quizService, botAPI)
	adminHandler := admin.NewHandler(adminService, streakService, botAPI)

	// === 7. Фильтры ===
	chatFilter := filters.NewChatFilter(botAPI)

	// === 8. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		memberService, memberHandler,
		streakHandler,
		quizHandler,
		adminHandler,
		chatFilter,
	)

	// === 9. Планировщик задач ===
	loc, _ := common.LoadLocation(cfg.AppTimezone)
	opts := jobs.Options{Out: botAPI}
	if cfg.FeatureRemindersEnabled {
		opts.Reminders = streakService
	}
	if cfg.FeatureQuizEnabled {
		opts.Rounds = quizService
		opts.RoundTTL = cfg.QuizRoundTTL
	}
	scheduler := jobs.NewScheduler(loc, opts)

	// === 10. Служебный HTTP ===
	srv := server.New(cfg.HTTPAddr, checks)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		Server:    srv,
		DB:        pool,
		Redis:     redisClient,
		BotAPI:    botAPI,
	}, nil
}

// Close освобождает соединения.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.WithError(err).Warn("Ошибка закрытия Redis")
		}
	}
	a.DB.Close()
}
