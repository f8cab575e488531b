// quizstub runs the in-memory stub of the quiz API for local development,
// pre-seeded with an admin account and a few questions.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/quiz-client/internal/config"
	"github.com/spec-kit/quiz-client/internal/domain"
	"github.com/spec-kit/quiz-client/internal/observability"
	"github.com/spec-kit/quiz-client/internal/stubapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	server := stubapi.New(cfg.Stub.Secret, logger)
	seed(server, logger)

	go func() {
		if err := server.Listen(cfg.Stub.Addr()); err != nil {
			logger.Fatal("stub listen", zap.Error(err))
		}
	}()
	logger.Info("stub api listening", zap.String("addr", cfg.Stub.Addr()))

	waitForShutdown(logger)

	_ = server.Shutdown()
}

func seed(server *stubapi.Server, logger *zap.Logger) {
	if err := server.SeedUser("admin", "admin", "admin@example.com", domain.RoleAdmin); err != nil {
		logger.Fatal("seed admin", zap.Error(err))
	}
	if err := server.SeedUser("demo", "demo", "demo@example.com", "ROLE_USER"); err != nil {
		logger.Fatal("seed user", zap.Error(err))
	}

	q1 := server.SeedQuestion(domain.Question{
		Title:           "Which keyword declares a constant in Go?",
		Option1:         "let",
		Option2:         "const",
		Option3:         "static",
		Option4:         "final",
		RightAnswer:     "const",
		DifficultyLevel: "Easy",
		Category:        "Go",
	})
	q2 := server.SeedQuestion(domain.Question{
		Title:           "What does a nil map lookup return?",
		Option1:         "a panic",
		Option2:         "an error",
		Option3:         "the zero value",
		Option4:         "undefined",
		RightAnswer:     "the zero value",
		DifficultyLevel: "Medium",
		Category:        "Go",
	})
	server.SeedQuiz("Go Basics", q1, q2)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
