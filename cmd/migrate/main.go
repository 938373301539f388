package main

import (
	"fmt"
	"os"

	"designer/internal/app/ds"
	"designer/internal/app/dsn"
	"designer/internal/app/repository"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	force := flag.Bool("force", false, "удалить таблицы перед миграцией")
	modulesFile := flag.String("modules", "", "JSON-файл с модулями каталога для загрузки")
	flag.Parse()

	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check your .env file")
	}

	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	logrus.Info("Connected to database successfully")

	if *force {
		if err := db.Migrator().DropTable(&ds.Project{}, &ds.Module{}, &ds.User{}); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Warn("Tables dropped")
	}

	repo, err := repository.NewWithDB(db)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.Info("Database migration completed successfully")

	if *modulesFile == "" {
		return
	}

	modules, err := readModules(*modulesFile)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := repo.CreateModules(modules); err != nil {
		logrus.Fatalf("Failed to seed modules: %v", err)
	}
	logrus.Infof("Seeded %d modules", len(modules))
}

func readModules(path string) ([]ds.Module, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read modules file: %w", err)
	}

	var modules []ds.Module
	if err := json.Unmarshal(raw, &modules); err != nil {
		return nil, fmt.Errorf("parse modules file: %w", err)
	}
	for i := range modules {
		// id назначает база
		modules[i].ID = 0
	}
	return modules, nil
}
