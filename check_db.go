package main

import (
	"fmt"
	"sort"

	"designer/internal/app/config"
	"designer/internal/app/repository"

	"github.com/sirupsen/logrus"
)

// Проверка подключения к БД: печатает число модулей каталога по категориям
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("Failed to read config: ", err)
	}

	repo, err := repository.New(cfg.DB.DSN)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	counts, err := repo.CountModulesByType()
	if err != nil {
		logrus.Fatal("Failed to count modules: ", err)
	}

	categories := make([]int, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Ints(categories)

	fmt.Println("Modules in database:")
	for _, category := range categories {
		fmt.Printf("Category: %d, Modules: %d\n", category, counts[category])
	}
}
