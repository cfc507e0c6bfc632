package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/services"
)

func main() {
	log.Println("🚀 Starting language data download...")

	// Load configuration
	cfg := config.Load()

	cache := services.NewCacheStorage(cfg.LanguageData.Path)
	if err := cache.EnsureDir(); err != nil {
		log.Fatalf("❌ Failed to prepare cache directory: %v", err)
	}

	fetcher := services.NewCorpusFetcher(cfg.LanguageData.URL, cfg.LanguageData.FetchTimeout, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	successCount := 0
	failCount := 0

	for _, pkg := range services.CorpusPackages {
		log.Printf("\n📦 Processing: %s", pkg.Name)

		if cache.Exists(pkg.Files...) {
			log.Printf("   ✅ Already cached, skipping...")
			successCount++
			continue
		}

		log.Printf("   📥 Downloading...")
		if err := fetcher.Fetch(ctx, pkg, cache); err != nil {
			log.Printf("   ❌ Failed to download: %v", err)
			failCount++
			continue
		}

		for _, file := range pkg.Files {
			log.Printf("   📄 %s", cache.Path(file))
		}
		successCount++
	}

	// Verify the cache is usable
	data, err := services.LoadLanguageData(cache)
	if err != nil {
		log.Printf("❌ Cached language data is not usable: %v", err)
		failCount++
	} else {
		log.Printf("✅ Loaded %d stopwords", data.StopwordCount())
	}

	// Summary
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Download Summary:")
	log.Printf("   ✅ Successful: %s packages", green(successCount))
	log.Printf("   ❌ Failed: %s", red(failCount))
	log.Printf("   📁 Cache: %s", cache.Path(""))
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println(red("⚠️  Some language data failed to download. Please check the logs above."))
		os.Exit(1)
	}

	log.Println(green("✅ Language data ready!"))
}
