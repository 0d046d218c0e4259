package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/database"
)

// Maintenance job: recompute every item's stock from its full transaction
// history and report items whose current_stock has drifted. Run with -apply
// to write the corrected values back.
func main() {
	apply := flag.Bool("apply", false, "write corrected stock values back to the database")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	txRepo := repository.NewTransactionRepo(db)

	// 3. Recompute expected stock per item from the ledger
	totals, err := txRepo.SignedTotals()
	if err != nil {
		log.Fatalf("❌ Failed to compute ledger totals: %v", err)
	}

	var items []model.Item
	if err := db.Find(&items).Error; err != nil {
		log.Fatalf("❌ Failed to load items: %v", err)
	}

	// 4. Compare and report drift
	drifted := 0
	for _, item := range items {
		expected := totals[item.ID]
		if item.CurrentStock == expected {
			continue
		}
		drifted++
		log.Printf("⚠️  %s (%s): current_stock=%d, ledger says %d (drift %+d)",
			item.Code, item.Name, item.CurrentStock, expected, expected-item.CurrentStock)

		if *apply {
			if err := db.Model(&model.Item{}).
				Where("id = ?", item.ID).
				Update("current_stock", expected).Error; err != nil {
				log.Fatalf("❌ Failed to correct %s: %v", item.Code, err)
			}
			log.Printf("✅ Corrected %s to %d", item.Code, expected)
		}
	}

	if drifted == 0 {
		log.Printf("✅ All %d items match their ledger totals", len(items))
	} else if !*apply {
		log.Printf("Found %d drifted item(s). Re-run with -apply to correct them.", drifted)
	}
}
