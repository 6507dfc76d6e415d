package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/greenauction/backend/internal/domain/catalog"
	"github.com/greenauction/backend/internal/domain/identity"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/greenauction/backend/internal/infrastructure/config"
	"github.com/greenauction/backend/internal/infrastructure/logger"
	"github.com/greenauction/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	seedPassword = "password123"
	historyDays  = 7
)

type seedProduct struct {
	name   string
	price  int64
	seller int
}

var seedProducts = []seedProduct{
	{"Shine Muscat 1", 20, 0},
	{"Shine Muscat 2", 25, 1},
	{"Shine Muscat 3", 22, 2},
	{"Strawberry 1", 10, 0},
	{"Strawberry 2", 12, 1},
	{"Strawberry 3", 15, 2},
}

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	ctx := context.Background()
	userRepo := persistence.NewGormUserRepository(db.DB)

	exists, err := userRepo.ExistsByUsername(ctx, "seller1")
	if err != nil {
		log.Fatal("Failed to inspect existing data", zap.Error(err))
	}
	if exists {
		log.Info("Dummy data already present, nothing to do")
		return
	}

	if err := seed(ctx, db, time.Now(), log); err != nil {
		log.Fatal("Failed to create dummy data", zap.Error(err))
	}
	log.Info("Dummy data created successfully")
}

// seed creates three approved sellers, a buyer, six products and a week of
// orders with the matching daily price history, all in one transaction.
func seed(ctx context.Context, db *persistence.Database, now time.Time, log *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		userRepo := persistence.NewGormUserRepository(tx)
		productRepo := persistence.NewGormProductRepository(tx)
		orderRepo := persistence.NewGormOrderRepository(tx)
		historyRepo := persistence.NewGormPriceHistoryRepository(tx)

		sellers := make([]*identity.User, 0, 3)
		for i := 1; i <= 3; i++ {
			seller, err := identity.NewUser(fmt.Sprintf("seller%d", i), fmt.Sprintf("seller%d@example.com", i), seedPassword, true)
			if err != nil {
				return err
			}
			if err := seller.Approve(); err != nil {
				return err
			}
			if err := userRepo.Create(ctx, seller); err != nil {
				return fmt.Errorf("create %s: %w", seller.Username, err)
			}
			sellers = append(sellers, seller)
		}

		buyer, err := identity.NewUser("buyer1", "buyer1@example.com", seedPassword, false)
		if err != nil {
			return err
		}
		if err := userRepo.Create(ctx, buyer); err != nil {
			return fmt.Errorf("create %s: %w", buyer.Username, err)
		}

		for _, sp := range seedProducts {
			price := decimal.NewFromInt(sp.price)
			product, err := catalog.NewProduct(sellers[sp.seller].ID, sp.name, "", price)
			if err != nil {
				return err
			}
			if err := productRepo.Save(ctx, product); err != nil {
				return fmt.Errorf("create %s: %w", sp.name, err)
			}

			for daysAgo := historyDays - 1; daysAgo >= 0; daysAgo-- {
				day := now.AddDate(0, 0, -daysAgo)

				order, err := trade.NewDirectOrder(buyer.ID, product.ID, price)
				if err != nil {
					return err
				}
				if err := order.SetQuantity(rand.IntN(10)+1, price); err != nil {
					return err
				}
				order.Status = trade.OrderStatusPaid
				order.DateOrdered = day
				if err := orderRepo.Save(ctx, order); err != nil {
					return fmt.Errorf("create order for %s: %w", sp.name, err)
				}

				// daily average drifts up to 10% around the list price
				drift := decimal.NewFromFloat(0.9 + rand.Float64()*0.2)
				entry, err := catalog.NewPriceHistory(product.ID, day, price.Mul(drift))
				if err != nil {
					return err
				}
				if err := historyRepo.Append(ctx, entry); err != nil {
					return fmt.Errorf("append price history for %s: %w", sp.name, err)
				}
			}

			log.Info("Product seeded",
				zap.String("product", sp.name),
				zap.String("seller", sellers[sp.seller].Username),
				zap.Int("orders", historyDays))
		}
		return nil
	})
}
