package database

import (
	"log"

	"github.com/shopspring/decimal"

	"inventory-app/config"
	"inventory-app/internal/models"
)

// SeedBranchesAndStock makes sure the main branch exists and, when
// demo seeding is enabled, loads a small catalog with stock at two
// branches so the allocation paths can be exercised out of the box.
func SeedBranchesAndStock() {
	var mainBranch models.Branch
	if err := DB.FirstOrCreate(&mainBranch, models.Branch{Name: config.AppConfig.Defaults.MainBranchName}).Error; err != nil {
		log.Printf("Failed to seed main branch: %v", err)
		return
	}

	if !config.AppConfig.Defaults.SeedDemoData {
		return
	}

	var outlet models.Branch
	if err := DB.FirstOrCreate(&outlet, models.Branch{Name: "Outlet Branch"}).Error; err != nil {
		log.Printf("Failed to seed outlet branch: %v", err)
		return
	}

	products := []models.Product{
		{Name: "Steel Bottle 1L", Barcode: "SB-1000", UnitPrice: decimal.NewFromFloat(349.00), IsActive: true},
		{Name: "Cotton T-Shirt", Barcode: "CT-2000", UnitPrice: decimal.NewFromFloat(499.00), IsActive: true},
		{Name: "Desk Lamp", Barcode: "DL-3000", UnitPrice: decimal.NewFromFloat(1299.00), IsActive: true},
	}

	for i := range products {
		if err := DB.FirstOrCreate(&products[i], models.Product{Barcode: products[i].Barcode}).Error; err != nil {
			log.Printf("Failed to seed product %s: %v", products[i].Name, err)
			return
		}

		for _, branch := range []models.Branch{mainBranch, outlet} {
			stock := models.ProductStock{
				ProductID:         products[i].ID,
				BranchID:          branch.ID,
				CriticalThreshold: config.AppConfig.Defaults.CriticalThreshold,
			}
			if err := DB.FirstOrCreate(&stock, models.ProductStock{ProductID: products[i].ID, BranchID: branch.ID}).Error; err != nil {
				log.Printf("Failed to seed stock for %s at %s: %v", products[i].Name, branch.Name, err)
			}
		}
	}

	log.Println("Demo branches, products and stock rows seeded.")
}
