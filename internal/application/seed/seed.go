// Package seed inserta datos iniciales: ítems demo y el usuario admin.
// Solo actúa cuando la tabla correspondiente está vacía.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
	domaininv "github.com/Kentcsclass/smart-imventory/internal/domain/inventory"
	"github.com/Kentcsclass/smart-imventory/internal/domain/repository"
	"github.com/Kentcsclass/smart-imventory/pkg/logger"
)

// Seeder siembra datos demo y el admin por defecto.
type Seeder struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	log      *logger.Logger
}

// New construye el seeder.
func New(itemRepo repository.ItemRepository, userRepo repository.UserRepository, log *logger.Logger) *Seeder {
	return &Seeder{itemRepo: itemRepo, userRepo: userRepo, log: log}
}

// ItemsIfEmpty inserta los ítems demo si no existe ninguno.
func (s *Seeder) ItemsIfEmpty() error {
	count, err := s.itemRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, d := range demoItems() {
		seq, err := s.itemRepo.NextBatchSeq()
		if err != nil {
			return err
		}
		d.ID = uuid.New().String()
		d.BatchNumber = domaininv.FormatBatchNumber(now.Year(), seq)
		d.CreatedAt = now
		d.UpdatedAt = now
		if err := s.itemRepo.Create(&d); err != nil {
			return err
		}
	}
	s.log.Info().Int("items", len(demoItems())).Msg("ítems demo sembrados")
	return nil
}

// AdminIfEmpty crea el usuario admin inicial si no hay usuarios.
func (s *Seeder) AdminIfEmpty(username, password string) error {
	count, err := s.userRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("usuario admin inicial creado")
	return nil
}

func demoItems() []entity.Item {
	exp := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	return []entity.Item{
		{
			Name: "Wireless Mouse", Category: "Electronics", Type: "Finished Good",
			Quantity: 150, MinStockLevel: 50, Price: decimal.NewFromFloat(29.99),
			SKU: "ELEC-MOUSE-001", Description: "Ergonomic wireless mouse with USB receiver",
			Location: "Warehouse A - Aisle 3", Supplier: "TechSupply Co.",
		},
		{
			Name: "Office Desk Chair", Category: "Furniture", Type: "Finished Good",
			Quantity: 25, MinStockLevel: 15, Price: decimal.NewFromFloat(249.99),
			SKU: "FURN-CHAIR-002", Description: "Adjustable office chair with lumbar support",
			Location: "Warehouse B - Section 2", Supplier: "FurniturePro Inc.",
		},
		{
			Name: "Printer Paper (Ream)", Category: "Office Supplies", Type: "Consumable",
			Quantity: 200, MinStockLevel: 100, Price: decimal.NewFromFloat(5.49),
			SKU: "OFFICE-PAPER-003", Description: "500-sheet pack of standard A4 printer paper",
			Location: "Warehouse A - Aisle 1", Supplier: "OfficeWorld Distributors",
		},
		{
			Name: "USB-C Cable", Category: "Electronics", Type: "Component",
			Quantity: 80, MinStockLevel: 40, Price: decimal.NewFromFloat(9.99),
			SKU: "ELEC-CABLE-004", Description: "1.5m USB-C to USB-C charging cable",
			Location: "Warehouse A - Aisle 4", Supplier: "TechSupply Co.",
		},
		{
			Name: "Bottled Water (Case)", Category: "Beverages", Type: "Consumable",
			Quantity: 60, MinStockLevel: 30, Price: decimal.NewFromFloat(12.99),
			SKU: "BEV-WATER-005", Description: "24-pack of bottled drinking water",
			Location: "Warehouse C - Cold Storage", Supplier: "FreshDrinks Ltd.",
			ExpirationDate: &exp,
		},
	}
}
